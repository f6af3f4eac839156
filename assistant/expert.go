package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// maxCalls bounds the function calls answered for a single question.
const maxCalls = 8

// Sender sends a message in a chat session, like *genai.Chat.
type Sender interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Expert is a chat with a model that can call the functions of its library.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	Log       *slog.Logger
	chat      Sender
}

// Start opens the chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("could not start chat with %s: %w", e.ModelName, err)
	}
	e.chat = chat
	return nil
}

// Started reports whether the chat session is open.
func (e *Expert) Started() bool { return e.chat != nil }

// Ask sends parts and answers the function calls of the model until it
// replies with text.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	for range maxCalls {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no response from %s", e.Name)
		}

		var calls []*genai.FunctionCall
		var text string
		for _, p := range resp.Candidates[0].Content.Parts {
			if p.FunctionCall != nil {
				calls = append(calls, p.FunctionCall)
			}
			text += p.Text
		}
		if len(calls) == 0 {
			return text, nil
		}
		if e.Library == nil {
			return "", fmt.Errorf("%s doesn't know how to make function calls", e.Name)
		}

		parts = make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			e.logger().DebugContext(ctx, "function call", "expert", e.Name, "function", call.Name, "args", call.Args)
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, call)})
		}
	}
	return "", fmt.Errorf("%s made too many function calls", e.Name)
}

func (e *Expert) logger() *slog.Logger {
	if e.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Log
}
