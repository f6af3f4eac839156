package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/etnz/finances/assistant"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask questions about your finances to an AI assistant" }
func (*assistCmd) Usage() string {
	return `fin assist [<question>]

  Starts an interactive session with a Gemini model that can read the ledger.
  The question, if any, is asked first. Requires GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	return withLedger(func(l *session) subcommands.ExitStatus {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			printError("Error initializing Gemini's client: %v", err)
			return subcommands.ExitFailure
		}

		accountant := assistant.NewAccountant(l.Ledger, cfg.GeminiModel, l.log)
		a := assistant.New(stdout, os.Stdin, accountant)
		a.Print = func(_ io.Writer, answer string) { printMarkdown(answer) }

		if err := a.Run(ctx, client, initialPrompt); err != nil {
			printError("Agent failed: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
