package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/finances"
	"google.golang.org/genai"
)

// fakeChat replays scripted responses and records what was sent.
type fakeChat struct {
	responses []*genai.Content
	sent      [][]*genai.Part
}

func (c *fakeChat) Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	c.sent = append(c.sent, parts)
	if len(c.responses) == 0 {
		return nil, errors.New("no more responses")
	}
	content := c.responses[0]
	c.responses = c.responses[1:]
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}, nil
}

func textContent(s string) *genai.Content {
	return &genai.Content{Role: "model", Parts: []*genai.Part{{Text: s}}}
}

func callContent(calls ...*genai.FunctionCall) *genai.Content {
	c := &genai.Content{Role: "model"}
	for _, call := range calls {
		c.Parts = append(c.Parts, &genai.Part{FunctionCall: call})
	}
	return c
}

func testLedger(t *testing.T) *finances.Ledger {
	t.Helper()
	doc := finances.DefaultDocument()
	doc.Accounts[0].Balance = finances.M(100)
	doc.Accounts[0].InitialBalance = finances.M(100)
	now := func() time.Time { return time.Date(2026, time.October, 15, 9, 30, 0, 0, time.Local) }
	l, err := finances.Open(finances.NewMemoryStore(&doc), finances.WithClock(now))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := l.AddTransaction(finances.M(12), finances.Expense, "Food", "Cash", "pizza"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(finances.M(2500), finances.Income, "Salary", "Main Bank", "october"); err != nil {
		t.Fatal(err)
	}
	return l
}

func call(lib Library, name string, args map[string]any) map[string]any {
	return lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args}).Response
}

func TestLedgerFunctions(t *testing.T) {
	lib := NewLibrary(LedgerFunctions(testLedger(t)))

	testCases := []struct {
		name      string
		args      map[string]any
		contains  []string
		wantError bool
	}{
		{name: "total_balance", contains: []string{"$2,588.00"}},
		{name: "list_accounts", contains: []string{"| Cash | cash | $88.00 |", "Main Bank"}},
		{name: "list_categories", contains: []string{"Salary", "Education"}},
		{name: "recent_transactions", contains: []string{"pizza", "october"}},
		{name: "recent_transactions", args: map[string]any{"kind": "expense", "limit": 5.0}, contains: []string{"pizza"}},
		{name: "recent_transactions", args: map[string]any{"account": "Main Bank"}, contains: []string{"october"}},
		{name: "recent_transactions", args: map[string]any{"month": "2026-09"}, contains: []string{"No transactions."}},
		{name: "recent_transactions", args: map[string]any{"kind": "gift"}, wantError: true},
		{name: "recent_transactions", args: map[string]any{"limit": "ten"}, wantError: true},
		{name: "monthly_statistics", contains: []string{"October 2026", "$2,500.00", "$12.00"}},
		{name: "monthly_statistics", args: map[string]any{"month": "2026-09"}, contains: []string{"September 2026"}},
		{name: "monthly_statistics", args: map[string]any{"month": "soon"}, wantError: true},
		{name: "delete_everything", wantError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(lib, tc.name, tc.args)
			if tc.wantError {
				if _, ok := resp["error"]; !ok {
					t.Errorf("response = %v, want an error", resp)
				}
				return
			}
			out, ok := resp["output"].(string)
			if !ok {
				t.Fatalf("response = %v, want an output", resp)
			}
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output does not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestExpert_Ask(t *testing.T) {
	chat := &fakeChat{responses: []*genai.Content{
		callContent(&genai.FunctionCall{ID: "a", Name: "total_balance"}, &genai.FunctionCall{ID: "b", Name: "list_accounts"}),
		textContent("You have $2,588.00."),
	}}
	e := NewAccountant(testLedger(t), "", nil)
	e.chat = chat

	answer, err := e.Ask(context.Background(), &genai.Part{Text: "How much do I have?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "You have $2,588.00." {
		t.Errorf("Ask() = %q", answer)
	}
	if len(chat.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(chat.sent))
	}
	second := chat.sent[1]
	if len(second) != 2 || second[0].FunctionResponse.ID != "a" || second[1].FunctionResponse.Name != "list_accounts" {
		t.Errorf("function responses not sent back in order: %+v", second)
	}
	if e.ModelName != DefaultModel {
		t.Errorf("ModelName = %q, want %q", e.ModelName, DefaultModel)
	}
}

func TestExpert_AskTooManyCalls(t *testing.T) {
	chat := &fakeChat{}
	for range maxCalls {
		chat.responses = append(chat.responses, callContent(&genai.FunctionCall{Name: "total_balance"}))
	}
	e := NewAccountant(testLedger(t), "", nil)
	e.chat = chat

	if _, err := e.Ask(context.Background(), &genai.Part{Text: "loop"}); err == nil {
		t.Error("Ask() succeeded, want an error")
	}
}

func TestExpert_AskEmpty(t *testing.T) {
	e := &Expert{Name: "Empty", chat: &fakeChat{responses: []*genai.Content{{Role: "model"}}}}
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hello"}); err == nil {
		t.Error("Ask() succeeded, want an error")
	}
}

func TestAgent_Run(t *testing.T) {
	chat := &fakeChat{responses: []*genai.Content{
		textContent("first answer"),
		textContent("second answer"),
	}}
	e := &Expert{Name: "Test", chat: chat}

	var out strings.Builder
	a := New(&out, strings.NewReader("second question\nbye\nnever asked\n"), e)
	if err := a.Run(context.Background(), nil, "first question"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, s := range []string{"assist> first question", "first answer", "second answer"} {
		if !strings.Contains(got, s) {
			t.Errorf("output does not contain %q:\n%s", s, got)
		}
	}
	if len(chat.sent) != 2 {
		t.Errorf("asked %d questions, want 2", len(chat.sent))
	}
}
