package promptservice

import (
	"context"
	"errors"
	"testing"

	"github.com/promptwell/prompt-server-go/mcp"
	"github.com/promptwell/prompt-server-go/promptargs"
)

func greetingPrompt(t *testing.T) StaticPrompt {
	t.Helper()
	schema := promptargs.NewSchema().
		String("name", promptargs.Required(), promptargs.Description("The user's name")).
		String("salutation", promptargs.Default("Hello")).
		Build()
	type args struct {
		Name       string `json:"name"`
		Salutation string `json:"salutation"`
	}
	return NewPrompt("greeting", schema, func(_ context.Context, a args) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: "A friendly greeting",
			Messages:    []mcp.PromptMessage{mcp.TextMessage(mcp.RoleAssistant, a.Salutation+", "+a.Name+"!")},
		}, nil
	}, WithPromptDescription("Say hello to a user by name"))
}

func TestStaticPrompts_GetDispatchesTypedHandler(t *testing.T) {
	sp := NewStaticPrompts(greetingPrompt(t))
	res, err := sp.Get(context.Background(), &mcp.GetPromptRequest{
		Name:      "greeting",
		Arguments: map[string]any{"name": "Alice"},
	})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(res.Messages) != 1 || res.Messages[0].Content[0].Text != "Hello, Alice!" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestStaticPrompts_DescriptorCarriesSchemaView(t *testing.T) {
	sp := NewStaticPrompts(greetingPrompt(t))
	snap := sp.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(snap))
	}
	p := snap[0]
	if p.Description != "Say hello to a user by name" {
		t.Fatalf("description = %q", p.Description)
	}
	if len(p.Arguments) != 2 {
		t.Fatalf("arguments = %+v", p.Arguments)
	}
	if !p.Arguments[0].Required || p.Arguments[0].Name != "name" {
		t.Fatalf("name must list as required: %+v", p.Arguments[0])
	}
	if p.Arguments[1].Required {
		t.Fatalf("defaulted salutation must list as optional: %+v", p.Arguments[1])
	}
}

func TestNewPrompt_RejectsInvalidArguments(t *testing.T) {
	sp := NewStaticPrompts(greetingPrompt(t))
	_, err := sp.Get(context.Background(), &mcp.GetPromptRequest{
		Name:      "greeting",
		Arguments: map[string]any{"name": 42},
	})
	var verr *promptargs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *promptargs.ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "name" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
}

func TestNewPrompt_HandlerErrorPropagatesUnchanged(t *testing.T) {
	sentinel := errors.New("upstream exploded")
	schema := promptargs.NewSchema().String("x", promptargs.Optional()).Build()
	sp := NewStaticPrompts(NewDynamicPrompt("failing", schema, func(context.Context, map[string]any) (*mcp.GetPromptResult, error) {
		return nil, sentinel
	}))
	_, err := sp.Get(context.Background(), &mcp.GetPromptRequest{Name: "failing"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("handler error must propagate unchanged, got %v", err)
	}
}

func TestStaticPrompts_AddRemove(t *testing.T) {
	sp := NewStaticPrompts()
	if !sp.Add(greetingPrompt(t)) {
		t.Fatalf("first add must succeed")
	}
	if sp.Add(greetingPrompt(t)) {
		t.Fatalf("duplicate add must fail")
	}
	if sp.Add(StaticPrompt{}) {
		t.Fatalf("unnamed prompt must be rejected")
	}
	if !sp.Remove("greeting") {
		t.Fatalf("remove must succeed")
	}
	if sp.Remove("greeting") {
		t.Fatalf("second remove must fail")
	}
	_, err := sp.Get(context.Background(), &mcp.GetPromptRequest{Name: "greeting"})
	if !errors.Is(err, ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
}

func TestStaticPrompts_NotifiesOnChange(t *testing.T) {
	sp := NewStaticPrompts()
	ch := sp.Subscriber()
	sp.Add(greetingPrompt(t))
	select {
	case <-ch:
	default:
		t.Fatalf("expected change notification after Add")
	}
}
