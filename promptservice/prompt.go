package promptservice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/promptwell/prompt-server-go/mcp"
	"github.com/promptwell/prompt-server-go/promptargs"
)

// PromptOption configures a prompt built with NewPrompt.
type PromptOption func(*promptConfig)

type promptConfig struct {
	description string
}

// WithPromptDescription sets the description used in listings.
func WithPromptDescription(desc string) PromptOption {
	return func(c *promptConfig) { c.description = desc }
}

// NewPrompt builds a StaticPrompt whose handler receives a typed argument
// struct A. On each get the raw caller arguments are resolved against the
// schema (defaults merged, types validated) and decoded into A; the handler
// runs only after validation succeeds, and its failure propagates to the
// caller unchanged. The descriptor's argument list is the schema's Describe
// view, so catalog metadata cannot drift from the validation behavior.
func NewPrompt[A any](name string, schema *promptargs.Schema, fn func(ctx context.Context, args A) (*mcp.GetPromptResult, error), opts ...PromptOption) StaticPrompt {
	cfg := promptConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	desc := mcp.Prompt{
		Name:        name,
		Description: cfg.description,
		Arguments:   schema.Describe(),
	}
	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		resolved, err := promptargs.Resolve(schema, req.Arguments)
		if err != nil {
			return nil, err
		}
		var a A
		b, err := json.Marshal(resolved)
		if err != nil {
			return nil, fmt.Errorf("encode resolved arguments: %w", err)
		}
		if err := json.Unmarshal(b, &a); err != nil {
			return nil, fmt.Errorf("decode arguments for %s: %w", name, err)
		}
		return fn(ctx, a)
	}
	return StaticPrompt{Descriptor: desc, Handler: handler}
}

// NewDynamicPrompt is NewPrompt for handlers that consume the resolved
// argument object directly.
func NewDynamicPrompt(name string, schema *promptargs.Schema, fn func(ctx context.Context, args map[string]any) (*mcp.GetPromptResult, error), opts ...PromptOption) StaticPrompt {
	cfg := promptConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	desc := mcp.Prompt{
		Name:        name,
		Description: cfg.description,
		Arguments:   schema.Describe(),
	}
	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		resolved, err := promptargs.Resolve(schema, req.Arguments)
		if err != nil {
			return nil, err
		}
		return fn(ctx, resolved)
	}
	return StaticPrompt{Descriptor: desc, Handler: handler}
}
