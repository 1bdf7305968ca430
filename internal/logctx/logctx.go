package logctx

import (
	"context"
	"log/slog"
)

// Handler decorates an slog.Handler with request-scoped prompt dispatch
// attributes carried on the context.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if pd, ok := ctx.Value(promptCallKey{}).(*PromptCallData); ok {
		r.AddAttrs(slog.Group("prompt",
			slog.String("call_id", pd.CallID),
			slog.String("name", pd.Name),
		))
	}
	return h.Handler.Handle(ctx, r)
}

type promptCallKey struct{}

// PromptCallData identifies one prompt get dispatch.
type PromptCallData struct {
	CallID string
	Name   string
}

// WithPromptCall attaches dispatch identifiers to the context for the
// duration of one prompt call.
func WithPromptCall(ctx context.Context, data *PromptCallData) context.Context {
	return context.WithValue(ctx, promptCallKey{}, data)
}
