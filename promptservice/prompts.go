package promptservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/promptwell/prompt-server-go/internal/logctx"
	"github.com/promptwell/prompt-server-go/mcp"
)

// Callback signatures for dynamic behavior.
type (
	ListPromptsFunc func(ctx context.Context, cursor *string) (Page[mcp.Prompt], error)
	GetPromptFunc   func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)
)

// PromptsOption is a functional option for configuring the prompts
// capability.
type PromptsOption func(*PromptsCapability)

// PromptsCapability dispatches prompt listing and retrieval against a
// configured source or custom callbacks, with cursor pagination and
// structured dispatch logging.
type PromptsCapability struct {
	listFn    ListPromptsFunc
	getFn     GetPromptFunc
	source    PromptSource
	changeSub ChangeSubscriber
	pageSize  int
	log       *slog.Logger
}

// NewPromptsCapability constructs a PromptsCapability from options. It
// supports both container-backed and callback-backed modes.
func NewPromptsCapability(opts ...PromptsOption) *PromptsCapability {
	pc := &PromptsCapability{pageSize: 50}
	for _, opt := range opts {
		opt(pc)
	}
	if pc.log == nil {
		pc.log = slog.Default()
	}
	pc.log = slog.New(logctx.Handler{Handler: pc.log.Handler()})
	return pc
}

// WithPromptSource wires a prompt container. When the source also reports
// changes, list-changed support is advertised automatically.
func WithPromptSource(src PromptSource) PromptsOption {
	return func(pc *PromptsCapability) {
		pc.source = src
		if sub, ok := src.(ChangeSubscriber); ok {
			pc.changeSub = sub
		}
	}
}

// WithListPrompts sets a custom list function.
func WithListPrompts(fn ListPromptsFunc) PromptsOption {
	return func(pc *PromptsCapability) { pc.listFn = fn }
}

// WithGetPrompt sets a custom get function.
func WithGetPrompt(fn GetPromptFunc) PromptsOption {
	return func(pc *PromptsCapability) { pc.getFn = fn }
}

// WithPageSize sets the page size for container-backed pagination.
func WithPageSize(n int) PromptsOption {
	return func(pc *PromptsCapability) {
		if n > 0 {
			pc.pageSize = n
		}
	}
}

// WithChangeNotification wires an explicit change subscriber.
func WithChangeNotification(sub ChangeSubscriber) PromptsOption {
	return func(pc *PromptsCapability) { pc.changeSub = sub }
}

// WithLogger sets the dispatch logger. The default is slog.Default.
func WithLogger(log *slog.Logger) PromptsOption {
	return func(pc *PromptsCapability) { pc.log = log }
}

// ListPrompts returns one page of prompt descriptors.
func (pc *PromptsCapability) ListPrompts(ctx context.Context, cursor *string) (Page[mcp.Prompt], error) {
	if pc.listFn != nil {
		return pc.listFn(ctx, cursor)
	}
	if pc.source != nil {
		return pageSlice(pc.source.Snapshot(), cursor, pc.pageSize), nil
	}
	return NewPage[mcp.Prompt](nil), nil
}

// GetPrompt dispatches a prompt get request. Handler and resolution failures
// propagate to the caller unchanged.
func (pc *PromptsCapability) GetPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	if req == nil || req.Name == "" {
		return nil, fmt.Errorf("invalid prompt request: missing name")
	}
	ctx = logctx.WithPromptCall(ctx, &logctx.PromptCallData{
		CallID: uuid.NewString(),
		Name:   req.Name,
	})
	pc.log.DebugContext(ctx, "prompt get", slog.Int("args", len(req.Arguments)))

	res, err := pc.dispatch(ctx, req)
	if err != nil {
		pc.log.DebugContext(ctx, "prompt get failed", slog.String("err", err.Error()))
		return nil, err
	}
	return res, nil
}

func (pc *PromptsCapability) dispatch(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	if pc.getFn != nil {
		return pc.getFn(ctx, req)
	}
	if pc.source != nil {
		return pc.source.Get(ctx, req)
	}
	return nil, fmt.Errorf("%w: %s", ErrPromptNotFound, req.Name)
}

// ListChanged exposes the change subscriber when one is configured, so
// transports can forward list-changed notifications.
func (pc *PromptsCapability) ListChanged() (ChangeSubscriber, bool) {
	if pc.changeSub == nil {
		return nil, false
	}
	return pc.changeSub, true
}
