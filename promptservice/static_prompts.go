package promptservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/promptwell/prompt-server-go/mcp"
)

// ErrPromptNotFound reports a get request for a prompt the container does
// not hold.
var ErrPromptNotFound = errors.New("prompt not found")

// PromptHandler materializes a prompt into messages. Handlers registered
// through NewPrompt receive only validated arguments; handlers registered
// directly are responsible for their own argument handling.
type PromptHandler func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)

// StaticPrompt pairs a prompt descriptor with the handler that materializes
// it.
type StaticPrompt struct {
	Descriptor mcp.Prompt
	Handler    PromptHandler
}

// PromptSource is the read surface a prompts capability dispatches against.
// Both StaticPrompts and FSPrompts implement it.
type PromptSource interface {
	Snapshot() []mcp.Prompt
	Get(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)
}

// StaticPrompts owns a mutable, threadsafe set of prompt definitions and
// handlers. It embeds a ChangeNotifier so a capability wired to it can
// advertise list-changed support automatically.
type StaticPrompts struct {
	mu       sync.RWMutex
	prompts  []mcp.Prompt
	handlers map[string]PromptHandler

	notifier ChangeNotifier
}

var _ PromptSource = (*StaticPrompts)(nil)
var _ ChangeSubscriber = (*StaticPrompts)(nil)

// NewStaticPrompts constructs a container holding the given definitions.
func NewStaticPrompts(defs ...StaticPrompt) *StaticPrompts {
	sp := &StaticPrompts{}
	sp.Replace(defs...)
	return sp
}

// Snapshot returns a copy of the current prompt descriptors in registration
// order.
func (sp *StaticPrompts) Snapshot() []mcp.Prompt {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	out := make([]mcp.Prompt, len(sp.prompts))
	copy(out, sp.prompts)
	return out
}

// Replace atomically swaps the entire prompt set.
func (sp *StaticPrompts) Replace(defs ...StaticPrompt) {
	sp.mu.Lock()
	sp.prompts = make([]mcp.Prompt, 0, len(defs))
	sp.handlers = make(map[string]PromptHandler, len(defs))
	for _, d := range defs {
		sp.prompts = append(sp.prompts, d.Descriptor)
		if d.Handler != nil {
			sp.handlers[d.Descriptor.Name] = d.Handler
		}
	}
	sp.mu.Unlock()
	sp.notifier.Notify()
}

// Add registers a new prompt unless the name is empty or already taken.
// Returns true if added.
func (sp *StaticPrompts) Add(def StaticPrompt) bool {
	name := def.Descriptor.Name
	if name == "" {
		return false
	}
	sp.mu.Lock()
	if sp.handlers == nil {
		sp.handlers = make(map[string]PromptHandler)
	}
	for _, p := range sp.prompts {
		if p.Name == name {
			sp.mu.Unlock()
			return false
		}
	}
	sp.prompts = append(sp.prompts, def.Descriptor)
	if def.Handler != nil {
		sp.handlers[name] = def.Handler
	}
	sp.mu.Unlock()
	sp.notifier.Notify()
	return true
}

// Remove removes a prompt by name. Returns true if removed.
func (sp *StaticPrompts) Remove(name string) bool {
	sp.mu.Lock()
	n := 0
	removed := false
	for _, p := range sp.prompts {
		if p.Name == name {
			removed = true
			continue
		}
		sp.prompts[n] = p
		n++
	}
	sp.prompts = sp.prompts[:n]
	if removed {
		delete(sp.handlers, name)
	}
	sp.mu.Unlock()
	if removed {
		sp.notifier.Notify()
	}
	return removed
}

// Get dispatches a get request to the named handler.
func (sp *StaticPrompts) Get(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	if req == nil || req.Name == "" {
		return nil, fmt.Errorf("invalid prompt request: missing name")
	}
	sp.mu.RLock()
	h := sp.handlers[req.Name]
	sp.mu.RUnlock()
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrPromptNotFound, req.Name)
	}
	return h(ctx, req)
}

// Subscriber implements ChangeSubscriber.
func (sp *StaticPrompts) Subscriber() <-chan struct{} { return sp.notifier.Subscriber() }

// Close releases the container's notification channels.
func (sp *StaticPrompts) Close() { sp.notifier.Close() }
