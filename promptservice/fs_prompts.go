package promptservice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/promptwell/prompt-server-go/mcp"
	"github.com/promptwell/prompt-server-go/promptargs"
)

// promptFile is the on-disk representation of one prompt definition.
//
//	name: greeting
//	description: Say hello to a user by name
//	arguments:
//	  - name: name
//	    type: string
//	    required: true
//	messages:
//	  - role: assistant
//	    content: "Hello, {{.name}}!"
//
// Message content is a text/template executed against the resolved argument
// object.
type promptFile struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description,omitempty"`
	Arguments   []promptargs.FieldDoc `yaml:"arguments"`
	Messages    []messageFile         `yaml:"messages"`
}

type messageFile struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

type fsPrompt struct {
	descriptor mcp.Prompt
	schema     *promptargs.Schema
	messages   []fsMessage
}

type fsMessage struct {
	role mcp.Role
	raw  string
	tmpl *template.Template
}

// FSPrompts serves prompt definitions loaded from a directory of YAML or
// JSON files (.yaml, .yml, .json). The set can be rescanned on demand or
// kept current with a filesystem watcher; either path signals list-changed
// through the embedded notifier.
type FSPrompts struct {
	dir string
	log *slog.Logger

	mu      sync.RWMutex
	order   []string
	entries map[string]*fsPrompt

	notifier ChangeNotifier
}

var _ PromptSource = (*FSPrompts)(nil)
var _ ChangeSubscriber = (*FSPrompts)(nil)

// FSPromptsOption configures an FSPrompts container.
type FSPromptsOption func(*FSPrompts)

// WithFSLogger sets the logger used for scan and watch diagnostics.
func WithFSLogger(log *slog.Logger) FSPromptsOption {
	return func(fp *FSPrompts) { fp.log = log }
}

// NewFSPrompts constructs a container over dir and performs the initial
// scan. Files that fail to parse are skipped with a warning rather than
// failing the whole set.
func NewFSPrompts(dir string, opts ...FSPromptsOption) (*FSPrompts, error) {
	fp := &FSPrompts{dir: dir, entries: make(map[string]*fsPrompt)}
	for _, opt := range opts {
		opt(fp)
	}
	if fp.log == nil {
		fp.log = slog.Default()
	}
	if err := fp.Rescan(); err != nil {
		return nil, err
	}
	return fp, nil
}

// Rescan reloads every prompt definition file under the directory and
// notifies subscribers when the catalog changed.
func (fp *FSPrompts) Rescan() error {
	files, err := os.ReadDir(fp.dir)
	if err != nil {
		return fmt.Errorf("promptservice: scan %s: %w", fp.dir, err)
	}

	entries := make(map[string]*fsPrompt)
	var order []string
	for _, de := range files {
		if de.IsDir() || !isPromptFile(de.Name()) {
			continue
		}
		path := filepath.Join(fp.dir, de.Name())
		p, err := loadPromptFile(path)
		if err != nil {
			fp.log.Warn("skipping prompt file", slog.String("path", path), slog.String("err", err.Error()))
			continue
		}
		if _, dup := entries[p.descriptor.Name]; dup {
			fp.log.Warn("duplicate prompt name", slog.String("path", path), slog.String("name", p.descriptor.Name))
			continue
		}
		entries[p.descriptor.Name] = p
		order = append(order, p.descriptor.Name)
	}
	sort.Strings(order)

	fp.mu.Lock()
	changed := !sameCatalog(fp.order, fp.entries, order, entries)
	fp.order = order
	fp.entries = entries
	fp.mu.Unlock()

	if changed {
		fp.notifier.Notify()
	}
	return nil
}

// Watch keeps the catalog current via fsnotify until ctx is done. It blocks;
// run it on its own goroutine. Every relevant event triggers a Rescan, which
// handles notification de-duplication.
func (fp *FSPrompts) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("promptservice: watch: %w", err)
	}
	defer func() {
		// Best-effort watcher close; no actionable error handling path.
		_ = w.Close()
	}()
	if err := w.Add(fp.dir); err != nil {
		return fmt.Errorf("promptservice: watch %s: %w", fp.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isPromptFile(filepath.Base(ev.Name)) {
				continue
			}
			if err := fp.Rescan(); err != nil {
				fp.log.Warn("rescan failed", slog.String("err", err.Error()))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fp.log.Debug("watch error", slog.String("err", err.Error()))
		}
	}
}

// Snapshot returns the current prompt descriptors sorted by name.
func (fp *FSPrompts) Snapshot() []mcp.Prompt {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	out := make([]mcp.Prompt, 0, len(fp.order))
	for _, name := range fp.order {
		out = append(out, fp.entries[name].descriptor)
	}
	return out
}

// Get resolves the request arguments against the prompt's schema and renders
// the message templates with the resolved object.
func (fp *FSPrompts) Get(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	if req == nil || req.Name == "" {
		return nil, fmt.Errorf("invalid prompt request: missing name")
	}
	fp.mu.RLock()
	p := fp.entries[req.Name]
	fp.mu.RUnlock()
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPromptNotFound, req.Name)
	}

	args := map[string]any{}
	if p.schema != nil {
		resolved, err := promptargs.Resolve(p.schema, req.Arguments)
		if err != nil {
			return nil, err
		}
		args = resolved
	}

	msgs := make([]mcp.PromptMessage, 0, len(p.messages))
	for _, m := range p.messages {
		var buf bytes.Buffer
		if err := m.tmpl.Execute(&buf, args); err != nil {
			return nil, fmt.Errorf("render prompt %s: %w", req.Name, err)
		}
		msgs = append(msgs, mcp.TextMessage(m.role, buf.String()))
	}
	return &mcp.GetPromptResult{Description: p.descriptor.Description, Messages: msgs}, nil
}

// Subscriber implements ChangeSubscriber.
func (fp *FSPrompts) Subscriber() <-chan struct{} { return fp.notifier.Subscriber() }

// Close releases the container's notification channels.
func (fp *FSPrompts) Close() { fp.notifier.Close() }

func isPromptFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

func loadPromptFile(path string) (*fsPrompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def promptFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("missing prompt name")
	}
	if len(def.Messages) == 0 {
		return nil, fmt.Errorf("prompt %s declares no messages", def.Name)
	}
	// Prompts that take no arguments are legal; they just skip resolution.
	var schema *promptargs.Schema
	if len(def.Arguments) > 0 {
		schema, err = promptargs.SchemaDoc{Arguments: def.Arguments}.Schema()
		if err != nil {
			return nil, err
		}
	}

	msgs := make([]fsMessage, 0, len(def.Messages))
	for i, m := range def.Messages {
		role := mcp.Role(m.Role)
		if role != mcp.RoleUser && role != mcp.RoleAssistant {
			return nil, fmt.Errorf("message %d: unsupported role %q", i, m.Role)
		}
		tmpl, err := template.New(fmt.Sprintf("%s#%d", def.Name, i)).Option("missingkey=zero").Parse(m.Content)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, fsMessage{role: role, raw: m.Content, tmpl: tmpl})
	}

	var argView []mcp.PromptArgument
	if schema != nil {
		argView = schema.Describe()
	}
	return &fsPrompt{
		descriptor: mcp.Prompt{
			Name:        def.Name,
			Description: def.Description,
			Arguments:   argView,
		},
		schema:   schema,
		messages: msgs,
	}, nil
}

// sameCatalog reports whether two scans produced an identical descriptor
// set. Schema or message edits inside a file count as changes.
func sameCatalog(aOrder []string, a map[string]*fsPrompt, bOrder []string, b map[string]*fsPrompt) bool {
	if len(aOrder) != len(bOrder) {
		return false
	}
	for i, name := range aOrder {
		if bOrder[i] != name {
			return false
		}
		pa, pb := a[name], b[name]
		if pa.descriptor.Description != pb.descriptor.Description {
			return false
		}
		if len(pa.descriptor.Arguments) != len(pb.descriptor.Arguments) {
			return false
		}
		for j := range pa.descriptor.Arguments {
			if pa.descriptor.Arguments[j] != pb.descriptor.Arguments[j] {
				return false
			}
		}
		if len(pa.messages) != len(pb.messages) {
			return false
		}
		for j := range pa.messages {
			if pa.messages[j].role != pb.messages[j].role || pa.messages[j].raw != pb.messages[j].raw {
				return false
			}
		}
	}
	return true
}
