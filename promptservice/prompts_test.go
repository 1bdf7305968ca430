package promptservice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/promptwell/prompt-server-go/mcp"
	"github.com/promptwell/prompt-server-go/promptargs"
)

func manyPrompts(n int) *StaticPrompts {
	defs := make([]StaticPrompt, 0, n)
	for i := 0; i < n; i++ {
		schema := promptargs.NewSchema().String("x", promptargs.Optional()).Build()
		defs = append(defs, NewDynamicPrompt(fmt.Sprintf("p%02d", i), schema, func(context.Context, map[string]any) (*mcp.GetPromptResult, error) {
			return &mcp.GetPromptResult{}, nil
		}))
	}
	return NewStaticPrompts(defs...)
}

func TestPromptsCapability_Pagination(t *testing.T) {
	pc := NewPromptsCapability(WithPromptSource(manyPrompts(5)), WithPageSize(2))

	var cursor *string
	var seen []string
	for {
		page, err := pc.ListPrompts(context.Background(), cursor)
		if err != nil {
			t.Fatalf("ListPrompts failed: %v", err)
		}
		for _, p := range page.Items {
			seen = append(seen, p.Name)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 prompts across pages, got %v", seen)
	}
	for i, name := range seen {
		if name != fmt.Sprintf("p%02d", i) {
			t.Fatalf("page order broken: %v", seen)
		}
	}
}

func TestPromptsCapability_BadCursorRestarts(t *testing.T) {
	pc := NewPromptsCapability(WithPromptSource(manyPrompts(3)), WithPageSize(10))
	bad := "not-a-number"
	page, err := pc.ListPrompts(context.Background(), &bad)
	if err != nil {
		t.Fatalf("ListPrompts failed: %v", err)
	}
	if len(page.Items) != 3 || page.NextCursor != nil {
		t.Fatalf("expected full restart page, got %+v", page)
	}
}

func TestPromptsCapability_GetDispatch(t *testing.T) {
	pc := NewPromptsCapability(WithPromptSource(manyPrompts(1)))
	if _, err := pc.GetPrompt(context.Background(), &mcp.GetPromptRequest{Name: "p00"}); err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	_, err := pc.GetPrompt(context.Background(), &mcp.GetPromptRequest{Name: "nope"})
	if !errors.Is(err, ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
	if _, err := pc.GetPrompt(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil request")
	}
}

func TestPromptsCapability_CustomCallbacks(t *testing.T) {
	pc := NewPromptsCapability(
		WithListPrompts(func(context.Context, *string) (Page[mcp.Prompt], error) {
			return NewPage([]mcp.Prompt{{Name: "dyn"}}), nil
		}),
		WithGetPrompt(func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return &mcp.GetPromptResult{Description: req.Name}, nil
		}),
	)
	page, err := pc.ListPrompts(context.Background(), nil)
	if err != nil || len(page.Items) != 1 || page.Items[0].Name != "dyn" {
		t.Fatalf("custom list not used: %+v %v", page, err)
	}
	res, err := pc.GetPrompt(context.Background(), &mcp.GetPromptRequest{Name: "dyn"})
	if err != nil || res.Description != "dyn" {
		t.Fatalf("custom get not used: %+v %v", res, err)
	}
}

func TestPromptsCapability_ListChangedWiring(t *testing.T) {
	sp := manyPrompts(1)
	pc := NewPromptsCapability(WithPromptSource(sp))
	sub, ok := pc.ListChanged()
	if !ok {
		t.Fatalf("static source must advertise list-changed")
	}
	ch := sub.Subscriber()
	sp.Remove("p00")
	select {
	case <-ch:
	default:
		t.Fatalf("expected notification after removal")
	}

	bare := NewPromptsCapability()
	if _, ok := bare.ListChanged(); ok {
		t.Fatalf("bare capability must not advertise list-changed")
	}
}

func TestChangeNotifier_CloseAndLateSubscribe(t *testing.T) {
	var cn ChangeNotifier
	ch := cn.Subscriber()
	cn.Notify()
	select {
	case <-ch:
	default:
		t.Fatalf("expected signal delivery")
	}
	cn.Close()
	if _, open := <-cn.Subscriber(); open {
		t.Fatalf("post-close subscriber channel must be closed")
	}
	cn.Notify() // must not panic after close
}
