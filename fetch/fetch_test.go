package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch_JSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing user agent")
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"city":"Berlin","temp":21.5}`))
	}))
	defer srv.Close()

	var out struct {
		City string  `json:"city"`
		Temp float64 `json:"temp"`
	}
	if err := New(Config{}).JSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if out.City != "Berlin" || out.Temp != 21.5 {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(Config{}).Fetch(context.Background(), srv.URL)
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if serr.Code != http.StatusNotFound || serr.Status == "" {
		t.Fatalf("status not carried: %+v", serr)
	}
}

func TestFetch_TextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := New(Config{})
	res, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.IsJSON() {
		t.Fatalf("text response claims json")
	}
	if res.Text() != "hello" {
		t.Fatalf("body = %q", res.Text())
	}

	if err := c.JSON(context.Background(), srv.URL, &struct{}{}); err == nil {
		t.Fatalf("JSON must reject non-json media type")
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	res, err := New(Config{MaxBodyBytes: 16}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(res.Body) != 16 {
		t.Fatalf("body not limited: %d bytes", len(res.Body))
	}
}

func TestFetch_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{}).Fetch(ctx, srv.URL); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
