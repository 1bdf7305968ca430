// Package fetch is the outbound network collaborator used by concrete
// prompt handlers that embed remote content into their messages. It wraps a
// single HTTP GET: non-success responses surface as a *StatusError carrying
// the response status, success responses are parsed according to their
// negotiated media type. The package performs no retries and no local
// recovery; timeout and cancellation belong to the caller's context and the
// configured client timeout.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/joeshaw/envdecode"
)

var jsonMediaType = contenttype.NewMediaType("application/json")

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

// Config controls the fetch client. Defaults can be loaded via envdecode.
type Config struct {
	// Timeout bounds one whole request. ENV: FETCH_TIMEOUT
	Timeout time.Duration `env:"FETCH_TIMEOUT,default=30s"`
	// UserAgent sent on every request. ENV: FETCH_USER_AGENT
	UserAgent string `env:"FETCH_USER_AGENT,default=prompt-server-go/1.0"`
	// MaxBodyBytes caps how much of a response body is read. ENV: FETCH_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"FETCH_MAX_BODY_BYTES,default=4194304"`
}

// Client performs fetches with a shared HTTP client.
type Client struct {
	http *http.Client
	cfg  Config
}

// New builds a Client from cfg, filling zero fields with the documented
// defaults.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "prompt-server-go/1.0"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4 << 20
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// NewFromEnv builds a Client using envdecode to populate Config.
func NewFromEnv() *Client {
	var cfg Config
	_ = envdecode.Decode(&cfg)
	return New(cfg)
}

// Option adjusts a single request.
type Option func(*requestOptions)

type requestOptions struct {
	headers http.Header
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Add(key, value)
	}
}

// WithAccept sets the Accept header.
func WithAccept(mediaType string) Option {
	return WithHeader("Accept", mediaType)
}

// Result is a successful fetch response.
type Result struct {
	StatusCode int
	MediaType  contenttype.MediaType
	Body       []byte
}

// Text returns the body as a string.
func (r *Result) Text() string { return string(r.Body) }

// IsJSON reports whether the response negotiated a JSON media type.
func (r *Result) IsJSON() bool { return r.MediaType.Matches(jsonMediaType) }

// JSON unmarshals the body into v.
func (r *Result) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("fetch: decode json: %w", err)
	}
	return nil
}

// Fetch performs a GET against url. Responses outside the 2xx range return
// a *StatusError; transport failures return the underlying error.
func (c *Client) Fetch(ctx context.Context, url string, opts ...Option) (*Result, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	for key, values := range ro.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", url, err)
	}

	// NewMediaType yields the zero media type for a missing or malformed
	// header; the caller then treats the body as opaque text.
	mt := contenttype.NewMediaType(resp.Header.Get("Content-Type"))
	return &Result{StatusCode: resp.StatusCode, MediaType: mt, Body: body}, nil
}

// JSON fetches url and unmarshals a JSON response body into v. A response
// that did not negotiate JSON fails rather than guessing at the payload.
func (c *Client) JSON(ctx context.Context, url string, v any, opts ...Option) error {
	opts = append(opts, WithAccept("application/json"))
	res, err := c.Fetch(ctx, url, opts...)
	if err != nil {
		return err
	}
	if !res.IsJSON() {
		return fmt.Errorf("fetch %s: expected json response, got %s", url, res.MediaType.String())
	}
	return res.JSON(v)
}
