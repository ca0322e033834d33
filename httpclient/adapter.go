package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/httpclient/sse"
	"github.com/kbukum/restclient/mediatype"
)

// Adapter is the net/http Transport.
type Adapter struct {
	httpClient *http.Client
	config     Config
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRoundTripper replaces the underlying http.RoundTripper.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// RoundTrip executes an HTTP request and returns the response for any
// status code.
func (a *Adapter) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	result := &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp.Status, resp.StatusCode),
		Headers:    resp.Header.Clone(),
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.BodyErr = transportError(ctx, fmt.Errorf("read response body: %w", err))
		return result, nil
	}
	result.Body = body
	return result, nil
}

// StreamResponse is an open response whose body is consumed incrementally.
type StreamResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers http.Header
	// Events reads the body as server-sent events.
	Events sse.Reader
}

// Close releases the connection.
func (r *StreamResponse) Close() error {
	return r.Events.Close()
}

// Stream opens a text/event-stream response without buffering it. The
// client timeout does not apply; cancel ctx to stop. Non-2xx statuses and
// other content types are returned as errors after the body is drained.
func (a *Adapter) Stream(ctx context.Context, req Request) (*StreamResponse, error) {
	headers := make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		headers[k] = v
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = mediatype.TextEventStream
	}
	req.Headers = headers
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	streamClient := &http.Client{Transport: a.httpClient.Transport}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, errors.StatusMismatch(resp.StatusCode, "successful")
	}
	if mt, ok := mediatype.Parse(resp.Header.Get("Content-Type")); !ok || mt.Essence() != mediatype.TextEventStream {
		_ = resp.Body.Close()
		return nil, errors.ConversionFailed("sse.Reader",
			fmt.Errorf("content type %q is not %s", resp.Header.Get("Content-Type"), mediatype.TextEventStream)).
			WithDetail(errors.DetailContentType, resp.Header.Get("Content-Type"))
	}

	return &StreamResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header.Clone(),
		Events:     sse.NewReader(resp.Body),
	}, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Name returns the configured client name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Config returns the adapter's configuration with defaults applied.
func (a *Adapter) Config() Config {
	return a.config
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.InvalidInput("body", fmt.Sprintf("encode body: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), a.config.resolveURL(req.Path), body)
	if err != nil {
		return nil, errors.InvalidInput("path", fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range a.config.headersFor(req) {
		httpReq.Header.Set(k, v)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	a.config.authFor(req).apply(httpReq)
	return httpReq, nil
}
