package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/restclient/errors"
)

// RestyTransport is a Transport backed by go-resty. Retries stay disabled;
// a call is one exchange.
type RestyTransport struct {
	client *resty.Client
	config Config
}

// NewResty creates a resty-backed transport with the given configuration.
func NewResty(cfg Config) (*RestyTransport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetPreRequestHook(func(_ *resty.Client, r *http.Request) error {
			authFrom(r.Context()).apply(r)
			return nil
		})

	return &RestyTransport{client: client, config: cfg}, nil
}

// RoundTrip executes an HTTP request and returns the response for any
// status code.
func (t *RestyTransport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.InvalidInput("body", fmt.Sprintf("encode body: %v", err))
	}

	r := t.client.R().
		SetContext(withAuth(ctx, t.config.authFor(req))).
		SetHeaders(t.config.headersFor(req)).
		SetQueryParams(req.Query)
	if body != nil {
		r.SetBody(body)
		if r.Header.Get("Content-Type") == "" && contentType != "" {
			r.SetHeader("Content-Type", contentType)
		}
	}

	resp, err := r.Execute(req.method(), t.config.resolveURL(req.Path))
	if err != nil {
		if resp == nil || resp.RawResponse == nil {
			return nil, transportError(ctx, err)
		}
		// Status line and headers arrived; only the body is missing.
		return &Response{
			StatusCode: resp.StatusCode(),
			Reason:     reasonPhrase(resp.Status(), resp.StatusCode()),
			Headers:    resp.Header().Clone(),
			BodyErr:    transportError(ctx, fmt.Errorf("read response body: %w", err)),
		}, nil
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Reason:     reasonPhrase(resp.Status(), resp.StatusCode()),
		Headers:    resp.Header().Clone(),
		Body:       resp.Body(),
	}, nil
}

// Name returns the configured client name.
func (t *RestyTransport) Name() string {
	return t.config.Name
}

// Unwrap returns the underlying resty client.
func (t *RestyTransport) Unwrap() *resty.Client {
	return t.client
}
