package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kbukum/restclient/entity"
	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/mediatype"
)

// Transport performs one HTTP exchange. Implementations return a Response
// for every status code; judging the status is left to the caller.
//
// When the status line and headers arrive but the body cannot be read, the
// Response is still returned with a nil error, Body nil and BodyErr set.
// Connection failures and timeouts return a nil Response and a transport
// error.
type Transport interface {
	RoundTrip(ctx context.Context, req Request) (*Response, error)
}

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL if BaseURL is empty.
	Path string
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any value
	// that will be JSON-encoded.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Response is the result of an HTTP exchange. The entity is attached at most
// once, after the body has been classified.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Reason is the reason phrase of the status line, e.g. "Not Found".
	Reason string
	// Headers are the response headers with all their values.
	Headers http.Header
	// Body is the raw response body, nil when it could not be read.
	Body []byte
	// BodyErr records why the body could not be read.
	BodyErr error

	entity entity.Entity
}

// ContentType returns the first Content-Type header value as sent.
func (r *Response) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// Entity returns the attached entity, or nil.
func (r *Response) Entity() entity.Entity {
	return r.entity
}

// AttachEntity sets the entity. It fails if e is nil or an entity is
// already attached.
func (r *Response) AttachEntity(e entity.Entity) error {
	if e == nil {
		return errors.InvalidInput("entity", "cannot attach a nil entity")
	}
	if r.entity != nil {
		return errors.InvalidInput("entity", "an entity is already attached to this response")
	}
	r.entity = e
	return nil
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// BodyRead reports whether the body was read completely.
func (r *Response) BodyRead() bool {
	return r.BodyErr == nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(status string, code int) string {
	reason := strings.TrimPrefix(status, strconv.Itoa(code))
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}

// resolveURL joins a relative path onto the base URL.
func (c *Config) resolveURL(path string) string {
	if c.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		return c.BaseURL
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// headersFor merges client defaults with request headers; request values win.
func (c *Config) headersFor(req Request) map[string]string {
	h := make(map[string]string, len(c.Headers)+len(req.Headers)+1)
	if c.UserAgent != "" {
		h["User-Agent"] = c.UserAgent
	}
	for k, v := range c.Headers {
		h[k] = v
	}
	for k, v := range req.Headers {
		h[k] = v
	}
	return h
}

// authFor returns the effective auth: request-level overrides client-level.
func (c *Config) authFor(req Request) *AuthConfig {
	if req.Auth != nil {
		return req.Auth
	}
	return c.Auth
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), mediatype.TextPlain, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), mediatype.ApplicationJSON, nil
	}
}
