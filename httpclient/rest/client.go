package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/restclient/convert"
	"github.com/kbukum/restclient/entity"
	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/httpclient"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/observability"
)

// HeaderRequestID carries the id of each call.
const HeaderRequestID = "X-Request-ID"

// Client issues retrievals and converts their responses. It is safe for
// concurrent use; the registry is frozen and every call owns its Response.
type Client struct {
	transport  httpclient.Transport
	config     httpclient.Config
	registry   *entity.Registry
	log        *logger.Logger
	metrics    *observability.ClientMetrics
	healthPath string
}

// New creates a REST client. Unless WithTransport is given, the net/http
// adapter is built from cfg.
func New(cfg httpclient.Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.transport == nil {
		a, err := httpclient.New(cfg)
		if err != nil {
			return nil, err
		}
		o.transport = a
	}
	if o.registry == nil {
		o.registry = entity.DefaultRegistry(o.json, o.xml, o.yaml)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	if o.healthPath == "" {
		o.healthPath = "/"
	}

	c := &Client{
		transport:  o.transport,
		config:     cfg,
		registry:   o.registry,
		log:        o.log.WithComponent("rest").WithFields(logger.Fields(logger.FieldClient, cfg.Name)),
		metrics:    o.metrics,
		healthPath: o.healthPath,
	}
	if !c.registry.HasCatchAll() {
		c.log.Warn("entity registry has no catch-all rule; unmatched content types will fail",
			logger.Fields("rules", c.registry.Rules()))
	}
	return c, nil
}

// Name returns the configured client name.
func (c *Client) Name() string { return c.config.Name }

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() httpclient.Config { return c.config }

// Registry returns the entity registry responses are classified with.
func (c *Client) Registry() *entity.Registry { return c.registry }

// Transport returns the transport exchanges go through.
func (c *Client) Transport() httpclient.Transport { return c.transport }

// Do executes req and attaches the entity when the body was read. The
// status code is not judged. A response whose body could not be read is
// returned with a nil error and no entity.
func (c *Client) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	return c.exchange(ctx, req, nil)
}

// exchange runs one call: transport, entity resolution, then finish on the
// response. The span and metrics cover all three.
func (c *Client) exchange(ctx context.Context, req httpclient.Request, finish func(*httpclient.Response) error) (*httpclient.Response, error) {
	req, id := withRequestID(req)
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	ctx = logger.ContextWithRequestID(ctx, id)
	ctx, x := observability.StartExchange(ctx, spanName(method), c.config.Name, method, req.Path, id, c.metrics)
	log := c.log.WithContext(ctx)
	fields := logger.Fields(logger.FieldMethod, method, logger.FieldPath, req.Path)

	resp, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		log.Debug("request failed", logger.MergeWithError(fields, err))
		x.End(ctx, err)
		return nil, err
	}

	fields[logger.FieldStatus] = resp.StatusCode
	fields[logger.FieldContentType] = resp.ContentType()
	if !resp.BodyRead() {
		log.Warn("response body could not be read; only the status is available", fields,
			logger.Fields(logger.FieldError, resp.BodyErr.Error()))
	}

	if err := convert.Attach(resp, c.registry); err != nil {
		x.Received(resp.StatusCode, resp.ContentType(), "", len(resp.Body))
		log.Debug("no entity rule matched", fields, logger.Fields(logger.FieldError, err.Error()))
		x.End(ctx, err)
		return nil, err
	}

	kind := ""
	if e := resp.Entity(); e != nil {
		kind = string(e.Kind())
	}
	x.Received(resp.StatusCode, resp.ContentType(), kind, len(resp.Body))
	fields[logger.FieldEntityKind] = kind
	fields[logger.FieldBytes] = len(resp.Body)

	if finish != nil {
		err = finish(resp)
	}
	if err != nil {
		log.Debug("conversion failed", logger.MergeWithError(fields, err))
	} else {
		log.Debug("request completed", logger.MergeWithDuration(fields, x.Duration()))
	}
	x.End(ctx, err)
	return resp, err
}

// Stream opens a Server-Sent Events stream when the transport supports it.
func (c *Client) Stream(ctx context.Context, path string, opts ...RequestOption) (*httpclient.StreamResponse, error) {
	s, ok := c.transport.(interface {
		Stream(ctx context.Context, req httpclient.Request) (*httpclient.StreamResponse, error)
	})
	if !ok {
		return nil, errors.InvalidInput("transport", "transport does not support streaming")
	}

	cl := newCall(path, opts)
	req, id := withRequestID(cl.req)
	ctx = logger.ContextWithRequestID(ctx, id)
	ctx, x := observability.StartExchange(ctx, observability.SpanStream, c.config.Name, http.MethodGet, path, id, c.metrics)

	stream, err := s.Stream(ctx, req)
	if err == nil {
		x.Received(stream.StatusCode, stream.Headers.Get("Content-Type"), string(entity.KindEventStream), -1)
	}
	x.End(ctx, err)
	return stream, err
}

// CheckHealth requests the health path with a status-only GET.
func (c *Client) CheckHealth(ctx context.Context) observability.Health {
	code, err := GetStatusCode(ctx, c, c.healthPath)
	if err != nil {
		return observability.HealthFromError(c.Name(), err)
	}
	return observability.HealthFromStatus(c.Name(), code)
}

// Close releases idle connections of the transport, if it holds any.
func (c *Client) Close(ctx context.Context) error {
	if closer, ok := c.transport.(interface{ Close(context.Context) error }); ok {
		return closer.Close(ctx)
	}
	return nil
}

var _ observability.HealthChecker = (*Client)(nil)

func newCall(path string, opts []RequestOption) *call {
	cl := &call{
		req:    httpclient.Request{Method: http.MethodGet, Path: path},
		policy: convert.Successful(),
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// withRequestID returns req with an X-Request-ID header, generating one
// unless the caller set it.
func withRequestID(req httpclient.Request) (httpclient.Request, string) {
	for k, v := range req.Headers {
		if strings.EqualFold(k, HeaderRequestID) && v != "" {
			return req, v
		}
	}
	id := uuid.NewString()
	req.Headers = merge(req.Headers, map[string]string{HeaderRequestID: id})
	return req, id
}

func spanName(method string) string {
	return "restclient." + strings.ToLower(method)
}
