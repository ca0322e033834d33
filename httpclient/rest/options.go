package rest

import (
	"github.com/kbukum/restclient/codec"
	"github.com/kbukum/restclient/convert"
	"github.com/kbukum/restclient/entity"
	"github.com/kbukum/restclient/httpclient"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/observability"
)

type options struct {
	transport  httpclient.Transport
	registry   *entity.Registry
	json       codec.Codec
	xml        codec.SequenceCodec
	yaml       codec.Codec
	log        *logger.Logger
	metrics    *observability.ClientMetrics
	healthPath string
}

// Option configures a Client.
type Option func(*options)

// WithTransport replaces the default net/http transport.
func WithTransport(t httpclient.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithRegistry replaces the default entity registry. The registry is used
// as built; codecs given through WithCodecs are ignored.
func WithRegistry(r *entity.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithCodecs sets the decoders of the default registry. Nil codecs keep
// their defaults.
func WithCodecs(json codec.Codec, xml codec.SequenceCodec, yaml codec.Codec) Option {
	return func(o *options) {
		o.json, o.xml, o.yaml = json, xml, yaml
	}
}

// WithLogger sets the logger. The client logs nothing by default.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records every exchange into m.
func WithMetrics(m *observability.ClientMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHealthPath sets the path CheckHealth requests. Defaults to "/".
func WithHealthPath(path string) Option {
	return func(o *options) { o.healthPath = path }
}

// call is the per-request state RequestOptions act on.
type call struct {
	req    httpclient.Request
	policy convert.StatusPolicy
}

// RequestOption configures a single request.
type RequestOption func(*call)

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(c *call) {
		c.req.Query = merge(c.req.Query, params)
	}
}

// WithHeaders adds headers to the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(c *call) {
		c.req.Headers = merge(c.req.Headers, headers)
	}
}

// WithAuth overrides authentication for the request.
func WithAuth(auth *httpclient.AuthConfig) RequestOption {
	return func(c *call) {
		c.req.Auth = auth
	}
}

// WithStatusPolicy replaces the status policy of Get and GetList.
func WithStatusPolicy(p convert.StatusPolicy) RequestOption {
	return func(c *call) {
		c.policy = p
	}
}

func merge(dst, src map[string]string) map[string]string {
	out := make(map[string]string, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
