package observability

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restclient/errors"
)

// Exchange tracks the span and metrics of one client call.
type Exchange struct {
	Client    string
	Method    string
	Path      string
	RequestID string
	StartTime time.Time
	Metrics   *ClientMetrics

	span       trace.Span
	status     int
	entityKind string
}

// StartExchange opens a span named spanName and records the request start.
// If metrics is nil, metric recording is skipped.
func StartExchange(ctx context.Context, spanName, client, method, path, requestID string, metrics *ClientMetrics) (context.Context, *Exchange) {
	ctx, span := StartSpan(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrClientName, client),
			attribute.String(AttrHTTPMethod, method),
			attribute.String(AttrURLPath, path),
			attribute.String(AttrRequestID, requestID),
		),
	)

	x := &Exchange{
		Client:    client,
		Method:    method,
		Path:      path,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	if metrics != nil {
		metrics.RecordRequestStart(ctx, client)
	}
	return ctx, x
}

// Received annotates the exchange with what the server sent back.
func (x *Exchange) Received(status int, contentType, entityKind string, size int) {
	x.status = status
	x.entityKind = entityKind
	x.span.SetAttributes(
		attribute.Int(AttrStatusCode, status),
		attribute.String(AttrContentType, contentType),
		attribute.Int(AttrBodySize, size),
	)
	if entityKind != "" {
		x.span.SetAttributes(attribute.String(AttrEntityKind, entityKind))
	}
}

// End closes the span and records the outcome. err is the error returned to
// the caller, if any.
func (x *Exchange) End(ctx context.Context, err error) {
	outcome := Outcome(err)
	if err != nil {
		x.span.RecordError(err)
		x.span.SetAttributes(attribute.String(AttrErrorCode, outcome))
		x.span.SetStatus(codes.Error, err.Error())
	}
	x.span.End()

	if x.Metrics == nil {
		return
	}
	x.Metrics.RecordRequestEnd(ctx, x.Client, x.Method, x.status, outcome, x.Duration())
	if errors.IsConversion(err) {
		x.Metrics.RecordConversionError(ctx, x.Client, x.entityKind)
	}
}

// Duration returns the elapsed time since the exchange started.
func (x *Exchange) Duration() time.Duration {
	return time.Since(x.StartTime)
}

// Outcome labels err for metrics: "ok", the lower-cased error code, or
// "error" for errors without one.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return strings.ToLower(string(appErr.Code))
	}
	return "error"
}
