// Package observability wires restclient into OpenTelemetry.
//
// The rest facade opens one span per exchange and, when ClientMetrics are
// configured, records request counts, durations and conversion failures.
// Without InitTracer/InitMeter the global no-op providers are used and
// nothing is exported.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("restclient"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("restclient"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewClientMetrics(observability.Meter("restclient"))
//	client, err := rest.New(cfg, rest.WithMetrics(metrics))
package observability
