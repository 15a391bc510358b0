// Package telemetry provides toast.Observer implementations for
// Prometheus metrics and OpenTelemetry tracing.
//
//	reg := prometheus.NewRegistry()
//	metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	tracing := telemetry.NewTracing(telemetry.WithClock(loop.Now))
//
//	toasts := toast.New(doc, loop,
//	    toast.WithObserver(metrics),
//	    toast.WithObserver(tracing),
//	)
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package telemetry
