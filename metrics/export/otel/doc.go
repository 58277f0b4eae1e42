// Package otel provides OpenTelemetry metric exporter bindings for goCellAuth
// counters and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each goCellAuth
// metric and Int64ObservableGauge per histogram bucket. A single callback reads
// [goCellAuth.Authority.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate authority state.
package otel
