// Package prometheus provides Prometheus collectors for goCellAuth metrics.
//
// [NewPrometheusExporter] accepts a [goCellAuth.Authority] and exposes an [http.Handler]
// that renders all goCellAuth counters and histograms in Prometheus text exposition
// format. Counter names are prefixed cellauth_*_total; the single histogram is
// cellauth_verify_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate authority state.
package prometheus
