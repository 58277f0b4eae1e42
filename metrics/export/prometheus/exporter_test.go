package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goCellAuth "github.com/MrEthical07/goCellAuth"
)

type fakeSource struct {
	snapshot goCellAuth.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goCellAuth.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                        { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goCellAuth.MetricsSnapshot{
			Counters:   map[goCellAuth.MetricID]uint64{},
			Histograms: map[goCellAuth.MetricID][]uint64{},
		},
		dropped: 0,
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goCellAuth.MetricsSnapshot{
			Counters: map[goCellAuth.MetricID]uint64{
				goCellAuth.MetricParseSuccess: 7,
			},
			Histograms: map[goCellAuth.MetricID][]uint64{
				goCellAuth.MetricVerifyLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "cellauth_parse_success_total 7") {
		t.Fatalf("expected parse_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cellauth_verify_latency_seconds_bucket{le=\"0.005\"} 1") {
		t.Fatalf("expected first histogram bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cellauth_verify_latency_seconds_bucket{le=\"+Inf\"} 36") {
		t.Fatalf("expected +Inf cumulative bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cellauth_audit_dropped_total 2") {
		t.Fatalf("expected audit dropped counter in output, got:\n%s", out)
	}
}

func TestRenderZeroFillsUnsetCounters(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goCellAuth.MetricsSnapshot{
			Counters: map[goCellAuth.MetricID]uint64{
				goCellAuth.MetricRefreshIssued: 1,
			},
			Histograms: map[goCellAuth.MetricID][]uint64{},
		},
	})

	out := exp.Render()
	if !strings.Contains(out, "cellauth_idtoken_rejected_total 0") {
		t.Fatalf("expected unset counter rendered as zero, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goCellAuth.MetricsSnapshot{
			Counters:   map[goCellAuth.MetricID]uint64{goCellAuth.MetricParseSuccess: 1},
			Histograms: map[goCellAuth.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goCellAuth.MetricsSnapshot{
			Counters: map[goCellAuth.MetricID]uint64{
				goCellAuth.MetricParseSuccess:    1000,
				goCellAuth.MetricParseFailure:    40,
				goCellAuth.MetricRefreshIssued:   800,
				goCellAuth.MetricAccessIssued:    760,
				goCellAuth.MetricRefreshRotated:  700,
				goCellAuth.MetricRefreshExpired:  12,
				goCellAuth.MetricIDTokenAccepted: 90,
			},
			Histograms: map[goCellAuth.MetricID][]uint64{
				goCellAuth.MetricVerifyLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
		dropped: 0,
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
