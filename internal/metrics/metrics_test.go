package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.HTTPRequestsTotal == nil || r.ConversionsTotal == nil || r.LayoutRunsTotal == nil {
		t.Fatalf("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Fatalf("prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Fatalf("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/api/graph/demo", 200, 10*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/graph/demo", 200, 20*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/graph", 400, time.Millisecond)

	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("GET", "/api/graph/demo", "200")); got != 2 {
		t.Fatalf("counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/api/graph", "400")); got != 1 {
		t.Fatalf("counter = %v, want 1", got)
	}
}

func TestRecordConversion(t *testing.T) {
	r := NewRegistry()
	r.RecordConversion("model", "basic", "", 7, 2, []string{"rules", "rules", "model"})

	if got := testutil.ToFloat64(r.ConversionsTotal.WithLabelValues("model", "basic", "none")); got != 1 {
		t.Fatalf("conversions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.DroppedLinksTotal); got != 2 {
		t.Fatalf("dropped links = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.RefinementsTotal.WithLabelValues("rules")); got != 2 {
		t.Fatalf("rules refinements = %v, want 2", got)
	}
}

func TestRecordModelTokensIgnoresZero(t *testing.T) {
	r := NewRegistry()
	r.RecordModelTokens(0, 0)
	if n := testutil.CollectAndCount(r.ModelTokensTotal); n != 0 {
		t.Fatalf("expected no series, got %d", n)
	}
	r.RecordModelTokens(12, 3)
	if got := testutil.ToFloat64(r.ModelTokensTotal.WithLabelValues("output")); got != 3 {
		t.Fatalf("output tokens = %v, want 3", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordLayoutRun("stabilized", 300, time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `nodelink_layout_runs_total{outcome="stabilized"} 1`) {
		t.Fatalf("missing layout run series in:\n%s", body)
	}
}
