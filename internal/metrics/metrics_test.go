package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGeneration(t *testing.T) {
	m := New()
	m.RecordGeneration(false)
	m.RecordGeneration(false)
	m.RecordGeneration(true)

	if got := testutil.ToFloat64(m.MissionGenerations.WithLabelValues("matched")); got != 2 {
		t.Fatalf("expected 2 matched, got %v", got)
	}
	if got := testutil.ToFloat64(m.MissionGenerations.WithLabelValues("placeholder")); got != 1 {
		t.Fatalf("expected 1 placeholder, got %v", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.RecordSelectionAdd(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `dailyquest_selection_adds_total{result="rejected"} 1`) {
		t.Fatalf("counter missing from exposition:\n%s", body)
	}
}

func TestNewIsIndependent(t *testing.T) {
	// Separate registries must not panic on duplicate registration.
	New()
	New()
}
