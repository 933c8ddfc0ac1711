package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kaw393939/metavis/internal/ports"
)

func TestPromObsMetrics(t *testing.T) {
	obs := NewPromObs(nil)

	obs.IncCounter("metavis_events_read_total", 5)
	if got := testutil.ToFloat64(obs.counters["metavis_events_read_total"]); got != 5 {
		t.Fatalf("expected read counter 5, got %f", got)
	}

	obs.IncCounter("metavis_events_malformed_total", 2)
	if got := testutil.ToFloat64(obs.counters["metavis_events_malformed_total"]); got != 2 {
		t.Fatalf("expected malformed counter 2, got %f", got)
	}

	obs.SetGauge("metavis_last_run_events", 42)
	if got := testutil.ToFloat64(obs.gauges["metavis_last_run_events"]); got != 42 {
		t.Fatalf("expected last-run gauge 42, got %f", got)
	}

	obs.ObserveLatency("metavis_summarize_duration_seconds", 0.5)
	h := obs.histos["metavis_summarize_duration_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(h); samples != 1 {
		t.Fatalf("expected duration histogram to record 1 sample, got %d", samples)
	}

	// Unknown names are ignored, not registered lazily.
	obs.IncCounter("metavis_not_a_metric", 1)
	obs.SetGauge("metavis_not_a_metric", 1)
	obs.ObserveLatency("metavis_not_a_metric", 1)
}

func TestPromObsRegistriesAreIndependent(t *testing.T) {
	a := NewPromObs(nil)
	b := NewPromObs(nil)

	a.IncCounter("metavis_events_read_total", 1)
	if got := testutil.ToFloat64(b.counters["metavis_events_read_total"]); got != 0 {
		t.Fatalf("expected second instance to start at 0, got %f", got)
	}
}

func TestPromObsLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := NewPromObs(zap.New(core))

	obs.LogInfo("pass complete", ports.Field{Key: "runID", Value: "A"})
	obs.LogError("index update failed", os.ErrPermission, ports.Field{Key: "path", Value: "README.md"})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "pass complete" {
		t.Fatalf("unexpected first message %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["runID"]; got != "A" {
		t.Fatalf("expected runID field on the info entry, got %v", got)
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[1].Level)
	}
}

func TestWriteTextfile(t *testing.T) {
	obs := NewPromObs(nil)
	obs.IncCounter("metavis_runs_summarized_total", 1)

	path := filepath.Join(t.TempDir(), "metrics", "metavis.prom")
	if err := obs.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "metavis_runs_summarized_total 1") {
		t.Fatalf("expected counter sample in snapshot:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE metavis_summarize_duration_seconds histogram") {
		t.Fatalf("expected histogram type line in snapshot:\n%s", out)
	}
}
