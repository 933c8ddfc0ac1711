package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"

	"github.com/kaw393939/metavis/internal/ports"
)

type captureObs struct {
	counters map[string]float64
}

func newCaptureObs() *captureObs { return &captureObs{counters: map[string]float64{}} }

func (c *captureObs) LogInfo(string, ...ports.Field)            {}
func (c *captureObs) LogError(string, error, ...ports.Field)    {}
func (c *captureObs) LogCritical(string, error, ...ports.Field) {}
func (c *captureObs) IncCounter(name string, v float64)         { c.counters[name] += v }
func (c *captureObs) ObserveLatency(string, float64)            {}
func (c *captureObs) SetGauge(string, float64)                  {}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "perf.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestReadMissingFileYieldsEmpty(t *testing.T) {
	src := NewJSONLSource(filepath.Join(t.TempDir(), "absent.jsonl"), nil)

	events, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("expected missing file to read clean, got %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestReadSkipsMalformedAndBlankLines(t *testing.T) {
	path := writeLog(t,
		`{"runID":"A","label":"first"}`,
		"",
		"{not json",
		"   ",
		"42",
		`{"runID":"A","label":"second"}`,
	)
	obs := newCaptureObs()
	src := NewJSONLSource(path, obs)

	events, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if lo.FromPtr(events[0].Label) != "first" || lo.FromPtr(events[1].Label) != "second" {
		t.Fatalf("expected file order preserved, got %v,%v", events[0].Label, events[1].Label)
	}

	if got := obs.counters["metavis_events_malformed_total"]; got != 2 {
		t.Fatalf("expected 2 malformed lines counted, got %v", got)
	}
	if got := obs.counters["metavis_events_read_total"]; got != 2 {
		t.Fatalf("expected 2 read events counted, got %v", got)
	}
}

func TestReadSkipsOversizedLines(t *testing.T) {
	long := `{"runID":"A","label":"` + strings.Repeat("x", maxLineBytes) + `"}`
	path := writeLog(t,
		`{"runID":"A","label":"first"}`,
		long,
		`{"runID":"A","label":"last"}`,
	)
	obs := newCaptureObs()
	src := NewJSONLSource(path, obs)

	events, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("expected oversized line to be skipped, got %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if lo.FromPtr(events[0].Label) != "first" || lo.FromPtr(events[1].Label) != "last" {
		t.Fatalf("expected surrounding events kept, got %v,%v", events[0].Label, events[1].Label)
	}

	if got := obs.counters["metavis_events_malformed_total"]; got != 1 {
		t.Fatalf("expected oversized line counted once, got %v", got)
	}
	if got := obs.counters["metavis_events_read_total"]; got != 2 {
		t.Fatalf("expected 2 read events counted, got %v", got)
	}
}

func TestReadKeepsVerbatimLines(t *testing.T) {
	line := `{"zeta":1,"runID":"A","alpha":"first"}`
	path := writeLog(t, line)
	src := NewJSONLSource(path, nil)

	events, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if string(events[0].Raw) != line {
		t.Fatalf("expected raw line preserved, got %q", events[0].Raw)
	}
}

func TestReadHonorsCancellation(t *testing.T) {
	path := writeLog(t, `{"runID":"A"}`)
	src := NewJSONLSource(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Read(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
