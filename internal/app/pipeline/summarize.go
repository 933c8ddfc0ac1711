package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kaw393939/metavis/internal/adapters/observability"
	"github.com/kaw393939/metavis/internal/domain"
	"github.com/kaw393939/metavis/internal/ports"
	"github.com/kaw393939/metavis/internal/report"
)

// Deps carries the ports one summarize pass runs against. History is
// optional; a nil sink disables the relational mirror.
type Deps struct {
	Source  ports.EventSource
	Archive ports.Archiver
	Index   ports.RunIndex
	History ports.HistorySink
	Obs     ports.Observability
}

// Request identifies one summarize pass.
type Request struct {
	RunID    string
	OutDir   string
	RepoRoot string
}

// Result reports what one summarize pass produced.
type Result struct {
	InvocationID  string
	RunID         string
	EventCount    int
	ProbeCount    int
	PerfRows      int
	MemoryRows    int
	ColorRows     int
	LUTRows       int
	BakeRows      int
	Paths         ports.ArchivePaths
	IndexPath     string
	IndexInserted bool
}

// Summarize runs one full pass: read, filter, dedup, categorize, render,
// archive, index, and optionally mirror the run record to history. A missing
// or run-empty log still produces valid artifacts; only output preparation
// and write failures are fatal. History failures are logged and counted but
// never fail the pass.
func Summarize(ctx context.Context, deps Deps, req Request) (Result, error) {
	if deps.Source == nil || deps.Archive == nil || deps.Index == nil {
		return Result{}, fmt.Errorf("source, archive, and index are required")
	}
	if req.RunID == "" {
		return Result{}, fmt.Errorf("run id is required")
	}
	if req.OutDir == "" {
		return Result{}, fmt.Errorf("out dir is required")
	}
	obs := deps.Obs
	if obs == nil {
		obs = observability.NewNop()
	}
	repoRoot := req.RepoRoot
	if repoRoot == "" {
		repoRoot = "."
	}

	start := time.Now()
	res := Result{InvocationID: uuid.NewString(), RunID: req.RunID}

	all, err := deps.Source.Read(ctx)
	if err != nil {
		return Result{}, err
	}
	filtered := domain.FilterRun(all, req.RunID)
	deduped := report.Dedupe(filtered)
	cats := report.Categorize(deduped)

	files := report.Files{
		Events:  relPath(repoRoot, filepath.Join(req.OutDir, "events.jsonl")),
		Summary: relPath(repoRoot, filepath.Join(req.OutDir, "summary.md")),
	}
	summary := report.Render(report.BuildHeader(req.RunID, filtered), cats, files)

	paths, err := deps.Archive.WriteRun(req.OutDir, filtered, summary)
	if err != nil {
		return Result{}, err
	}
	inserted, err := deps.Index.Record(req.RunID, req.OutDir)
	if err != nil {
		return Result{}, err
	}

	res.EventCount = len(filtered)
	res.ProbeCount = len(deduped)
	res.PerfRows = len(cats.Perf)
	res.MemoryRows = len(cats.Memory)
	res.ColorRows = len(cats.Color)
	res.LUTRows = len(cats.LUT)
	res.BakeRows = len(cats.Bake)
	res.Paths = paths
	res.IndexPath = deps.Index.Path()
	res.IndexInserted = inserted

	if deps.History != nil {
		rec := ports.RunRecord{
			InvocationID: res.InvocationID,
			RunID:        res.RunID,
			OutDir:       req.OutDir,
			EventCount:   res.EventCount,
			ProbeCount:   res.ProbeCount,
			PerfRows:     res.PerfRows,
			MemoryRows:   res.MemoryRows,
			ColorRows:    res.ColorRows,
			LUTRows:      res.LUTRows,
			BakeRows:     res.BakeRows,
		}
		if err := deps.History.Record(ctx, rec); err != nil {
			obs.LogError("history_record_failed", err, ports.Field{Key: "runID", Value: req.RunID})
			obs.IncCounter("metavis_history_failures_total", 1)
		}
	}

	obs.SetGauge("metavis_last_run_events", float64(res.EventCount))
	obs.SetGauge("metavis_last_run_probes", float64(res.ProbeCount))
	obs.IncCounter("metavis_runs_summarized_total", 1)
	obs.ObserveLatency("metavis_summarize_duration_seconds", time.Since(start).Seconds())
	obs.LogInfo("run_summarized",
		ports.Field{Key: "runID", Value: req.RunID},
		ports.Field{Key: "events", Value: res.EventCount},
		ports.Field{Key: "probes", Value: res.ProbeCount},
	)

	return res, nil
}

// relPath renders target relative to base with forward slashes regardless
// of platform. When no relative form exists the absolute target is used.
func relPath(base, target string) string {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return filepath.ToSlash(target)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return filepath.ToSlash(absTarget)
	}
	return filepath.ToSlash(rel)
}
