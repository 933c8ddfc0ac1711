// Package archive persists run artifacts on the local filesystem: the
// filtered event log, the rendered summary, and the cumulative run index.
package archive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kaw393939/metavis/internal/adapters/observability"
	"github.com/kaw393939/metavis/internal/domain"
	"github.com/kaw393939/metavis/internal/ports"
)

const (
	eventsFileName  = "events.jsonl"
	summaryFileName = "summary.md"
)

// RunArchive writes the per-run artifact directory. Every write is a
// full-file overwrite staged through a temp file and renamed into place, so
// re-archiving an unchanged run leaves identical bytes on disk and an
// interrupted run never leaves a torn artifact.
type RunArchive struct {
	obs ports.Observability
}

var _ ports.Archiver = (*RunArchive)(nil)

func NewRunArchive(obs ports.Observability) *RunArchive {
	if obs == nil {
		obs = observability.NewNop()
	}
	return &RunArchive{obs: obs}
}

func (a *RunArchive) WriteRun(outDir string, events []*domain.Event, summary []byte) (ports.ArchivePaths, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ports.ArchivePaths{}, fmt.Errorf("run archive: prepare %s: %w", outDir, err)
	}

	paths := ports.ArchivePaths{
		Events:  filepath.Join(outDir, eventsFileName),
		Summary: filepath.Join(outDir, summaryFileName),
	}

	var buf bytes.Buffer
	for _, e := range events {
		buf.Write(e.Raw)
		buf.WriteByte('\n')
	}
	if err := writeFileAtomic(paths.Events, buf.Bytes()); err != nil {
		return ports.ArchivePaths{}, fmt.Errorf("run archive: events: %w", err)
	}
	if err := writeFileAtomic(paths.Summary, summary); err != nil {
		return ports.ArchivePaths{}, fmt.Errorf("run archive: summary: %w", err)
	}

	a.obs.LogInfo("run archived",
		ports.Field{Key: "events", Value: len(events)},
		ports.Field{Key: "dir", Value: outDir},
	)
	return paths, nil
}

func (a *RunArchive) Name() string { return "fs" }

// writeFileAtomic stages data beside path and renames it into place; a
// failed write leaves any existing file untouched.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}
