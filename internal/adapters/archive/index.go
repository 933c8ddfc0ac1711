package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaw393939/metavis/internal/adapters/observability"
	"github.com/kaw393939/metavis/internal/ports"
)

const (
	indexFileName = "README.md"
	runsMarker    = "## Runs\n\n"

	indexPreamble = "# Metrics Runs\n\n" +
		"Each run is stored under `test_outputs/metrics/<runID>/`.\n\n" +
		"Generated by `metavis-report summarize`.\n\n" +
		runsMarker
)

// MarkdownIndex keeps the cumulative record of summarized runs in one
// Markdown file. New entries land directly under the "## Runs" marker,
// newest first; when the marker is missing the entry is appended at the
// end of the file instead.
type MarkdownIndex struct {
	path string
	obs  ports.Observability
}

var _ ports.RunIndex = (*MarkdownIndex)(nil)

// NewMarkdownIndex returns an index rooted at dir/README.md.
func NewMarkdownIndex(dir string, obs ports.Observability) *MarkdownIndex {
	if obs == nil {
		obs = observability.NewNop()
	}
	return &MarkdownIndex{path: filepath.Join(dir, indexFileName), obs: obs}
}

func (ix *MarkdownIndex) Path() string { return ix.path }

// Record adds one entry for runID pointing at outDir's summary. The entry
// line is deduplicated by exact content, so recording a known run leaves
// the file byte-identical and reports inserted=false.
func (ix *MarkdownIndex) Record(runID, outDir string) (bool, error) {
	existing, err := os.ReadFile(ix.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if mkErr := os.MkdirAll(filepath.Dir(ix.path), 0o755); mkErr != nil {
			return false, fmt.Errorf("run index: prepare %s: %w", filepath.Dir(ix.path), mkErr)
		}
		existing = []byte(indexPreamble)
	case err != nil:
		return false, fmt.Errorf("run index: read: %w", err)
	}

	line := fmt.Sprintf("- `%s`: `%s/summary.md`\n", runID, relPath(filepath.Dir(ix.path), outDir))

	content := string(existing)
	if strings.Contains(content, line) {
		return false, nil
	}

	var updated string
	if i := strings.Index(content, runsMarker); i >= 0 {
		at := i + len(runsMarker)
		updated = content[:at] + line + content[at:]
	} else {
		updated = content + "\n" + line
	}

	if err := writeFileAtomic(ix.path, []byte(updated)); err != nil {
		return false, fmt.Errorf("run index: %w", err)
	}
	ix.obs.IncCounter("metavis_index_inserts_total", 1)
	ix.obs.LogInfo("index updated",
		ports.Field{Key: "runID", Value: runID},
		ports.Field{Key: "path", Value: ix.path},
	)
	return true, nil
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
