package ports

import "github.com/kaw393939/metavis/internal/domain"

// ArchivePaths locates the two artifacts written for a run.
type ArchivePaths struct {
	Events  string
	Summary string
}

// Archiver persists the immutable filtered event slice and the rendered
// report for one run. Both writes are full-file overwrites; re-archiving the
// same run against an unchanged log must produce byte-identical artifacts.
type Archiver interface {
	WriteRun(outDir string, events []*domain.Event, summary []byte) (ArchivePaths, error)
	Name() string
}

// RunIndex maintains the cumulative, human-readable record of every run ever
// summarized. Record reports whether a new entry was inserted; re-recording
// a known run leaves the index byte-identical.
type RunIndex interface {
	Record(runID, outDir string) (inserted bool, err error)
	Path() string
}
