package ports

import "context"

// RunRecord is the durable trace of one summarize pass.
type RunRecord struct {
	InvocationID string
	RunID        string
	OutDir       string
	EventCount   int
	ProbeCount   int
	PerfRows     int
	MemoryRows   int
	ColorRows    int
	LUTRows      int
	BakeRows     int
}

// HistorySink mirrors run records into external storage. Implementations
// must tolerate repeated records for the same run; re-summarizing upserts
// rather than duplicating.
type HistorySink interface {
	Record(ctx context.Context, rec RunRecord) error
	Name() string
}
