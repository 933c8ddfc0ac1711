package metavis

import (
	"github.com/kaw393939/metavis/internal/app/pipeline"
	"github.com/kaw393939/metavis/internal/domain"
	"github.com/kaw393939/metavis/internal/ports"
)

// Event is one telemetry record read from the NDJSON log. It mirrors
// internal/domain.Event but is exported so custom sources can produce them.
type Event = domain.Event

// ProbeKey identifies the logical measurement point an event belongs to.
type ProbeKey = domain.ProbeKey

// EventSource streams events from any backing store into a summarize pass.
type EventSource = ports.EventSource

// Archiver persists the filtered event slice and rendered summary for one run.
type Archiver = ports.Archiver

// ArchivePaths locates the artifacts an Archiver wrote.
type ArchivePaths = ports.ArchivePaths

// RunIndex maintains the cumulative, human-readable record of summarized runs.
type RunIndex = ports.RunIndex

// HistorySink mirrors run records into external storage.
type HistorySink = ports.HistorySink

// RunRecord is the durable trace of one summarize pass.
type RunRecord = ports.RunRecord

// Observability emits logs/metrics about summarize passes.
type Observability = ports.Observability

// Field is a structured log/metric field used by Observability implementations.
type Field = ports.Field

// Request identifies one summarize pass.
type Request = pipeline.Request

// Result reports what one summarize pass produced.
type Result = pipeline.Result

// ParseEvent decodes one NDJSON log line, keeping the raw bytes so the
// event can be re-archived verbatim.
func ParseEvent(line []byte) (*Event, error) {
	return domain.ParseEvent(line)
}
