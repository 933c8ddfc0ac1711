package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event is one telemetry record emitted by the instrumented test suite.
// Every field is optional on the wire, so fields are pointers: an absent or
// null field stays distinguishable from an empty string or a zero. Raw holds
// the source line verbatim, preserving the producer's field order for the
// archived run slice. Events are immutable once parsed.
type Event struct {
	RunID  *string  `json:"runID"`
	Suite  *string  `json:"suite"`
	Label  *string  `json:"label"`
	Test   *string  `json:"test"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`

	Frames *float64 `json:"frames"`
	AvgMs  *float64 `json:"avgMs"`

	PeakRSSDeltaMB *float64 `json:"peakRSSDeltaMB"`
	Message        *string  `json:"message"`

	DeltaE2000Avg        *float64 `json:"deltaE2000Avg"`
	DeltaE2000Max        *float64 `json:"deltaE2000Max"`
	DeltaE2000WorstPatch *string  `json:"deltaE2000WorstPatch"`

	LUTMeanAbsErr *float64 `json:"lutMeanAbsErr"`
	LUTMaxAbsErr  *float64 `json:"lutMaxAbsErr"`
	LUTWorstPatch *string  `json:"lutWorstPatch"`

	OCIOBakeName       *string  `json:"ocioBakeName"`
	OCIOBakeMeanAbsErr *float64 `json:"ocioBakeMeanAbsErr"`
	OCIOBakeMaxAbsErr  *float64 `json:"ocioBakeMaxAbsErr"`

	OSVersion   *string `json:"osVersion"`
	ProcessArch *string `json:"processArch"`
	Timestamp   *string `json:"timestampISO8601"`

	Raw json.RawMessage `json:"-"`
}

// ParseEvent decodes a single log line. The line must be one JSON object;
// anything else counts as malformed. The returned event keeps its own copy of
// the trimmed line, so callers may reuse the input buffer.
func ParseEvent(line []byte) (*Event, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("event: line is not a JSON object")
	}
	var e Event
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	e.Raw = append(json.RawMessage(nil), trimmed...)
	return &e, nil
}

// ProbeKey identifies one logical measurement point: the tuple
// (suite, label, width, height, test). Presence flags keep an absent field
// distinct from an empty or zero one, so two events that both omit
// width/height collide with each other but not with events that carry them.
type ProbeKey struct {
	Suite  string
	Label  string
	Test   string
	Width  float64
	Height float64

	HasSuite  bool
	HasLabel  bool
	HasTest   bool
	HasWidth  bool
	HasHeight bool
}

// ProbeKey derives the dedup key for the event.
func (e *Event) ProbeKey() ProbeKey {
	var k ProbeKey
	if e.Suite != nil {
		k.Suite, k.HasSuite = *e.Suite, true
	}
	if e.Label != nil {
		k.Label, k.HasLabel = *e.Label, true
	}
	if e.Test != nil {
		k.Test, k.HasTest = *e.Test, true
	}
	if e.Width != nil {
		k.Width, k.HasWidth = *e.Width, true
	}
	if e.Height != nil {
		k.Height, k.HasHeight = *e.Height, true
	}
	return k
}

// FilterRun returns the subsequence of events whose runID equals id exactly,
// in unchanged order. No normalization is applied; an event without a runID
// never matches.
func FilterRun(events []*Event, id string) []*Event {
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if e.RunID != nil && *e.RunID == id {
			out = append(out, e)
		}
	}
	return out
}
