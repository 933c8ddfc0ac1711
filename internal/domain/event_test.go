package domain

import (
	"testing"

	"github.com/samber/lo"
)

func mustEvent(t *testing.T, line string) *Event {
	t.Helper()
	e, err := ParseEvent([]byte(line))
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	return e
}

func TestParseEventOptionalFields(t *testing.T) {
	e := mustEvent(t, `{"runID":"A","suite":"perf","label":"hd","width":1920,"height":1080,"avgMs":12.3,"test":"testDecode"}`)

	if lo.FromPtr(e.RunID) != "A" {
		t.Fatalf("expected runID A, got %v", e.RunID)
	}
	if e.AvgMs == nil || *e.AvgMs != 12.3 {
		t.Fatalf("expected avgMs 12.3, got %v", e.AvgMs)
	}
	if e.PeakRSSDeltaMB != nil {
		t.Fatalf("expected absent peakRSSDeltaMB to stay nil")
	}
	if e.Frames != nil {
		t.Fatalf("expected absent frames to stay nil")
	}
}

func TestParseEventNullEqualsAbsent(t *testing.T) {
	e := mustEvent(t, `{"runID":"A","suite":null,"avgMs":null}`)
	if e.Suite != nil {
		t.Fatalf("expected null suite to decode as nil, got %q", *e.Suite)
	}
	if e.AvgMs != nil {
		t.Fatalf("expected null avgMs to decode as nil, got %v", *e.AvgMs)
	}
}

func TestParseEventToleratesUnknownFields(t *testing.T) {
	e := mustEvent(t, `{"runID":"A","futureField":{"nested":true},"avgMs":1.5}`)
	if e.AvgMs == nil || *e.AvgMs != 1.5 {
		t.Fatalf("expected avgMs 1.5, got %v", e.AvgMs)
	}
}

func TestParseEventRejectsNonObjects(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		"null",
		"42",
		`"runID"`,
		`["runID","A"]`,
		`{"runID":"A"`,
		`{"runID": }`,
		"not json at all",
	} {
		if _, err := ParseEvent([]byte(line)); err == nil {
			t.Fatalf("expected error for line %q", line)
		}
	}
}

func TestParseEventKeepsRawLineVerbatim(t *testing.T) {
	line := []byte(`  {"zeta":1,"runID":"A","alpha":"first"}` + "\n")
	e, err := ParseEvent(line)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := `{"zeta":1,"runID":"A","alpha":"first"}`
	if string(e.Raw) != want {
		t.Fatalf("raw mismatch: got %q want %q", e.Raw, want)
	}

	// The scanner reuses its buffer between lines; the event must not alias it.
	for i := range line {
		line[i] = 'x'
	}
	if string(e.Raw) != want {
		t.Fatalf("raw aliased the input buffer: %q", e.Raw)
	}
}

func TestProbeKeyAbsentDistinctFromEmpty(t *testing.T) {
	absent := mustEvent(t, `{"label":"hd"}`).ProbeKey()
	empty := mustEvent(t, `{"label":"hd","suite":""}`).ProbeKey()
	if absent == empty {
		t.Fatalf("expected absent suite and empty suite to produce different keys")
	}

	zero := mustEvent(t, `{"label":"hd","width":0}`).ProbeKey()
	noWidth := mustEvent(t, `{"label":"hd"}`).ProbeKey()
	if zero == noWidth {
		t.Fatalf("expected width=0 and missing width to produce different keys")
	}
}

func TestProbeKeyCollidesWhenBothOmitResolution(t *testing.T) {
	a := mustEvent(t, `{"suite":"s","label":"l","test":"t","avgMs":1}`).ProbeKey()
	b := mustEvent(t, `{"suite":"s","label":"l","test":"t","avgMs":2}`).ProbeKey()
	if a != b {
		t.Fatalf("expected identical keys for events that both omit width/height")
	}
}

func TestFilterRun(t *testing.T) {
	events := []*Event{
		mustEvent(t, `{"runID":"A","label":"one"}`),
		mustEvent(t, `{"runID":"B","label":"other"}`),
		mustEvent(t, `{"label":"untagged"}`),
		mustEvent(t, `{"runID":"A","label":"two"}`),
	}

	got := FilterRun(events, "A")
	if len(got) != 2 {
		t.Fatalf("expected 2 events for run A, got %d", len(got))
	}
	if lo.FromPtr(got[0].Label) != "one" || lo.FromPtr(got[1].Label) != "two" {
		t.Fatalf("expected log order preserved, got %v then %v", got[0].Label, got[1].Label)
	}

	if got := FilterRun(events, "C"); len(got) != 0 {
		t.Fatalf("expected no events for run C, got %d", len(got))
	}

	// An event without runID never matches, even an empty target.
	if got := FilterRun(events, ""); len(got) != 0 {
		t.Fatalf("expected untagged events to never match, got %d", len(got))
	}
}
