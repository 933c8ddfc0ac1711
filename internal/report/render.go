package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/kaw393939/metavis/internal/domain"
)

// Header summarizes the run at the top of the report. Count is the
// post-filter, pre-dedup event count. Environment fields come from the first
// filtered event and render only when non-empty.
type Header struct {
	RunID          string
	Count          int
	OSVersion      string
	Arch           string
	FirstTimestamp string
}

// BuildHeader derives the header from the filtered, not yet deduplicated,
// sequence.
func BuildHeader(runID string, filtered []*domain.Event) Header {
	h := Header{RunID: runID, Count: len(filtered)}
	if len(filtered) > 0 {
		first := filtered[0]
		h.OSVersion = lo.FromPtr(first.OSVersion)
		h.Arch = lo.FromPtr(first.ProcessArch)
		h.FirstTimestamp = lo.FromPtr(first.Timestamp)
	}
	return h
}

// Files names the run artifacts listed at the bottom of the report, as
// repo-root-relative slash paths.
type Files struct {
	Events  string
	Summary string
}

// Render produces the summary Markdown as a pure function of its inputs.
// Rows are stable-sorted per category and absent values render as empty
// cells, never zeros. Nothing wall-clock dependent is embedded; re-rendering
// an unchanged run yields identical bytes. Every category section is always
// present, with an empty one printing its placeholder line instead of a
// table.
func Render(h Header, c Categories, files Files) []byte {
	sortRows(&c)

	var b strings.Builder
	b.WriteString("# MetaVis Metrics Run\n\n")
	fmt.Fprintf(&b, "- runID: `%s`\n", h.RunID)
	fmt.Fprintf(&b, "- events: `%d`\n", h.Count)
	if h.OSVersion != "" {
		fmt.Fprintf(&b, "- os: `%s`\n", h.OSVersion)
	}
	if h.Arch != "" {
		fmt.Fprintf(&b, "- arch: `%s`\n", h.Arch)
	}
	if h.FirstTimestamp != "" {
		fmt.Fprintf(&b, "- first event: `%s`\n", h.FirstTimestamp)
	}
	b.WriteString("\n")

	b.WriteString("## Performance\n\n")
	if len(c.Perf) == 0 {
		b.WriteString("(no perf events found for this run)\n\n")
	} else {
		b.WriteString("| label | res | frames | avgMs | suite | test |\n")
		b.WriteString("|---|---:|---:|---:|---|---|\n")
		for _, r := range c.Perf {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				r.Label, resolution(r.Width, r.Height), number(r.Frames), fixed(r.AvgMs, 2), r.Suite, r.Test)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Memory\n\n")
	if len(c.Memory) == 0 {
		b.WriteString("(no memory events found for this run)\n\n")
	} else {
		b.WriteString("| label | peakRSSDeltaMB | message | suite | test |\n")
		b.WriteString("|---|---:|---|---|---|\n")
		for _, r := range c.Memory {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				r.Label, fixed(r.PeakRSSDeltaMB, 3), r.Message, r.Suite, r.Test)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Color (ΔE2000)\n\n")
	if len(c.Color) == 0 {
		b.WriteString("(no ΔE events found for this run)\n\n")
	} else {
		b.WriteString("| label | ΔE avg | ΔE max | worst | suite | test |\n")
		b.WriteString("|---|---:|---:|---|---|---|\n")
		for _, r := range c.Color {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				r.Label, fixed(r.DeltaEAvg, 4), fixed(r.DeltaEMax, 4), r.WorstPatch, r.Suite, r.Test)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Studio LUT Reference Match\n\n")
	if len(c.LUT) == 0 {
		b.WriteString("(no Studio LUT match events found for this run)\n\n")
	} else {
		b.WriteString("| label | meanAbsErr | maxAbsErr | worst | suite | test |\n")
		b.WriteString("|---|---:|---:|---|---|---|\n")
		for _, r := range c.LUT {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				r.Label, fixed(r.MeanAbsErr, 8), fixed(r.MaxAbsErr, 8), r.WorstPatch, r.Suite, r.Test)
		}
		b.WriteString("\n")
	}

	b.WriteString("## OCIO Re-bake Match\n\n")
	if len(c.Bake) == 0 {
		b.WriteString("(no OCIO bake match events found for this run)\n\n")
	} else {
		b.WriteString("| name | meanAbsErr | maxAbsErr | suite | test |\n")
		b.WriteString("|---|---:|---:|---|---|\n")
		for _, r := range c.Bake {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				r.Name, fixed(r.MeanAbsErr, 10), fixed(r.MaxAbsErr, 10), r.Suite, r.Test)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Files\n\n")
	fmt.Fprintf(&b, "- events: `%s`\n", files.Events)
	fmt.Fprintf(&b, "- summary: `%s`\n", files.Summary)

	return []byte(b.String())
}

// sortRows applies each category's total order. Sorts are stable, so rows
// that tie keep their first-seen probe order.
func sortRows(c *Categories) {
	sort.SliceStable(c.Perf, func(i, j int) bool {
		a, b := c.Perf[i], c.Perf[j]
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return heightOrZero(a.Height) < heightOrZero(b.Height)
	})
	sort.SliceStable(c.Memory, func(i, j int) bool {
		a, b := c.Memory[i], c.Memory[j]
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.Test < b.Test
	})
	sort.SliceStable(c.Color, func(i, j int) bool {
		a, b := c.Color[i], c.Color[j]
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.Test < b.Test
	})
	sort.SliceStable(c.LUT, func(i, j int) bool {
		a, b := c.LUT[i], c.LUT[j]
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.Test < b.Test
	})
	sort.SliceStable(c.Bake, func(i, j int) bool {
		a, b := c.Bake[i], c.Bake[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Test < b.Test
	})
}

func heightOrZero(h *float64) float64 {
	if h == nil {
		return 0
	}
	return *h
}
