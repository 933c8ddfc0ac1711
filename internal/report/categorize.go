package report

import (
	"github.com/samber/lo"

	"github.com/kaw393939/metavis/internal/domain"
)

// Report rows are per-category projections of a surviving event. String cells
// are flattened ("" when absent); numeric cells stay pointers so an absent
// value renders as an empty cell rather than a zero.

type PerfRow struct {
	Suite  string
	Label  string
	Test   string
	Width  *float64
	Height *float64
	Frames *float64
	AvgMs  *float64
}

type MemoryRow struct {
	Suite          string
	Label          string
	Test           string
	Message        string
	PeakRSSDeltaMB *float64
}

type ColorRow struct {
	Suite      string
	Label      string
	Test       string
	WorstPatch string
	DeltaEAvg  *float64
	DeltaEMax  *float64
}

type LUTRow struct {
	Suite      string
	Label      string
	Test       string
	WorstPatch string
	MeanAbsErr *float64
	MaxAbsErr  *float64
}

type BakeRow struct {
	Name       string
	Suite      string
	Label      string
	Test       string
	MeanAbsErr *float64
	MaxAbsErr  *float64
}

// Categories holds the projected rows of one run, unsorted.
type Categories struct {
	Perf   []PerfRow
	Memory []MemoryRow
	Color  []ColorRow
	LUT    []LUTRow
	Bake   []BakeRow
}

// Categorize projects each surviving event into every category whose gate it
// passes. Gates are independent: a single event may land in several
// categories, or in none.
func Categorize(events []*domain.Event) Categories {
	var c Categories
	for _, e := range events {
		suite := lo.FromPtr(e.Suite)
		label := lo.FromPtr(e.Label)
		test := lo.FromPtr(e.Test)

		if e.AvgMs != nil {
			c.Perf = append(c.Perf, PerfRow{
				Suite:  suite,
				Label:  label,
				Test:   test,
				Width:  e.Width,
				Height: e.Height,
				Frames: e.Frames,
				AvgMs:  e.AvgMs,
			})
		}

		if e.PeakRSSDeltaMB != nil {
			c.Memory = append(c.Memory, MemoryRow{
				Suite:          suite,
				Label:          label,
				Test:           test,
				Message:        lo.FromPtr(e.Message),
				PeakRSSDeltaMB: e.PeakRSSDeltaMB,
			})
		}

		if e.DeltaE2000Avg != nil || e.DeltaE2000Max != nil {
			c.Color = append(c.Color, ColorRow{
				Suite:      suite,
				Label:      label,
				Test:       test,
				WorstPatch: lo.FromPtr(e.DeltaE2000WorstPatch),
				DeltaEAvg:  e.DeltaE2000Avg,
				DeltaEMax:  e.DeltaE2000Max,
			})
		}

		if e.LUTMeanAbsErr != nil || e.LUTMaxAbsErr != nil {
			c.LUT = append(c.LUT, LUTRow{
				Suite:      suite,
				Label:      label,
				Test:       test,
				WorstPatch: lo.FromPtr(e.LUTWorstPatch),
				MeanAbsErr: e.LUTMeanAbsErr,
				MaxAbsErr:  e.LUTMaxAbsErr,
			})
		}

		if e.OCIOBakeMeanAbsErr != nil || e.OCIOBakeMaxAbsErr != nil {
			c.Bake = append(c.Bake, BakeRow{
				Name:       lo.FromPtr(e.OCIOBakeName),
				Suite:      suite,
				Label:      label,
				Test:       test,
				MeanAbsErr: e.OCIOBakeMeanAbsErr,
				MaxAbsErr:  e.OCIOBakeMaxAbsErr,
			})
		}
	}
	return c
}
