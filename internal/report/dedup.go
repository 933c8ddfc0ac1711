// Package report turns one run's filtered events into the rendered Markdown
// summary: last-write-wins deduplication, category projection, deterministic
// sorting and formatting.
package report

import "github.com/kaw393939/metavis/internal/domain"

// Dedupe collapses repeated measurements of the same probe, keeping the most
// recent record by log position. Log order is authoritative; timestamp fields
// are never consulted. The result is ordered by the first appearance of each
// probe key, which keeps downstream stable sorts deterministic.
func Dedupe(events []*domain.Event) []*domain.Event {
	latest := make(map[domain.ProbeKey]*domain.Event, len(events))
	order := make([]domain.ProbeKey, 0, len(events))
	for _, e := range events {
		k := e.ProbeKey()
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = e
	}

	out := make([]*domain.Event, 0, len(order))
	for _, k := range order {
		out = append(out, latest[k])
	}
	return out
}
