package ports

import (
	"context"

	"github.com/kaw393939/metavis/internal/domain"
)

// EventSource streams an ordered sequence of parsed events from a telemetry
// log. Implementations must preserve source order, skip malformed records
// locally, and report a missing source as an empty sequence rather than an
// error.
type EventSource interface {
	Read(ctx context.Context) ([]*domain.Event, error)
	Name() string
}
