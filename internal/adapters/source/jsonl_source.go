// Package source reads newline-delimited telemetry event logs.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kaw393939/metavis/internal/adapters/observability"
	"github.com/kaw393939/metavis/internal/domain"
	"github.com/kaw393939/metavis/internal/ports"
)

const maxLineBytes = 1 << 20

// JSONLSource reads events from an append-only NDJSON log file in file
// order. Blank lines are skipped; malformed lines and lines longer than the
// 1 MiB cap are skipped and counted, with an overlong line's remainder
// discarded rather than buffered. Neither contributes anything downstream,
// not even to event counts. A missing file reads as an empty log.
type JSONLSource struct {
	path string
	obs  ports.Observability
}

var _ ports.EventSource = (*JSONLSource)(nil)

// NewJSONLSource returns a source for the log at path. A nil obs disables
// instrumentation.
func NewJSONLSource(path string, obs ports.Observability) *JSONLSource {
	if obs == nil {
		obs = observability.NewNop()
	}
	return &JSONLSource{path: path, obs: obs}
}

// Read returns every parsable event in file order. The context is checked
// between lines so long reads stay cancelable.
func (s *JSONLSource) Read(ctx context.Context) ([]*domain.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("event source: open %s: %w", s.path, err)
	}
	defer f.Close()

	var (
		events  []*domain.Event
		skipped int
	)
	r := bufio.NewReaderSize(f, 64*1024)
	for done := false; !done; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, overlong, err := nextLine(r)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			done = true
		default:
			return nil, fmt.Errorf("event source: read %s: %w", s.path, err)
		}
		if overlong {
			skipped++
			continue
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		e, perr := domain.ParseEvent(line)
		if perr != nil {
			skipped++
			continue
		}
		events = append(events, e)
	}

	if skipped > 0 {
		s.obs.IncCounter("metavis_events_malformed_total", float64(skipped))
		s.obs.LogInfo("skipped malformed log lines",
			ports.Field{Key: "count", Value: skipped},
			ports.Field{Key: "path", Value: s.path})
	}
	s.obs.IncCounter("metavis_events_read_total", float64(len(events)))
	return events, nil
}

// nextLine returns the next line, delimiter included. A line longer than
// maxLineBytes is consumed to its end and reported overlong, so the caller
// can skip it without the whole line ever being held in memory.
func nextLine(r *bufio.Reader) ([]byte, bool, error) {
	var (
		line     []byte
		overlong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !overlong {
			line = append(line, chunk...)
			if len(line) > maxLineBytes {
				line, overlong = nil, true
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, overlong, err
	}
}

func (s *JSONLSource) Name() string { return "jsonl" }
