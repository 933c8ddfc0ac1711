package metavis

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrChannelHistoryClosed is returned when a channel history is written to
// after being closed.
var ErrChannelHistoryClosed = errors.New("metavis: channel history closed")

// RunRecordFunc is invoked with the record of each summarize pass.
type RunRecordFunc func(RunRecord) error

// NewCallbackHistory adapts a RunRecordFunc into a full HistorySink so
// callers can mirror run records without defining structs.
func NewCallbackHistory(name string, fn RunRecordFunc) HistorySink {
	if name == "" {
		name = "callback"
	}
	return &callbackHistory{name: name, fn: fn}
}

// NewChannelHistory exposes run records via a channel; it returns the sink,
// the read-only channel, and a close function that the caller should invoke
// during shutdown.
func NewChannelHistory(name string, buffer int) (HistorySink, <-chan RunRecord, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan RunRecord, buffer)
	h := &channelHistory{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return h, ch, func() { h.close() }
}

type callbackHistory struct {
	name string
	fn   RunRecordFunc
}

func (h *callbackHistory) Record(_ context.Context, rec RunRecord) error {
	if h.fn == nil {
		return fmt.Errorf("callback history %q: nil handler", h.name)
	}
	return h.fn(rec)
}

func (h *callbackHistory) Name() string { return h.name }

type channelHistory struct {
	name   string
	ch     chan RunRecord
	closed chan struct{}
	once   sync.Once
}

func (h *channelHistory) Record(ctx context.Context, rec RunRecord) error {
	select {
	case <-h.closed:
		return ErrChannelHistoryClosed
	default:
	}

	select {
	case <-h.closed:
		return ErrChannelHistoryClosed
	case <-ctx.Done():
		return ctx.Err()
	case h.ch <- rec:
		return nil
	}
}

func (h *channelHistory) Name() string { return h.name }

func (h *channelHistory) close() {
	h.once.Do(func() {
		close(h.closed)
		close(h.ch)
	})
}
