package metavis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewCallbackHistory(t *testing.T) {
	var recs []RunRecord
	h := NewCallbackHistory("cb", func(rec RunRecord) error {
		recs = append(recs, rec)
		return nil
	})

	rec := RunRecord{InvocationID: "inv-1", RunID: "runA", EventCount: 3}
	if err := h.Record(context.Background(), rec); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(recs) != 1 || recs[0].RunID != "runA" || recs[0].EventCount != 3 {
		t.Fatalf("mismatched record payload: %+v", recs)
	}
	if h.Name() != "cb" {
		t.Fatalf("expected name cb, got %s", h.Name())
	}
}

func TestNewCallbackHistoryNilHandler(t *testing.T) {
	h := NewCallbackHistory("", nil)
	if err := h.Record(context.Background(), RunRecord{}); err == nil {
		t.Fatal("expected error when callback is nil")
	}
	if h.Name() != "callback" {
		t.Fatalf("expected fallback name callback, got %s", h.Name())
	}
}

func TestNewChannelHistory(t *testing.T) {
	h, ch, closeFn := NewChannelHistory("chan", 1)
	defer closeFn()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Record(context.Background(), RunRecord{RunID: "runA"})
	}()

	var rec RunRecord
	select {
	case rec = <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel record")
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if rec.RunID != "runA" {
		t.Fatalf("unexpected record data: %+v", rec)
	}

	closeFn()
	if err := h.Record(context.Background(), RunRecord{}); !errors.Is(err, ErrChannelHistoryClosed) {
		t.Fatalf("expected ErrChannelHistoryClosed, got %v", err)
	}
}

func TestChannelHistoryHonorsContext(t *testing.T) {
	h, _, closeFn := NewChannelHistory("chan", 0)
	defer closeFn()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.Record(ctx, RunRecord{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
