// Package watch re-summarizes a run continuously as its event log grows.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kaw393939/metavis/internal/adapters/observability"
	"github.com/kaw393939/metavis/internal/ports"
)

// Watcher triggers a summarize pass whenever the event log settles after a
// change. The log's directory is watched rather than the file itself, so
// rotation and recreate are picked up.
type Watcher struct {
	logPath  string
	debounce time.Duration
	run      func(context.Context) error
	obs      ports.Observability
}

func New(logPath string, debounce time.Duration, run func(context.Context) error, obs ports.Observability) (*Watcher, error) {
	if logPath == "" {
		return nil, fmt.Errorf("watch: log path is required")
	}
	if run == nil {
		return nil, fmt.Errorf("watch: run callback is required")
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if obs == nil {
		obs = observability.NewNop()
	}
	return &Watcher{logPath: logPath, debounce: debounce, run: run, obs: obs}, nil
}

// Run performs one pass immediately, then one pass each time the log has
// been quiet for the debounce window after a change. It blocks until ctx is
// done (returning nil) or a pass fails.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.logPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("watch: prepare %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	w.obs.LogInfo("watch_started",
		ports.Field{Key: "log", Value: w.logPath},
		ports.Field{Key: "debounce", Value: w.debounce.String()},
	)

	if err := w.run(ctx); err != nil {
		return err
	}
	return w.loop(ctx, watcher.Events, watcher.Errors)
}

// loop is the select core, split out so tests can drive it with their own
// channels instead of a live filesystem.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			timerC = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.obs.LogError("watch_error", err)

		case <-timerC:
			timerC = nil
			if err := w.run(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != filepath.Base(w.logPath) {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
