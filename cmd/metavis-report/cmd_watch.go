package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	metavis "github.com/kaw393939/metavis"
)

// watchCmd keeps re-summarizing one run while the harness appends to the log.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-summarize a run every time the event log settles",
	Long: `Watches the event log's directory and re-runs the summarize pass after the
log has been quiet for the debounce window (watch.debounce, default 500ms).
Each pass overwrites the run's artifacts in place; because summarization is
byte-idempotent, an unchanged log produces unchanged files.

When metrics.addr is configured, Prometheus metrics are served on
/metrics for the lifetime of the watch. Stop with Ctrl-C.`,
	Example: `  metavis-report watch --run-id 2025-08-25T10-33 --out-dir test_outputs/metrics/2025-08-25T10-33`,
	RunE:    runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	applyFlagOverrides()

	fmt.Print(selectBanner())
	fmt.Println()

	r, err := metavis.New(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := r.EnsureHistorySchema(ctx); err != nil {
		return err
	}

	logger.Info("watching event log",
		zap.String("log", cfg.Log.Path),
		zap.String("run_id", runID),
		zap.Duration("debounce", cfg.WatchDebounce()),
	)
	return r.Watch(ctx, metavis.Request{RunID: runID, OutDir: outDir, RepoRoot: repoRoot})
}
