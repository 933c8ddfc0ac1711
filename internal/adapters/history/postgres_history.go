// Package history mirrors run records into relational storage so runs can
// be compared across invocations.
package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kaw393939/metavis/internal/ports"
)

type PostgresHistory struct {
	db    *sql.DB
	table string
}

var _ ports.HistorySink = (*PostgresHistory)(nil)

func NewPostgresHistory(db *sql.DB, table string) *PostgresHistory {
	return &PostgresHistory{db: db, table: table}
}

func (h *PostgresHistory) Name() string { return "postgres" }

// EnsureSchema creates the history table when it does not exist yet.
func (h *PostgresHistory) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id TEXT PRIMARY KEY,
	invocation_id TEXT NOT NULL,
	out_dir TEXT NOT NULL,
	event_count INTEGER NOT NULL,
	probe_count INTEGER NOT NULL,
	perf_rows INTEGER NOT NULL,
	memory_rows INTEGER NOT NULL,
	color_rows INTEGER NOT NULL,
	lut_rows INTEGER NOT NULL,
	bake_rows INTEGER NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL
)`, h.table)

	if _, err := h.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("history: ensure schema: %w", err)
	}
	return nil
}

// Record upserts one run record keyed on run_id; re-summarizing a run
// refreshes its row instead of duplicating it.
func (h *PostgresHistory) Record(ctx context.Context, rec ports.RunRecord) error {
	q := fmt.Sprintf("INSERT INTO %s "+
		"(run_id, invocation_id, out_dir, event_count, probe_count, perf_rows, memory_rows, color_rows, lut_rows, bake_rows, recorded_at) "+
		"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW()) "+
		"ON CONFLICT (run_id) DO UPDATE SET "+
		"invocation_id = EXCLUDED.invocation_id, out_dir = EXCLUDED.out_dir, "+
		"event_count = EXCLUDED.event_count, probe_count = EXCLUDED.probe_count, "+
		"perf_rows = EXCLUDED.perf_rows, memory_rows = EXCLUDED.memory_rows, "+
		"color_rows = EXCLUDED.color_rows, lut_rows = EXCLUDED.lut_rows, "+
		"bake_rows = EXCLUDED.bake_rows, recorded_at = NOW()", h.table)

	if _, err := h.db.ExecContext(ctx, q,
		rec.RunID,
		rec.InvocationID,
		rec.OutDir,
		rec.EventCount,
		rec.ProbeCount,
		rec.PerfRows,
		rec.MemoryRows,
		rec.ColorRows,
		rec.LUTRows,
		rec.BakeRows,
	); err != nil {
		return fmt.Errorf("history: record run %s: %w", rec.RunID, err)
	}
	return nil
}
