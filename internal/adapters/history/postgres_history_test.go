package history

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kaw393939/metavis/internal/ports"
)

func TestPostgresHistoryRecordUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := NewPostgresHistory(db, "run_history")

	expectedQuery := regexp.QuoteMeta("INSERT INTO run_history " +
		"(run_id, invocation_id, out_dir, event_count, probe_count, perf_rows, memory_rows, color_rows, lut_rows, bake_rows, recorded_at) " +
		"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW()) " +
		"ON CONFLICT (run_id) DO UPDATE SET " +
		"invocation_id = EXCLUDED.invocation_id, out_dir = EXCLUDED.out_dir, " +
		"event_count = EXCLUDED.event_count, probe_count = EXCLUDED.probe_count, " +
		"perf_rows = EXCLUDED.perf_rows, memory_rows = EXCLUDED.memory_rows, " +
		"color_rows = EXCLUDED.color_rows, lut_rows = EXCLUDED.lut_rows, " +
		"bake_rows = EXCLUDED.bake_rows, recorded_at = NOW()")
	mock.ExpectExec(expectedQuery).
		WithArgs("runA", "inv-1", "test_outputs/metrics/runA", 6, 5, 2, 1, 1, 1, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := ports.RunRecord{
		InvocationID: "inv-1",
		RunID:        "runA",
		OutDir:       "test_outputs/metrics/runA",
		EventCount:   6,
		ProbeCount:   5,
		PerfRows:     2,
		MemoryRows:   1,
		ColorRows:    1,
		LUTRows:      1,
		BakeRows:     0,
	}
	if err := h.Record(context.Background(), rec); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresHistoryRecordWrapsExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection refused")
	mock.ExpectExec("INSERT INTO run_history").WillReturnError(boom)

	h := NewPostgresHistory(db, "run_history")
	recErr := h.Record(context.Background(), ports.RunRecord{RunID: "runA"})
	if !errors.Is(recErr, boom) {
		t.Fatalf("expected wrapped exec error, got %v", recErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresHistoryEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS run_history")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	h := NewPostgresHistory(db, "run_history")
	if err := h.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresHistoryName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	h := NewPostgresHistory(db, "run_history")
	if h.Name() != "postgres" {
		t.Fatalf("expected history name postgres, got %s", h.Name())
	}
}
