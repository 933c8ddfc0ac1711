// Package metavis summarizes MetaVis telemetry runs: it reads an NDJSON
// event log, keeps the last event per probe, renders a deterministic
// Markdown report, and maintains per-run archives plus a cumulative index.
package metavis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/kaw393939/metavis/internal/adapters/archive"
	"github.com/kaw393939/metavis/internal/adapters/history"
	"github.com/kaw393939/metavis/internal/adapters/observability"
	"github.com/kaw393939/metavis/internal/adapters/source"
	"github.com/kaw393939/metavis/internal/app/pipeline"
	"github.com/kaw393939/metavis/internal/app/watch"
)

// Option customizes the dependencies used by Reporter.
type Option func(*overrides)

type overrides struct {
	source  EventSource
	archive Archiver
	index   RunIndex
	history HistorySink
	obs     Observability
}

// WithSource injects a custom event source (object storage, test fixtures, etc.).
func WithSource(src EventSource) Option {
	return func(o *overrides) {
		o.source = src
	}
}

// WithArchiver injects a custom archiver so run artifacts can land anywhere.
func WithArchiver(a Archiver) Option {
	return func(o *overrides) {
		o.archive = a
	}
}

// WithIndex injects a custom run index implementation.
func WithIndex(ix RunIndex) Option {
	return func(o *overrides) {
		o.index = ix
	}
}

// WithHistory injects a custom history sink so run records can be mirrored
// to any database or API.
func WithHistory(h HistorySink) Option {
	return func(o *overrides) {
		o.history = h
	}
}

// WithObservability plugs in a custom observability backend (OpenTelemetry,
// structured logs, etc.).
func WithObservability(obs Observability) Option {
	return func(o *overrides) {
		o.obs = obs
	}
}

// Reporter wires the read → filter → dedup → render → archive pipeline and
// exposes one-shot and watch entrypoints for embedding in other tools.
type Reporter struct {
	cfg     *Config
	source  EventSource
	archive Archiver
	index   RunIndex
	history HistorySink
	obs     Observability
	promObs *observability.PromObs
	pg      *history.PostgresHistory
	db      *sql.DB
}

// New bootstraps the default adapters (JSONL source, filesystem archive,
// Markdown index, Prometheus observability, and, when configured, Postgres
// history). Option values override any dependency.
func New(cfg *Config, opts ...Option) (*Reporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var ov overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}

	obs := ov.obs
	var promObs *observability.PromObs
	if obs == nil {
		logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return nil, err
		}
		promObs = observability.NewPromObs(logger)
		obs = promObs
	}

	src := ov.source
	if src == nil {
		src = source.NewJSONLSource(cfg.Log.Path, obs)
	}
	arch := ov.archive
	if arch == nil {
		arch = archive.NewRunArchive(obs)
	}
	ix := ov.index
	if ix == nil {
		ix = archive.NewMarkdownIndex(cfg.Index.Dir, obs)
	}

	var (
		db   *sql.DB
		pg   *history.PostgresHistory
		hist HistorySink
	)
	if ov.history != nil {
		hist = ov.history
	} else if cfg.HistoryEnabled() {
		var err error
		db, err = sql.Open("postgres", cfg.History.ConnString)
		if err != nil {
			return nil, err
		}
		pg = history.NewPostgresHistory(db, cfg.History.Table)
		hist = pg
	}

	return &Reporter{
		cfg:     cfg,
		source:  src,
		archive: arch,
		index:   ix,
		history: hist,
		obs:     obs,
		promObs: promObs,
		pg:      pg,
		db:      db,
	}, nil
}

// Summarize runs one pass for req. An empty RepoRoot falls back to the
// configured one. When a metrics textfile is configured and the default
// observability stack is in use, the metric snapshot is refreshed after the
// pass; snapshot failures are logged, not fatal.
func (r *Reporter) Summarize(ctx context.Context, req Request) (Result, error) {
	if r == nil {
		return Result{}, fmt.Errorf("reporter is nil")
	}
	if req.RepoRoot == "" {
		req.RepoRoot = r.cfg.Log.RepoRoot
	}

	res, err := pipeline.Summarize(ctx, r.deps(), req)
	if err != nil {
		return Result{}, err
	}

	if r.promObs != nil && r.cfg.Metrics.Textfile != "" {
		if err := r.promObs.WriteTextfile(r.cfg.Metrics.Textfile); err != nil {
			r.obs.LogError("metrics_textfile_failed", err)
		}
	}
	return res, nil
}

// Watch re-summarizes req each time the event log settles after a change,
// serving Prometheus metrics over HTTP when metrics.addr is set. It blocks
// until ctx is done or a pass fails.
func (r *Reporter) Watch(ctx context.Context, req Request) error {
	if r == nil {
		return fmt.Errorf("reporter is nil")
	}

	w, err := watch.New(r.cfg.Log.Path, r.cfg.WatchDebounce(), func(ctx context.Context) error {
		_, err := r.Summarize(ctx, req)
		return err
	}, r.obs)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(ctx) })

	if r.promObs != nil && r.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(r.promObs.Registry(), promhttp.HandlerOpts{}))
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		srv := &http.Server{
			Addr:    r.cfg.Metrics.Addr,
			Handler: mux,
		}

		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// EnsureHistorySchema creates the history table when the default Postgres
// history is in use; with a custom or disabled history it is a no-op.
func (r *Reporter) EnsureHistorySchema(ctx context.Context) error {
	if r.pg == nil {
		return nil
	}
	return r.pg.EnsureSchema(ctx)
}

// IndexPath returns the location of the cumulative run index.
func (r *Reporter) IndexPath() string { return r.index.Path() }

// Close releases the database connection if the reporter opened one.
func (r *Reporter) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Reporter) deps() pipeline.Deps {
	return pipeline.Deps{
		Source:  r.source,
		Archive: r.archive,
		Index:   r.index,
		History: r.history,
		Obs:     r.obs,
	}
}
