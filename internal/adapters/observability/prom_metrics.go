// Package observability provides the zap and Prometheus backed
// implementation of the Observability port, plus a no-op for embedders that
// bring their own.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kaw393939/metavis/internal/ports"
)

// PromObs backs the Observability port with a zap logger and a private
// Prometheus registry, so repeated construction (tests, library embedding)
// never collides with global collector registration. Metrics are
// pre-registered by name; unknown names are ignored.
type PromObs struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

var _ ports.Observability = (*PromObs)(nil)

// NewPromObs builds the default observability stack. A nil logger falls back
// to a no-op zap logger, keeping metrics without log output.
func NewPromObs(logger *zap.Logger) *PromObs {
	if logger == nil {
		logger = zap.NewNop()
	}

	read := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metavis_events_read_total",
		Help: "Events successfully parsed from the telemetry log.",
	})
	malformed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metavis_events_malformed_total",
		Help: "Log lines skipped because they failed to parse.",
	})
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metavis_runs_summarized_total",
		Help: "Completed summarize passes.",
	})
	inserts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metavis_index_inserts_total",
		Help: "New entries inserted into the run index.",
	})
	historyFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metavis_history_failures_total",
		Help: "Run records the history sink failed to persist.",
	})
	lastEvents := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "metavis_last_run_events",
		Help: "Event count of the most recent summarize pass (post-filter, pre-dedup).",
	})
	lastProbes := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "metavis_last_run_probes",
		Help: "Surviving probe count of the most recent summarize pass.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "metavis_summarize_duration_seconds",
		Help:    "Wall time of one summarize pass.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(read, malformed, runs, inserts, historyFailures, lastEvents, lastProbes, duration)

	return &PromObs{
		logger:   logger,
		registry: reg,
		counters: map[string]prometheus.Counter{
			"metavis_events_read_total":      read,
			"metavis_events_malformed_total": malformed,
			"metavis_runs_summarized_total":  runs,
			"metavis_index_inserts_total":    inserts,
			"metavis_history_failures_total": historyFailures,
		},
		gauges: map[string]prometheus.Gauge{
			"metavis_last_run_events": lastEvents,
			"metavis_last_run_probes": lastProbes,
		},
		histos: map[string]prometheus.Observer{
			"metavis_summarize_duration_seconds": duration,
		},
	}
}

// Registry exposes the private registry for scraping or snapshotting.
func (p *PromObs) Registry() *prometheus.Registry { return p.registry }

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	p.logger.Info(msg, zapFields(fields)...)
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	p.logger.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	p.logger.Error(msg, append(zapFields(fields), zap.Error(err), zap.Bool("critical", true))...)
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func zapFields(fields []ports.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
