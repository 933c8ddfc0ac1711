package metavis

import (
	"context"
	"fmt"
)

// Flow is a convenience builder that lets callers say Conf → StreamIN →
// StreamOUT without touching the underlying hexagonal wiring.
type Flow struct {
	cfg  *Config
	opts []Option
}

// FlowOption mutates the Flow after configuration is loaded.
type FlowOption func(*Flow)

// StreamInOption configures the event-source side of the pipeline.
type StreamInOption func(*Flow)

// StreamOutOption configures the artifact/history/observability side of the
// pipeline.
type StreamOutOption func(*Flow)

// Conf loads YAML from disk, applies FlowOption values, and returns a Flow
// builder.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ConfFromConfig(cfg, opts...)
}

// ConfFromConfig bootstraps a Flow from an in-memory Config.
func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	f := &Flow{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Config returns the underlying configuration so callers can tweak it before
// building a reporter.
func (f *Flow) Config() *Config {
	if f == nil {
		return nil
	}
	return f.cfg
}

// Options appends raw Option values to the builder for advanced scenarios.
func (f *Flow) Options(opts ...Option) *Flow {
	if f == nil {
		return nil
	}
	f.appendOptions(opts...)
	return f
}

// StreamIN records source-side overrides (event source, observability).
func (f *Flow) StreamIN(opts ...StreamInOption) *Flow {
	if f == nil {
		return nil
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// StreamOUT records artifact-side overrides and builds a Reporter ready to
// summarize.
func (f *Flow) StreamOUT(opts ...StreamOutOption) (*Reporter, error) {
	if f == nil {
		return nil, fmt.Errorf("flow is nil")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return New(f.cfg, f.opts...)
}

// Summarize is a shortcut for StreamOUT + reporter.Summarize + Close.
func (f *Flow) Summarize(ctx context.Context, req Request, opts ...StreamOutOption) (Result, error) {
	r, err := f.StreamOUT(opts...)
	if err != nil {
		return Result{}, err
	}
	defer r.Close()
	return r.Summarize(ctx, req)
}

// WithFlowOptions appends Option values during Conf.
func WithFlowOptions(opts ...Option) FlowOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(opts...)
		}
	}
}

// StreamInSource injects a custom event source (object storage, fixtures, etc.).
func StreamInSource(src EventSource) StreamInOption {
	return func(f *Flow) {
		if f != nil && src != nil {
			f.appendOptions(WithSource(src))
		}
	}
}

// StreamInObservability overrides the default Prometheus-based observability
// stack on the source side.
func StreamInObservability(obs Observability) StreamInOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

// StreamOutArchiver injects a custom archiver.
func StreamOutArchiver(a Archiver) StreamOutOption {
	return func(f *Flow) {
		if f != nil && a != nil {
			f.appendOptions(WithArchiver(a))
		}
	}
}

// StreamOutIndex injects a custom run index.
func StreamOutIndex(ix RunIndex) StreamOutOption {
	return func(f *Flow) {
		if f != nil && ix != nil {
			f.appendOptions(WithIndex(ix))
		}
	}
}

// StreamOutHistory injects a custom history sink.
func StreamOutHistory(h HistorySink) StreamOutOption {
	return func(f *Flow) {
		if f != nil && h != nil {
			f.appendOptions(WithHistory(h))
		}
	}
}

// StreamOutCallback installs a history sink built from a simple callback
// function.
func StreamOutCallback(name string, fn RunRecordFunc) StreamOutOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(WithHistory(NewCallbackHistory(name, fn)))
		}
	}
}

// StreamOutObservability replaces the default observability backend.
func StreamOutObservability(obs Observability) StreamOutOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

func (f *Flow) appendOptions(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			f.opts = append(f.opts, opt)
		}
	}
}
