package metavis

import (
	base "github.com/kaw393939/metavis/pkg/metavis"
)

// Re-exported errors for convenience.
var (
	ErrChannelHistoryClosed = base.ErrChannelHistoryClosed
)

// Type aliases so consumers can import github.com/kaw393939/metavis directly.
type (
	Config          = base.Config
	LogConfig       = base.LogConfig
	IndexConfig     = base.IndexConfig
	HistoryConfig   = base.HistoryConfig
	MetricsConfig   = base.MetricsConfig
	WatchConfig     = base.WatchConfig
	LoggingConfig   = base.LoggingConfig
	Flow            = base.Flow
	FlowOption      = base.FlowOption
	StreamInOption  = base.StreamInOption
	StreamOutOption = base.StreamOutOption
	Reporter        = base.Reporter
	Option          = base.Option
	Event           = base.Event
	ProbeKey        = base.ProbeKey
	EventSource     = base.EventSource
	Archiver        = base.Archiver
	ArchivePaths    = base.ArchivePaths
	RunIndex        = base.RunIndex
	HistorySink     = base.HistorySink
	RunRecord       = base.RunRecord
	RunRecordFunc   = base.RunRecordFunc
	Observability   = base.Observability
	Field           = base.Field
	Request         = base.Request
	Result          = base.Result
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

func DefaultConfig() *Config {
	return base.DefaultConfig()
}

// Event helpers.
func ParseEvent(line []byte) (*Event, error) {
	return base.ParseEvent(line)
}

// Flow builder helpers.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithFlowOptions(opts ...Option) FlowOption {
	return base.WithFlowOptions(opts...)
}

func StreamInSource(src EventSource) StreamInOption {
	return base.StreamInSource(src)
}

func StreamInObservability(obs Observability) StreamInOption {
	return base.StreamInObservability(obs)
}

func StreamOutArchiver(a Archiver) StreamOutOption {
	return base.StreamOutArchiver(a)
}

func StreamOutIndex(ix RunIndex) StreamOutOption {
	return base.StreamOutIndex(ix)
}

func StreamOutHistory(h HistorySink) StreamOutOption {
	return base.StreamOutHistory(h)
}

func StreamOutObservability(obs Observability) StreamOutOption {
	return base.StreamOutObservability(obs)
}

func StreamOutCallback(name string, fn RunRecordFunc) StreamOutOption {
	return base.StreamOutCallback(name, fn)
}

// Reporter and options.
func New(cfg *Config, opts ...Option) (*Reporter, error) {
	return base.New(cfg, opts...)
}

func WithSource(src EventSource) Option {
	return base.WithSource(src)
}

func WithArchiver(a Archiver) Option {
	return base.WithArchiver(a)
}

func WithIndex(ix RunIndex) Option {
	return base.WithIndex(ix)
}

func WithHistory(h HistorySink) Option {
	return base.WithHistory(h)
}

func WithObservability(obs Observability) Option {
	return base.WithObservability(obs)
}

// History adapters.
func NewCallbackHistory(name string, fn RunRecordFunc) HistorySink {
	return base.NewCallbackHistory(name, fn)
}

func NewChannelHistory(name string, buffer int) (HistorySink, <-chan RunRecord, func()) {
	return base.NewChannelHistory(name, buffer)
}
