package observability

import "github.com/kaw393939/metavis/internal/ports"

// NopObs discards all logs and metrics.
type NopObs struct{}

var _ ports.Observability = NopObs{}

func NewNop() NopObs { return NopObs{} }

func (NopObs) LogInfo(string, ...ports.Field)            {}
func (NopObs) LogError(string, error, ...ports.Field)    {}
func (NopObs) LogCritical(string, error, ...ports.Field) {}
func (NopObs) IncCounter(string, float64)                {}
func (NopObs) ObserveLatency(string, float64)            {}
func (NopObs) SetGauge(string, float64)                  {}
