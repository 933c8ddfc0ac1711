package ports

// Observability emits logs and metrics about pipeline progress: events read,
// lines skipped, runs summarized, pass latency.
type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)
	LogCritical(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	ObserveLatency(name string, seconds float64)

	SetGauge(name string, v float64)
}

// Field is a structured log field used by Observability implementations.
type Field struct {
	Key   string
	Value any
}
