package lint

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pass status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics records analysis pass statistics. A nil *Metrics records nothing.
type Metrics struct {
	// passes counts analysis passes.
	// Labels: group, status (ok, error)
	passes *prometheus.CounterVec

	// lints counts lints produced.
	// Labels: rule (rule ID)
	lints *prometheus.CounterVec

	// duration measures analysis pass latency.
	// Labels: group
	duration *prometheus.HistogramVec
}

// NewMetrics creates the analysis collectors and registers them with reg.
// Collectors already registered with reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gramlint",
			Subsystem: "analysis",
			Name:      "passes_total",
			Help:      "Total analysis passes by group and status",
		}, []string{"group", "status"}),
		lints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gramlint",
			Subsystem: "analysis",
			Name:      "lints_total",
			Help:      "Total lints produced by rule",
		}, []string{"rule"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gramlint",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Analysis pass latency in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"group"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	m.passes, err = register(reg, m.passes)
	if err != nil {
		return nil, err
	}
	m.lints, err = register(reg, m.lints)
	if err != nil {
		return nil, err
	}
	m.duration, err = register(reg, m.duration)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metrics: %w", err)
	}
	return c, nil
}

func (m *Metrics) observePass(group, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(group, status).Inc()
	m.duration.WithLabelValues(group).Observe(elapsed.Seconds())
}

func (m *Metrics) addLints(rule string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.lints.WithLabelValues(rule).Add(float64(n))
}
