package adapter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

const (
	outcomeOK            = "ok"
	outcomeError         = "error"
	outcomeShapeMismatch = "shape_mismatch"
	outcomeArgument      = "argument"
)

// Metrics records adapted calls. A nil *Metrics records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the adapter collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framelearn_adapter_calls_total",
				Help: "Calls dispatched through adapted estimators",
			},
			[]string{"estimator", "method", "convention", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "framelearn_adapter_call_duration_seconds",
				Help:    "Duration of calls dispatched through adapted estimators",
				Buckets: prometheus.ExponentialBuckets(0.0001, 10, 6),
			},
			[]string{"estimator", "method"},
		),
	}
	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register adapter metrics")
		}
	}
	return m, nil
}

func (m *Metrics) observe(estimator, method string, conv Convention, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(estimator, method, conv.String(), outcome(err)).Inc()
	m.duration.WithLabelValues(estimator, method).Observe(d.Seconds())
}

func outcome(err error) string {
	var shapeErr *errors.ShapeMismatchError
	var argErr *errors.ArgumentError
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &shapeErr):
		return outcomeShapeMismatch
	case errors.As(err, &argErr):
		return outcomeArgument
	default:
		return outcomeError
	}
}
