// Package trymetrics counts the lifecycle events of protected invocations
// with Prometheus.
package trymetrics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/try"
)

// Finalization outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeUsage = "usage_error"
	OutcomePanic = "panic"
)

// Metrics holds the counters shared by every invocation it is installed on.
type Metrics struct {
	catches       prometheus.Counter
	swallowed     prometheus.Counter
	restarts      prometheus.Counter
	restartDelay  prometheus.Histogram
	finalizations *prometheus.CounterVec
}

// New creates the counters under namespace and registers them with reg.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		catches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "try",
			Name:      "catches_total",
			Help:      "Failures handed to a catch handler.",
		}),
		swallowed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "try",
			Name:      "swallowed_total",
			Help:      "Failures discarded because no catch handler was given.",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "try",
			Name:      "restarts_total",
			Help:      "Protected blocks restarted by a catch handler.",
		}),
		restartDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "try",
			Name:      "restart_delay_seconds",
			Help:      "Backoff applied before each restart.",
			Buckets:   prometheus.DefBuckets,
		}),
		finalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "try",
			Name:      "finalizations_total",
			Help:      "Completed invocations by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.catches, m.swallowed, m.restarts, m.restartDelay, m.finalizations} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "trymetrics: register")
		}
	}
	return m, nil
}

// Option returns the hooks that feed m.
func (m *Metrics) Option() try.Option {
	return try.Use(try.New(
		try.OnCatch(func(context.Context, int, error) {
			m.catches.Inc()
		}),
		try.OnSwallow(func(context.Context, int, error) {
			m.swallowed.Inc()
		}),
		try.OnRestart(func(_ context.Context, _ int, _ error, delay time.Duration) {
			m.restarts.Inc()
			m.restartDelay.Observe(delay.Seconds())
		}),
		try.OnFinally(func(_ context.Context, err error) {
			m.finalizations.WithLabelValues(outcome(err)).Inc()
		}),
	))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case try.IsUsage(err):
		return OutcomeUsage
	case errors.As(err, new(*try.PanicError)):
		return OutcomePanic
	default:
		return OutcomeError
	}
}
