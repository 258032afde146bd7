// Package monitoring exposes Prometheus metrics for remote service calls.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts remote operations, their failures, and tailed log events.
type Metrics struct {
	ops       *prometheus.CounterVec
	opErrors  *prometheus.CounterVec
	logEvents prometheus.Counter
}

// NewMetrics creates the metric vectors and registers them on reg.
// A nil registerer leaves the metrics unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "batchclient",
			Name:      "remote_ops_total",
			Help:      "Remote service calls, by operation.",
		}, []string{"op"}),
		opErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "batchclient",
			Name:      "remote_op_errors_total",
			Help:      "Failed remote service calls, by operation.",
		}, []string{"op"}),
		logEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "batchclient",
			Name:      "log_events_total",
			Help:      "Log events delivered by tailing and page fetches.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.opErrors, m.logEvents)
	}
	return m
}

// TickOp counts one remote call and, when err is non-nil, one failure.
func (m *Metrics) TickOp(op string, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op).Inc()
	if err != nil {
		m.opErrors.WithLabelValues(op).Inc()
	}
}

// TickLogEvents counts delivered log events.
func (m *Metrics) TickLogEvents(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.logEvents.Add(float64(n))
}
