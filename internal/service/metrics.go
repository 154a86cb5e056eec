package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts cart operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
	events     *prometheus.CounterVec
}

// NewMetrics registers the cart collectors on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_operations_total",
				Help:      "Cart operations by type and result code",
			},
			[]string{"operation", "result"},
		),
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_events_failed_total",
				Help:      "Cart events that could not be published",
			},
			[]string{"event"},
		),
	}
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, resultCode(err)).Inc()
}

func (m *Metrics) eventFailed(event string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(event).Inc()
}
