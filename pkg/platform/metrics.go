package platform

import (
	"github.com/go-drift/animatedborder/pkg/control"
	"github.com/prometheus/client_golang/prometheus"
)

// Event dispatch outcomes, used as the "result" label.
const (
	eventDispatched     = "dispatched"
	eventUnhandled      = "unhandled"
	eventUnknownControl = "unknown_control"
)

// Metrics holds Prometheus collectors for a renderer session. A nil *Metrics
// records nothing.
type Metrics struct {
	updates    *prometheus.CounterVec // By method
	attributes prometheus.Counter
	removals   prometheus.Counter
	events     *prometheus.CounterVec // By result
	failures   *prometheus.CounterVec // By method
	mounted    prometheus.Gauge
}

// NewMetrics creates session metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "animatedborder",
			Subsystem: "session",
			Name:      "updates_total",
			Help:      "Total number of update batches sent to the renderer",
		}, []string{"method"}), // method: mountControl, applyUpdate, unmountControl

		attributes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "animatedborder",
			Subsystem: "session",
			Name:      "attributes_sent_total",
			Help:      "Total number of attribute values sent to the renderer",
		}),

		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "animatedborder",
			Subsystem: "session",
			Name:      "attributes_removed_total",
			Help:      "Total number of attribute removals sent to the renderer",
		}),

		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "animatedborder",
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Total number of renderer events received",
		}, []string{"result"}), // result: dispatched, unhandled, unknown_control

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "animatedborder",
			Subsystem: "session",
			Name:      "invoke_failures_total",
			Help:      "Total number of failed renderer invocations",
		}, []string{"method"}),

		mounted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "animatedborder",
			Subsystem: "session",
			Name:      "mounted_controls",
			Help:      "Number of root controls currently mounted",
		}),
	}

	for _, c := range []prometheus.Collector{m.updates, m.attributes, m.removals, m.events, m.failures, m.mounted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordSent(method string, updates []control.Update) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(method).Inc()
	for _, u := range updates {
		u.Walk(func(n control.Update) {
			m.attributes.Add(float64(len(n.Attrs)))
			m.removals.Add(float64(len(n.Removed)))
		})
	}
}

func (m *Metrics) recordFailure(method string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(method).Inc()
}

func (m *Metrics) recordEvent(result string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(result).Inc()
}

func (m *Metrics) setMounted(n int) {
	if m == nil {
		return
	}
	m.mounted.Set(float64(n))
}
