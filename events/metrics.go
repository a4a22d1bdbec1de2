package events

import "github.com/prometheus/client_golang/prometheus"

var (
	sandwichEventCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwich_events_total",
			Help: "Dispatched events by type",
		},
		[]string{"type"},
	)

	sandwichDiscardedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwich_events_discarded_total",
			Help: "Count of events that were not dispatched",
		},
		[]string{"type", "reason"},
	)

	sandwichHandlerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwich_events_handler_errors_total",
			Help: "Count of handlers that returned an error",
		},
		[]string{"type"},
	)

	sandwichEventInflightCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sandwich_events_inflight_count",
			Help: "Count of dispatch events currently being processed",
		},
	)

	sandwichDispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sandwich_events_dispatch_seconds",
			Help:    "Time taken to decode an event and run its handlers",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)
)

// Collectors returns the collectors of the package so they can be registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		sandwichEventCount,
		sandwichDiscardedEvents,
		sandwichHandlerErrors,
		sandwichEventInflightCount,
		sandwichDispatchDuration,
	}
}
