package internal

import (
	"github.com/WelcomerTeam/Sandwich-Events/events"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sandwichStateStickerCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sandwich_events_state_sticker_count",
			Help: "Number of stickers in state",
		},
	)

	sandwichConsumedPayloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwich_events_consumed_payloads_total",
			Help: "Payloads received from the consumer",
		},
		[]string{"consumer"},
	)

	sandwichHTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwich_events_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	sandwichInteractionResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwich_events_interaction_responses_total",
			Help: "Responses sent by the interactions endpoint by kind",
		},
		[]string{"kind"},
	)
)

// newRegistry returns a registry holding the collectors of the daemon and the dispatcher.
func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		sandwichStateStickerCount,
		sandwichConsumedPayloads,
		sandwichHTTPRequests,
		sandwichInteractionResponses,
	)

	registry.MustRegister(events.Collectors()...)

	return registry
}
