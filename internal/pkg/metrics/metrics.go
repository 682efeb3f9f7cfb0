package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CardsGenerated counts successfully rendered cards by style.
	CardsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_card_cards_generated_total",
			Help: "Number of wallet cards rendered, partitioned by card style.",
		},
		[]string{"style"},
	)

	// UpstreamRequestDuration observes the latency of data provider calls.
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_card_upstream_request_duration_seconds",
			Help:    "Latency of outbound data provider requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// UpstreamErrors counts failed data provider calls.
	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_card_upstream_errors_total",
			Help: "Number of failed outbound data provider requests.",
		},
		[]string{"endpoint"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once from main before the server starts.
func MustRegisterMetrics() {
	prometheus.MustRegister(CardsGenerated, UpstreamRequestDuration, UpstreamErrors)
}
