package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuctionsFinalized counts auctions moved to ended by the sweep
	AuctionsFinalized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auctions_finalized_total",
			Help: "Total number of auctions finalized by the sweep",
		},
	)

	// AuctionsActivated counts scheduled auctions activated by the sweep
	AuctionsActivated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auctions_activated_total",
			Help: "Total number of auctions activated by the sweep",
		},
	)

	// SweepFailures counts sweep invocations that returned an error
	SweepFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_failures_total",
			Help: "Total number of failed sweep invocations",
		},
	)

	// SweepDuration observes how long each sweep invocation takes
	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of sweep invocations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RateLimitDenials counts denied requests per throttling policy
	RateLimitDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_denials_total",
			Help: "Total number of requests denied by rate limiting",
		},
		[]string{"policy"},
	)

	// CheckoutSessions counts checkout session creations by outcome
	CheckoutSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Total number of checkout session attempts",
		},
		[]string{"outcome"},
	)
)

// Register registers all application metrics with the default registry
func Register() {
	prometheus.MustRegister(
		AuctionsFinalized,
		AuctionsActivated,
		SweepFailures,
		SweepDuration,
		RateLimitDenials,
		CheckoutSessions,
	)
}

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
