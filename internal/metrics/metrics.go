// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gposync_http_requests_total",
			Help: "Total number of HTTP requests by API section, method and status",
		},
		[]string{"section", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gposync_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"section"},
	)

	SubscriptionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gposync_subscription_changes_total",
			Help: "Subscription rows added or removed",
		},
		[]string{"op"}, // "add", "remove"
	)

	EpisodeActions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gposync_episode_actions_ingested_total",
			Help: "Episode actions stored",
		},
	)

	LoginHandshakes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gposync_login_handshakes_total",
			Help: "NextCloud login flow events",
		},
		[]string{"stage"}, // "start", "resolve", "poll"
	)
)

// RecordRequest records one finished HTTP request.
func RecordRequest(section, method string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(section, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(section).Observe(elapsed.Seconds())
}
