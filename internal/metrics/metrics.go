// Package metrics holds the Prometheus collectors of the service. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

type Metrics struct {
	listingCache    *prometheus.CounterVec
	postsCreated    prometheus.Counter
	commentsCreated prometheus.Counter
	followActions   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		listingCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_cache_events_total",
			Help:      "Listing cache lookups and invalidations by result.",
		}, []string{"listing", "result"}),
		postsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Posts created.",
		}),
		commentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Comments created.",
		}),
		followActions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "follow_actions_total",
			Help:      "Follow and unfollow actions.",
		}, []string{"action"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ListingCache(listing string, result string) {
	if m == nil {
		return
	}
	m.listingCache.WithLabelValues(listing, result).Inc()
}

func (m *Metrics) PostCreated() {
	if m == nil {
		return
	}
	m.postsCreated.Inc()
}

func (m *Metrics) CommentCreated() {
	if m == nil {
		return
	}
	m.commentsCreated.Inc()
}

func (m *Metrics) FollowAction(action string) {
	if m == nil {
		return
	}
	m.followActions.WithLabelValues(action).Inc()
}

func (m *Metrics) ObserveRequest(method string, route string, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
