package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counts(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ListingCache("global", "hit")
	m.ListingCache("global", "hit")
	m.PostCreated()
	m.FollowAction("follow")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.listingCache.WithLabelValues("global", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.postsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.followActions.WithLabelValues("follow")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.commentsCreated))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ListingCache("global", "miss")
		m.PostCreated()
		m.CommentCreated()
		m.FollowAction("unfollow")
		m.ObserveRequest("GET", "/api/v1/posts", "200", 0.01)
	})
}
