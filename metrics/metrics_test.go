package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))

	m.SourceFetch("video", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceFetches.WithLabelValues("video", "fallback")))

	m.WSConnected()
	m.WSConnected()
	m.WSDisconnected()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))

	m.SetBreakerState("music", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("music")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheLookup(true)
		m.SourceFetch("article", false)
		m.ChatMessage("ws")
		m.StressAnalysis("high")
		m.WSConnected()
		m.WSDisconnected()
		m.SetBreakerState("video", 0)
		m.ObserveHTTP("GET", "/api/health", "200", 0.01)
	})
}
