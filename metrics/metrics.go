// Package metrics Prometheus指标，方法在nil接收者上为空操作
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "serenity"

// Metrics 服务的全部Prometheus指标
type Metrics struct {
	// 推荐缓存
	CacheLookups *prometheus.CounterVec

	// 内容源
	SourceFetches *prometheus.CounterVec
	BreakerState  *prometheus.GaugeVec

	// 聊天与压力检测
	ChatMessages   *prometheus.CounterVec
	StressAnalyses *prometheus.CounterVec
	WSConnections  prometheus.Gauge

	// HTTP
	HTTPRequests *prometheus.HistogramVec
}

// New 创建并注册指标，reg为nil时使用默认注册器
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Recommendation cache lookups by result",
		}, []string{"result"}),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetches_total",
			Help:      "Content source fetches by source and outcome (live or fallback)",
		}, []string{"source", "outcome"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Current state of circuit breaker (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),
		ChatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages handled by transport",
		}, []string{"transport"}),
		StressAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stress_analyses_total",
			Help:      "Stress analyses by resulting level",
		}, []string{"level"}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections_active",
			Help:      "Active chat WebSocket connections",
		}),
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.CacheLookups,
		m.SourceFetches,
		m.BreakerState,
		m.ChatMessages,
		m.StressAnalyses,
		m.WSConnections,
		m.HTTPRequests,
	)
	return m
}

// CacheLookup 记录一次缓存查询
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// SourceFetch 记录一次内容源调用，fallback表示使用了静态内容
func (m *Metrics) SourceFetch(source string, fallback bool) {
	if m == nil {
		return
	}
	outcome := "live"
	if fallback {
		outcome = "fallback"
	}
	m.SourceFetches.WithLabelValues(source, outcome).Inc()
}

// SetBreakerState 记录熔断器状态
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// ChatMessage 记录一条聊天消息
func (m *Metrics) ChatMessage(transport string) {
	if m == nil {
		return
	}
	m.ChatMessages.WithLabelValues(transport).Inc()
}

// StressAnalysis 记录一次压力检测
func (m *Metrics) StressAnalysis(level string) {
	if m == nil {
		return
	}
	m.StressAnalyses.WithLabelValues(level).Inc()
}

// WSConnected 连接数加一
func (m *Metrics) WSConnected() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// WSDisconnected 连接数减一
func (m *Metrics) WSDisconnected() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

// ObserveHTTP 记录请求耗时
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Observe(seconds)
}
