// Package observability provides Prometheus metrics for the chat service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "keiko"

// Metrics holds the Prometheus instruments for chat orchestration.
// All operations are thread-safe via Prometheus's internal locking.
type Metrics struct {
	// RequestsTotal counts chat requests by mode (chat, chat_rag, stream)
	// and status (success, error).
	RequestsTotal *prometheus.CounterVec

	// CacheHits and CacheMisses count response-cache lookups on the
	// cacheable (non-RAG, non-streaming) path.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// RetrievalFailures counts fail-open retrieval errors.
	RetrievalFailures prometheus.Counter

	// FollowupFailures counts fail-open follow-up generation errors.
	FollowupFailures prometheus.Counter

	// CompletionSeconds measures primary completion latency by backend.
	CompletionSeconds *prometheus.HistogramVec
}

// New registers the chat metrics with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Chat requests by mode and status.",
		}, []string{"mode", "status"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "cache_hits_total",
			Help:      "Response cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "cache_misses_total",
			Help:      "Response cache misses.",
		}),
		RetrievalFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "retrieval_failures_total",
			Help:      "Retrieval errors degraded to un-augmented responses.",
		}),
		FollowupFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "followup_failures_total",
			Help:      "Follow-up generation errors degraded to empty lists.",
		}),
		CompletionSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "completion_seconds",
			Help:      "Primary completion latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
	}
}
