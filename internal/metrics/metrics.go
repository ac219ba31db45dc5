package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_upstream_requests_total",
		Help: "Total number of calls made to upstream APIs, by outcome status.",
	},
		[]string{"api", "method", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frontend_upstream_request_duration_seconds",
		Help:    "Latency of calls made to upstream APIs.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"api"},
	)

	TokenCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_token_cache_hits_total",
		Help: "Total number of bearer tokens served from cache.",
	},
		[]string{"api"},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_token_refreshes_total",
		Help: "Total number of token requests sent to upstream auth endpoints.",
	},
		[]string{"api", "result"},
	)

	ActionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_action_failures_total",
		Help: "Total number of UI actions answered with success=false.",
	},
		[]string{"action"},
	)
)
