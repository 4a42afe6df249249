package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_requests_handled_total",
			Help: "Total number of time requests handled by intent",
		},
		[]string{"intent"},
	)

	RequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_requests_failed_total",
			Help: "Total number of time requests that failed by intent",
		},
		[]string{"intent", "error_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "skill_request_duration_seconds",
			Help: "Duration of request handling in seconds",
		},
		[]string{"intent"},
	)

	GeolocationLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_geolocation_lookups_total",
			Help: "Total number of geolocation lookups by outcome",
		},
		[]string{"outcome"},
	)

	CacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_tts_cache_refreshes_total",
			Help: "Total number of speech pre-cache refreshes by outcome",
		},
		[]string{"outcome"},
	)
)
