package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route, method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)

	// SkillExtractionsTotal counts skill extraction calls by outcome (ok, empty, failed).
	SkillExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_skill_extractions_total",
			Help: "Total number of AI skill extraction calls.",
		},
		[]string{"outcome"},
	)

	// ListingsPublishedTotal counts new listings by source (user, inbox).
	ListingsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_listings_published_total",
			Help: "Total number of listings published.",
		},
		[]string{"source"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "uplift_active_sessions",
			Help: "Number of open login sessions.",
		},
	)
)
