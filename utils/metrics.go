package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitbuddy_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fitbuddy_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	WeightUpserts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitbuddy_weight_upserts_total",
			Help: "Weight entries created or overwritten",
		},
	)

	FriendLinks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitbuddy_friend_links_total",
			Help: "Friend-link attempts by outcome",
		},
		[]string{"outcome"}, // linked, duplicate, not_found, invalid
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, WeightUpserts, FriendLinks)
}
