package grpc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "housekeeper",
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Handled unary calls by method and status code.",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "housekeeper",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Unary call latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
