package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opSet    = "set"
	opUpdate = "update"
	opDelete = "delete"
)

var (
	documentWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "housekeeper",
			Subsystem: "documents",
			Name:      "writes_total",
			Help:      "Successful document writes.",
		},
		[]string{"op"},
	)

	triggersFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "housekeeper",
			Subsystem: "triggers",
			Name:      "fired_total",
			Help:      "Notifications derived from document writes.",
		},
		[]string{"type"},
	)
)
