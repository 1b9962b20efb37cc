package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reasonOffline    = "offline"
	reasonBufferFull = "buffer_full"
)

var (
	notificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "housekeeper",
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Notifications queued on at least one connection.",
		},
		[]string{"type"},
	)

	notificationsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "housekeeper",
			Subsystem: "notifications",
			Name:      "dropped_total",
			Help:      "Notifications not delivered to a connection.",
		},
		[]string{"reason"},
	)

	connectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "housekeeper",
			Subsystem: "notifications",
			Name:      "connected_clients",
			Help:      "Open WebSocket connections.",
		},
	)
)
