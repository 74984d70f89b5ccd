package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors exposed on the debug server's /metrics endpoint.
var (
	ConnectedPeers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "chat",
		Name:      "connected_peers",
		Help:      "Number of registered peer sessions.",
	})

	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat",
		Name:      "messages_total",
		Help:      "Chat messages appended to the transcript.",
	})

	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat",
		Name:      "broadcasts_total",
		Help:      "Broadcast operations performed by the registry.",
	})

	DroppedDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chat",
		Name:      "dropped_deliveries_total",
		Help:      "Broadcast deliveries dropped because the peer mailbox was already closed.",
	})
)
