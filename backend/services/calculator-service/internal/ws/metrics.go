package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gas_live_connections",
		Help: "Open live calculator connections.",
	})

	liveMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gas_live_messages_total",
		Help: "Live calculator messages by calculator and status.",
	}, []string{"calculator", "status"})
)
