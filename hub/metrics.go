package hub

import "github.com/prometheus/client_golang/prometheus"

var (
	connectionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "arena",
			Subsystem: "hub",
			Name:      "connections",
			Help:      "Open websocket connections.",
		},
	)
	inboundPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "hub",
			Name:      "inbound_packets_total",
			Help:      "Packets received from clients by tag and result.",
		},
		[]string{"message", "result"},
	)
	outboundKicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "hub",
			Name:      "outbound_kicks_total",
			Help:      "Clients dropped because their outbound queue was full.",
		},
	)
)

func init() {
	prometheus.MustRegister(connectionsGauge, inboundPackets, outboundKicks)
}
