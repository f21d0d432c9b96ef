package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "tick_seconds",
			Help:      "Time spent advancing and broadcasting one tick.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .016, .025, .05, .1},
		},
	)
	snakesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "snakes",
			Help:      "Live snakes after the last tick.",
		},
	)
	foodGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "food",
			Help:      "Food pellets after the last tick.",
		},
	)
)

func init() {
	prometheus.MustRegister(tickDuration, snakesGauge, foodGauge)
}
