package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	inferenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classifyd",
			Subsystem: "inference",
			Name:      "total",
			Help:      "Inference requests by outcome (accepted, rejected, failed, busy)",
		},
		[]string{"outcome"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "classifyd",
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Predictor latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)

	inferenceInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "classifyd",
			Subsystem: "inference",
			Name:      "inflight",
			Help:      "Inferences currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(inferenceTotal, inferenceDuration, inferenceInflight)
}
