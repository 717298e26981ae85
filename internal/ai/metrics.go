package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// modelCalls counts model invocations by provider and result (ok|error).
	modelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_calls_total",
			Help: "Total model backend invocations by provider and result.",
		},
		[]string{"provider", "result"},
	)

	// modelLat records model invocation duration in seconds by provider.
	// Buckets stretch far beyond the HTTP defaults because local inference
	// can run into minutes.
	modelLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_call_duration_seconds",
			Help:    "Duration of model backend invocations in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(modelCalls, modelLat)
}

// observeCall records one completed Generate call.
func observeCall(provider string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	modelCalls.WithLabelValues(provider, result).Inc()
	modelLat.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
