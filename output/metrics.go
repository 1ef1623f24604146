package output

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcs_output_frames_sent_total",
		Help: "DMX frames successfully handed to the transport.",
	}, []string{"transport"})

	sendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcs_output_send_errors_total",
		Help: "DMX frames the transport failed to send.",
	}, []string{"transport"})

	triggers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcs_output_triggers_total",
		Help: "Push-now requests received by the output driver.",
	}, []string{"transport"})

	sendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lcs_output_send_duration_seconds",
		Help:    "Time spent in a single transport send.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	}, []string{"transport"})

	runningDrivers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lcs_output_drivers_running",
		Help: "Output driver loops currently running.",
	})
)
