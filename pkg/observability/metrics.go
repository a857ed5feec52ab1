package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "asciivideo"

var (
	FramesConverted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "frames_converted_total",
		Help:      "Frames decoded, rasterized and appended to a frame store.",
	})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "frames_rendered_total",
		Help:      "Frames written to the terminal.",
	})
	FramesLate = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "frames_late_total",
		Help:      "Frames whose rendering took at least the frame interval.",
	})
	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "render_duration_seconds",
		Help:      "Time spent writing a single frame to the terminal.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
)
