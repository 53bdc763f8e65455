package controller

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess         = "success"
	outcomeFailed          = "failed"
	outcomeMissingInput    = "missing_input"
	outcomePayloadTooLarge = "payload_too_large"
	outcomeSuperseded      = "superseded"
)

// Metrics records transcription outcomes. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsync_transcriptions_total",
			Help: "Transcription submissions by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wsync_transcription_duration_seconds",
			Help:    "Time spent waiting for the transcription service.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}

func (m *Metrics) count(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.latency.Observe(elapsed.Seconds())
}
