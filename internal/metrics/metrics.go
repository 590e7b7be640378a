// Package metrics holds the Prometheus collectors for trendscout.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// UpstreamRequests counts calls to external providers by outcome.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscout_upstream_requests_total",
			Help: "Total calls to external providers, by provider, operation and outcome.",
		},
		[]string{"provider", "operation", "outcome"},
	)

	// UpstreamDuration observes provider call latency.
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendscout_upstream_request_duration_seconds",
			Help:    "Duration of calls to external providers in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	// PipelineTransitions counts sequencer stage entries.
	PipelineTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscout_pipeline_transitions_total",
			Help: "Total pipeline stage transitions, by stage entered.",
		},
		[]string{"stage"},
	)

	// PipelineSessions tracks live visitor pipelines.
	PipelineSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trendscout_pipeline_sessions",
			Help: "Number of visitor pipelines currently held in memory.",
		},
	)
)

func init() {
	prometheus.MustRegister(UpstreamRequests, UpstreamDuration, PipelineTransitions, PipelineSessions)
}

// ObserveUpstream records the outcome and latency of one provider call.
func ObserveUpstream(provider, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
	UpstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
}
