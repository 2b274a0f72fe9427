// Package metrics instruments the polling loop with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder captures poll-cycle metrics. A nil Recorder is a valid no-op,
// so callers never need to branch on whether metrics are enabled.
type Recorder struct {
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	published     prometheus.Counter
	lastPublished prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaguepulse",
			Name:      "poll_cycles_total",
			Help:      "Completed poll cycles by outcome.",
		}, []string{"outcome"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leaguepulse",
			Name:      "poll_cycle_duration_seconds",
			Help:      "Wall-clock duration of a full poll cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leaguepulse",
			Name:      "snapshots_published_total",
			Help:      "Snapshots published to observers.",
		}),
		lastPublished: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "leaguepulse",
			Name:      "last_snapshot_unix_seconds",
			Help:      "Unix timestamp of the most recent published snapshot.",
		}),
	}
	reg.MustRegister(r.cycles, r.cycleDuration, r.published, r.lastPublished)
	return r
}

// RecordCycle records one completed cycle with its outcome label
// ("success" or a failure kind).
func (r *Recorder) RecordCycle(duration time.Duration, outcome string) {
	if r == nil {
		return
	}
	r.cycles.WithLabelValues(outcome).Inc()
	r.cycleDuration.Observe(duration.Seconds())
}

// RecordPublish records a snapshot publication at the given time.
func (r *Recorder) RecordPublish(at time.Time) {
	if r == nil {
		return
	}
	r.published.Inc()
	r.lastPublished.Set(float64(at.Unix()))
}
