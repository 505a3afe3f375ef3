// Package metrics exposes loop activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.LoopObserver = (*Recorder)(nil)

// Tick result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder implements driven.LoopObserver using Prometheus metrics.
// A nil *Recorder is a valid no-op observer.
type Recorder struct {
	running      *prom.GaugeVec
	ticks        *prom.CounterVec
	tickDuration *prom.HistogramVec
	purged       prom.Counter
}

// NewRecorder constructs the metrics and registers them with reg.
// A nil reg uses a fresh registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		running: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "autoprofile",
			Name:      "loop_running",
			Help:      "Whether the feature loop is running (1) or stopped (0)",
		}, []string{"feature"}),
		ticks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "autoprofile",
			Name:      "ticks_total",
			Help:      "Profile mutations by feature and result",
		}, []string{"feature", "result"}),
		tickDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "autoprofile",
			Name:      "tick_duration_seconds",
			Help:      "Duration of successful profile mutations",
			Buckets:   prom.DefBuckets,
		}, []string{"feature"}),
		purged: prom.NewCounter(prom.CounterOpts{
			Namespace: "autoprofile",
			Name:      "photos_purged_total",
			Help:      "Profile photos removed by purge commands",
		}),
	}
	reg.MustRegister(r.running, r.ticks, r.tickDuration, r.purged)

	for _, f := range domain.AllFeatures() {
		r.running.WithLabelValues(f.String()).Set(0)
	}
	return r
}

func (r *Recorder) LoopStarted(feature domain.Feature) {
	if r == nil {
		return
	}
	r.running.WithLabelValues(feature.String()).Set(1)
}

func (r *Recorder) LoopStopped(feature domain.Feature) {
	if r == nil {
		return
	}
	r.running.WithLabelValues(feature.String()).Set(0)
}

func (r *Recorder) TickSucceeded(feature domain.Feature, took time.Duration) {
	if r == nil {
		return
	}
	r.ticks.WithLabelValues(feature.String(), ResultSuccess).Inc()
	r.tickDuration.WithLabelValues(feature.String()).Observe(took.Seconds())
}

func (r *Recorder) TickFailed(feature domain.Feature, _ error) {
	if r == nil {
		return
	}
	r.ticks.WithLabelValues(feature.String(), ResultFailure).Inc()
}

func (r *Recorder) PhotosPurged(count int) {
	if r == nil || count <= 0 {
		return
	}
	r.purged.Add(float64(count))
}

// Handler returns an http.Handler that serves the metrics in reg.
func Handler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
