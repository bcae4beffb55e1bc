package topology

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives phase timings from the worker. Implementations must
// be cheap; they are called once per batch and once per refinement round,
// from the worker goroutine.
type Recorder interface {
	// RecordIntegration reports one integration phase over the given
	// number of particle advections.
	RecordIntegration(d time.Duration, particles int)
	// RecordRefinement reports one refinement pass and the number of
	// seed points it produced.
	RecordRefinement(d time.Duration, inserted int)
	// RecordRun reports the total wall time of a finished run.
	RecordRun(d time.Duration)
}

// NopRecorder discards all measurements. The default.
type NopRecorder struct{}

func (NopRecorder) RecordIntegration(time.Duration, int) {}
func (NopRecorder) RecordRefinement(time.Duration, int)  {}
func (NopRecorder) RecordRun(time.Duration)              {}

// PromRecorder exposes the phase timings as Prometheus metrics.
type PromRecorder struct {
	integrationSeconds prometheus.Counter
	refinementSeconds  prometheus.Counter
	particles          prometheus.Counter
	seeds              prometheus.Counter
	runSeconds         prometheus.Histogram
}

var _ Recorder = (*PromRecorder)(nil)

// NewPromRecorder registers the engine metrics with reg and returns the
// recorder to pass via Options.Recorder.
func NewPromRecorder(reg prometheus.Registerer) *PromRecorder {
	factory := promauto.With(reg)
	return &PromRecorder{
		integrationSeconds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "integration_seconds_total",
			Help:      "Wall time spent advecting and classifying particles.",
		}),
		refinementSeconds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "refinement_seconds_total",
			Help:      "Wall time spent refining the triangulation.",
		}),
		particles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "particles_advected_total",
			Help:      "Particle advections performed, per direction.",
		}),
		seeds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "refinement_seeds_total",
			Help:      "Seed points inserted by refinement.",
		}),
		runSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "topology",
			Name:      "run_seconds",
			Help:      "Total wall time of finished computation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}

func (r *PromRecorder) RecordIntegration(d time.Duration, particles int) {
	r.integrationSeconds.Add(d.Seconds())
	r.particles.Add(float64(particles))
}

func (r *PromRecorder) RecordRefinement(d time.Duration, inserted int) {
	r.refinementSeconds.Add(d.Seconds())
	r.seeds.Add(float64(inserted))
}

func (r *PromRecorder) RecordRun(d time.Duration) {
	r.runSeconds.Observe(d.Seconds())
}
