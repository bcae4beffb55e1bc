package topology

import (
	"io"
	"log/slog"

	"github.com/vastyellowNew/implicit-topology/integrate"
)

// Options configures a Computation at construction time. The integration
// method, timestep and tolerance are fixed for the lifetime of the
// computation; per-run knobs live in Params.
type Options struct {
	// Integration selects the scheme, initial timestep, error tolerance
	// and step-size bounds.
	Integration integrate.Options
	// CaptureRadius is the fixed radius around convergence points within
	// which a trajectory counts as arrived.
	CaptureRadius float64
	// Logger receives structured run logging. Nil discards.
	Logger *slog.Logger
	// Recorder receives integration/refinement phase timings. Nil
	// disables recording.
	Recorder Recorder
}

// DefaultOptions returns the stock configuration: fixed-step RK4 with a
// 0.01 timestep and a 1e-3 capture radius.
func DefaultOptions() Options {
	return Options{
		Integration:   integrate.DefaultOptions(),
		CaptureRadius: 1e-3,
	}
}

// WithLogger returns o with the run logger replaced.
func (o Options) WithLogger(l *slog.Logger) Options {
	o.Logger = l
	return o
}

// WithRecorder returns o with the performance recorder replaced.
func (o Options) WithRecorder(r Recorder) Options {
	o.Recorder = r
	return o
}

// normalize fills the collaborator slots a caller left empty. Integration
// fields are filled one by one: NewFromSnapshot pre-sets method, timestep
// and tolerance from the snapshot state, and the adaptation bounds must
// still come up as the defaults rather than zero, or RK45 would freeze
// its step size on resume.
func (o Options) normalize() Options {
	def := integrate.DefaultOptions()
	if o.Integration.Timestep <= 0 {
		o.Integration.Timestep = def.Timestep
	}
	if o.Integration.MaxError <= 0 {
		o.Integration.MaxError = def.MaxError
	}
	if o.Integration.MinTimestep <= 0 {
		o.Integration.MinTimestep = def.MinTimestep
	}
	if o.Integration.MaxTimestep <= 0 {
		o.Integration.MaxTimestep = def.MaxTimestep
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Recorder == nil {
		o.Recorder = NopRecorder{}
	}
	if o.CaptureRadius <= 0 {
		o.CaptureRadius = 1e-3
	}
	return o
}
