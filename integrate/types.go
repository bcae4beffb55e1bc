package integrate

// Method selects the integration scheme.
type Method int

const (
	// RK4 is the fixed-step 4-stage Runge–Kutta scheme.
	RK4 Method = iota
	// RK45 is the embedded Runge–Kutta–Fehlberg 4(5) scheme with
	// error-driven step-size adaptation.
	RK45
)

// String returns the scheme name used in logs and serialized state.
func (m Method) String() string {
	switch m {
	case RK4:
		return "rk4"
	case RK45:
		return "rk45"
	default:
		return "unknown"
	}
}

// Direction selects forward or backward advection. Backward integration
// follows the negated field.
type Direction int

const (
	// Forward integrates along the field vectors.
	Forward Direction = iota
	// Backward integrates against the field vectors.
	Backward
)

// Sign returns +1 for Forward and −1 for Backward.
func (d Direction) Sign() float64 {
	if d == Backward {
		return -1
	}
	return 1
}

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Status is the outcome of an Advect call.
type Status int

const (
	// StatusSteps: the step allowance was used up with the particle still
	// inside the domain and uncaptured.
	StatusSteps Status = iota
	// StatusCaptured: the visit callback stopped the integration.
	StatusCaptured
	// StatusBoundary: the trajectory left the domain rectangle.
	StatusBoundary
	// StatusUnderflow: RK45 halved the timestep below Options.MinTimestep
	// without meeting the error tolerance.
	StatusUnderflow
	// StatusNonFinite: a step produced NaN or Inf coordinates.
	StatusNonFinite
)

// Options configures the integrator. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// Method selects RK4 or RK45.
	Method Method
	// Timestep is the initial (RK4: constant) integration timestep.
	Timestep float64
	// MaxError is the local error tolerance for RK45. Ignored by RK4.
	MaxError float64
	// MinTimestep and MaxTimestep bound RK45 step adaptation.
	MinTimestep, MaxTimestep float64
}

// DefaultOptions returns classic fixed-step RK4 defaults: timestep 0.01,
// max error 1e-6, adaptation bounded four decades around the initial step.
func DefaultOptions() Options {
	return Options{
		Method:      RK4,
		Timestep:    0.01,
		MaxError:    1e-6,
		MinTimestep: 1e-6,
		MaxTimestep: 1.0,
	}
}

// State is the mutable per-particle integrator state. Each particle owns
// one State per direction; RK45 adapts Timestep in place so a trajectory
// can be suspended and resumed bit-exactly.
type State struct {
	// Timestep is the step size the next step will attempt.
	Timestep float64
}

// NewState returns the initial per-particle state for opts.
func NewState(opts Options) State {
	return State{Timestep: opts.Timestep}
}
