package topology

import "errors"

// Sentinel errors for controller operations.
var (
	// ErrNilField indicates New was called without a vector field.
	ErrNilField = errors.New("topology: vector field must not be nil")
	// ErrAlreadyRunning indicates Start was called while a worker is active.
	ErrAlreadyRunning = errors.New("topology: computation already running")
	// ErrBadParams indicates malformed run parameters; Start never launches.
	ErrBadParams = errors.New("topology: bad run parameters")
	// ErrBadSnapshot indicates a resume snapshot with inconsistent arrays.
	ErrBadSnapshot = errors.New("topology: malformed resume snapshot")
)
