package topology

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vastyellowNew/implicit-topology/classify"
	"github.com/vastyellowNew/implicit-topology/field"
)

// Computation owns one topology run: its input data, the worker
// goroutine, the cancellation flag and the snapshot slot.
type Computation struct {
	field      *field.Field
	structures *classify.Structures
	classifier *classify.Classifier
	opts       Options
	resume     *Snapshot

	id string // run identifier carried in every log record

	mu      sync.Mutex
	running bool
	done    chan struct{}
	cancel  atomic.Bool

	results *slot
	polled  uint64 // consumer-side: sequence of the last Poll result
}

// New validates the inputs and builds a fresh computation. structures may
// be nil for a run without convergence structures (every trajectory then
// ends at the boundary or the step budget).
func New(f *field.Field, structures *classify.Structures, opts Options) (*Computation, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if structures == nil {
		structures = &classify.Structures{}
	}
	opts = opts.normalize()

	return &Computation{
		field:      f,
		structures: structures,
		classifier: classify.New(structures, classify.Options{CaptureRadius: opts.CaptureRadius}),
		opts:       opts,
		id:         uuid.NewString(),
		results:    newSlot(),
	}, nil
}

// NewFromSnapshot builds a computation that resumes from a previously
// published snapshot: finalized nodes keep their classification, nodes
// still in flight continue their trajectories exactly where they stopped.
// The integration method, timestep and tolerance are restored from the
// snapshot's state.
func NewFromSnapshot(f *field.Field, structures *classify.Structures, snap *Snapshot, opts Options) (*Computation, error) {
	if snap == nil || !snap.Consistent() || snap.NumNodes() == 0 {
		return nil, ErrBadSnapshot
	}

	opts.Integration.Method = snap.State.Method
	opts.Integration.Timestep = snap.State.Timestep
	opts.Integration.MaxError = snap.State.MaxError

	c, err := New(f, structures, opts)
	if err != nil {
		return nil, err
	}
	c.resume = snap
	return c, nil
}

// Start validates params, spawns the worker goroutine and returns
// immediately. It fails with ErrAlreadyRunning while a worker is active;
// the running computation is left undisturbed.
func (c *Computation) Start(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return ErrAlreadyRunning
	}

	r, err := c.newRun(p)
	if err != nil {
		return err
	}

	c.running = true
	c.done = make(chan struct{})
	c.cancel.Store(false)

	c.opts.Logger.Info("topology computation started",
		"run", c.id,
		"nodes", len(r.verts),
		"method", c.opts.Integration.Method.String(),
		"step_budget", p.StepBudget,
		"steps_per_batch", p.StepsPerBatch,
		"batch_size", p.BatchSize,
		"refinement_threshold", p.RefinementThreshold,
		"refine_at_labels", p.RefineAtLabels)

	go c.runWorker(r)
	return nil
}

// Terminate requests cooperative cancellation and waits for the worker to
// exit; latency is bounded by one batch's duration. Safe to call when not
// running, and idempotent.
func (c *Computation) Terminate() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	done := c.done
	c.mu.Unlock()

	c.cancel.Store(true)
	<-done
}

// Latest returns the most recently published snapshot without blocking,
// or false if none exists yet.
func (c *Computation) Latest() (*Snapshot, bool) {
	return c.results.latest()
}

// Poll returns the next snapshot not yet seen by Poll, waiting at most
// timeout for one to be published. The caller's event loop is never
// stalled beyond timeout.
func (c *Computation) Poll(timeout time.Duration) (*Snapshot, bool) {
	snap, ok := c.results.await(c.polled, timeout)
	if !ok {
		return nil, false
	}
	c.polled = snap.seq
	return snap, true
}

// Running reports whether a worker goroutine is currently active.
func (c *Computation) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
