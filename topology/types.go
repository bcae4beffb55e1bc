package topology

import (
	"fmt"

	"github.com/vastyellowNew/implicit-topology/classify"
	"github.com/vastyellowNew/implicit-topology/geom"
	"github.com/vastyellowNew/implicit-topology/integrate"
)

// Params are the per-run control parameters passed to Start.
type Params struct {
	// StepBudget is the total number of integration steps a single
	// trajectory may spend, accumulated across batches. Seeds inserted
	// by refinement start with a full budget of their own, so a run's
	// total step count may exceed StepBudget.
	StepBudget int
	// RefinementThreshold is the minimum edge length; edges at or below
	// it are never split, which bounds the number of refinement rounds.
	RefinementThreshold float64
	// RefineAtLabels requests refinement where neighboring nodes carry
	// different labels in either direction.
	RefineAtLabels bool
	// DistanceDiffThreshold triggers refinement when the distance values
	// of an edge's endpoints differ by more than this in either direction.
	DistanceDiffThreshold float64
	// BatchSize is the number of particles advected per sub-batch;
	// cancellation is checked between sub-batches.
	BatchSize int
	// StepsPerBatch is the number of integration steps per batch, after
	// which a new intermediate snapshot is published.
	StepsPerBatch int
}

// Validate reports the first malformed parameter, wrapped in ErrBadParams.
func (p Params) Validate() error {
	switch {
	case p.StepBudget <= 0:
		return fmt.Errorf("%w: step budget must be positive", ErrBadParams)
	case p.RefinementThreshold <= 0:
		return fmt.Errorf("%w: refinement threshold must be positive", ErrBadParams)
	case p.DistanceDiffThreshold < 0:
		return fmt.Errorf("%w: distance difference threshold must not be negative", ErrBadParams)
	case p.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive", ErrBadParams)
	case p.StepsPerBatch <= 0:
		return fmt.Errorf("%w: steps per batch must be positive", ErrBadParams)
	}
	return nil
}

// State is the serializable integrator state of a run. Together with the
// node data of the snapshot it carries, it allows exact resumption.
type State struct {
	// Method is the integration scheme of the run.
	Method integrate.Method
	// Timestep is the initial integration timestep.
	Timestep float64
	// MaxError is the RK45 local error tolerance.
	MaxError float64
	// StepsPerformed counts the batch step slices granted so far over the
	// whole run; per-trajectory accounting lives in DirectionData.Steps.
	StepsPerformed int
}

// DirectionData bundles the per-node result arrays of one integration
// direction. All slices are indexed by vertex and share one length.
type DirectionData struct {
	// Labels holds the convergence structure label per node, or
	// classify.NoLabel.
	Labels []int32
	// Distances holds the residual distance per node; always >= 0.
	Distances []float64
	// Terminations holds the reason integration stopped per node;
	// classify.None while a particle is still in flight.
	Terminations []classify.Termination
	// Endpoints holds the current (or final) trajectory position per node.
	Endpoints []geom.Vec2
	// Timesteps holds the per-particle integrator timestep, so adaptive
	// trajectories resume bit-exactly.
	Timesteps []float64
	// Steps holds the integration steps spent per trajectory, counted
	// against Params.StepBudget. int64 so the counter cannot truncate
	// under an arbitrarily large budget.
	Steps []int64
}

func (d *DirectionData) clone() DirectionData {
	out := DirectionData{
		Labels:       make([]int32, len(d.Labels)),
		Distances:    make([]float64, len(d.Distances)),
		Terminations: make([]classify.Termination, len(d.Terminations)),
		Endpoints:    make([]geom.Vec2, len(d.Endpoints)),
		Timesteps:    make([]float64, len(d.Timesteps)),
		Steps:        make([]int64, len(d.Steps)),
	}
	copy(out.Labels, d.Labels)
	copy(out.Distances, d.Distances)
	copy(out.Terminations, d.Terminations)
	copy(out.Endpoints, d.Endpoints)
	copy(out.Timesteps, d.Timesteps)
	copy(out.Steps, d.Steps)
	return out
}

func (d *DirectionData) consistent(n int) bool {
	return len(d.Labels) == n && len(d.Distances) == n && len(d.Terminations) == n &&
		len(d.Endpoints) == n && len(d.Timesteps) == n && len(d.Steps) == n
}

// Snapshot is an immutable, internally consistent bundle of the mesh and
// all per-node results at one point of the run. Snapshots are never
// mutated after publication; every batch installs a fresh one.
type Snapshot struct {
	// Vertices holds all node positions.
	Vertices []geom.Vec2
	// Indices holds the triangulation as vertex index triples.
	Indices []int32
	// Forward and Backward hold the per-direction result arrays.
	Forward, Backward DirectionData
	// State is the serializable integrator state.
	State State
	// Finished marks the last snapshot of a run.
	Finished bool
	// Failure carries the message of an unrecoverable worker failure;
	// empty on a clean run.
	Failure string

	seq uint64 // publication sequence, assigned by the slot
}

// NumNodes returns the number of mesh nodes.
func (s *Snapshot) NumNodes() int { return len(s.Vertices) }

// NumTriangles returns the number of mesh triangles.
func (s *Snapshot) NumTriangles() int { return len(s.Indices) / 3 }

// Consistent verifies all arrays agree on the node count and all indices
// are in range.
func (s *Snapshot) Consistent() bool {
	n := len(s.Vertices)
	if !s.Forward.consistent(n) || !s.Backward.consistent(n) {
		return false
	}
	if len(s.Indices)%3 != 0 {
		return false
	}
	for _, ix := range s.Indices {
		if ix < 0 || int(ix) >= n {
			return false
		}
	}
	return true
}
