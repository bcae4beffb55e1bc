package classify

import (
	"github.com/vastyellowNew/implicit-topology/geom"
	"github.com/vastyellowNew/implicit-topology/integrate"
)

// Classifier detects structure captures for a fixed structure set.
// Safe for concurrent use; per-trajectory state lives in Watcher.
type Classifier struct {
	structures *Structures
	opts       Options
}

// New builds a Classifier over s.
func New(s *Structures, opts Options) *Classifier {
	return &Classifier{structures: s, opts: opts}
}

// Structures returns the structure set the classifier works against.
func (c *Classifier) Structures() *Structures { return c.structures }

// Watch starts a fresh per-trajectory watcher. Plug its Visit method into
// integrate.Advect as the visit callback.
func (c *Classifier) Watch() *Watcher {
	return &Watcher{c: c}
}

// Watcher accumulates capture state for one trajectory in one direction.
type Watcher struct {
	c      *Classifier
	hit    bool
	label  int32
	target geom.Vec2
}

// Visit inspects the step segment prev→next and reports whether a
// convergence structure was reached. The structure first intersected
// along the segment wins; with equal parameters, points win over lines
// and input order decides.
func (w *Watcher) Visit(prev, next geom.Vec2) bool {
	bestT := 2.0 // beyond any valid parameter in [0,1]
	d := next.Sub(prev)
	den := d.Dot(d)

	for _, pt := range w.c.structures.Points {
		// Closest approach of the segment to the point.
		t := 0.0
		if den > geom.Eps {
			t = pt.Pos.Sub(prev).Dot(d) / den
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		if geom.Lerp(prev, next, t).Dist(pt.Pos) <= w.c.opts.CaptureRadius && t < bestT {
			bestT = t
			w.label = pt.Label
			w.target = pt.Pos
		}
	}

	for _, ln := range w.c.structures.Lines {
		if p, t, ok := geom.Intersect(prev, next, ln.Seg); ok && t < bestT {
			bestT = t
			w.label = ln.Label
			w.target = p
		}
	}

	w.hit = bestT <= 1
	return w.hit
}

// Captured reports whether the watcher has seen a capture.
func (w *Watcher) Captured() bool { return w.hit }

// Result folds the integration status and any capture into the final
// classification of the trajectory ending at end.
//
//   - captured:          structure label, residual distance to the capture point
//   - domain boundary:   NoLabel, distance 0 (the exit lies on the boundary)
//   - max steps:         nearest structure's label and residual distance
//   - numerical failure: NoLabel, residual distance at the last position
func (w *Watcher) Result(end geom.Vec2, status integrate.Status) (label int32, distance float64, reason Termination) {
	switch status {
	case integrate.StatusCaptured:
		return w.label, end.Dist(w.target), ReachedStructure
	case integrate.StatusBoundary:
		return NoLabel, 0, DomainBoundary
	case integrate.StatusUnderflow, integrate.StatusNonFinite:
		_, d := w.c.structures.Nearest(end)
		return NoLabel, d, NumericalFailure
	default:
		l, d := w.c.structures.Nearest(end)
		return l, d, MaxSteps
	}
}
