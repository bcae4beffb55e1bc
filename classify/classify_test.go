package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastyellowNew/implicit-topology/classify"
	"github.com/vastyellowNew/implicit-topology/geom"
	"github.com/vastyellowNew/implicit-topology/integrate"
)

// TestNewStructures_Validation rejects mismatched flattened arrays.
func TestNewStructures_Validation(t *testing.T) {
	_, err := classify.NewStructures([]float64{1, 2, 3}, []int32{0}, nil, nil)
	assert.ErrorIs(t, err, classify.ErrBadStructure, "odd point array")

	_, err = classify.NewStructures(nil, nil, []float64{0, 0, 1}, []int32{7})
	assert.ErrorIs(t, err, classify.ErrBadStructure, "short line array")

	s, err := classify.NewStructures([]float64{0.5, 0.5}, []int32{3},
		[]float64{0, 0, 1, 0}, []int32{4})
	require.NoError(t, err)
	assert.Len(t, s.Points, 1)
	assert.Len(t, s.Lines, 1)
	assert.False(t, s.Empty())
}

// TestNearest picks the closest structure across points and lines.
func TestNearest(t *testing.T) {
	s, err := classify.NewStructures(
		[]float64{0, 0}, []int32{1},
		[]float64{2, -1, 2, 1}, []int32{2},
	)
	require.NoError(t, err)

	label, dist := s.Nearest(geom.Vec2{X: 0.5, Y: 0})
	assert.Equal(t, int32(1), label)
	assert.InDelta(t, 0.5, dist, 1e-12)

	label, dist = s.Nearest(geom.Vec2{X: 1.8, Y: 0})
	assert.Equal(t, int32(2), label)
	assert.InDelta(t, 0.2, dist, 1e-12)

	empty := &classify.Structures{}
	label, dist = empty.Nearest(geom.Vec2{})
	assert.Equal(t, classify.NoLabel, label)
	assert.Equal(t, 0.0, dist)
}

// TestWatcher_PointCapture: a step segment passing within the capture
// radius of a point counts as reached, even if the endpoint is farther.
func TestWatcher_PointCapture(t *testing.T) {
	s, _ := classify.NewStructures([]float64{0.5, 0.0005}, []int32{9}, nil, nil)
	c := classify.New(s, classify.DefaultOptions())

	w := c.Watch()
	assert.False(t, w.Visit(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0.2, Y: 0}))
	assert.True(t, w.Visit(geom.Vec2{X: 0.2, Y: 0}, geom.Vec2{X: 0.8, Y: 0}),
		"closest approach under the radius")

	label, dist, reason := w.Result(geom.Vec2{X: 0.8, Y: 0}, integrate.StatusCaptured)
	assert.Equal(t, int32(9), label)
	assert.Equal(t, classify.ReachedStructure, reason)
	assert.InDelta(t, 0.3, dist, 1e-3, "residual distance from endpoint to the point")
}

// TestWatcher_SeedInsideRadius: the degenerate (start, start) visit
// captures a seed already sitting on a structure.
func TestWatcher_SeedInsideRadius(t *testing.T) {
	s, _ := classify.NewStructures([]float64{0.5, 0.5}, []int32{3}, nil, nil)
	c := classify.New(s, classify.DefaultOptions())

	w := c.Watch()
	p := geom.Vec2{X: 0.5, Y: 0.5005}
	require.True(t, w.Visit(p, p))

	label, dist, reason := w.Result(p, integrate.StatusCaptured)
	assert.Equal(t, int32(3), label)
	assert.Equal(t, classify.ReachedStructure, reason)
	assert.InDelta(t, 0.0005, dist, 1e-12)
}

// TestWatcher_LineCrossing detects segment crossings and records the
// residual distance to the crossing point.
func TestWatcher_LineCrossing(t *testing.T) {
	s, _ := classify.NewStructures(nil, nil, []float64{0.5, -1, 0.5, 1}, []int32{4})
	c := classify.New(s, classify.DefaultOptions())

	w := c.Watch()
	assert.True(t, w.Visit(geom.Vec2{X: 0.4, Y: 0}, geom.Vec2{X: 0.6, Y: 0}))

	label, dist, reason := w.Result(geom.Vec2{X: 0.6, Y: 0}, integrate.StatusCaptured)
	assert.Equal(t, int32(4), label)
	assert.Equal(t, classify.ReachedStructure, reason)
	assert.InDelta(t, 0.1, dist, 1e-12)
}

// TestWatcher_ArclengthTieBreak: when one step touches two structures, the
// one crossed first along the trajectory wins, not the one nearer to the
// endpoint.
func TestWatcher_ArclengthTieBreak(t *testing.T) {
	// Line at x=0.3 is crossed before the point at (0.9, 0), although the
	// endpoint (1, 0) is much closer to the point.
	s, _ := classify.NewStructures(
		[]float64{0.9, 0}, []int32{1},
		[]float64{0.3, -1, 0.3, 1}, []int32{2},
	)
	c := classify.New(s, classify.DefaultOptions())

	w := c.Watch()
	require.True(t, w.Visit(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0}))

	label, _, reason := w.Result(geom.Vec2{X: 1, Y: 0}, integrate.StatusCaptured)
	assert.Equal(t, int32(2), label, "first crossing along arclength wins")
	assert.Equal(t, classify.ReachedStructure, reason)
}

// TestWatcher_NonCaptureOutcomes maps the remaining integrator statuses.
func TestWatcher_NonCaptureOutcomes(t *testing.T) {
	s, _ := classify.NewStructures([]float64{0, 0}, []int32{5}, nil, nil)
	c := classify.New(s, classify.DefaultOptions())

	label, dist, reason := c.Watch().Result(geom.Vec2{X: 1, Y: 0}, integrate.StatusBoundary)
	assert.Equal(t, classify.NoLabel, label)
	assert.Equal(t, 0.0, dist)
	assert.Equal(t, classify.DomainBoundary, reason)
	assert.False(t, reason.Valid())

	label, dist, reason = c.Watch().Result(geom.Vec2{X: 3, Y: 4}, integrate.StatusSteps)
	assert.Equal(t, int32(5), label, "max-steps records the nearest structure")
	assert.InDelta(t, 5.0, dist, 1e-12)
	assert.Equal(t, classify.MaxSteps, reason)

	label, _, reason = c.Watch().Result(geom.Vec2{X: 1, Y: 1}, integrate.StatusUnderflow)
	assert.Equal(t, classify.NoLabel, label)
	assert.Equal(t, classify.NumericalFailure, reason)
}

// TestTermination_Strings pins the log names and the validity rule.
func TestTermination_Strings(t *testing.T) {
	assert.Equal(t, "reached-structure", classify.ReachedStructure.String())
	assert.Equal(t, "domain-boundary", classify.DomainBoundary.String())
	assert.Equal(t, "max-steps", classify.MaxSteps.String())
	assert.Equal(t, "numerical-failure", classify.NumericalFailure.String())
	assert.Equal(t, "none", classify.None.String())
	assert.True(t, classify.ReachedStructure.Valid())
	assert.False(t, classify.None.Valid())
}
