package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vastyellowNew/implicit-topology/geom"
)

// TestVec2_Ops exercises the basic vector arithmetic identities.
func TestVec2_Ops(t *testing.T) {
	v := geom.Vec2{X: 3, Y: 4}
	w := geom.Vec2{X: -1, Y: 2}

	assert.Equal(t, geom.Vec2{X: 2, Y: 6}, v.Add(w))
	assert.Equal(t, geom.Vec2{X: 4, Y: 2}, v.Sub(w))
	assert.Equal(t, geom.Vec2{X: 6, Y: 8}, v.Scale(2))
	assert.Equal(t, 5.0, v.Norm(), "3-4-5 triangle")
	assert.Equal(t, 5.0, v.Dot(w))
	assert.Equal(t, 10.0, v.Cross(w))
	assert.True(t, v.IsFinite())
	assert.False(t, geom.Vec2{X: math.NaN()}.IsFinite())
	assert.False(t, geom.Vec2{Y: math.Inf(1)}.IsFinite())
}

// TestRect_ContainsClamp verifies boundary inclusion and clamping.
func TestRect_ContainsClamp(t *testing.T) {
	r := geom.NewRect(0, 0, 2, 1)

	assert.True(t, r.Valid())
	assert.True(t, r.Contains(geom.Vec2{X: 0, Y: 0}), "boundary counts as inside")
	assert.True(t, r.Contains(geom.Vec2{X: 2, Y: 1}))
	assert.False(t, r.Contains(geom.Vec2{X: 2.001, Y: 0.5}))

	assert.Equal(t, geom.Vec2{X: 2, Y: 0.5}, r.Clamp(geom.Vec2{X: 3, Y: 0.5}))
	assert.Equal(t, geom.Vec2{X: 0.5, Y: 0}, r.Clamp(geom.Vec2{X: 0.5, Y: -1}))
}

// TestRect_BoundaryDist checks the distance-to-boundary convention:
// zero on the boundary, positive elsewhere.
func TestRect_BoundaryDist(t *testing.T) {
	r := geom.NewRect(0, 0, 4, 4)

	assert.Equal(t, 0.0, r.BoundaryDist(geom.Vec2{X: 0, Y: 2}))
	assert.Equal(t, 1.0, r.BoundaryDist(geom.Vec2{X: 1, Y: 2}))
	assert.Equal(t, 2.0, r.BoundaryDist(geom.Vec2{X: 2, Y: 2}), "center is min over sides")
	assert.Equal(t, 3.0, r.BoundaryDist(geom.Vec2{X: 7, Y: 2}), "outside uses clamp distance")
}

// TestSegment_Dist verifies point-segment distance against hand-computed cases.
func TestSegment_Dist(t *testing.T) {
	s := geom.Segment{A: geom.Vec2{X: 0, Y: 0}, B: geom.Vec2{X: 2, Y: 0}}

	assert.Equal(t, 1.0, s.Dist(geom.Vec2{X: 1, Y: 1}), "perpendicular foot inside")
	assert.Equal(t, 1.0, s.Dist(geom.Vec2{X: 3, Y: 0}), "clamped to endpoint B")
	assert.Equal(t, math.Sqrt2, s.Dist(geom.Vec2{X: -1, Y: 1}), "clamped to endpoint A")
	assert.Equal(t, 2.0, s.Len())
}

// TestIntersect covers a proper crossing, a miss, and the parallel case.
func TestIntersect(t *testing.T) {
	s := geom.Segment{A: geom.Vec2{X: 0, Y: -1}, B: geom.Vec2{X: 0, Y: 1}}

	p, tt, ok := geom.Intersect(geom.Vec2{X: -1, Y: 0}, geom.Vec2{X: 1, Y: 0}, s)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, tt, 1e-15, "crossing at segment midpoint parameter")
	assert.InDelta(t, 0.0, p.X, 1e-15)
	assert.InDelta(t, 0.0, p.Y, 1e-15)

	_, _, ok = geom.Intersect(geom.Vec2{X: 1, Y: 2}, geom.Vec2{X: 3, Y: 2}, s)
	assert.False(t, ok, "trajectory step far from segment")

	_, _, ok = geom.Intersect(geom.Vec2{X: 1, Y: -1}, geom.Vec2{X: 1, Y: 1}, s)
	assert.False(t, ok, "parallel segments never intersect")
}

// TestCircumcircle checks center/radius of a right triangle and the
// degenerate collinear case.
func TestCircumcircle(t *testing.T) {
	a := geom.Vec2{X: 0, Y: 0}
	b := geom.Vec2{X: 2, Y: 0}
	c := geom.Vec2{X: 0, Y: 2}

	center, r2, ok := geom.Circumcircle(a, b, c)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, center.X, 1e-12)
	assert.InDelta(t, 1.0, center.Y, 1e-12)
	assert.InDelta(t, 2.0, r2, 1e-12, "hypotenuse midpoint circle")

	_, _, ok = geom.Circumcircle(a, geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 2, Y: 2})
	assert.False(t, ok, "collinear points have no circumcircle")
}

// TestInCircumcircle verifies the strict-inside predicate used by the
// Bowyer–Watson insertion.
func TestInCircumcircle(t *testing.T) {
	a := geom.Vec2{X: 0, Y: 0}
	b := geom.Vec2{X: 2, Y: 0}
	c := geom.Vec2{X: 0, Y: 2}

	assert.True(t, geom.InCircumcircle(geom.Vec2{X: 1, Y: 1}, a, b, c))
	assert.False(t, geom.InCircumcircle(geom.Vec2{X: 3, Y: 3}, a, b, c))
	assert.False(t, geom.InCircumcircle(geom.Vec2{X: 2, Y: 0}, a, b, c), "on-circle is not inside")
}
