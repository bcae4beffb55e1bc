package geom

import "math"

// Eps is the degeneracy threshold for determinant-based predicates.
const Eps = 1e-12

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X, Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns s·v.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{s * v.X, s * v.Y} }

// Dot returns the dot product v·w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Cross returns the z-component of the cross product v × w.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return v.Sub(w).Norm() }

// IsFinite reports whether both coordinates are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Lerp returns the point v + t·(w−v).
func Lerp(v, w Vec2, t float64) Vec2 {
	return Vec2{v.X + t*(w.X-v.X), v.Y + t*(w.Y-v.Y)}
}

// Mid returns the midpoint of v and w.
func Mid(v, w Vec2) Vec2 {
	return Vec2{0.5 * (v.X + w.X), 0.5 * (v.Y + w.Y)}
}

// Rect is an axis-aligned rectangle given by its minimum and maximum corner.
type Rect struct {
	Min, Max Vec2
}

// NewRect builds a Rect from the four domain bounds (left, bottom, right, top).
func NewRect(left, bottom, right, top float64) Rect {
	return Rect{Min: Vec2{left, bottom}, Max: Vec2{right, top}}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Valid reports whether r has strictly positive extent in both axes.
func (r Rect) Valid() bool { return r.Width() > 0 && r.Height() > 0 }

// Contains reports whether p lies inside r, boundary included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp returns p moved to the closest point inside r.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, r.Min.X), r.Max.X),
		Y: math.Min(math.Max(p.Y, r.Min.Y), r.Max.Y),
	}
}

// BoundaryDist returns the distance from p to the boundary of r.
// Zero on the boundary; positive both inside and outside.
func (r Rect) BoundaryDist(p Vec2) float64 {
	if r.Contains(p) {
		d := math.Min(p.X-r.Min.X, r.Max.X-p.X)
		return math.Min(d, math.Min(p.Y-r.Min.Y, r.Max.Y-p.Y))
	}
	return p.Dist(r.Clamp(p))
}

// Segment is a line segment between two endpoints.
type Segment struct {
	A, B Vec2
}

// Len returns the length of the segment.
func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// Dist returns the distance from p to the closest point on s.
func (s Segment) Dist(p Vec2) float64 {
	return p.Dist(s.Closest(p))
}

// Closest returns the point on s closest to p.
func (s Segment) Closest(p Vec2) Vec2 {
	d := s.B.Sub(s.A)
	den := d.Dot(d)
	if den < Eps {
		return s.A
	}
	t := p.Sub(s.A).Dot(d) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.A.Add(d.Scale(t))
}

// Intersect computes the intersection of the segments a→b and s.
// On success it returns the intersection point and the parameter
// t ∈ [0,1] along a→b, so callers can order multiple hits along a
// trajectory step. Parallel and degenerate configurations report no hit.
func Intersect(a, b Vec2, s Segment) (p Vec2, t float64, ok bool) {
	r := b.Sub(a)
	d := s.B.Sub(s.A)
	den := r.Cross(d)
	if math.Abs(den) < Eps {
		return Vec2{}, 0, false
	}
	ca := s.A.Sub(a)
	t = ca.Cross(d) / den
	u := ca.Cross(r) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, 0, false
	}
	return a.Add(r.Scale(t)), t, true
}

// Circumcircle returns the center and squared radius of the circle through
// a, b and c. ok is false for (near-)collinear triples.
func Circumcircle(a, b, c Vec2) (center Vec2, r2 float64, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < Eps {
		return Vec2{}, 0, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	center = Vec2{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
	dx := center.X - a.X
	dy := center.Y - a.Y
	return center, dx*dx + dy*dy, true
}

// InCircumcircle reports whether p lies strictly inside the circumcircle of
// the triangle (a, b, c). Collinear triangles contain no point.
func InCircumcircle(p, a, b, c Vec2) bool {
	center, r2, ok := Circumcircle(a, b, c)
	if !ok {
		return false
	}
	dx := p.X - center.X
	dy := p.Y - center.Y
	return dx*dx+dy*dy < r2
}
