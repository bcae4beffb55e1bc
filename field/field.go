package field

import (
	"errors"

	"github.com/vastyellowNew/implicit-topology/geom"
)

// Sentinel errors for field construction.
var (
	// ErrEmptyField indicates a resolution below 2×2 nodes.
	ErrEmptyField = errors.New("field: resolution must be at least 2x2")
	// ErrBadDomain indicates a domain rectangle without positive extent.
	ErrBadDomain = errors.New("field: domain rectangle must have positive extent")
	// ErrSampleMismatch indicates flattened arrays inconsistent with the resolution.
	ErrSampleMismatch = errors.New("field: sample array length does not match resolution")
)

// Field is a regular grid of 2D vector samples over a rectangular domain.
// Immutable after construction; safe for concurrent readers.
type Field struct {
	nx, ny    int
	domain    geom.Rect
	positions []geom.Vec2
	vectors   []geom.Vec2
}

// New validates and builds a Field from flattened input arrays.
// positions and vectors are interleaved (x0, y0, x1, y1, ...) with one
// entry per grid node, row-major with x fastest, matching the wire layout
// the vector-field collaborator delivers.
func New(nx, ny int, domain geom.Rect, positions, vectors []float64) (*Field, error) {
	if nx < 2 || ny < 2 {
		return nil, ErrEmptyField
	}
	if !domain.Valid() {
		return nil, ErrBadDomain
	}
	n := nx * ny
	if len(positions) != 2*n || len(vectors) != 2*n {
		return nil, ErrSampleMismatch
	}

	f := &Field{
		nx:        nx,
		ny:        ny,
		domain:    domain,
		positions: make([]geom.Vec2, n),
		vectors:   make([]geom.Vec2, n),
	}
	for i := 0; i < n; i++ {
		f.positions[i] = geom.Vec2{X: positions[2*i], Y: positions[2*i+1]}
		f.vectors[i] = geom.Vec2{X: vectors[2*i], Y: vectors[2*i+1]}
	}
	return f, nil
}

// Uniform builds a Field whose samples all carry the same vector v, with
// node positions on the regular grid. Used mostly by tests and the demo CLI.
func Uniform(nx, ny int, domain geom.Rect, v geom.Vec2) *Field {
	return FromFunc(nx, ny, domain, func(geom.Vec2) geom.Vec2 { return v })
}

// FromFunc samples fn at every grid node. fn must be defined on the whole
// domain rectangle.
func FromFunc(nx, ny int, domain geom.Rect, fn func(geom.Vec2) geom.Vec2) *Field {
	n := nx * ny
	f := &Field{
		nx:        nx,
		ny:        ny,
		domain:    domain,
		positions: make([]geom.Vec2, n),
		vectors:   make([]geom.Vec2, n),
	}
	dx := domain.Width() / float64(nx-1)
	dy := domain.Height() / float64(ny-1)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			p := geom.Vec2{X: domain.Min.X + float64(i)*dx, Y: domain.Min.Y + float64(j)*dy}
			f.positions[j*nx+i] = p
			f.vectors[j*nx+i] = fn(p)
		}
	}
	return f
}

// Resolution returns the number of grid nodes per direction.
func (f *Field) Resolution() (nx, ny int) { return f.nx, f.ny }

// Domain returns the domain rectangle.
func (f *Field) Domain() geom.Rect { return f.domain }

// NumNodes returns the total node count nx·ny.
func (f *Field) NumNodes() int { return f.nx * f.ny }

// Position returns the stored position of grid node (i, j).
func (f *Field) Position(i, j int) geom.Vec2 { return f.positions[j*f.nx+i] }

// Vector returns the stored vector of grid node (i, j).
func (f *Field) Vector(i, j int) geom.Vec2 { return f.vectors[j*f.nx+i] }

// SeedPositions returns a copy of all node positions, the initial seeds of
// a fresh computation.
func (f *Field) SeedPositions() []geom.Vec2 {
	out := make([]geom.Vec2, len(f.positions))
	copy(out, f.positions)
	return out
}

// Sample bilinearly interpolates the field at p. ok is false when p lies
// outside the domain rectangle; the returned vector is zero in that case.
func (f *Field) Sample(p geom.Vec2) (v geom.Vec2, ok bool) {
	if !f.domain.Contains(p) {
		return geom.Vec2{}, false
	}

	cw := f.domain.Width() / float64(f.nx-1)
	ch := f.domain.Height() / float64(f.ny-1)

	fx := (p.X - f.domain.Min.X) / cw
	fy := (p.Y - f.domain.Min.Y) / ch

	i := int(fx)
	j := int(fy)
	if i > f.nx-2 {
		i = f.nx - 2
	}
	if j > f.ny-2 {
		j = f.ny - 2
	}
	tx := fx - float64(i)
	ty := fy - float64(j)

	v00 := f.vectors[j*f.nx+i]
	v10 := f.vectors[j*f.nx+i+1]
	v01 := f.vectors[(j+1)*f.nx+i]
	v11 := f.vectors[(j+1)*f.nx+i+1]

	bottom := geom.Lerp(v00, v10, tx)
	top := geom.Lerp(v01, v11, tx)
	return geom.Lerp(bottom, top, ty), true
}
