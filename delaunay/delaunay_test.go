package delaunay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastyellowNew/implicit-topology/delaunay"
	"github.com/vastyellowNew/implicit-topology/geom"
)

func unitSquare() geom.Rect { return geom.NewRect(0, 0, 1, 1) }

// insertAll inserts points in order and returns their indices.
func insertAll(t *delaunay.Triangulation, pts ...geom.Vec2) []int32 {
	idx := make([]int32, len(pts))
	for i, p := range pts {
		idx[i] = t.Insert(p)
	}
	return idx
}

// TestInsert_Indices: indices are dense, in insertion order, and positions
// are retrievable by them.
func TestInsert_Indices(t *testing.T) {
	tr := delaunay.New(unitSquare())
	assert.Equal(t, 0, tr.Len())

	pts := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	idx := insertAll(tr, pts...)

	assert.Equal(t, []int32{0, 1, 2, 3}, idx)
	require.Equal(t, 4, tr.Len())
	for i, p := range pts {
		assert.Equal(t, p, tr.Position(int32(i)))
	}
}

// TestTriangles_Square: four corner points triangulate into exactly two
// triangles covering the square, with no anchor vertices leaking out.
func TestTriangles_Square(t *testing.T) {
	tr := delaunay.New(unitSquare())
	insertAll(tr,
		geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0},
		geom.Vec2{X: 0, Y: 1}, geom.Vec2{X: 1, Y: 1})

	tris := tr.Triangles()
	require.Len(t, tris, 2)
	for _, tri := range tris {
		for _, v := range tri {
			assert.GreaterOrEqual(t, v, int32(0))
			assert.Less(t, v, int32(4))
		}
	}

	// The two triangles share exactly one edge: 5 unique edges total.
	assert.Len(t, tr.Edges(), 5)
}

// TestTriangles_DelaunayProperty: no exported vertex lies strictly inside
// the circumcircle of any exported triangle.
func TestTriangles_DelaunayProperty(t *testing.T) {
	tr := delaunay.New(unitSquare())
	pts := []geom.Vec2{
		{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.15}, {X: 0.5, Y: 0.9},
		{X: 0.3, Y: 0.5}, {X: 0.7, Y: 0.6}, {X: 0.5, Y: 0.2},
		{X: 0.15, Y: 0.8}, {X: 0.85, Y: 0.85},
	}
	insertAll(tr, pts...)

	for _, tri := range tr.Triangles() {
		a, b, c := tr.Position(tri[0]), tr.Position(tri[1]), tr.Position(tri[2])
		for i := range pts {
			if int32(i) == tri[0] || int32(i) == tri[1] || int32(i) == tri[2] {
				continue
			}
			assert.False(t, geom.InCircumcircle(tr.Position(int32(i)), a, b, c),
				"vertex %d inside circumcircle of %v", i, tri)
		}
	}
}

// TestInsert_GrowthIsMonotone: inserting never invalidates existing vertex
// indices and only grows the vertex set.
func TestInsert_GrowthIsMonotone(t *testing.T) {
	tr := delaunay.New(unitSquare())
	insertAll(tr, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0}, geom.Vec2{X: 0.5, Y: 1})

	before := make([]geom.Vec2, tr.Len())
	for i := range before {
		before[i] = tr.Position(int32(i))
	}

	tr.Insert(geom.Vec2{X: 0.5, Y: 0.4})
	require.Equal(t, len(before)+1, tr.Len())
	for i := range before {
		assert.Equal(t, before[i], tr.Position(int32(i)), "index %d remapped", i)
	}
}

// TestEdges_Deterministic: identical insertion sequences yield identical
// edge enumeration order.
func TestEdges_Deterministic(t *testing.T) {
	build := func() []delaunay.Edge {
		tr := delaunay.New(unitSquare())
		insertAll(tr,
			geom.Vec2{X: 0.2, Y: 0.3}, geom.Vec2{X: 0.8, Y: 0.25},
			geom.Vec2{X: 0.5, Y: 0.8}, geom.Vec2{X: 0.4, Y: 0.45},
			geom.Vec2{X: 0.6, Y: 0.55})
		return tr.Edges()
	}

	assert.Equal(t, build(), build())
}

// TestTriangles_GridCoverage: a regular grid triangulates with the
// expected triangle count 2·(nx−1)·(ny−1).
func TestTriangles_GridCoverage(t *testing.T) {
	tr := delaunay.New(unitSquare())
	const n = 4
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			tr.Insert(geom.Vec2{X: float64(i) / (n - 1), Y: float64(j) / (n - 1)})
		}
	}

	assert.Equal(t, n*n, tr.Len())
	assert.Len(t, tr.Triangles(), 2*(n-1)*(n-1))
}
