package delaunay

import (
	"math"

	"github.com/vastyellowNew/implicit-topology/geom"
)

// super is the number of internal anchor vertices.
const super = 3

type tri struct {
	a, b, c int32 // internal vertex indices
}

type edgeKey struct {
	lo, hi int32 // internal indices, lo < hi
}

// Edge is an undirected triangulation edge between two exported vertices.
type Edge struct {
	A, B int32 // exported vertex indices, A < B
}

// Triangulation is an insert-only Delaunay triangulation.
// Not safe for concurrent mutation; the computation worker owns it.
type Triangulation struct {
	pts  []geom.Vec2
	tris []tri
}

// New builds an empty triangulation able to absorb any point inside
// bounds. The super-triangle construction follows the usual recipe: an
// oversized triangle centered on the bounding box.
func New(bounds geom.Rect) *Triangulation {
	mid := geom.Mid(bounds.Min, bounds.Max)
	delta := math.Max(bounds.Width(), bounds.Height())
	if delta <= 0 {
		delta = 1
	}

	t := &Triangulation{
		// Counter-clockwise, so cavity fans inherit CCW winding.
		pts: []geom.Vec2{
			{X: mid.X - 20*delta, Y: mid.Y - delta},
			{X: mid.X + 20*delta, Y: mid.Y - delta},
			{X: mid.X, Y: mid.Y + 20*delta},
		},
	}
	t.tris = []tri{{0, 1, 2}}
	return t
}

// Len returns the number of exported vertices.
func (t *Triangulation) Len() int { return len(t.pts) - super }

// Position returns the coordinates of exported vertex i.
func (t *Triangulation) Position(i int32) geom.Vec2 { return t.pts[i+super] }

// Insert adds p and restores the Delaunay property around it, returning
// the new vertex index. Cost is O(len(triangles)) per call.
func (t *Triangulation) Insert(p geom.Vec2) int32 {
	idx := int32(len(t.pts))
	t.pts = append(t.pts, p)

	// Collect the cavity: triangles whose circumcircle contains p.
	// Boundary edges are those bordering exactly one cavity triangle.
	edgeCount := make(map[edgeKey]int)
	edgeDir := make(map[edgeKey][2]int32)
	keep := t.tris[:0]
	var cavity []tri
	for _, tr := range t.tris {
		if geom.InCircumcircle(p, t.pts[tr.a], t.pts[tr.b], t.pts[tr.c]) {
			cavity = append(cavity, tr)
			for _, e := range [3][2]int32{{tr.a, tr.b}, {tr.b, tr.c}, {tr.c, tr.a}} {
				k := keyOf(e[0], e[1])
				edgeCount[k]++
				edgeDir[k] = e
			}
		} else {
			keep = append(keep, tr)
		}
	}
	t.tris = keep

	// Fan the new point to the cavity boundary, preserving the original
	// edge orientation so triangle winding stays consistent.
	for _, cav := range cavity {
		for _, e := range [3][2]int32{{cav.a, cav.b}, {cav.b, cav.c}, {cav.c, cav.a}} {
			k := keyOf(e[0], e[1])
			if edgeCount[k] != 1 {
				continue
			}
			edgeCount[k] = 0 // each boundary edge spawns one triangle
			d := edgeDir[k]
			t.tris = append(t.tris, tri{d[0], d[1], idx})
		}
	}

	return idx - super
}

// Triangles returns the exported triangles as vertex index triples,
// excluding everything attached to the internal anchors. The order is
// deterministic for a fixed insertion sequence.
func (t *Triangulation) Triangles() [][3]int32 {
	out := make([][3]int32, 0, len(t.tris))
	for _, tr := range t.tris {
		if tr.a < super || tr.b < super || tr.c < super {
			continue
		}
		out = append(out, [3]int32{tr.a - super, tr.b - super, tr.c - super})
	}
	return out
}

// Edges returns each undirected exported edge exactly once, in
// first-encounter order over Triangles(). Deterministic for a fixed
// insertion sequence, which the refinement pass relies on.
func (t *Triangulation) Edges() []Edge {
	seen := make(map[edgeKey]struct{})
	var out []Edge
	for _, tr := range t.Triangles() {
		for _, e := range [3][2]int32{{tr[0], tr[1]}, {tr[1], tr[2]}, {tr[2], tr[0]}} {
			k := keyOf(e[0], e[1])
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, Edge{A: k.lo, B: k.hi})
		}
	}
	return out
}

func keyOf(a, b int32) edgeKey {
	if a < b {
		return edgeKey{lo: a, hi: b}
	}
	return edgeKey{lo: b, hi: a}
}
