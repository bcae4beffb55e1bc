// Package delaunay maintains a Delaunay triangulation of a growing point
// set by incremental Bowyer–Watson insertion: for each new point, every
// triangle whose circumcircle contains it is removed, and the resulting
// cavity is re-triangulated by fanning the point to the cavity boundary.
//
// The triangulation is insert-only, which is all the adaptive refinement
// needs, and it keeps the per-round cost at O(T) per insertion instead of
// re-triangulating the whole node set.
//
// Three synthetic "super-triangle" vertices far outside the domain anchor
// the structure internally; exported vertices, triangles and edges never
// include them. Vertex indices are dense, assigned in insertion order, and
// stable for the lifetime of the triangulation, so callers can key
// per-node data arrays by them.
package delaunay
