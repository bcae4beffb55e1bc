// Package geom provides the small set of planar primitives shared by the
// implicit-topology packages: 2D vectors, axis-aligned rectangles and line
// segments, plus the predicates the mesh and classifier need (segment
// intersection, point-segment distance, triangle circumcircles).
//
// All operations are pure value computations on float64 coordinates; there
// is no hidden state and no allocation beyond the returned values.
//
// Precision policy: predicates that divide by a near-zero determinant
// (Intersect, Circumcircle) treat |det| < Eps as degenerate and report
// failure instead of returning non-finite results.
package geom
