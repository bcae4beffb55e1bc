// Package field holds the static vector-field input of a topology
// computation: a regular grid of 2D vector samples over a rectangular
// domain, immutable for the lifetime of a run.
//
// Construction validates that the flattened sample arrays match the
// declared resolution; lookups interpolate bilinearly between the four
// surrounding grid nodes. Sampling outside the domain rectangle fails
// explicitly, which is how the integrator detects boundary exits.
//
// Grid convention: samples are stored row-major, x fastest; node (i, j)
// sits at Min + (i·W/(nx−1), j·H/(ny−1)).
package field
