// Package classify turns finished streamline trajectories into
// (label, distance, termination reason) triples, measured against a set of
// labeled convergence structures: points (critical points, periodic orbit
// samples) and line segments (obstacles, separatrix approximations).
//
// Capture rules:
//
//   - A trajectory reaches a convergence point when a step segment comes
//     within Options.CaptureRadius of it.
//   - It reaches a convergence line when a step segment crosses it.
//   - Among several structures touched by the same step, the one first
//     intersected along the trajectory wins: tie-break by arclength
//     order, not Euclidean proximity.
//
// Detection happens while the integrator runs: a Watcher is plugged into
// integrate.Advect as its visit callback and stops the integration at the
// first capture. Result then folds the integrator's status and any capture
// into the final triple.
//
// Termination values are stable and fit in result arrays: -1 none,
// 0 reached-structure, 1 domain-boundary, 2 max-steps, 3 numerical
// failure. Only 0 counts as valid in the derived masks.
package classify
