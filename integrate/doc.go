// Package integrate advects a single particle through a steady 2D vector
// field, forward or backward, using one of two Runge–Kutta schemes.
//
// Methods:
//
//   - RK4  — classic fixed-step 4-stage Runge–Kutta. The per-particle
//     timestep never changes; cheap and fully predictable.
//   - RK45 — embedded Runge–Kutta–Fehlberg 4(5). Each step produces a 4th-
//     and a 5th-order estimate; their difference is the local error. Steps
//     whose error exceeds Options.MaxError are rejected and retried with a
//     halved timestep; comfortably accurate steps double it again, within
//     [MinTimestep, MaxTimestep].
//
// Termination is reported as a Status, never as an error: leaving the
// domain rectangle, exhausting the step allowance, step-size underflow and
// non-finite arithmetic are all ordinary data-model outcomes for the
// caller to record.
//
// Determinism: Advect performs no allocation-order- or time-dependent
// work; identical (start, direction, field, options, state) inputs always
// produce the identical trajectory, which the refinement and resume logic
// depend on.
//
// The visit callback observes every accepted step segment (and once the
// start position itself) and may stop the integration early; the
// classifier uses it to detect structure captures in arclength order.
package integrate
