// Package topology is the concurrent computation engine of the module:
// it owns the worker goroutine that advects particles, classifies their
// trajectories against the convergence structures, adaptively refines the
// Delaunay mesh, and publishes immutable snapshots for a consumer to poll.
//
// Lifecycle:
//
//	comp, err := topology.New(f, structures, opts)   // or NewFromSnapshot
//	err = comp.Start(params)                         // spawns the worker
//	snap, ok := comp.Poll(50 * time.Millisecond)     // get-or-timeout
//	comp.Terminate()                                 // cooperative, joins
//
// Concurrency model: exactly one worker goroutine per computation. The
// triangulation, the particle set and all result arrays are owned
// exclusively by the worker while it runs; the only cross-goroutine state
// is the atomic cancellation flag and the single snapshot slot, which is
// swapped as a whole under a short critical section. Control calls
// (Start, Terminate, Latest, Poll) are meant for a single external caller;
// concurrent Start/Terminate from several goroutines must be serialized by
// that caller. No lock is ever held across an integration or refinement
// phase.
//
// Batch loop: each batch advects every unresolved particle in both
// directions for up to Params.StepsPerBatch steps (in sub-batches of
// Params.BatchSize particles, with a cancellation check between
// sub-batches) and classifies finished trajectories. Once a round is
// fully resolved, the refinement pass proposes new seed points. A
// snapshot is published after every batch. The run ends when the step
// budget is exhausted, refinement yields nothing new, or cancellation is
// observed.
//
// Per-particle numerical failures are data, not errors: they become the
// node's termination reason and never abort a batch. A panic inside the
// worker publishes a final snapshot carrying the failure message instead
// of tearing down the process.
package topology
