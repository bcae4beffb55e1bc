// Package implicittopology computes the implicit topology of steady 2D
// vector fields: the basin decomposition induced by a set of labeled
// convergence structures (critical points, periodic orbits, obstacles,
// domain boundaries).
//
// From every node of an adaptively refined planar mesh, a streamline is
// integrated forward and backward until it approaches one of the
// convergence structures; the structure's label, the residual distance and
// the reason the integration stopped are recorded per node and direction.
// The mesh is refined wherever neighboring nodes disagree, and the whole
// computation runs on its own goroutine while publishing immutable
// intermediate snapshots a consumer may poll at any rate.
//
// The module is organized as one package per concern:
//
//	geom/      — 2D vector, rectangle and segment primitives
//	field/     — regular-grid vector field samples + bilinear interpolation
//	integrate/ — particle advection (fixed RK4, embedded RK4(5))
//	classify/  — convergence structures and trajectory classification
//	delaunay/  — incremental insertion-only Delaunay triangulation
//	topology/  — computation controller, refinement, snapshots, metrics
//	topoio/    — snapshot persistence collaborator
//	cmd/       — demo CLI driver
//
// Quick start:
//
//	f, _ := field.New(nx, ny, domain, positions, vectors)
//	comp, _ := topology.New(f, structures, topology.DefaultOptions())
//	_ = comp.Start(topology.Params{
//	    StepBudget:            10000,
//	    RefinementThreshold:   0.01,
//	    RefineAtLabels:        true,
//	    DistanceDiffThreshold: 0.01,
//	    BatchSize:             1024,
//	    StepsPerBatch:         500,
//	})
//	for {
//	    snap, ok := comp.Poll(50 * time.Millisecond)
//	    if ok && snap.Finished {
//	        break
//	    }
//	}
//
// See the doc.go in each package for algorithms, invariants and complexity.
package implicittopology
