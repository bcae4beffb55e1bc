package topology

import (
	"fmt"
	"math"
	"time"

	"github.com/vastyellowNew/implicit-topology/classify"
	"github.com/vastyellowNew/implicit-topology/delaunay"
	"github.com/vastyellowNew/implicit-topology/geom"
	"github.com/vastyellowNew/implicit-topology/integrate"
)

// particle is one unresolved trajectory. Owned exclusively by the worker.
type particle struct {
	node  int32
	dir   integrate.Direction
	pos   geom.Vec2
	steps int
	ist   integrate.State
}

// run is the worker-owned state of one computation run.
type run struct {
	p        Params
	tri      *delaunay.Triangulation
	verts    []geom.Vec2
	occupied map[geom.Vec2]struct{}
	fwd      DirectionData
	bwd      DirectionData
	active   []particle
	state    State
}

// newRun builds the worker state, either from the field's seed grid or
// from a resume snapshot.
func (c *Computation) newRun(p Params) (*run, error) {
	r := &run{
		p:        p,
		occupied: make(map[geom.Vec2]struct{}),
		tri:      delaunay.New(c.field.Domain()),
		state: State{
			Method:   c.opts.Integration.Method,
			Timestep: c.opts.Integration.Timestep,
			MaxError: c.opts.Integration.MaxError,
		},
	}

	if c.resume == nil {
		for _, seed := range c.field.SeedPositions() {
			r.addNode(seed, c.opts.Integration.Timestep)
		}
		return r, nil
	}

	// Resume: re-insert the vertices in their original order (the
	// triangulation is deterministic in insertion order), keep all
	// finalized classifications, and re-arm in-flight particles with
	// their stored endpoint, step count and timestep.
	snap := c.resume
	r.state = snap.State
	r.verts = make([]geom.Vec2, len(snap.Vertices))
	copy(r.verts, snap.Vertices)
	for _, v := range r.verts {
		r.tri.Insert(v)
		r.occupied[v] = struct{}{}
	}
	r.fwd = snap.Forward.clone()
	r.bwd = snap.Backward.clone()

	for node := range r.verts {
		for _, dir := range []integrate.Direction{integrate.Forward, integrate.Backward} {
			d := r.dir(dir)
			if d.Terminations[node] != classify.None {
				continue
			}
			r.active = append(r.active, particle{
				node:  int32(node),
				dir:   dir,
				pos:   d.Endpoints[node],
				steps: int(d.Steps[node]),
				ist:   integrate.State{Timestep: d.Timesteps[node]},
			})
		}
	}
	return r, nil
}

// dir returns the result arrays of one direction.
func (r *run) dir(d integrate.Direction) *DirectionData {
	if d == integrate.Backward {
		return &r.bwd
	}
	return &r.fwd
}

// addNode inserts a mesh node with unresolved results in both directions
// and arms its two particles.
func (r *run) addNode(p geom.Vec2, timestep float64) {
	idx := r.tri.Insert(p)
	r.verts = append(r.verts, p)
	r.occupied[p] = struct{}{}

	for _, d := range []*DirectionData{&r.fwd, &r.bwd} {
		d.Labels = append(d.Labels, classify.NoLabel)
		d.Distances = append(d.Distances, 0)
		d.Terminations = append(d.Terminations, classify.None)
		d.Endpoints = append(d.Endpoints, p)
		d.Timesteps = append(d.Timesteps, timestep)
		d.Steps = append(d.Steps, 0)
	}

	r.active = append(r.active,
		particle{node: idx, dir: integrate.Forward, pos: p, ist: integrate.State{Timestep: timestep}},
		particle{node: idx, dir: integrate.Backward, pos: p, ist: integrate.State{Timestep: timestep}},
	)
}

// runWorker is the worker goroutine. It owns r exclusively; the only
// shared state it touches is the snapshot slot and the cancel flag.
func (c *Computation) runWorker(r *run) {
	started := time.Now()
	defer func() {
		if p := recover(); p != nil {
			c.opts.Logger.Error("topology worker failed", "run", c.id, "cause", fmt.Sprint(p))
			snap := r.snapshot(true)
			snap.Failure = fmt.Sprint(p)
			c.results.publish(snap)
		}
		c.opts.Recorder.RecordRun(time.Since(started))
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		close(c.done)
	}()

	// Publish the initial mesh so consumers see the seed grid (or the
	// resumed state) before the first batch completes.
	c.results.publish(r.snapshot(false))

	for round := 0; ; {
		if c.cancel.Load() {
			c.opts.Logger.Info("topology computation cancelled", "run", c.id, "nodes", len(r.verts))
			c.results.publish(r.snapshot(true))
			return
		}

		t0 := time.Now()
		advected := c.advanceBatch(r)
		c.opts.Recorder.RecordIntegration(time.Since(t0), advected)
		r.state.StepsPerformed += r.p.StepsPerBatch

		if len(r.active) == 0 {
			t0 = time.Now()
			seeds := r.refineSeeds()
			c.opts.Recorder.RecordRefinement(time.Since(t0), len(seeds))

			if len(seeds) == 0 {
				c.opts.Logger.Info("topology computation finished",
					"run", c.id, "nodes", len(r.verts), "rounds", round)
				c.results.publish(r.snapshot(true))
				return
			}

			round++
			c.opts.Logger.Info("refinement round",
				"run", c.id, "round", round, "new_seeds", len(seeds), "nodes", len(r.verts))
			for _, s := range seeds {
				r.addNode(s, c.opts.Integration.Timestep)
			}
		}

		c.results.publish(r.snapshot(false))
	}
}

// advanceBatch advects every active particle for up to StepsPerBatch
// steps (bounded by its remaining budget), finalizing the ones that
// terminate. Cancellation is honored between sub-batches of BatchSize
// particles; unprocessed particles simply stay active. Returns the number
// of advections performed.
func (c *Computation) advanceBatch(r *run) int {
	advected := 0
	aborted := false
	still := r.active[:0]

	for i := range r.active {
		pt := &r.active[i]

		if aborted || (i > 0 && i%r.p.BatchSize == 0 && c.cancel.Load()) {
			aborted = true
			still = append(still, *pt)
			continue
		}

		maxSteps := r.p.StepsPerBatch
		if rem := r.p.StepBudget - pt.steps; rem < maxSteps {
			maxSteps = rem
		}

		w := c.classifier.Watch()
		res := integrate.Advect(c.field, pt.pos, pt.dir, &pt.ist, c.opts.Integration, maxSteps, w.Visit)
		advected++

		pt.pos = res.End
		pt.steps += res.Steps

		d := r.dir(pt.dir)
		d.Endpoints[pt.node] = res.End
		d.Timesteps[pt.node] = pt.ist.Timestep
		d.Steps[pt.node] = int64(pt.steps)

		if res.Status == integrate.StatusSteps && pt.steps < r.p.StepBudget {
			still = append(still, *pt)
			continue
		}

		// StatusSteps with an exhausted budget maps to max-steps; the
		// other statuses carry their own reason. Numerical failures are
		// absorbed here, never propagated as errors.
		label, dist, reason := w.Result(res.End, res.Status)
		d.Labels[pt.node] = label
		d.Distances[pt.node] = dist
		d.Terminations[pt.node] = reason
	}

	r.active = still
	return advected
}

// refineSeeds scans every triangulation edge once a round is fully
// resolved and proposes midpoints of edges whose endpoints disagree.
// RefinementThreshold is a hard floor: edges at or below it are never
// split, so the number of refinement rounds is bounded.
func (r *run) refineSeeds() []geom.Vec2 {
	var seeds []geom.Vec2
	seen := make(map[geom.Vec2]struct{})

	for _, e := range r.tri.Edges() {
		pa, pb := r.verts[e.A], r.verts[e.B]
		if pa.Dist(pb) <= r.p.RefinementThreshold {
			continue
		}
		if !r.edgeDisagrees(e.A, e.B) {
			continue
		}
		mid := geom.Mid(pa, pb)
		if _, dup := seen[mid]; dup {
			continue
		}
		// Symmetric meshes can propose a midpoint that already is a
		// vertex; inserting it again would degenerate the triangulation.
		if _, taken := r.occupied[mid]; taken {
			continue
		}
		seen[mid] = struct{}{}
		seeds = append(seeds, mid)
	}
	return seeds
}

// edgeDisagrees applies the refinement criteria to one edge: differing
// labels in either direction (if enabled), or a distance difference
// beyond the threshold in either direction.
func (r *run) edgeDisagrees(a, b int32) bool {
	if r.p.RefineAtLabels &&
		(r.fwd.Labels[a] != r.fwd.Labels[b] || r.bwd.Labels[a] != r.bwd.Labels[b]) {
		return true
	}
	if math.Abs(r.fwd.Distances[a]-r.fwd.Distances[b]) > r.p.DistanceDiffThreshold {
		return true
	}
	return math.Abs(r.bwd.Distances[a]-r.bwd.Distances[b]) > r.p.DistanceDiffThreshold
}

// snapshot builds a fresh immutable snapshot of the current state.
func (r *run) snapshot(finished bool) *Snapshot {
	verts := make([]geom.Vec2, len(r.verts))
	copy(verts, r.verts)

	tris := r.tri.Triangles()
	indices := make([]int32, 0, 3*len(tris))
	for _, t := range tris {
		indices = append(indices, t[0], t[1], t[2])
	}

	return &Snapshot{
		Vertices: verts,
		Indices:  indices,
		Forward:  r.fwd.clone(),
		Backward: r.bwd.clone(),
		State:    r.state,
		Finished: finished,
	}
}
