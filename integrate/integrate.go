package integrate

import (
	"github.com/vastyellowNew/implicit-topology/field"
	"github.com/vastyellowNew/implicit-topology/geom"
)

// VisitFunc observes one accepted step segment from prev to next.
// Returning true stops the integration with StatusCaptured.
type VisitFunc func(prev, next geom.Vec2) bool

// Result describes a finished (or suspended) advection.
type Result struct {
	// End is the final particle position. On a boundary exit it is the
	// predicted position clipped to the domain rectangle.
	End geom.Vec2
	// Arclength accumulated over all accepted steps.
	Arclength float64
	// Steps is the number of accepted integration steps.
	Steps int
	// Status is the reason the advection returned.
	Status Status
}

// internal per-step outcome
type stepStatus int

const (
	stepOK stepStatus = iota
	stepBoundary
	stepUnderflow
	stepNonFinite
)

// Advect integrates a particle from start for at most maxSteps accepted
// steps, mutating st so the trajectory can be continued by a later call
// with the same arguments. The visit callback is invoked once with
// (start, start) before the first step, so a seed already sitting on a
// convergence structure is captured without advancing, and then once per
// accepted step.
func Advect(f *field.Field, start geom.Vec2, dir Direction, st *State, opts Options, maxSteps int, visit VisitFunc) Result {
	res := Result{End: start, Status: StatusSteps}

	if visit != nil && visit(start, start) {
		res.Status = StatusCaptured
		return res
	}

	pos := start
	for res.Steps < maxSteps {
		var next geom.Vec2
		var stat stepStatus

		if opts.Method == RK45 {
			next, stat = stepRK45(f, pos, dir.Sign(), st, opts)
		} else {
			next, stat = stepRK4(f, pos, dir.Sign(), st.Timestep)
		}

		switch stat {
		case stepBoundary:
			exit := f.Domain().Clamp(next)
			res.Steps++
			res.Arclength += pos.Dist(exit)
			res.End = exit
			res.Status = StatusBoundary
			return res
		case stepUnderflow:
			res.End = pos
			res.Status = StatusUnderflow
			return res
		case stepNonFinite:
			res.End = pos
			res.Status = StatusNonFinite
			return res
		}

		res.Steps++
		res.Arclength += pos.Dist(next)
		res.End = next

		if visit != nil && visit(pos, next) {
			res.Status = StatusCaptured
			return res
		}
		pos = next
	}

	return res
}

// stepRK4 performs one classic 4-stage Runge–Kutta step of size h.
func stepRK4(f *field.Field, p geom.Vec2, sign, h float64) (geom.Vec2, stepStatus) {
	k1, ok := eval(f, p, sign)
	if !ok {
		return p, stepBoundary
	}
	k2, ok := eval(f, p.Add(k1.Scale(h/2)), sign)
	if !ok {
		return euler(p, k1, h), stepBoundary
	}
	k3, ok := eval(f, p.Add(k2.Scale(h/2)), sign)
	if !ok {
		return euler(p, k1, h), stepBoundary
	}
	k4, ok := eval(f, p.Add(k3.Scale(h)), sign)
	if !ok {
		return euler(p, k1, h), stepBoundary
	}

	next := p.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(h / 6))
	if !next.IsFinite() {
		return p, stepNonFinite
	}
	if !f.Domain().Contains(next) {
		return next, stepBoundary
	}
	return next, stepOK
}

// Runge–Kutta–Fehlberg 4(5) stage coefficients.
var (
	rkfA = [6]float64{0, 1.0 / 4, 3.0 / 8, 12.0 / 13, 1, 1.0 / 2}
	rkfB = [6][5]float64{
		{},
		{1.0 / 4},
		{3.0 / 32, 9.0 / 32},
		{1932.0 / 2197, -7200.0 / 2197, 7296.0 / 2197},
		{439.0 / 216, -8, 3680.0 / 513, -845.0 / 4104},
		{-8.0 / 27, 2, -3544.0 / 2565, 1859.0 / 4104, -11.0 / 40},
	}
	rkfC4 = [6]float64{25.0 / 216, 0, 1408.0 / 2565, 2197.0 / 4104, -1.0 / 5, 0}
	rkfC5 = [6]float64{16.0 / 135, 0, 6656.0 / 12825, 28561.0 / 56430, -9.0 / 50, 2.0 / 55}
)

// growThreshold: steps this far under tolerance double the timestep.
const growThreshold = 1.0 / 64

// stepRK45 performs one embedded 4(5) step, rejecting and halving until
// the local error estimate meets opts.MaxError. The accepted solution is
// the 5th-order one.
func stepRK45(f *field.Field, p geom.Vec2, sign float64, st *State, opts Options) (geom.Vec2, stepStatus) {
	for {
		h := st.Timestep

		var k [6]geom.Vec2
		for i := 0; i < 6; i++ {
			q := p
			for j := 0; j < i; j++ {
				q = q.Add(k[j].Scale(h * rkfB[i][j]))
			}
			ki, ok := eval(f, q, sign)
			if !ok {
				// A stage left the domain: report a boundary exit along
				// the first-stage direction.
				if i == 0 {
					return p, stepBoundary
				}
				return euler(p, k[0], h), stepBoundary
			}
			k[i] = ki
		}

		var y4, y5 geom.Vec2 = p, p
		for i := 0; i < 6; i++ {
			y4 = y4.Add(k[i].Scale(h * rkfC4[i]))
			y5 = y5.Add(k[i].Scale(h * rkfC5[i]))
		}
		if !y4.IsFinite() || !y5.IsFinite() {
			return p, stepNonFinite
		}

		if err := y5.Dist(y4); err > opts.MaxError {
			if h/2 < opts.MinTimestep {
				return p, stepUnderflow
			}
			st.Timestep = h / 2
			continue
		} else if err < opts.MaxError*growThreshold && h*2 <= opts.MaxTimestep {
			st.Timestep = h * 2
		}

		if !f.Domain().Contains(y5) {
			return y5, stepBoundary
		}
		return y5, stepOK
	}
}

// eval samples the (possibly negated) field at p.
func eval(f *field.Field, p geom.Vec2, sign float64) (geom.Vec2, bool) {
	v, ok := f.Sample(p)
	if !ok {
		return geom.Vec2{}, false
	}
	return v.Scale(sign), true
}

// euler predicts the exit position for a step whose later stages sampled
// outside the domain.
func euler(p, k geom.Vec2, h float64) geom.Vec2 {
	return p.Add(k.Scale(h))
}
