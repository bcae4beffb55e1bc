package classify

import (
	"errors"

	"github.com/vastyellowNew/implicit-topology/geom"
)

// Sentinel errors for structure construction.
var (
	// ErrBadStructure indicates flattened structure arrays inconsistent
	// with their id arrays.
	ErrBadStructure = errors.New("classify: structure array length does not match ids")
)

// NoLabel marks nodes without an associated convergence structure
// (boundary exits, numerical failures, unresolved particles).
const NoLabel int32 = -1

// Termination is the reason a single-direction integration ended.
// The numeric values are part of the serialized snapshot format.
type Termination int8

const (
	// None marks a particle still in flight; never present on a
	// finalized node.
	None Termination = -1
	// ReachedStructure: the trajectory was captured by a convergence
	// structure. The only reason counted as valid.
	ReachedStructure Termination = 0
	// DomainBoundary: the trajectory left the domain rectangle.
	DomainBoundary Termination = 1
	// MaxSteps: the step budget ran out first.
	MaxSteps Termination = 2
	// NumericalFailure: step-size underflow or non-finite arithmetic.
	NumericalFailure Termination = 3
)

// Valid reports whether the reason marks a successful classification.
func (t Termination) Valid() bool { return t == ReachedStructure }

// String returns the reason name used in logs.
func (t Termination) String() string {
	switch t {
	case None:
		return "none"
	case ReachedStructure:
		return "reached-structure"
	case DomainBoundary:
		return "domain-boundary"
	case MaxSteps:
		return "max-steps"
	case NumericalFailure:
		return "numerical-failure"
	default:
		return "unknown"
	}
}

// Point is a convergence point with its label.
type Point struct {
	Pos   geom.Vec2
	Label int32
}

// Line is a convergence line segment with its label.
type Line struct {
	Seg   geom.Segment
	Label int32
}

// Structures is the immutable set of convergence structures of a run.
type Structures struct {
	Points []Point
	Lines  []Line
}

// NewStructures builds a structure set from the flattened wire layout the
// glyph collaborator delivers: points as (x, y) pairs, lines as
// (x1, y1, x2, y2) quadruples, each with one id per entry.
func NewStructures(points []float64, pointIDs []int32, lines []float64, lineIDs []int32) (*Structures, error) {
	if len(points) != 2*len(pointIDs) || len(lines) != 4*len(lineIDs) {
		return nil, ErrBadStructure
	}

	s := &Structures{
		Points: make([]Point, len(pointIDs)),
		Lines:  make([]Line, len(lineIDs)),
	}
	for i, id := range pointIDs {
		s.Points[i] = Point{
			Pos:   geom.Vec2{X: points[2*i], Y: points[2*i+1]},
			Label: id,
		}
	}
	for i, id := range lineIDs {
		s.Lines[i] = Line{
			Seg: geom.Segment{
				A: geom.Vec2{X: lines[4*i], Y: lines[4*i+1]},
				B: geom.Vec2{X: lines[4*i+2], Y: lines[4*i+3]},
			},
			Label: id,
		}
	}
	return s, nil
}

// Empty reports whether the set contains no structures at all.
func (s *Structures) Empty() bool {
	return len(s.Points) == 0 && len(s.Lines) == 0
}

// Nearest returns the label of the structure closest to p and the distance
// to it. With an empty set it returns (NoLabel, 0).
func (s *Structures) Nearest(p geom.Vec2) (label int32, dist float64) {
	label = NoLabel
	dist = 0
	first := true
	for _, pt := range s.Points {
		if d := p.Dist(pt.Pos); first || d < dist {
			label, dist, first = pt.Label, d, false
		}
	}
	for _, ln := range s.Lines {
		if d := ln.Seg.Dist(p); first || d < dist {
			label, dist, first = ln.Label, d, false
		}
	}
	return label, dist
}

// Options configures capture detection.
type Options struct {
	// CaptureRadius is the fixed radius around convergence points within
	// which a trajectory counts as arrived.
	CaptureRadius float64
}

// DefaultOptions returns the default capture radius of 1e-3.
func DefaultOptions() Options {
	return Options{CaptureRadius: 1e-3}
}
