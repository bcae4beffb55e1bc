package topology

import (
	"math"

	"github.com/vastyellowNew/implicit-topology/classify"
)

// Mask selects which nodes of a snapshot count as valid for rendering or
// further analysis. A node is valid in one direction when its trajectory
// reached a convergence structure; boundary exits, exhausted budgets and
// numerical failures are all invalid.
type Mask int

const (
	// MaskForward accepts nodes whose forward trajectory reached a structure.
	MaskForward Mask = iota
	// MaskBackward accepts nodes whose backward trajectory reached a structure.
	MaskBackward
	// MaskBoth accepts nodes valid in both directions.
	MaskBoth
	// MaskEither accepts nodes valid in at least one direction.
	MaskEither
)

// Valid returns one validity flag per node under the given mask.
func (s *Snapshot) Valid(m Mask) []bool {
	out := make([]bool, s.NumNodes())
	for i := range out {
		fw := s.Forward.Terminations[i] == classify.ReachedStructure
		bw := s.Backward.Terminations[i] == classify.ReachedStructure
		switch m {
		case MaskForward:
			out[i] = fw
		case MaskBackward:
			out[i] = bw
		case MaskBoth:
			out[i] = fw && bw
		case MaskEither:
			out[i] = fw || bw
		}
	}
	return out
}

// CombinedLabels merges the forward and backward label of every node into
// one implicit topology segment id. Nodes sharing the same unordered pair
// of end labels share an id; ids are dense and assigned in node order
// starting at zero. The second return is the number of distinct ids.
func (s *Snapshot) CombinedLabels() ([]int32, int) {
	type pair struct{ lo, hi int32 }

	ids := make(map[pair]int32)
	out := make([]int32, s.NumNodes())
	for i := range out {
		lo, hi := s.Forward.Labels[i], s.Backward.Labels[i]
		if lo > hi {
			lo, hi = hi, lo
		}
		key := pair{lo, hi}
		id, ok := ids[key]
		if !ok {
			id = int32(len(ids))
			ids[key] = id
		}
		out[i] = id
	}
	return out, len(ids)
}

// CombinedDistances folds both residual distances per node into one
// value, sqrt(df^2+db^2)/sqrt(2), so a node equally far in both
// directions keeps that distance.
func (s *Snapshot) CombinedDistances() []float64 {
	out := make([]float64, s.NumNodes())
	for i := range out {
		df, db := s.Forward.Distances[i], s.Backward.Distances[i]
		out[i] = math.Sqrt(df*df+db*db) / math.Sqrt2
	}
	return out
}

// DistanceGradients estimates, per node, the steepest distance change
// toward any mesh neighbor: the maximum of |d(a)-d(b)| / |a-b| over
// incident edges. Returned for the forward, backward and combined
// distance fields. Isolated nodes get zero.
func (s *Snapshot) DistanceGradients() (fwd, bwd, combined []float64) {
	fwd = s.gradients(s.Forward.Distances)
	bwd = s.gradients(s.Backward.Distances)
	combined = s.gradients(s.CombinedDistances())
	return fwd, bwd, combined
}

func (s *Snapshot) gradients(values []float64) []float64 {
	out := make([]float64, s.NumNodes())

	type edge struct{ a, b int32 }
	seen := make(map[edge]struct{})
	visit := func(a, b int32) {
		if a > b {
			a, b = b, a
		}
		if _, dup := seen[edge{a, b}]; dup {
			return
		}
		seen[edge{a, b}] = struct{}{}

		length := s.Vertices[a].Dist(s.Vertices[b])
		if length <= 0 {
			return
		}
		g := math.Abs(values[a]-values[b]) / length
		if g > out[a] {
			out[a] = g
		}
		if g > out[b] {
			out[b] = g
		}
	}

	for i := 0; i+2 < len(s.Indices); i += 3 {
		a, b, c := s.Indices[i], s.Indices[i+1], s.Indices[i+2]
		visit(a, b)
		visit(b, c)
		visit(c, a)
	}
	return out
}
