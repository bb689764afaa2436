// Package stn implements a Simple Temporal Network: a constraint graph over
// timepoints with difference-bound edges, per spec §4.5.
package stn

import "math"

// TimeAssignment is one timepoint's earliest feasible time, per Schedule's
// output contract.
type TimeAssignment struct {
	Timepoint int
	Earliest  float64
}

// Network holds a set of timepoints and lo ≤ t_j − t_i ≤ hi constraints
// between them. Timepoint 0 is the implicit origin, fixed at time zero;
// every other timepoint's earliest feasible time is the negated
// shortest-path distance from it to the origin once the network is
// known-consistent.
//
// Constraint addition is not incremental — each call recomputes all-pairs
// shortest paths via Floyd–Warshall, which the spec calls out as
// acceptable for networks of the size a single search node produces.
// Nodes that need an independent STN snapshot should Clone before
// mutating (§9's design note on reversible constraint addition).
type Network struct {
	edges [][]float64
	dist  [][]float64
	dirty bool
}

// New returns a network with just the origin timepoint (id 0).
func New() *Network {
	n := &Network{}
	n.growTo(1)
	return n
}

// Clone returns an independent deep copy, so a search node can extend its
// own STN without disturbing its parent's or siblings'.
func (n *Network) Clone() *Network {
	out := &Network{
		edges: make([][]float64, len(n.edges)),
		dist:  make([][]float64, len(n.dist)),
		dirty: n.dirty,
	}
	for i := range n.edges {
		out.edges[i] = append([]float64(nil), n.edges[i]...)
		out.dist[i] = append([]float64(nil), n.dist[i]...)
	}
	return out
}

// AddTimepoint allocates a fresh timepoint with no constraints yet, and
// returns its id.
func (n *Network) AddTimepoint() int {
	id := len(n.edges)
	n.growTo(id + 1)
	return id
}

func (n *Network) growTo(size int) {
	old := len(n.edges)
	if size <= old {
		return
	}
	for i := 0; i < old; i++ {
		for j := old; j < size; j++ {
			n.edges[i] = append(n.edges[i], math.Inf(1))
			n.dist[i] = append(n.dist[i], math.Inf(1))
		}
	}
	for i := old; i < size; i++ {
		row := make([]float64, size)
		drow := make([]float64, size)
		for j := range row {
			row[j] = math.Inf(1)
			drow[j] = math.Inf(1)
		}
		row[i] = 0
		drow[i] = 0
		n.edges = append(n.edges, row)
		n.dist = append(n.dist, drow)
	}
	n.dirty = true
}

// AddConstraint records lo ≤ t_to − t_from ≤ hi and recomputes
// consistency. It reports ok=false (and leaves the network in its
// post-addition, possibly-inconsistent state) when the constraint
// introduces a negative cycle — callers should discard such a network
// rather than keep using it.
func (n *Network) AddConstraint(from, to int, lo, hi float64) bool {
	if hi < n.edges[from][to] {
		n.edges[from][to] = hi
	}
	if -lo < n.edges[to][from] {
		n.edges[to][from] = -lo
	}
	n.recompute()
	return n.IsConsistent()
}

// recompute runs Floyd–Warshall over the raw edge weights.
func (n *Network) recompute() {
	size := len(n.edges)
	dist := make([][]float64, size)
	for i := range dist {
		dist[i] = append([]float64(nil), n.edges[i]...)
	}
	for k := 0; k < size; k++ {
		for i := 0; i < size; i++ {
			if math.IsInf(dist[i][k], 1) {
				continue
			}
			for j := 0; j < size; j++ {
				if math.IsInf(dist[k][j], 1) {
					continue
				}
				if alt := dist[i][k] + dist[k][j]; alt < dist[i][j] {
					dist[i][j] = alt
				}
			}
		}
	}
	n.dist = dist
	n.dirty = false
}

// IsConsistent reports whether the network contains no negative cycle —
// equivalently, whether every timepoint's distance to itself is
// non-negative.
func (n *Network) IsConsistent() bool {
	if n.dirty {
		n.recompute()
	}
	for i := range n.dist {
		if n.dist[i][i] < 0 {
			return false
		}
	}
	return true
}

// Schedule returns the earliest-time assignment for every timepoint
// (the negated shortest-path distance from each to the origin, or 0 when
// no lower bound relates it to the origin), ordered by timepoint id.
func (n *Network) Schedule() []TimeAssignment {
	if n.dirty {
		n.recompute()
	}
	out := make([]TimeAssignment, len(n.dist))
	for i := range n.dist {
		earliest := 0.0
		if d := n.dist[i][0]; !math.IsInf(d, 1) {
			earliest = -d
		}
		out[i] = TimeAssignment{Timepoint: i, Earliest: earliest}
	}
	return out
}

// Len returns the number of timepoints currently in the network.
func (n *Network) Len() int { return len(n.edges) }
