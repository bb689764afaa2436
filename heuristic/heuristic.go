// Package heuristic provides search-guiding cost estimates over a temporal
// state, per spec §4.4.
package heuristic

import (
	"math"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/state"
	"github.com/corox/temporalplan/task"
)

// Heuristic is a pure function of a state and the state space it belongs
// to, returning a non-negative estimate of the remaining cost to the goal.
type Heuristic interface {
	Estimate(s state.TemporalState, sp *state.StateSpace) float64
}

// Zero is the trivially admissible heuristic; with it the search degrades
// to uniform-cost (Dijkstra) ordering.
type Zero struct{}

func (Zero) Estimate(state.TemporalState, *state.StateSpace) float64 { return 0 }

// MaxRelaxed computes the max-cost relaxed-plan estimate: delete effects
// are ignored, over-all conditions are treated as at-start, a pending
// scheduled add counts as reached at its fire-time minus the clock, an
// action's at-start adds cost max(precondition-costs) and its at-end adds
// cost max(precondition-costs) + duration. It is admissible because it
// only ever underestimates the true cost.
type MaxRelaxed struct{}

func (MaxRelaxed) Estimate(s state.TemporalState, sp *state.StateSpace) float64 {
	reached := make(map[int]float64, sp.Task.Facts.Len())
	for idx, held := range s.Classical.Facts {
		if held {
			reached[idx] = 0
		}
	}
	for _, se := range s.Scheduled {
		idx, ok := sp.Task.Facts.Lookup(se.Effect.Predicate, argNames(se.Effect.Args))
		if ok && !se.Effect.IsDelete {
			if prev, seen := reached[idx]; !seen || se.FireTime-s.Clock < prev {
				reached[idx] = se.FireTime - s.Clock
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, ga := range sp.Actions {
			cost, ok := preconditionCost(sp.Task, reached, ga)
			if !ok {
				continue
			}
			for _, group := range []struct {
				effs []task.Effect
				cost float64
			}{{ga.EffStart, cost}, {ga.EffEnd, cost + ga.Duration}} {
				for _, e := range group.effs {
					if e.IsDelete {
						continue
					}
					idx, ok := sp.Task.Facts.Lookup(e.Predicate, argNames(e.Args))
					if !ok {
						continue
					}
					if prev, seen := reached[idx]; !seen || group.cost < prev {
						reached[idx] = group.cost
						changed = true
					}
				}
			}
		}
	}

	best := 0.0
	for _, c := range sp.Task.GoalConditions {
		if c.Negated {
			// Delete relaxation: a negative condition is always
			// trivially satisfiable, contributing no cost.
			continue
		}
		idx, ok := sp.Task.Facts.Lookup(c.Predicate, argNames(c.Args))
		if !ok {
			return math.Inf(1)
		}
		cost, ok := reached[idx]
		if !ok {
			return math.Inf(1)
		}
		if cost > best {
			best = cost
		}
	}
	return best
}

// preconditionCost returns the max reached-cost across every positive
// precondition of ga (its start, over-all, and end conditions, treated
// uniformly per the relaxation), or ok=false if any positive precondition
// is unreached. Negative preconditions never block the relaxation.
func preconditionCost(t *task.Task, reached map[int]float64, ga state.GroundAction) (float64, bool) {
	best := 0.0
	for _, group := range [][]task.Condition{ga.CondStart, ga.CondOver, ga.CondEnd} {
		for _, c := range group {
			if c.Negated {
				continue
			}
			idx, ok := t.Facts.Lookup(c.Predicate, argNames(c.Args))
			if !ok {
				return 0, false
			}
			cost, ok := reached[idx]
			if !ok {
				return 0, false
			}
			if cost > best {
				best = cost
			}
		}
	}
	return best, true
}

func argNames(args []ast.Term) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Name
	}
	return out
}
