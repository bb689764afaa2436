// Package search implements the A* planning engine over a state.StateSpace,
// per spec §4.7.
package search

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/corox/temporalplan/heuristic"
	"github.com/corox/temporalplan/state"
	"github.com/corox/temporalplan/stn"
)

// Status is the terminal outcome of a Solve call.
type Status int

const (
	// StatusSolved means Plan is populated with a valid, minimal-cost plan.
	StatusSolved Status = iota
	// StatusNoSolution means the frontier emptied without reaching the goal.
	StatusNoSolution
	// StatusInterrupted means the deadline or node-expansion budget fired
	// first. The closed set and frontier are discarded; re-invoking Solve
	// with a larger budget starts over from scratch (§5: no incremental
	// resume is guaranteed).
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "Solved"
	case StatusNoSolution:
		return "NoSolution"
	case StatusInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// PlanStep is one scheduled action application in a returned plan.
type PlanStep struct {
	ActionID  int
	Name      string
	StartTime float64
	Duration  float64
}

// Plan is an ordered sequence of action applications plus its total cost.
type Plan struct {
	Steps []PlanStep
	Cost  float64
}

// Render produces the textual plan format of §6: one
// `start-time : action-name(arg,…) [duration]` line per step, sorted by
// ascending start-time with ties broken by action-id.
func (p *Plan) Render() string {
	steps := append([]PlanStep(nil), p.Steps...)
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].StartTime != steps[j].StartTime {
			return steps[i].StartTime < steps[j].StartTime
		}
		return steps[i].ActionID < steps[j].ActionID
	})
	out := ""
	for _, s := range steps {
		out += fmt.Sprintf("%.3f : %s [%g]\n", s.StartTime, s.Name, s.Duration)
	}
	return out
}

// Result is the outcome of a Solve call.
type Result struct {
	Status Status
	Plan   *Plan
}

// Options configures a Solve call.
type Options struct {
	Heuristic heuristic.Heuristic
	// Deadline, if non-zero, is a wall-clock instant past which Solve
	// returns StatusInterrupted instead of continuing to expand nodes.
	Deadline time.Time
	// NodeBudget, if > 0, bounds the number of nodes popped from the
	// frontier before Solve returns StatusInterrupted.
	NodeBudget int
	// ActionCost overrides the default per-action cost (elapsed clock
	// time) with a fixed, action-specific price; while it is set, "let time
	// pass" transitions cost nothing. Nil means "use elapsed clock time".
	ActionCost func(ga state.GroundAction) float64
}

type searchNode struct {
	State     state.TemporalState
	G, H      float64
	ParentIdx int
	ActionID  int
	StartTime float64

	// STN is this node's own Simple Temporal Network snapshot (§3: "the
	// STN is owned by the search frontier and advanced alongside state
	// expansion"). NowTP is the timepoint representing this node's current
	// instant; StartTP is the timepoint of this node's own action start
	// (-1 for the root and for "let time pass" nodes, which start no
	// action).
	STN     *stn.Network
	NowTP   int
	StartTP int
}

type pqItem struct {
	nodeIdx int
	f, h    float64
	seq     int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(pqItem))
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Solve runs best-first (A*) search over sp from its initial state,
// following the algorithm of §4.7 exactly: nodes live in a flat arena
// addressed by parent index (§9's design note, avoiding owned parent
// chains), the closed set indexes on state identity alone, and ties in
// the frontier break by smaller h then by insertion order.
func Solve(sp *state.StateSpace, opts Options) Result {
	h := opts.Heuristic
	if h == nil {
		h = heuristic.Zero{}
	}

	arena := []searchNode{{
		State:     sp.InitialState(),
		G:         0,
		ParentIdx: -1,
		ActionID:  -1,
		STN:       stn.New(),
		NowTP:     0,
		StartTP:   -1,
	}}
	arena[0].H = h.Estimate(arena[0].State, sp)

	pq := &priorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, pqItem{nodeIdx: 0, f: arena[0].G + arena[0].H, h: arena[0].H, seq: seq})
	seq++

	closed := make(map[string]float64)
	expanded := 0

	hasDeadline := !opts.Deadline.IsZero()

	for pq.Len() > 0 {
		if hasDeadline && time.Now().After(opts.Deadline) {
			return Result{Status: StatusInterrupted}
		}

		top := heap.Pop(pq).(pqItem)
		n := arena[top.nodeIdx]

		if sp.GoalSatisfied(n.State) {
			return Result{Status: StatusSolved, Plan: extractPlan(arena, top.nodeIdx, sp)}
		}

		key := n.State.IdentityKey()
		if bestG, ok := closed[key]; ok && bestG <= n.G {
			continue
		}
		closed[key] = n.G
		expanded++

		// Checked right after the node that tips the count over the limit,
		// not back at the top of the loop: a dead-end node below can leave
		// the frontier empty, and the loop's own `for pq.Len() > 0` would
		// then exit as NoSolution before a budget check up there ever ran.
		if opts.NodeBudget > 0 && expanded >= opts.NodeBudget {
			return Result{Status: StatusInterrupted}
		}

		// An infinite estimate is a proof, not a guess: MaxRelaxed's
		// delete-relaxation only ever makes facts easier to reach, so a
		// goal condition unreachable there is unreachable for real. Nodes
		// like this are dead ends and must not be expanded, or a
		// self-looping action with no path to the goal keeps minting new
		// fire-times forever and the frontier never empties.
		if math.IsInf(n.H, 1) {
			continue
		}

		advanced, didAdvance := sp.ProcessScheduledEffects(n.State)

		curState := advanced
		curSTN := n.STN
		curNowTP := n.NowTP

		if didAdvance {
			elapsed := advanced.Clock - n.State.Clock
			waitSTN := n.STN.Clone()
			waitTP := waitSTN.AddTimepoint()
			if waitSTN.AddConstraint(n.NowTP, waitTP, elapsed, elapsed) {
				var waitDelta float64
				if opts.ActionCost == nil {
					waitDelta = elapsed
				}
				waitG := n.G + waitDelta

				childIdx := len(arena)
				arena = append(arena, searchNode{
					State:     advanced,
					G:         waitG,
					H:         h.Estimate(advanced, sp),
					ParentIdx: top.nodeIdx,
					ActionID:  -1,
					StartTime: n.StartTime,
					STN:       waitSTN,
					NowTP:     waitTP,
					StartTP:   -1,
				})
				heap.Push(pq, pqItem{nodeIdx: childIdx, f: waitG + arena[childIdx].H, h: arena[childIdx].H, seq: seq})
				seq++

				curSTN = waitSTN
				curNowTP = waitTP
			}
		}

		for _, actionID := range sp.ApplicableActions(curState, curState.Clock) {
			ga := sp.Actions[actionID]
			startTime := curState.Clock
			succ := sp.Apply(curState, ga, startTime)

			// §4.6(c): adding the action to the STN must preserve
			// consistency, or the action is not applicable here.
			actionSTN := curSTN.Clone()
			startTP := actionSTN.AddTimepoint()
			consistent := actionSTN.AddConstraint(curNowTP, startTP, 0, 0)
			if consistent {
				endTP := actionSTN.AddTimepoint()
				consistent = actionSTN.AddConstraint(startTP, endTP, ga.Duration, ga.Duration)
			}
			if !consistent {
				continue
			}

			var delta float64
			if opts.ActionCost != nil {
				delta = opts.ActionCost(ga)
			} else {
				delta = succ.Clock - n.State.Clock
			}
			g2 := n.G + delta

			childIdx := len(arena)
			arena = append(arena, searchNode{
				State:     succ,
				G:         g2,
				H:         h.Estimate(succ, sp),
				ParentIdx: top.nodeIdx,
				ActionID:  actionID,
				StartTime: startTime,
				STN:       actionSTN,
				NowTP:     curNowTP,
				StartTP:   startTP,
			})
			heap.Push(pq, pqItem{nodeIdx: childIdx, f: g2 + arena[childIdx].H, h: arena[childIdx].H, seq: seq})
			seq++
		}
	}

	return Result{Status: StatusNoSolution}
}

// extractPlan walks parent indices from the terminal node back to the
// root, collecting (action-id, start-time) pairs, then reverses them.
// Nodes with ActionID -1 are "let time pass" transitions, not actions, and
// are skipped. Per-step start-times are read from the terminal node's STN
// (P8: "identical start-times, via STN earliest-times") rather than from
// the raw clock value recorded when the node was created.
func extractPlan(arena []searchNode, terminalIdx int, sp *state.StateSpace) *Plan {
	schedule := map[int]float64{}
	if terminalSTN := arena[terminalIdx].STN; terminalSTN != nil {
		for _, a := range terminalSTN.Schedule() {
			schedule[a.Timepoint] = a.Earliest
		}
	}

	var steps []PlanStep
	for i := terminalIdx; arena[i].ParentIdx != -1; i = arena[i].ParentIdx {
		if arena[i].ActionID == -1 {
			continue
		}
		ga := sp.Actions[arena[i].ActionID]
		startTime := arena[i].StartTime
		if t, ok := schedule[arena[i].StartTP]; ok {
			startTime = t
		}
		steps = append(steps, PlanStep{
			ActionID:  arena[i].ActionID,
			Name:      ga.Name,
			StartTime: startTime,
			Duration:  ga.Duration,
		})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return &Plan{Steps: steps, Cost: arena[terminalIdx].G}
}
