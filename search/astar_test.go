package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corox/temporalplan/compile"
	"github.com/corox/temporalplan/heuristic"
	"github.com/corox/temporalplan/state"
)

func solveText(t *testing.T, domainText, problemText string, h heuristic.Heuristic) Result {
	t.Helper()
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)
	sp := state.NewStateSpace(tk)
	return Solve(sp, Options{Heuristic: h})
}

// Scenario 1: trivial reach.
func TestTrivialReach(t *testing.T) {
	domainText := `
(define (domain trivial)
  (:predicates (p) (q))
  (:action a
    :precondition (p)
    :effect (q)))
`
	problemText := `
(define (problem trivial-1)
  (:domain trivial)
  (:init (p))
  (:goal (q)))
`
	res := solveText(t, domainText, problemText, heuristic.MaxRelaxed{})
	require.Equal(t, StatusSolved, res.Status)
	require.Len(t, res.Plan.Steps, 1)
	assert.Equal(t, 0.0, res.Plan.Steps[0].StartTime)
	assert.Equal(t, 1.0, res.Plan.Steps[0].Duration)
	assert.Equal(t, 1.0, res.Plan.Cost)
}

// Scenario 2: simple durative.
func TestSimpleDurative(t *testing.T) {
	domainText := `
(define (domain delivery)
  (:requirements :durative-actions)
  (:predicates (robot-at-depot) (delivered))
  (:durative-action deliver
    :parameters ()
    :duration (= ?duration 2)
    :condition (at start (robot-at-depot))
    :effect (at end (delivered))))
`
	problemText := `
(define (problem delivery-1)
  (:domain delivery)
  (:init (robot-at-depot))
  (:goal (delivered)))
`
	res := solveText(t, domainText, problemText, heuristic.MaxRelaxed{})
	require.Equal(t, StatusSolved, res.Status)
	require.Len(t, res.Plan.Steps, 1)
	assert.Equal(t, 0.0, res.Plan.Steps[0].StartTime)
	assert.Equal(t, 2.0, res.Plan.Steps[0].Duration)
	assert.Equal(t, 2.0, res.Plan.Cost)
}

// Scenario 3: over-all violation — a2 can never run while a1 is in flight,
// because a2's own start effect would delete a fact a1 holds over-all.
func TestOverAllViolationForcesSerialPlan(t *testing.T) {
	domainText := `
(define (domain exclusion)
  (:requirements :durative-actions)
  (:predicates (p) (done))
  (:durative-action a1
    :parameters ()
    :duration (= ?duration 5)
    :condition (over all (p))
    :effect (at end (done)))
  (:durative-action a2
    :parameters ()
    :duration (= ?duration 1)
    :effect (at start (not (p)))))
`
	problemText := `
(define (problem exclusion-1)
  (:domain exclusion)
  (:init (p))
  (:goal (done)))
`
	res := solveText(t, domainText, problemText, heuristic.MaxRelaxed{})
	require.Equal(t, StatusSolved, res.Status)
	assert.Equal(t, 5.0, res.Plan.Cost)
	require.Len(t, res.Plan.Steps, 1)
	assert.Contains(t, res.Plan.Steps[0].Name, "a1(")
}

// Scenario 4: infeasibility.
func TestInfeasibleGoalYieldsNoSolution(t *testing.T) {
	domainText := `
(define (domain unreachable)
  (:predicates (p) (q))
  (:action a
    :precondition (p)
    :effect (p)))
`
	problemText := `
(define (problem unreachable-1)
  (:domain unreachable)
  (:init (p))
  (:goal (q)))
`
	res := solveText(t, domainText, problemText, heuristic.MaxRelaxed{})
	assert.Equal(t, StatusNoSolution, res.Status)
}

func TestNodeBudgetInterrupts(t *testing.T) {
	domainText := `
(define (domain unreachable)
  (:predicates (p) (q))
  (:action a
    :precondition (p)
    :effect (p)))
`
	problemText := `
(define (problem unreachable-1)
  (:domain unreachable)
  (:init (p))
  (:goal (q)))
`
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)
	sp := state.NewStateSpace(tk)
	res := Solve(sp, Options{Heuristic: heuristic.MaxRelaxed{}, NodeBudget: 1})
	assert.Equal(t, StatusInterrupted, res.Status)
}
