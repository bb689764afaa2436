package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corox/temporalplan/compile"
)

const domainText = `
(define (domain movers)
  (:requirements :durative-actions)
  (:types location entity)
  (:predicates (at ?e - entity ?l - location) (clear ?l - location))
  (:durative-action move
    :parameters (?e - entity ?from - location ?to - location)
    :duration (= ?duration 2)
    :condition (and (at start (at ?e ?from)) (over all (clear ?to)))
    :effect (and (at start (not (at ?e ?from))) (at end (at ?e ?to)))))
`

const problemText = `
(define (problem movers-1)
  (:domain movers)
  (:objects robot - entity a b - location)
  (:init (at robot a) (clear b))
  (:goal (at robot b)))
`

func buildSpace(t *testing.T) *StateSpace {
	t.Helper()
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)
	return NewStateSpace(tk)
}

func TestGroundingProducesOneActionPerBinding(t *testing.T) {
	sp := buildSpace(t)
	// robot x {a,b} x {a,b} = 4 ground bindings of the single template.
	assert.Len(t, sp.Actions, 4)
}

func TestInitialStateMatchesInitFacts(t *testing.T) {
	sp := buildSpace(t)
	s := sp.InitialState()
	assert.Equal(t, sp.Task.InitialFacts, s.Classical.Facts)
	assert.False(t, sp.GoalSatisfied(s))
}

func TestApplicableActionsRespectsStartConditions(t *testing.T) {
	sp := buildSpace(t)
	s := sp.InitialState()
	ids := sp.ApplicableActions(s, 0)
	require.Len(t, ids, 1)

	ga := sp.Actions[ids[0]]
	assert.Equal(t, "robot", ga.Binding["?e"])
	assert.Equal(t, "a", ga.Binding["?from"])
	assert.Equal(t, "b", ga.Binding["?to"])
}

func TestApplyEnqueuesEndEffectAndStartTakesHold(t *testing.T) {
	sp := buildSpace(t)
	s := sp.InitialState()
	ids := sp.ApplicableActions(s, 0)
	require.Len(t, ids, 1)
	ga := sp.Actions[ids[0]]

	next := sp.Apply(s, ga, 0)
	assert.False(t, sp.GoalSatisfied(next), "goal requires the end effect, not yet fired")
	require.Len(t, next.Scheduled, 1)
	assert.Equal(t, 2.0, next.Scheduled[0].FireTime)

	advanced, ok := sp.ProcessScheduledEffects(next)
	require.True(t, ok)
	assert.Empty(t, advanced.Scheduled)
	assert.Equal(t, 2.0, advanced.Clock)
	assert.True(t, sp.GoalSatisfied(advanced))
}

func TestProcessScheduledEffectsReportsFalseWhenAgendaEmpty(t *testing.T) {
	sp := buildSpace(t)
	s := sp.InitialState()
	_, ok := sp.ProcessScheduledEffects(s)
	assert.False(t, ok)
}

const exclusionDomainText = `
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

const exclusionProblemText = `
(define (problem exclusion-1)
  (:domain exclusion)
  (:init (p))
  (:goal (done)))
`

func TestInFlightOverAllBlocksConflictingStartEffect(t *testing.T) {
	tk, err := compile.FromStrings(exclusionDomainText, exclusionProblemText, compile.DefaultOptions())
	require.NoError(t, err)
	sp := NewStateSpace(tk)

	s := sp.InitialState()
	var a1, a2 GroundAction
	for _, ga := range sp.Actions {
		switch {
		case ga.Name == "a1()":
			a1 = ga
		case ga.Name == "a2()":
			a2 = ga
		}
	}
	require.NotEmpty(t, a1.Name)
	require.NotEmpty(t, a2.Name)

	// Before a1 starts, a2 is unconstrained.
	assert.True(t, sp.overAllSafe(s, a2, 0))

	withA1 := sp.Apply(s, a1, 0)
	// Once a1 is in flight protecting p, a2's delete-p start effect conflicts.
	assert.False(t, sp.overAllSafe(withA1, a2, 1))
}
