package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corox/temporalplan/compile"
	"github.com/corox/temporalplan/state"
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

func TestZeroIsAlwaysZero(t *testing.T) {
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)
	sp := state.NewStateSpace(tk)
	assert.Equal(t, 0.0, Zero{}.Estimate(sp.InitialState(), sp))
}

func TestMaxRelaxedEstimatesSingleActionDuration(t *testing.T) {
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)
	sp := state.NewStateSpace(tk)
	h := MaxRelaxed{}.Estimate(sp.InitialState(), sp)
	assert.Equal(t, 2.0, h)
}

func TestMaxRelaxedZeroAtGoal(t *testing.T) {
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)
	sp := state.NewStateSpace(tk)
	s := sp.InitialState()
	ids := sp.ApplicableActions(s, 0)
	require.Len(t, ids, 1)
	next := sp.Apply(s, sp.Actions[ids[0]], 0)
	advanced, ok := sp.ProcessScheduledEffects(next)
	require.True(t, ok)
	assert.Equal(t, 0.0, MaxRelaxed{}.Estimate(advanced, sp))
}
