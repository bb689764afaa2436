package compile

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corox/temporalplan/task"
)

// P7: compile(serialise(compile(D,P))) = compile(D,P) up to stable
// predicate indexing — round-tripping a compiled task through its
// Snapshot and back must reproduce an identical fact index and state.
func TestCompileIdempotentThroughSnapshot(t *testing.T) {
	domainText := `
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
	problemText := `
(define (problem movers-1)
  (:domain movers)
  (:objects robot - entity a b - location)
  (:init (at robot a) (clear b))
  (:goal (at robot b)))
`
	original, err := FromStrings(domainText, problemText, DefaultOptions())
	require.NoError(t, err)

	bytes, err := yaml.Marshal(original.Snapshot())
	require.NoError(t, err)

	var snap task.Snapshot
	require.NoError(t, yaml.Unmarshal(bytes, &snap))
	roundTripped := task.FromSnapshot(snap)

	assert.Equal(t, original.Facts.Keys(), roundTripped.Facts.Keys())
	assert.Equal(t, original.InitialFacts, roundTripped.InitialFacts)
	assert.Equal(t, original.GoalConditions, roundTripped.GoalConditions)
	assert.Equal(t, original.Actions, roundTripped.Actions)
}
