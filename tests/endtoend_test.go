package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	temporalplan "github.com/corox/temporalplan"
	"github.com/corox/temporalplan/tplerr"
)

// Scenario 1: trivial reach.
func TestTrivialReachFromFiles(t *testing.T) {
	p := temporalplan.New()
	res, err := p.SolveFromFiles("fixtures/trivial-domain.pddl", "fixtures/trivial-problem.pddl")
	require.NoError(t, err)
	require.Equal(t, temporalplan.StatusSolved, res.Status)
	assert.Equal(t, 1.0, res.Plan.Cost)
}

// Scenario 5: temporal property extraction — one action with a start
// condition, an over-all condition, a start effect and an end effect must
// report exactly one condition of each declared temporal group.
func TestTemporalPropertyExtractionFromFiles(t *testing.T) {
	p := temporalplan.New()
	task, err := p.LoadFromFiles("fixtures/shape-domain.pddl", "fixtures/shape-problem.pddl")
	require.NoError(t, err)

	summary := p.Explain(task)
	require.Len(t, summary.Actions, 1)
	a := summary.Actions[0]
	assert.Equal(t, 1, a.StartConds)
	assert.Equal(t, 1, a.OverAllConds)
	assert.Equal(t, 0, a.EndConds)
	assert.Equal(t, 1, a.StartEffects)
	assert.Equal(t, 1, a.EndEffects)
	assert.Equal(t, 3.0, a.Duration)
}

// Scenario 6: malformed input yields a MalformedSyntax error, not a
// partially-built task.
func TestMalformedInputFromFiles(t *testing.T) {
	p := temporalplan.New()
	task, err := p.LoadFromFiles("fixtures/malformed-domain.pddl", "fixtures/trivial-problem.pddl")
	require.Error(t, err)
	require.Nil(t, task)

	kind, ok := tplerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, tplerr.MalformedSyntax, kind)
}

// A missing fixture file surfaces as an IOFailure, distinct from a parse
// error, so CLI and FFI callers can tell the two apart.
func TestMissingFileYieldsIOFailure(t *testing.T) {
	p := temporalplan.New()
	_, err := p.LoadFromFiles("fixtures/does-not-exist.pddl", "fixtures/trivial-problem.pddl")
	require.Error(t, err)

	kind, ok := tplerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, tplerr.IOFailure, kind)
}
