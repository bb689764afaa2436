package temporalplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corox/temporalplan/config"
	"github.com/corox/temporalplan/taskcache"
	"github.com/corox/temporalplan/tplerr"
)

const trivialDomain = `
(define (domain trivial)
  (:predicates (p) (q))
  (:action a :precondition (p) :effect (q)))
`
const trivialProblem = `
(define (problem trivial-1)
  (:domain trivial)
  (:init (p))
  (:goal (q)))
`

func TestInfoReportsCapabilities(t *testing.T) {
	p := New()
	info := p.Info()
	assert.True(t, info.SupportsDurative)
	assert.True(t, info.SupportsNumeric)
	assert.Equal(t, Version, info.Version)
}

func TestSolveFromStringsFindsTrivialPlan(t *testing.T) {
	p := New()
	res, err := p.SolveFromStrings(trivialDomain, trivialProblem)
	require.NoError(t, err)
	require.Equal(t, StatusSolved, res.Status)
	assert.Equal(t, 1.0, res.Plan.Cost)
}

// Supplemented feature C.2: repeated solves on the same Task must be
// deterministic and side-effect-free (operationalizes P8).
func TestRepeatedSolvesAreDeterministic(t *testing.T) {
	p := New()
	tk, err := p.LoadFromStrings(trivialDomain, trivialProblem)
	require.NoError(t, err)

	first := p.Solve(tk)
	second := p.Solve(tk)

	require.Equal(t, StatusSolved, first.Status)
	require.Equal(t, StatusSolved, second.Status)
	assert.Equal(t, first.Plan.Cost, second.Plan.Cost)
	assert.Equal(t, first.Plan.Steps, second.Plan.Steps)
}

func TestExplainSummarizesActionTemporalGroups(t *testing.T) {
	p := New()
	domainText := `
(define (domain shape)
  (:requirements :durative-actions)
  (:predicates (p) (q) (r))
  (:durative-action act
    :parameters ()
    :duration (= ?duration 3)
    :condition (and (at start (p)) (over all (q)))
    :effect (at end (r))))
`
	problemText := `
(define (problem shape-1)
  (:domain shape)
  (:init (p) (q))
  (:goal (r)))
`
	tk, err := p.LoadFromStrings(domainText, problemText)
	require.NoError(t, err)

	summary := p.Explain(tk)
	require.Len(t, summary.Actions, 1)
	a := summary.Actions[0]
	assert.Equal(t, 1, a.StartConds)
	assert.Equal(t, 1, a.OverAllConds)
	assert.Equal(t, 0, a.EndConds)
	assert.Equal(t, 0, a.StartEffects)
	assert.Equal(t, 1, a.EndEffects)
}

func TestMalformedInputYieldsMalformedSyntaxNotPartialTask(t *testing.T) {
	p := New()
	tk, err := p.LoadFromStrings("(define (domain broken) (:predicates (p)", trivialProblem)
	require.Error(t, err)
	assert.Nil(t, tk)

	kind, ok := tplerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, tplerr.MalformedSyntax, kind)
}

// A Planner configured with a CacheDir serves the second load for the same
// domain/problem pair from the task cache instead of recompiling.
func TestLoadFromStringsServesRepeatLoadFromCache(t *testing.T) {
	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	p := NewWithConfig(cfg)
	defer p.Close()
	require.NotNil(t, p.cache)

	first, err := p.LoadFromStrings(trivialDomain, trivialProblem)
	require.NoError(t, err)
	_, cached := p.cache.Get(taskcache.Key(trivialDomain, trivialProblem))
	require.True(t, cached)

	second, err := p.LoadFromStrings(trivialDomain, trivialProblem)
	require.NoError(t, err)

	assert.Equal(t, first.DomainName, second.DomainName)
	assert.Equal(t, first.GoalConditions, second.GoalConditions)
}

// A Planner with no CacheDir configured leaves caching off entirely.
func TestNewLeavesCacheDisabled(t *testing.T) {
	p := New()
	assert.Nil(t, p.cache)
	assert.NoError(t, p.Close())
}
