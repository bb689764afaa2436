package stn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRigidDurationConstraintFixesEndTime(t *testing.T) {
	n := New()
	s := n.AddTimepoint()
	e := n.AddTimepoint()

	require.True(t, n.AddConstraint(0, s, 0, 0)) // start pinned at time 0
	require.True(t, n.AddConstraint(s, e, 2, 2)) // e - s = 2

	sched := n.Schedule()
	assert.Equal(t, 0.0, sched[s].Earliest)
	assert.Equal(t, 2.0, sched[e].Earliest)
}

func TestContradictoryConstraintsAreInconsistent(t *testing.T) {
	n := New()
	a := n.AddTimepoint()
	b := n.AddTimepoint()

	require.True(t, n.AddConstraint(a, b, 5, 5))
	ok := n.AddConstraint(b, a, 5, 5) // b - a = 5 and a - b = 5 can't both hold
	assert.False(t, ok)
	assert.False(t, n.IsConsistent())
}

func TestCloneIsIndependent(t *testing.T) {
	n := New()
	s := n.AddTimepoint()
	require.True(t, n.AddConstraint(0, s, 1, 1))

	clone := n.Clone()
	e := clone.AddTimepoint()
	require.True(t, clone.AddConstraint(s, e, 3, 3))

	assert.Equal(t, 2, n.Len())
	assert.Equal(t, 3, clone.Len())
}
