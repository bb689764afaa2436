package taskcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corox/temporalplan/compile"
)

func TestPutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "tasks"))
	require.NoError(t, err)
	defer c.Close()

	domainText := `
(define (domain trivial)
  (:predicates (p) (q))
  (:action a :precondition (p) :effect (q)))
`
	problemText := `
(define (problem trivial-1)
  (:domain trivial)
  (:init (p))
  (:goal (q)))
`
	tk, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	require.NoError(t, err)

	key := Key(domainText, problemText)
	_, ok := c.Get(key)
	assert.False(t, ok)

	require.NoError(t, c.Put(key, tk))

	cached, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, tk.DomainName, cached.DomainName)
	assert.Equal(t, tk.Facts.Keys(), cached.Facts.Keys())
}

func TestKeyIsDeterministicAndSensitiveToContent(t *testing.T) {
	a := Key("domain-a", "problem-a")
	b := Key("domain-a", "problem-a")
	c := Key("domain-b", "problem-a")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
