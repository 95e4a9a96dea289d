package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockedRand_Child(t *testing.T) {
	first := newLockedRand(newSeededRand())
	second := newLockedRand(newSeededRand())

	a, b := first.child(), second.child()
	assert.Equal(t, a.Uint64(), b.Uint64(), "children of equal seeds should match")

	next := first.child()
	assert.NotEqual(t, a.Uint64(), next.Uint64(), "each child should advance the parent")
}

func TestLockedRand_IntBetween(t *testing.T) {
	r := newLockedRand(newSeededRand())

	for range 100 {
		n := r.intBetween(2, 5)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 5)
	}
	assert.Equal(t, 7, r.intBetween(7, 3))
}
