package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomCoversEveryKind(t *testing.T) {
	r := NewRandom(1)
	counts := map[Kind]int{}
	for i := 0; i < 7000; i++ {
		k := r.Next()
		assert.True(t, k.Valid(), "kind %d", k)
		counts[k]++
	}
	assert.Len(t, counts, len(Kinds))
	for k, n := range counts {
		assert.Greater(t, n, 800, "kind %s drawn %d times", k, n)
	}
}

func TestRandomSeedIsDeterministic(t *testing.T) {
	a, b := NewRandom(42), NewRandom(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(KindI, KindO)
	assert.Equal(t, []Kind{KindI, KindO, KindI, KindO}, []Kind{s.Next(), s.Next(), s.Next(), s.Next()})

	all := NewSequence()
	for _, k := range Kinds {
		assert.Equal(t, k, all.Next())
	}
}
