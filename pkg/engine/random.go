package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Randomizer supplies the kind of each newly generated piece.
type Randomizer interface {
	Next() Kind
}

// Random picks every kind independently and uniformly, so repeats happen.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Next() Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Kinds[r.rng.Intn(len(Kinds))]
}

// Sequence replays a fixed list of kinds, wrapping around at the end.
type Sequence struct {
	kinds []Kind
	i     int
}

func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	return &Sequence{kinds: append([]Kind(nil), kinds...)}
}

func (s *Sequence) Next() Kind {
	k := s.kinds[s.i]
	s.i = (s.i + 1) % len(s.kinds)
	return k
}
