package impl

import (
	"math/rand/v2"
	"sync"
)

// lockedRand serialises access to a *rand.Rand shared by worker goroutines.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// newLockedRand wraps rng, or a randomly seeded PCG source when rng is nil.
func newLockedRand(rng *rand.Rand) *lockedRand {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &lockedRand{rng: rng}
}

func (r *lockedRand) with(fn func(rng *rand.Rand)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r.rng)
}

// child returns an independent source seeded from r, for use without the lock.
func (r *lockedRand) child() *rand.Rand {
	var seed1, seed2 uint64
	r.with(func(rng *rand.Rand) {
		seed1, seed2 = rng.Uint64(), rng.Uint64()
	})

	return rand.New(rand.NewPCG(seed1, seed2))
}

// intBetween returns a uniform integer in [lo, hi].
func (r *lockedRand) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}

	var n int
	r.with(func(rng *rand.Rand) {
		n = lo + rng.IntN(hi-lo+1)
	})

	return n
}
