package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random provides the randomness the lineup generator needs, so tests can pin it
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Shuffle permutes n elements through swap, like rand.Shuffle
	Shuffle(n int, swap func(i, j int))
}

// Seeded is a PCG-backed Random. The same seed always yields the same draws.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Seeded source. A zero seed is replaced by the current time.
func New(seed uint64) *Seeded {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *Seeded) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
