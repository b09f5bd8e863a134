package pitch

import (
	"math/rand/v2"
	"sync"
)

// Chooser picks an index in [0, n). Generators call it once per decision so
// tests can substitute a deterministic implementation.
type Chooser interface {
	Intn(n int) int
}

// RandomChooser draws from the runtime's goroutine-safe generator.
type RandomChooser struct{}

// Intn returns a uniformly distributed index in [0, n).
func (RandomChooser) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.IntN(n)
}

// SeededChooser replays the same sequence of choices for a given seed. It is
// safe for concurrent use.
type SeededChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededChooser returns a chooser backed by a PCG source seeded with seed.
func NewSeededChooser(seed uint64) *SeededChooser {
	return &SeededChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a uniformly distributed index in [0, n).
func (c *SeededChooser) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}

// FixedChooser always returns the same index, clamped to the valid range.
type FixedChooser int

// Intn returns the fixed index clamped to [0, n).
func (c FixedChooser) Intn(n int) int {
	if n <= 1 || int(c) <= 0 {
		return 0
	}
	if int(c) >= n {
		return n - 1
	}
	return int(c)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(n int) int

// Intn calls f(n).
func (f ChooserFunc) Intn(n int) int {
	return f(n)
}

func pick[T any](c Chooser, options []T) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	if c == nil {
		c = RandomChooser{}
	}
	idx := c.Intn(len(options))
	if idx < 0 || idx >= len(options) {
		idx = 0
	}
	return options[idx]
}
