// Package shuffle provides the uniform permutation used to order drill and
// quiz pools.
package shuffle

import "math/rand/v2"

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default draws from the process-wide generator.
var Default Source = globalSource{}

// Seeded returns a deterministic source for tests and reproducible runs.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Copy returns a uniformly shuffled copy of items (Fisher–Yates, Durstenfeld
// variant). The input slice is left untouched. A nil src uses Default.
func Copy[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	InPlace(src, out)
	return out
}

// InPlace shuffles items uniformly in place.
func InPlace[T any](src Source, items []T) {
	if src == nil {
		src = Default
	}
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
