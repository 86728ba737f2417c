package engine

import (
	"math/rand"
	"time"
)

// Source is the random generator the engine draws from. *rand.Rand satisfies it.
// A Source is not safe for concurrent use; give each request its own.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a seeded generator. A zero seed means "seed from the clock".
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomInRange draws uniformly from [min, max).
func RandomInRange(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// RandomInt draws uniformly from [min, max], both ends included.
func RandomInt(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

func pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
