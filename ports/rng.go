package ports

import "math/rand"

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// Stream creates a deterministic RNG stream for one stage and sample set key.
	// The same (stage, key) pair always yields the same sequence for a given
	// base seed, independent of the order in which streams are requested.
	Stream(stageName, key string) *rand.Rand
}
