package rng

import (
	"math/rand"

	"amphorank/ports"
)

// Seeded implements ports.RNGPort with streams derived from one base seed
type Seeded struct {
	baseSeed int64
}

var _ ports.RNGPort = (*Seeded)(nil)

// NewSeeded creates an RNG adapter for a base seed
func NewSeeded(baseSeed int64) *Seeded {
	return &Seeded{baseSeed: baseSeed}
}

// Stream creates a deterministic RNG stream for a specific stage and key.
// Seed = hash(stage) + hash(key) + base seed.
func (r *Seeded) Stream(stageName, key string) *rand.Rand {
	seed := r.baseSeed
	if stageName != "" {
		seed = int64(hashString(stageName)) + seed
	}
	if key != "" {
		seed = int64(hashString(key)) + seed
	}
	return rand.New(rand.NewSource(seed))
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2
	}
	return hash
}
