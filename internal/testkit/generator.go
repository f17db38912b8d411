package testkit

import (
	"fmt"
	"math/rand"

	"amphorank/domain/specimen"
)

// SpecimenGeneratorConfig configures the synthetic measurement generator
type SpecimenGeneratorConfig struct {
	Specimens          int   `json:"specimens"`
	SamplesPerProtocol int   `json:"samples_per_protocol"`
	IncompleteEvery    int   `json:"incomplete_every"` // every n-th specimen has no hold data; 0 disables
	Seed               int64 `json:"seed"`
}

// DefaultSpecimenConfig returns a small mixed data set
func DefaultSpecimenConfig() SpecimenGeneratorConfig {
	return SpecimenGeneratorConfig{
		Specimens:          6,
		SamplesPerProtocol: 4,
		IncompleteEvery:    3,
		Seed:               42,
	}
}

// SpecimenDataGenerator generates reproducible amphora test records
type SpecimenDataGenerator struct {
	config SpecimenGeneratorConfig
	rng    *rand.Rand
}

// NewSpecimenDataGenerator creates a new generator
func NewSpecimenDataGenerator(config SpecimenGeneratorConfig) *SpecimenDataGenerator {
	if config.SamplesPerProtocol < 1 {
		config.SamplesPerProtocol = 1
	}
	return &SpecimenDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords returns stack records followed by hold/drop records, and
// the identities of the specimens that have all four protocols.
func (g *SpecimenDataGenerator) GenerateRecords() ([]specimen.Record, []string) {
	var stack, holdDrop []specimen.Record
	var complete []string

	for i := 0; i < g.config.Specimens; i++ {
		name := fmt.Sprintf("S%02d", i)
		factor := 0.5 + g.rng.Float64()*2
		skipHold := g.config.IncompleteEvery > 0 && i%g.config.IncompleteEvery == g.config.IncompleteEvery-1

		for j := 0; j < g.config.SamplesPerProtocol; j++ {
			load := 100 + 50*float64(j)
			fos := 1.1 - 0.1*float64(j)
			stack = append(stack,
				StackRecord(name+"_rect", load, (5+2*float64(j))*factor*g.jitter(), fos),
				StackRecord(name+"_hex", load, (4+2*float64(j))*factor*g.jitter(), fos+0.05),
			)
			if !skipHold {
				holdDrop = append(holdDrop, HoldRecord(name+"_hold", 3*factor*g.jitter()))
			}
			holdDrop = append(holdDrop, DropRecord(name, 8*factor*g.jitter()))
		}
		if !skipHold {
			complete = append(complete, name)
		}
	}
	return append(stack, holdDrop...), complete
}

// jitter returns a multiplicative noise factor in [0.95, 1.05)
func (g *SpecimenDataGenerator) jitter() float64 {
	return 0.95 + g.rng.Float64()*0.1
}
