package workload

import (
	"fmt"
	"math/rand/v2"
)

// ProcessSeeds seeds the three random streams owned by one process.
type ProcessSeeds struct {
	// Address drives working set sizes, page picks and hot page picks.
	Address uint64
	// Phase drives the number of accesses until the working set changes.
	Phase uint64
	// Reuse drives the choice between a hot page and the round robin pick.
	Reuse uint64
}

// Seeds is the full set of seeds of a run. Global drives burst lengths.
type Seeds struct {
	Global    uint64
	Processes []ProcessSeeds
}

// NumSeeds returns the number of seeds a run with the given number of
// processes consumes.
func NumSeeds(numProcesses int) int {
	return 1 + 3*numProcesses
}

// Validate checks that there are seeds for every process.
func (s Seeds) Validate(numProcesses int) error {
	if len(s.Processes) < numProcesses {
		return fmt.Errorf("need seeds for %d processes, got %d",
			numProcesses, len(s.Processes))
	}

	return nil
}

// A SeedGenerator produces seeds that are uncorrelated with each other from
// a single master seed.
type SeedGenerator struct {
	rng *rand.Rand
}

// NewSeedGenerator creates a SeedGenerator.
func NewSeedGenerator(master uint64) *SeedGenerator {
	return &SeedGenerator{
		rng: rand.New(rand.NewPCG(master, master^seedStreamSalt)),
	}
}

const seedStreamSalt = 0xda3e39cb94b95bdb

// Next returns the next seed.
func (g *SeedGenerator) Next() uint64 {
	return g.rng.Uint64()
}

// Seeds draws a complete seed set for the given number of processes. The
// global seed is drawn first, then the address, phase and reuse seeds of
// each process in turn.
func (g *SeedGenerator) Seeds(numProcesses int) Seeds {
	s := Seeds{
		Global:    g.Next(),
		Processes: make([]ProcessSeeds, numProcesses),
	}

	for i := range s.Processes {
		s.Processes[i] = ProcessSeeds{
			Address: g.Next(),
			Phase:   g.Next(),
			Reuse:   g.Next(),
		}
	}

	return s
}
