package memmanage

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pagesim/workload"
)

// Reference constants of the page replacement experiment.
const (
	DefaultFaultTime  = 100.0
	DefaultAccessTime = 1.0
	DefaultNumFrames  = 32
	DefaultQuota      = 5
	DefaultMeanBurst  = 20.0
	FirstPID          = 100
)

// ProcessConfig describes a process at creation.
type ProcessConfig struct {
	// Layout gives the segment sizes of the address space.
	Layout workload.Layout

	// MeanPhase is the mean number of accesses between two working set
	// changes.
	MeanPhase float64

	// Refs, when set, replaces the working set generator. The process then
	// has NumPages pages and ignores Layout and MeanPhase.
	Refs     workload.ReferenceGenerator
	NumPages int
}

// ReferenceProcesses returns the four processes of the reference experiment.
func ReferenceProcesses() []ProcessConfig {
	return []ProcessConfig{
		{Layout: workload.Layout{Code: 10, Data: 8, Stack: 6, Heap: 6}, MeanPhase: 250},
		{Layout: workload.Layout{Code: 10, Data: 6, Stack: 4, Heap: 4}, MeanPhase: 150},
		{Layout: workload.Layout{Code: 18, Data: 8, Stack: 6, Heap: 4}, MeanPhase: 100},
		{Layout: workload.Layout{Code: 12, Data: 8, Stack: 6, Heap: 6}, MeanPhase: 300},
	}
}

// Scripted returns a process that references the given pages in a loop.
func Scripted(numPages int, pages ...int) ProcessConfig {
	return ProcessConfig{
		Refs:     workload.NewSequence(pages...),
		NumPages: numPages,
	}
}

func (c ProcessConfig) numPages() int {
	if c.Refs != nil {
		return c.NumPages
	}

	return c.Layout.NumPages()
}

func (c ProcessConfig) validate() error {
	if c.Refs != nil {
		if c.NumPages <= 0 {
			return errors.New("scripted process must have at least one page")
		}

		return nil
	}

	if err := c.Layout.Validate(); err != nil {
		return err
	}

	if c.MeanPhase <= 0 {
		return fmt.Errorf("mean working set phase must be positive, got %g",
			c.MeanPhase)
	}

	return nil
}

func (c ProcessConfig) generator(seeds workload.ProcessSeeds) workload.ReferenceGenerator {
	if c.Refs != nil {
		return c.Refs
	}

	return workload.NewWorkingSet(c.Layout, c.MeanPhase, seeds)
}
