// Package replacement provides the algorithms that decide which resident page
// of a process gives up its frame when the process has used its whole frame
// quota.
package replacement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/pagesim/mem/vm"
)

// ErrUnknownPolicy is returned when a policy name cannot be resolved.
var ErrUnknownPolicy = errors.New("unknown replacement policy")

// A Policy evicts one of the resident pages of a page table to make room for
// a page that is not resident.
type Policy interface {
	// Name returns the name of the policy, as accepted by Parse.
	Name() string

	// Replace selects a victim among the resident pages of the table,
	// invalidates it and loads vpage into the frame it occupied. It returns
	// the victim. The table must hold as many frames as its quota.
	Replace(pt *vm.PageTable, vpage int, now float64) int
}

// Names lists the names of all the policies, in the order they are compared.
var Names = []string{"FIFO", "LRU", "CLOCK", "COUNT"}

// Parse returns the policy of the given name. Names are case-insensitive.
func Parse(name string) (Policy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIFO":
		return NewFIFO(), nil
	case "LRU":
		return NewLRU(), nil
	case "CLOCK":
		return NewClock(), nil
	case "COUNT":
		return NewCount(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

func mustBeFull(pt *vm.PageTable) {
	if !pt.FramesFull() {
		panic("replacing a page while the frame quota is not used up")
	}
}
