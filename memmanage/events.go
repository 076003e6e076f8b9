package memmanage

import (
	"github.com/sarchlab/pagesim/kernel"
	"github.com/sarchlab/pagesim/sim/timing"
)

// A FaultDoneEvent marks the end of the service of a page fault.
type FaultDoneEvent struct {
	*timing.EventBase
	Process *kernel.Process
}

// NewFaultDoneEvent creates a FaultDoneEvent.
func NewFaultDoneEvent(
	t timing.VTimeInSec,
	handler timing.Handler,
	p *kernel.Process,
) *FaultDoneEvent {
	return &FaultDoneEvent{
		EventBase: timing.NewEventBase(t, handler),
		Process:   p,
	}
}

// An AccessDoneEvent marks the end of a memory access by the executing
// process.
type AccessDoneEvent struct {
	*timing.EventBase
}

// NewAccessDoneEvent creates an AccessDoneEvent.
func NewAccessDoneEvent(
	t timing.VTimeInSec,
	handler timing.Handler,
) *AccessDoneEvent {
	return &AccessDoneEvent{
		EventBase: timing.NewEventBase(t, handler),
	}
}
