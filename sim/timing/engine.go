package timing

import (
	"github.com/sarchlab/pagesim/sim/hooking"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() VTimeInSec
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller

	Schedule(e Event)
}

// An Engine is a unit that keeps the discrete event simulation run.
type Engine interface {
	hooking.Hookable
	EventScheduler

	// SetStartTime sets the clock before any event is scheduled.
	SetStartTime(t VTimeInSec)

	// Run will process all the events until the simulation finishes
	Run() error

	// RunUntil processes events until the queue is empty or the next event
	// is scheduled after endTime.
	RunUntil(endTime VTimeInSec) error

	// Pending returns the number of events that have not been handled.
	Pending() int

	// Pause will pause the simulation until continue is called.
	Pause()

	// Continue will continue the paused simulation
	Continue()
}
