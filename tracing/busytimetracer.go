package tracing

import (
	"sync"

	"github.com/sarchlab/pagesim/sim/timing"
)

// BusyTimeTracer measures how long at least one task of a kind is in
// progress. Overlapping tasks count once, so for page faults it gives the
// time the paging device is busy. Tasks must be reported in time order.
type BusyTimeTracer struct {
	timeTeller    timing.TimeTeller
	filter        TaskFilter
	lock          sync.Mutex
	inflightTasks map[string]bool
	busySince     timing.VTimeInSec
	busyTime      timing.VTimeInSec
}

// NewBusyTimeTracer creates a new BusyTimeTracer
func NewBusyTimeTracer(
	timeTeller timing.TimeTeller,
	filter TaskFilter,
) *BusyTimeTracer {
	t := &BusyTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]bool),
	}

	return t
}

// BusyTime returns the time spent with at least one task in progress,
// including the current busy period.
func (t *BusyTimeTracer) BusyTime() timing.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.inflightTasks) == 0 {
		return t.busyTime
	}

	return t.busyTime + t.timeTeller.Now() - t.busySince
}

// TerminateAllTasks ends every task in progress at the given time.
func (t *BusyTimeTracer) TerminateAllTasks(now timing.VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.inflightTasks) > 0 {
		t.busyTime += now - t.busySince
	}

	t.inflightTasks = make(map[string]bool)
}

// StartTask records the task start time
func (t *BusyTimeTracer) StartTask(task Task) {
	if t.filter != nil && !t.filter(task) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.inflightTasks) == 0 {
		t.busySince = t.timeTeller.Now()
	}

	t.inflightTasks[task.ID] = true
}

// EndTask records the end of the task
func (t *BusyTimeTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.inflightTasks[task.ID] {
		return
	}

	delete(t.inflightTasks, task.ID)

	if len(t.inflightTasks) == 0 {
		t.busyTime += t.timeTeller.Now() - t.busySince
	}
}
