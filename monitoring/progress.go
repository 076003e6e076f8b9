package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/sim/timing"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// SetFinished sets the number of finished elements.
func (b *ProgressBar) SetFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished = amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// A TimeProgress hook moves a progress bar along with the simulated time. The
// bar counts whole time units since the start time.
type TimeProgress struct {
	bar       *ProgressBar
	startTime timing.VTimeInSec
}

// NewTimeProgress creates a TimeProgress hook. It should be attached to the
// engine.
func NewTimeProgress(bar *ProgressBar, startTime timing.VTimeInSec) *TimeProgress {
	return &TimeProgress{bar: bar, startTime: startTime}
}

// Func updates the bar after each event.
func (p *TimeProgress) Func(ctx hooking.HookCtx) {
	if ctx.Pos != timing.HookPosAfterEvent {
		return
	}

	e := ctx.Item.(timing.Event)
	elapsed := e.Time() - p.startTime

	if elapsed < 0 {
		return
	}

	finished := uint64(elapsed)
	if finished > p.bar.Total {
		finished = p.bar.Total
	}

	p.bar.SetFinished(finished)
}
