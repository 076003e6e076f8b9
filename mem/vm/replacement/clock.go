package replacement

import "github.com/sarchlab/pagesim/mem/vm"

// Clock gives a page that was used since the cursor last passed it a second
// chance. The cursor sweeps the held frames, clearing used bits, and the
// first page found unused is evicted.
type Clock struct{}

// NewClock creates a CLOCK policy.
func NewClock() *Clock {
	return &Clock{}
}

// Name returns "CLOCK".
func (p *Clock) Name() string {
	return "CLOCK"
}

// Replace sweeps from the cursor and leaves the cursor on the frame after the
// victim. The sweep ends within two turns, since the first turn clears every
// used bit.
func (p *Clock) Replace(pt *vm.PageTable, vpage int, now float64) int {
	mustBeFull(pt)

	for {
		v := pt.PageInFrame(pt.FrameAt(pt.Cursor()))

		if pt.Page(v).Used {
			pt.ClearUsed(v)
			pt.AdvanceCursor()

			continue
		}

		pt.Replace(v, vpage, now)
		pt.AdvanceCursor()

		return v
	}
}
