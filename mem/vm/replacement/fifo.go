package replacement

import "github.com/sarchlab/pagesim/mem/vm"

// FIFO evicts the page in the frame under the cursor. As the cursor walks the
// held frames in load order, pages leave in the order they came in.
type FIFO struct{}

// NewFIFO creates a FIFO policy.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// Name returns "FIFO".
func (p *FIFO) Name() string {
	return "FIFO"
}

// Replace evicts the page under the cursor and advances the cursor.
func (p *FIFO) Replace(pt *vm.PageTable, vpage int, now float64) int {
	mustBeFull(pt)

	victim := pt.PageInFrame(pt.FrameAt(pt.Cursor()))
	pt.Replace(victim, vpage, now)
	pt.AdvanceCursor()

	return victim
}
