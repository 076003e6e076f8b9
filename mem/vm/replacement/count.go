package replacement

import "github.com/sarchlab/pagesim/mem/vm"

// Count evicts the resident page that was referenced the fewest times since
// it was loaded.
type Count struct{}

// NewCount creates a COUNT policy.
func NewCount() *Count {
	return &Count{}
}

// Name returns "COUNT".
func (p *Count) Name() string {
	return "COUNT"
}

// Replace scans the held frames starting at the cursor and evicts the page
// with the smallest reference count, the first one found on a tie. Both the
// victim and the new page restart from a zero count. The cursor advances by
// one regardless of where the victim was.
func (p *Count) Replace(pt *vm.PageTable, vpage int, now float64) int {
	mustBeFull(pt)

	n := pt.NumFrames()
	start := pt.Cursor()
	victim := pt.PageInFrame(pt.FrameAt(start))

	for i := 1; i < n; i++ {
		v := pt.PageInFrame(pt.FrameAt((start + i) % n))
		if pt.Page(v).RefCount < pt.Page(victim).RefCount {
			victim = v
		}
	}

	pt.ResetRefCount(victim)
	pt.Replace(victim, vpage, now)
	pt.ResetRefCount(vpage)
	pt.AdvanceCursor()

	return victim
}
