package replacement

import "github.com/sarchlab/pagesim/mem/vm"

// LRU evicts the resident page that was accessed the longest time ago. It
// does not use the cursor.
type LRU struct{}

// NewLRU creates an LRU policy.
func NewLRU() *LRU {
	return &LRU{}
}

// Name returns "LRU".
func (p *LRU) Name() string {
	return "LRU"
}

// Replace evicts the resident page with the smallest last access time. On a
// tie, the lowest page wins.
func (p *LRU) Replace(pt *vm.PageTable, vpage int, now float64) int {
	mustBeFull(pt)

	victim := vm.NoPage
	oldest := 0.0

	for _, v := range pt.ResidentPages() {
		t := pt.Page(v).LastAccess
		if victim == vm.NoPage || t < oldest {
			victim = v
			oldest = t
		}
	}

	pt.Replace(victim, vpage, now)

	return victim
}
