package kernel

import (
	"log"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
)

// Kernel owns the free frames and decides which page gives way when a
// process that used up its quota needs another one.
type Kernel struct {
	Pool      *vm.FramePool
	Policy    replacement.Policy
	Executing *Process
	Action    Action

	// TimeLastFault is when the previous fault was raised.
	TimeLastFault float64
}

// NewKernel creates a kernel that starts by serving a page fault.
func NewKernel(pool *vm.FramePool, policy replacement.Policy) *Kernel {
	return &Kernel{
		Pool:   pool,
		Policy: policy,
		Action: PageFault,
	}
}

// EnsureResident loads vpage of process p unless it is already loaded. While
// the process is below its quota a free frame is pulled from the pool;
// afterwards the policy evicts one of the process's own pages. It returns
// the evicted page or vm.NoPage.
func (k *Kernel) EnsureResident(p *Process, vpage int, now float64) int {
	if p.Table.IsResident(vpage) {
		return vm.NoPage
	}

	if !p.Table.FramesFull() {
		frame, err := k.Pool.Pull()
		if err != nil {
			log.Panicf("process %d needs a frame for page %d: %v",
				p.PID, vpage, err)
		}

		p.Table.AddFrame(vpage, frame, now)

		return vm.NoPage
	}

	return k.Policy.Replace(p.Table, vpage, now)
}

// Classify tells if the page process p is about to reference can be accessed
// or needs to be faulted in.
func (k *Kernel) Classify(p *Process) Action {
	if p.Table.IsResident(p.Page) {
		return MemoryAccess
	}

	return PageFault
}
