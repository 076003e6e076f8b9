package kernel

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/workload"
)

// A Process is a simulated program. It references its virtual pages in
// bursts, and it owns a page table and a reference generator.
type Process struct {
	PID   vm.PID
	Table *vm.PageTable
	Refs  workload.ReferenceGenerator

	// Burst is the number of memory accesses left before the process gives
	// up the processor.
	Burst int

	// Page is the page being referenced.
	Page int

	// PendingPage is the page that faulted. The process references it again
	// before drawing anything new. It is vm.NoPage when no fault is pending.
	PendingPage int

	// Retry tells if Page is the retry of a faulted reference rather than a
	// new one.
	Retry bool

	// Faults and Accesses count the references of this process.
	Faults   uint64
	Accesses uint64
}

// NewProcess creates a process that has not referenced any page yet.
func NewProcess(
	pid vm.PID,
	table *vm.PageTable,
	refs workload.ReferenceGenerator,
) *Process {
	return &Process{
		PID:         pid,
		Table:       table,
		Refs:        refs,
		Page:        vm.NoPage,
		PendingPage: vm.NoPage,
	}
}

// NextReference selects the page the process references next and stores it
// in Page. A page that faulted earlier goes first and is flagged as a retry.
func (p *Process) NextReference() int {
	if p.PendingPage != vm.NoPage {
		p.Page = p.PendingPage
		p.PendingPage = vm.NoPage
		p.Retry = true

		return p.Page
	}

	p.Retry = false
	p.Page = p.Refs.NextPage(p.Table.FramesFull())
	if p.Page < 0 || p.Page >= p.Table.NumPages() {
		panic(fmt.Sprintf("process %d referenced page %d out of %d",
			p.PID, p.Page, p.Table.NumPages()))
	}

	return p.Page
}

// Dump writes the state of the process.
func (p *Process) Dump(w io.Writer) {
	fmt.Fprintf(w, "-------------- Process %d --------------\n", p.PID)
	p.Refs.Describe(w)
	fmt.Fprintf(w, "Accesses left in burst: %d, page %d, pending page %d\n",
		p.Burst, p.Page, p.PendingPage)
	fmt.Fprintf(w, "Faults: %d, accesses: %d\n", p.Faults, p.Accesses)

	fmt.Fprintln(w, "Page table")

	for v := 0; v < p.Table.NumPages(); v++ {
		e := p.Table.Page(v)
		if !e.Valid {
			fmt.Fprintf(w, "  page %d invalid\n", v)
			continue
		}

		fmt.Fprintf(w, "  page %d valid: frame %d, used %t, last access %.2f, count %d\n",
			v, e.Frame, e.Used, e.LastAccess, e.RefCount)
	}

	fmt.Fprintf(w, "Frames (max %d, cursor %d): %v\n",
		p.Table.Quota(), p.Table.Cursor(), p.Table.Frames())
}
