package workload

import "io"

// A ReferenceGenerator produces the virtual pages a process references.
type ReferenceGenerator interface {
	// NextPage returns the next page to reference. framesFull tells if the
	// process holds as many frames as its quota.
	NextPage(framesFull bool) int

	// CountAccess is called once per completed memory access of the
	// process, before its next page is drawn.
	CountAccess()

	// Describe writes the state of the generator for debugging.
	Describe(w io.Writer)
}
