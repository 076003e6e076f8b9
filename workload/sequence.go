package workload

import (
	"fmt"
	"io"
)

// A Sequence replays a fixed list of pages, starting over after the last
// one. It ignores the frame quota.
type Sequence struct {
	pages []int
	pos   int
}

// NewSequence creates a Sequence.
func NewSequence(pages ...int) *Sequence {
	if len(pages) == 0 {
		panic("sequence must have at least one page")
	}

	s := &Sequence{pages: make([]int, len(pages))}
	copy(s.pages, pages)

	return s
}

// NextPage returns the next page of the list.
func (s *Sequence) NextPage(_ bool) int {
	page := s.pages[s.pos%len(s.pages)]
	s.pos++

	return page
}

// CountAccess does nothing.
func (s *Sequence) CountAccess() {}

// Issued returns the number of pages handed out so far.
func (s *Sequence) Issued() int {
	return s.pos
}

// Describe writes the list and the position in it.
func (s *Sequence) Describe(w io.Writer) {
	fmt.Fprintf(w, "Sequence %v, issued %d\n", s.pages, s.pos)
}
