// Package workload generates the virtual page references of the simulated
// processes.
package workload

import (
	"fmt"
)

// A Segment is one of the four regions of a process address space.
type Segment int

// The segments, in address order.
const (
	Code Segment = iota
	Data
	Stack
	Heap
	numSegments
)

var segmentNames = [numSegments]string{"code", "data", "stack", "heap"}

func (s Segment) String() string {
	if s < 0 || s >= numSegments {
		return fmt.Sprintf("Segment(%d)", int(s))
	}

	return segmentNames[s]
}

// Layout gives the number of pages in each segment. Segments are laid out
// back to back, code first.
type Layout struct {
	Code  int
	Data  int
	Stack int
	Heap  int
}

// NumPages returns the total number of virtual pages.
func (l Layout) NumPages() int {
	return l.Code + l.Data + l.Stack + l.Heap
}

// Size returns the number of pages in a segment.
func (l Layout) Size(s Segment) int {
	switch s {
	case Code:
		return l.Code
	case Data:
		return l.Data
	case Stack:
		return l.Stack
	case Heap:
		return l.Heap
	}

	panic(fmt.Sprintf("unknown segment %d", int(s)))
}

// Bounds returns the first page and one past the last page of a segment.
func (l Layout) Bounds(s Segment) (start, end int) {
	for seg := Code; seg < s; seg++ {
		start += l.Size(seg)
	}

	return start, start + l.Size(s)
}

// SegmentOf returns the segment a page belongs to.
func (l Layout) SegmentOf(vpage int) Segment {
	for seg := Code; seg < numSegments; seg++ {
		_, end := l.Bounds(seg)
		if vpage < end {
			return seg
		}
	}

	panic(fmt.Sprintf("page %d is outside of the layout", vpage))
}

// Validate returns an error if any segment is empty.
func (l Layout) Validate() error {
	for seg := Code; seg < numSegments; seg++ {
		if l.Size(seg) <= 0 {
			return fmt.Errorf("%s segment must have at least one page, got %d",
				seg, l.Size(seg))
		}
	}

	return nil
}
