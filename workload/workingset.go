package workload

import (
	"fmt"
	"io"
	"strings"
)

// ReuseProbability is the chance that, once the frame quota is full, a
// reference goes to a hot page instead of the next segment of the working
// set.
const ReuseProbability = 0.90

const noHotPage = -1

// A WorkingSet generates references with locality. It keeps a subset of the
// pages of every segment as the working set and cycles through the segments,
// picking a page of the working set in each. Once the process has used its
// whole frame quota, most references go back to the page last picked in the
// code segment or in the other segments. The working set is redrawn after a
// random number of accesses.
type WorkingSet struct {
	layout Layout

	address *Uniform
	phase   *Poisson
	reuse   *Bernoulli

	pages       []int
	segmentEnds [numSegments]int
	next        Segment
	hot         [2]int
	untilChange int
}

// NewWorkingSet creates a working set generator and draws its first working
// set. meanPhase is the mean number of accesses between two working set
// changes.
func NewWorkingSet(
	layout Layout,
	meanPhase float64,
	seeds ProcessSeeds,
) *WorkingSet {
	if err := layout.Validate(); err != nil {
		panic(err)
	}

	w := &WorkingSet{
		layout:  layout,
		address: NewUniform(seeds.Address),
		phase:   NewPoisson(meanPhase, seeds.Phase),
		reuse:   NewBernoulli(ReuseProbability, seeds.Reuse),
		hot:     [2]int{noHotPage, noHotPage},
	}

	w.Regenerate()

	return w
}

// Regenerate draws a new working set, restarts the segment cycle at the code
// segment and draws the number of accesses until the next change. Hot pages
// survive the change.
func (w *WorkingSet) Regenerate() {
	var sizes [numSegments]int

	total := 0

	for seg := Code; seg < numSegments; seg++ {
		hi := w.layout.Size(seg) / 2
		if hi < 1 {
			hi = 1
		}

		sizes[seg] = w.address.IntFromTo(1, hi)
		total += sizes[seg]
	}

	w.pages = make([]int, 0, total)

	for seg := Code; seg < numSegments; seg++ {
		start, end := w.layout.Bounds(seg)
		w.pages = append(w.pages, w.pickDistinct(start, end, sizes[seg])...)
		w.segmentEnds[seg] = len(w.pages)
	}

	w.next = Code
	w.untilChange = w.phase.Next()
}

// pickDistinct draws n different pages from [start, end).
func (w *WorkingSet) pickDistinct(start, end, n int) []int {
	candidates := make([]int, end-start)
	for i := range candidates {
		candidates[i] = start + i
	}

	for i := 0; i < n; i++ {
		j := w.address.IntFromTo(i, len(candidates)-1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return candidates[:n]
}

// NextPage returns the next page to reference.
func (w *WorkingSet) NextPage(framesFull bool) int {
	if framesFull && w.reuse.Next() {
		page := w.hot[w.address.IntFromTo(0, 1)]
		if page != noHotPage {
			return page
		}
	}

	return w.nextInCycle()
}

func (w *WorkingSet) nextInCycle() int {
	pages := w.SegmentPages(w.next)

	page := pages[0]
	if len(pages) > 1 {
		page = pages[w.address.IntFromTo(0, len(pages)-1)]
	}

	if w.next == Code {
		w.hot[0] = page
	} else {
		w.hot[1] = page
	}

	w.next = (w.next + 1) % numSegments

	return page
}

// CountAccess counts down the accesses until the next working set change
// and regenerates the working set once the count is used up.
func (w *WorkingSet) CountAccess() {
	if w.untilChange <= 0 {
		w.Regenerate()
		return
	}

	w.untilChange--
}

// Layout returns the layout of the address space.
func (w *WorkingSet) Layout() Layout {
	return w.layout
}

// Pages returns the pages of the working set, segment by segment.
func (w *WorkingSet) Pages() []int {
	pages := make([]int, len(w.pages))
	copy(pages, w.pages)

	return pages
}

// SegmentPages returns the working set pages of one segment.
func (w *WorkingSet) SegmentPages(s Segment) []int {
	start := 0
	if s > Code {
		start = w.segmentEnds[s-1]
	}

	return w.pages[start:w.segmentEnds[s]]
}

// UntilChange returns the number of accesses left before the working set
// changes.
func (w *WorkingSet) UntilChange() int {
	return w.untilChange
}

// HotPages returns the pages last picked from the code segment and from the
// other segments. A page is -1 until it is first picked.
func (w *WorkingSet) HotPages() (code, other int) {
	return w.hot[0], w.hot[1]
}

// Describe writes the layout, the working set and the counters.
func (w *WorkingSet) Describe(wr io.Writer) {
	fmt.Fprintf(wr, "Virtual pages: total %d, code %d, data %d, stack %d, heap %d\n",
		w.layout.NumPages(), w.layout.Code, w.layout.Data,
		w.layout.Stack, w.layout.Heap)
	fmt.Fprintf(wr, "Accesses until working set change: %d\n", w.untilChange)

	segs := make([]string, 0, numSegments)
	for seg := Code; seg < numSegments; seg++ {
		segs = append(segs, fmt.Sprintf("%s %v", seg, w.SegmentPages(seg)))
	}

	fmt.Fprintf(wr, "Working set: %s\n", strings.Join(segs, ", "))
	fmt.Fprintf(wr, "Next segment: %s, hot pages: %d %d\n",
		w.next, w.hot[0], w.hot[1])
}
