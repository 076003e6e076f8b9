package memmanage

import (
	"fmt"
	"io"
	"math"

	"github.com/sarchlab/pagesim/stats"
)

// Result gives the outcome of a run.
type Result struct {
	Policy        string
	Faults        uint64
	Accesses      uint64
	References    uint64
	FaultsPer1000 uint64
	Intervals     stats.Summary
}

// FaultsPer1000 returns the number of faults per 1000 references, rounded
// down. It is 0 when there is no reference.
func FaultsPer1000(faults, accesses uint64) uint64 {
	if faults+accesses == 0 {
		return 0
	}

	return faults * 1000 / (faults + accesses)
}

type summarizer interface {
	Summary() stats.Summary
}

// Result computes the outcome of the run so far. The interval summary is
// only filled when the stats sink can summarize its samples.
func (m *Model) Result() Result {
	r := Result{
		Policy:        m.kernel.Policy.Name(),
		Faults:        m.faults,
		Accesses:      m.accesses,
		References:    m.references,
		FaultsPer1000: FaultsPer1000(m.faults, m.accesses),
	}

	if s, ok := m.sink.(summarizer); ok {
		r.Intervals = s.Summary()
	} else {
		nan := math.NaN()
		r.Intervals = stats.Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan}
	}

	return r
}

// Print writes the result the way the experiment reports it.
func (r Result) Print(w io.Writer) {
	fmt.Fprintf(w, "Running simulation using %s\n", r.Policy)
	fmt.Fprintf(w, "Number of faults: %d\n", r.Faults)
	fmt.Fprintf(w, "Number memory accesses (no faults): %d\n", r.Accesses)
	fmt.Fprintf(w, "Number of faults per 1000 references: %d\n", r.FaultsPer1000)

	if r.Intervals.Count > 0 {
		fmt.Fprintf(w, "Time between faults: mean %.2f, std %.2f, min %.2f, max %.2f\n",
			r.Intervals.Mean, r.Intervals.StdDev, r.Intervals.Min, r.Intervals.Max)
	}
}
