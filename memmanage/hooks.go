package memmanage

import (
	"context"
	"log"
	"slices"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/sim/hooking"
)

// HookPosFault marks the moment a page fault is raised. The item is a Fault.
var HookPosFault = &hooking.HookPos{Name: "PageFault"}

// HookPosEviction marks the moment a page is evicted to make room for a
// faulted page. The item is an Eviction.
var HookPosEviction = &hooking.HookPos{Name: "Eviction"}

// A Fault is a page fault raised by a process.
type Fault struct {
	Time     float64
	Interval float64
	PID      vm.PID
	Page     int
}

// An Eviction is a page that gave its frame to a faulted page of the same
// process.
type Eviction struct {
	Time   float64
	PID    vm.PID
	Victim int
	Page   int
	Frame  vm.FrameID
}

// FaultLogger prints every fault and eviction.
type FaultLogger struct {
	logger *log.Logger
}

// NewFaultLogger creates a FaultLogger that writes into logger.
func NewFaultLogger(logger *log.Logger) *FaultLogger {
	return &FaultLogger{logger: logger}
}

// Func prints the fault or the eviction.
func (l *FaultLogger) Func(ctx hooking.HookCtx) {
	switch item := ctx.Item.(type) {
	case Fault:
		l.logger.Printf("%.2f, fault, process %d, page %d, interval %.2f",
			item.Time, item.PID, item.Page, item.Interval)
	case Eviction:
		l.logger.Printf("%.2f, evict, process %d, page %d -> page %d, frame %d",
			item.Time, item.PID, item.Victim, item.Page, item.Frame)
	}
}

// FaultIntervalTable is the table FaultRecorder writes into.
const FaultIntervalTable = "fault_intervals"

type faultIntervalEntry struct {
	Model    string
	Time     float64
	Interval float64
	PID      uint32
	Page     int
}

// FaultRecorder writes every fault into a data recorder.
type FaultRecorder struct {
	recorder datarecording.DataRecorder
}

// NewFaultRecorder creates the fault interval table unless it exists, and
// returns a hook that fills it. Several models can share the table.
func NewFaultRecorder(recorder datarecording.DataRecorder) *FaultRecorder {
	if !slices.Contains(recorder.ListTables(), FaultIntervalTable) {
		recorder.CreateTable(FaultIntervalTable, faultIntervalEntry{})
	}

	return &FaultRecorder{recorder: recorder}
}

// Func records the fault.
func (r *FaultRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosFault {
		return
	}

	f := ctx.Item.(Fault)
	r.recorder.InsertData(FaultIntervalTable, faultIntervalEntry{
		Model:    ctx.Domain.(*Model).Name(),
		Time:     f.Time,
		Interval: f.Interval,
		PID:      uint32(f.PID),
		Page:     f.Page,
	})
}

// ReadFaults reads back the faults a FaultRecorder wrote for the named model,
// in the order they were raised.
func ReadFaults(
	ctx context.Context,
	r *datarecording.Reader,
	model string,
) ([]Fault, error) {
	entries, err := datarecording.ReadTable[faultIntervalEntry](ctx, r,
		FaultIntervalTable,
		datarecording.Selection{Column: "Model", Value: model})
	if err != nil {
		return nil, err
	}

	faults := make([]Fault, 0, len(entries))
	for _, e := range entries {
		faults = append(faults, Fault{
			Time:     e.Time,
			Interval: e.Interval,
			PID:      vm.PID(e.PID),
			Page:     e.Page,
		})
	}

	return faults, nil
}
