package cmd

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/memmanage"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/sim/timing"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/sarchlab/pagesim/workload"
)

const summaryTable = "run_summary"

type runSummary struct {
	RunID         string
	Policy        string
	Seed          string
	StartTime     float64
	EndTime       float64
	Faults        uint64
	Accesses      uint64
	References    uint64
	FaultsPer1000 uint64
	MeanInterval  float64
	StdInterval   float64
	FaultService  float64
	FaultBusyTime float64
}

func (s runSummary) result() memmanage.Result {
	return memmanage.Result{
		Policy:        s.Policy,
		Faults:        s.Faults,
		Accesses:      s.Accesses,
		References:    s.References,
		FaultsPer1000: s.FaultsPer1000,
	}
}

// An experiment runs one policy over the reference processes.
type experiment struct {
	cfg    runConfig
	runID  string
	policy replacement.Policy
	engine timing.Engine

	// Optional services.
	recorder  datarecording.DataRecorder
	monitor   *monitoring.Monitor
	register  func(m *memmanage.Model)
	out       io.Writer
	eventLog  io.Writer
	faultLog  io.Writer
	stateDump io.Writer
}

func (e experiment) run() (memmanage.Result, error) {
	seeds := workload.NewSeedGenerator(e.cfg.seed).
		Seeds(len(memmanage.ReferenceProcesses()))

	model, err := memmanage.MakeBuilder().
		WithEngine(e.engine).
		WithPolicy(e.policy).
		WithSeeds(seeds).
		Build(e.policy.Name())
	if err != nil {
		return memmanage.Result{}, err
	}

	if e.register != nil {
		e.register(model)
	}

	faultTasks := tracing.KindIs("page_fault")
	serviceTime := tracing.NewTotalTimeTracer(e.engine, faultTasks)
	busyTime := tracing.NewBusyTimeTracer(e.engine, faultTasks)
	tracing.CollectTrace(model, serviceTime)
	tracing.CollectTrace(model, busyTime)

	e.attachLoggers(model)

	if e.recorder != nil {
		model.AcceptHook(memmanage.NewFaultRecorder(e.recorder))
	}

	var bar *monitoring.ProgressBar
	if e.monitor != nil {
		bar = e.monitor.CreateProgressBar(model.Name(),
			uint64(e.cfg.endTime-e.cfg.startTime))
		e.engine.AcceptHook(monitoring.NewTimeProgress(bar, e.cfg.startTime))
	}

	err = model.Run(e.cfg.startTime, e.cfg.endTime)
	if err != nil {
		return memmanage.Result{}, fmt.Errorf("running %s: %w",
			e.policy.Name(), err)
	}

	if bar != nil {
		e.monitor.CompleteProgressBar(bar)
	}

	busyTime.TerminateAllTasks(e.engine.Now())

	r := model.Result()
	r.Print(e.out)
	fmt.Fprintf(e.out, "Fault service time: %.2f total, %.2f average, %.2f with a fault in service\n",
		serviceTime.TotalTime(), serviceTime.AverageTime(), busyTime.BusyTime())

	if e.stateDump != nil {
		for _, p := range model.Processes() {
			p.Dump(e.stateDump)
		}
	}

	if e.recorder != nil {
		e.recordSummary(r, serviceTime.TotalTime(), busyTime.BusyTime())
	}

	return r, nil
}

func (e experiment) attachLoggers(model *memmanage.Model) {
	if e.eventLog != nil {
		e.engine.AcceptHook(timing.NewEventLogger(log.New(e.eventLog, "", 0)))
	}

	if e.faultLog != nil {
		model.AcceptHook(memmanage.NewFaultLogger(log.New(e.faultLog, "", 0)))
	}
}

func (e experiment) recordSummary(
	r memmanage.Result,
	serviceTime, busyTime float64,
) {
	e.recorder.InsertData(summaryTable, runSummary{
		RunID:         e.runID,
		Policy:        r.Policy,
		Seed:          strconv.FormatUint(e.cfg.seed, 10),
		StartTime:     e.cfg.startTime,
		EndTime:       e.cfg.endTime,
		Faults:        r.Faults,
		Accesses:      r.Accesses,
		References:    r.References,
		FaultsPer1000: r.FaultsPer1000,
		MeanInterval:  orZero(r.Intervals.Mean),
		StdInterval:   orZero(r.Intervals.StdDev),
		FaultService:  serviceTime,
		FaultBusyTime: busyTime,
	})
	e.recorder.Flush()
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	return v
}
