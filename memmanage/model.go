// Package memmanage simulates a multiprogrammed machine whose processes
// compete for a fixed set of physical frames, and counts the page faults a
// replacement policy causes.
package memmanage

import (
	"fmt"
	"log"
	"sort"

	"github.com/sarchlab/pagesim/kernel"
	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/sim/id"
	"github.com/sarchlab/pagesim/sim/timing"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/sarchlab/pagesim/workload"
)

// StatsSink receives the time between consecutive page faults.
type StatsSink interface {
	Put(t, v float64)
}

// Model is the page replacement model. Exactly one process executes at a
// time; the others wait in the ready queue or for a page fault to be
// serviced.
type Model struct {
	*hooking.HookableBase

	name   string
	engine timing.Engine
	kernel *kernel.Kernel

	processes []*kernel.Process
	ready     []*kernel.Process
	ioWait    map[vm.PID]*kernel.Process

	faultTasks map[vm.PID]string

	bursts     *workload.Poisson
	faultTime  timing.VTimeInSec
	accessTime timing.VTimeInSec
	sink       StatsSink

	started    bool
	faults     uint64
	accesses   uint64
	references uint64
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// Engine returns the engine driving the model.
func (m *Model) Engine() timing.Engine {
	return m.engine
}

// Kernel returns the kernel.
func (m *Model) Kernel() *kernel.Kernel {
	return m.kernel
}

// Processes returns all the processes, in PID order.
func (m *Model) Processes() []*kernel.Process {
	return m.processes
}

// Process returns the process with the given PID, or nil.
func (m *Model) Process(pid vm.PID) *kernel.Process {
	for _, p := range m.processes {
		if p.PID == pid {
			return p
		}
	}

	return nil
}

// ReadyQueue returns the PIDs of the ready processes, next to run first.
func (m *Model) ReadyQueue() []vm.PID {
	pids := make([]vm.PID, len(m.ready))
	for i, p := range m.ready {
		pids[i] = p.PID
	}

	return pids
}

// IOWait returns the PIDs of the processes waiting for a fault service, in
// ascending order.
func (m *Model) IOWait() []vm.PID {
	pids := make([]vm.PID, 0, len(m.ioWait))
	for pid := range m.ioWait {
		pids = append(pids, pid)
	}

	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	return pids
}

// StatsSink returns where the fault intervals go.
func (m *Model) StatsSink() StatsSink {
	return m.sink
}

// Start puts the first process on the processor at the current engine time
// and schedules the first event.
func (m *Model) Start() {
	if m.started {
		log.Panicf("model %s already started", m.name)
	}

	m.started = true

	now := m.engine.Now()
	m.kernel.TimeLastFault = now

	m.dispatch(m.processes[0])
	m.preconditions()
}

// Run starts the model at startTime and processes events until the next
// event is later than endTime.
func (m *Model) Run(startTime, endTime timing.VTimeInSec) error {
	if startTime < 0 {
		return fmt.Errorf("start time must not be negative, got %g", startTime)
	}

	if endTime <= startTime {
		return fmt.Errorf("end time %g must be after start time %g",
			endTime, startTime)
	}

	m.engine.SetStartTime(startTime)
	m.Start()

	return m.engine.RunUntil(endTime)
}

// Handle processes the events of the model.
func (m *Model) Handle(e timing.Event) error {
	switch e := e.(type) {
	case *FaultDoneEvent:
		m.handleFaultDone(e)
	case *AccessDoneEvent:
		m.handleAccessDone(e)
	default:
		log.Panicf("cannot handle event of type %T", e)
	}

	return nil
}

// preconditions resolves the actions that take no simulated time. It stops
// once a memory access is in flight or nothing is ready to run. Every turn
// either schedules an event or takes a process off the ready queue, so the
// loop is bounded.
func (m *Model) preconditions() {
	for {
		switch {
		case m.kernel.Action == kernel.PageFault:
			m.raiseFault()
		case m.kernel.Action == kernel.MemoryAccess:
			m.startAccess()
		case m.kernel.Action == kernel.Idle && len(m.ready) > 0:
			m.dispatch(m.dequeue())
		default:
			return
		}
	}
}

func (m *Model) raiseFault() {
	now := m.engine.Now()
	p := m.kernel.Executing

	interval := now - m.kernel.TimeLastFault
	m.sink.Put(now, interval)
	m.kernel.TimeLastFault = now
	m.faults++
	p.Faults++

	p.PendingPage = p.Page

	if _, found := m.ioWait[p.PID]; found {
		log.Panicf("process %d is already waiting for a fault", p.PID)
	}

	m.ioWait[p.PID] = p
	m.startFaultTask(p)

	m.InvokeHook(hooking.HookCtx{
		Domain: m,
		Pos:    HookPosFault,
		Item: Fault{
			Time:     now,
			Interval: interval,
			PID:      p.PID,
			Page:     p.Page,
		},
	})

	m.kernel.Executing = nil
	m.kernel.Action = kernel.Idle

	if len(m.ready) > 0 {
		m.dispatch(m.dequeue())
	}

	m.engine.Schedule(NewFaultDoneEvent(now+m.faultTime, m, p))
}

func (m *Model) startAccess() {
	p := m.kernel.Executing

	m.kernel.Action = kernel.Accessing
	p.Burst--

	if !p.Retry {
		m.accesses++
		p.Accesses++
	}

	m.engine.Schedule(NewAccessDoneEvent(m.engine.Now()+m.accessTime, m))
}

func (m *Model) handleFaultDone(e *FaultDoneEvent) {
	now := m.engine.Now()
	p := e.Process

	victim := m.kernel.EnsureResident(p, p.PendingPage, now)
	if victim != vm.NoPage {
		m.InvokeHook(hooking.HookCtx{
			Domain: m,
			Pos:    HookPosEviction,
			Item: Eviction{
				Time:   now,
				PID:    p.PID,
				Victim: victim,
				Page:   p.PendingPage,
				Frame:  p.Table.Page(p.PendingPage).Frame,
			},
		})
	}

	if _, found := m.ioWait[p.PID]; !found {
		log.Panicf("process %d finished a fault but is not waiting for one",
			p.PID)
	}

	delete(m.ioWait, p.PID)
	m.ready = append(m.ready, p)
	m.endFaultTask(p)

	m.preconditions()
}

func (m *Model) handleAccessDone(_ *AccessDoneEvent) {
	now := m.engine.Now()
	p := m.kernel.Executing

	if p == nil || m.kernel.Action != kernel.Accessing {
		log.Panicf("memory access done while %s", m.kernel.Action)
	}

	p.Table.Touch(p.Page, now)

	if p.Burst <= 0 {
		m.ready = append(m.ready, p)
		p = m.dequeue()
		m.kernel.Executing = p
		p.Burst = m.bursts.Next()
	}

	p.Refs.CountAccess()
	m.nextReference(p)

	m.preconditions()
}

func (m *Model) dispatch(p *kernel.Process) {
	m.kernel.Executing = p
	p.Burst = m.bursts.Next()
	m.nextReference(p)
}

func (m *Model) nextReference(p *kernel.Process) {
	p.NextReference()
	m.kernel.Action = m.kernel.Classify(p)

	if !p.Retry {
		m.references++
		return
	}

	if m.kernel.Action != kernel.MemoryAccess {
		log.Panicf("process %d page %d is not resident after its fault",
			p.PID, p.Page)
	}
}

func (m *Model) dequeue() *kernel.Process {
	if len(m.ready) == 0 {
		log.Panic("no process is ready to run")
	}

	p := m.ready[0]
	m.ready = m.ready[1:]

	return p
}

func (m *Model) startFaultTask(p *kernel.Process) {
	taskID := id.Generate()
	m.faultTasks[p.PID] = taskID

	tracing.StartTask(taskID, "", m, "page_fault",
		fmt.Sprintf("process %d page %d", p.PID, p.Page), p.PID)
}

func (m *Model) endFaultTask(p *kernel.Process) {
	taskID := m.faultTasks[p.PID]
	delete(m.faultTasks, p.PID)

	tracing.EndTask(taskID, m)
}
