package memmanage

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pagesim/kernel"
	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/sim/timing"
	"github.com/sarchlab/pagesim/stats"
	"github.com/sarchlab/pagesim/workload"
)

// A Builder can build page replacement models.
type Builder struct {
	engine     timing.Engine
	policy     replacement.Policy
	numFrames  int
	quota      int
	meanBurst  float64
	faultTime  timing.VTimeInSec
	accessTime timing.VTimeInSec
	processes  []ProcessConfig
	seeds      *workload.Seeds
	sink       StatsSink
}

// MakeBuilder returns a Builder with the reference configuration, except for
// the engine, the policy and the seeds, which must be given.
func MakeBuilder() Builder {
	return Builder{
		numFrames:  DefaultNumFrames,
		quota:      DefaultQuota,
		meanBurst:  DefaultMeanBurst,
		faultTime:  DefaultFaultTime,
		accessTime: DefaultAccessTime,
		processes:  ReferenceProcesses(),
	}
}

// WithEngine sets the engine that drives the model.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithPolicy sets the replacement policy.
func (b Builder) WithPolicy(policy replacement.Policy) Builder {
	b.policy = policy
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithQuota sets the number of frames each process may hold.
func (b Builder) WithQuota(n int) Builder {
	b.quota = n
	return b
}

// WithMeanBurst sets the mean number of accesses a process makes each time
// it gets the processor.
func (b Builder) WithMeanBurst(mean float64) Builder {
	b.meanBurst = mean
	return b
}

// WithFaultTime sets the time to service a page fault.
func (b Builder) WithFaultTime(t timing.VTimeInSec) Builder {
	b.faultTime = t
	return b
}

// WithAccessTime sets the time of a memory access.
func (b Builder) WithAccessTime(t timing.VTimeInSec) Builder {
	b.accessTime = t
	return b
}

// WithProcesses replaces the processes. The first one starts executing and
// the others wait in the ready queue, in order.
func (b Builder) WithProcesses(processes ...ProcessConfig) Builder {
	b.processes = processes
	return b
}

// WithSeeds sets the seeds of the random streams.
func (b Builder) WithSeeds(seeds workload.Seeds) Builder {
	b.seeds = &seeds
	return b
}

// WithStatsSink sets where the fault interval samples go. By default they are
// kept in a stats.SampleSet.
func (b Builder) WithStatsSink(sink StatsSink) Builder {
	b.sink = sink
	return b
}

func (b Builder) validate() error {
	if b.engine == nil {
		return errors.New("engine is not set")
	}

	if b.policy == nil {
		return errors.New("replacement policy is not set")
	}

	if b.seeds == nil {
		return errors.New("seeds are not set")
	}

	if len(b.processes) == 0 {
		return errors.New("at least one process is required")
	}

	if err := b.seeds.Validate(len(b.processes)); err != nil {
		return err
	}

	if b.quota <= 0 {
		return fmt.Errorf("frame quota must be positive, got %d", b.quota)
	}

	if b.quota*len(b.processes) > b.numFrames {
		return fmt.Errorf("%d processes with a quota of %d need more than %d frames",
			len(b.processes), b.quota, b.numFrames)
	}

	if b.meanBurst <= 0 {
		return fmt.Errorf("mean burst must be positive, got %g", b.meanBurst)
	}

	if b.faultTime <= 0 || b.accessTime <= 0 {
		return fmt.Errorf("fault time %g and access time %g must be positive",
			b.faultTime, b.accessTime)
	}

	for i, p := range b.processes {
		if err := p.validate(); err != nil {
			return fmt.Errorf("process %d: %w", i, err)
		}
	}

	return nil
}

// Build creates the model and registers nothing on the engine yet. The model
// starts when Run is called.
func (b Builder) Build(name string) (*Model, error) {
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	m := &Model{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		engine:       b.engine,
		kernel:       kernel.NewKernel(vm.NewFramePool(b.numFrames), b.policy),
		ioWait:       make(map[vm.PID]*kernel.Process),
		faultTasks:   make(map[vm.PID]string),
		bursts:       workload.NewPoisson(b.meanBurst, b.seeds.Global),
		faultTime:    b.faultTime,
		accessTime:   b.accessTime,
		sink:         b.sink,
	}

	if m.sink == nil {
		m.sink = stats.NewSampleSet(name + ".FaultIntervals")
	}

	for i, cfg := range b.processes {
		p := kernel.NewProcess(
			vm.PID(FirstPID+i),
			vm.NewPageTable(cfg.numPages(), b.quota),
			cfg.generator(b.seeds.Processes[i]),
		)
		m.processes = append(m.processes, p)
	}

	m.ready = append(m.ready, m.processes[1:]...)

	return m, nil
}
