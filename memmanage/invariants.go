package memmanage

import (
	"fmt"

	"github.com/sarchlab/pagesim/mem/vm"
)

// CheckInvariants verifies that frames are owned by at most one page and
// none is lost, that every process is in exactly one place, and that every
// reference is counted once.
func (m *Model) CheckInvariants() error {
	if err := m.checkFrames(); err != nil {
		return err
	}

	if err := m.checkProcessPlacement(); err != nil {
		return err
	}

	if m.faults+m.accesses != m.references {
		return fmt.Errorf("%d faults and %d accesses for %d references",
			m.faults, m.accesses, m.references)
	}

	return nil
}

func (m *Model) checkFrames() error {
	owner := make(map[vm.FrameID]vm.PID)
	held := 0

	for _, p := range m.processes {
		if err := p.Table.Validate(); err != nil {
			return fmt.Errorf("process %d: %w", p.PID, err)
		}

		if p.Table.NumFrames() > p.Table.Quota() {
			return fmt.Errorf("process %d holds %d frames over a quota of %d",
				p.PID, p.Table.NumFrames(), p.Table.Quota())
		}

		for _, f := range p.Table.Frames() {
			if other, taken := owner[f]; taken {
				return fmt.Errorf("frame %d held by processes %d and %d",
					f, other, p.PID)
			}

			owner[f] = p.PID
		}

		held += p.Table.NumFrames()
	}

	for _, f := range m.kernel.Pool.FreeFrames() {
		if pid, taken := owner[f]; taken {
			return fmt.Errorf("frame %d is free but held by process %d", f, pid)
		}
	}

	total := m.kernel.Pool.NumTotal()
	if held+m.kernel.Pool.NumFree() != total {
		return fmt.Errorf("%d frames held and %d free out of %d",
			held, m.kernel.Pool.NumFree(), total)
	}

	return nil
}

func (m *Model) checkProcessPlacement() error {
	places := make(map[vm.PID]int)

	if m.kernel.Executing != nil {
		places[m.kernel.Executing.PID]++
	}

	for _, p := range m.ready {
		places[p.PID]++
	}

	for pid := range m.ioWait {
		places[pid]++
	}

	for _, p := range m.processes {
		if places[p.PID] != 1 {
			return fmt.Errorf("process %d is in %d places", p.PID, places[p.PID])
		}
	}

	return nil
}
