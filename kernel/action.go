// Package kernel models the operating system kernel of the simulated
// machine: the processes it runs, the physical frames it hands out and the
// action it takes next.
package kernel

import "fmt"

// Action is what the kernel does next.
type Action int

// The kernel actions. Only Accessing spans simulated time.
const (
	Idle Action = iota
	PageFault
	MemoryAccess
	Accessing
)

func (a Action) String() string {
	switch a {
	case Idle:
		return "Idle"
	case PageFault:
		return "PageFault"
	case MemoryAccess:
		return "MemoryAccess"
	case Accessing:
		return "Accessing"
	}

	return fmt.Sprintf("Action(%d)", int(a))
}
