package vm

import (
	"errors"
	"log"
)

// ErrNoFreeFrame is returned when the pool has no frame to hand out.
var ErrNoFreeFrame = errors.New("no free frame")

// A FramePool owns the physical frames that no process holds. Frames are
// handed out from the front of the free list and returned to its back.
type FramePool struct {
	free  []FrameID
	out   map[FrameID]bool
	total int
}

// NewFramePool creates a pool with frames 0 to numFrames-1, all free.
func NewFramePool(numFrames int) *FramePool {
	if numFrames <= 0 {
		log.Panicf("frame pool must have at least one frame, got %d",
			numFrames)
	}

	p := &FramePool{
		free:  make([]FrameID, numFrames),
		out:   make(map[FrameID]bool, numFrames),
		total: numFrames,
	}

	for i := range p.free {
		p.free[i] = FrameID(i)
	}

	return p
}

// Pull removes the frame at the front of the free list and returns it.
func (p *FramePool) Pull() (FrameID, error) {
	if len(p.free) == 0 {
		return 0, ErrNoFreeFrame
	}

	frame := p.free[0]
	p.free = p.free[1:]

	if p.out[frame] {
		log.Panicf("frame %d handed out twice", frame)
	}

	p.out[frame] = true

	return frame, nil
}

// Return puts a frame that was pulled earlier back at the end of the free
// list.
func (p *FramePool) Return(frame FrameID) {
	if !p.out[frame] {
		log.Panicf("frame %d returned but it was not handed out", frame)
	}

	delete(p.out, frame)
	p.free = append(p.free, frame)
}

// NumFree returns the number of frames in the free list.
func (p *FramePool) NumFree() int {
	return len(p.free)
}

// NumTotal returns the number of frames the pool was created with.
func (p *FramePool) NumTotal() int {
	return p.total
}

// FreeFrames returns the free list in hand-out order.
func (p *FramePool) FreeFrames() []FrameID {
	frames := make([]FrameID, len(p.free))
	copy(frames, p.free)

	return frames
}
