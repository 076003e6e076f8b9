// Package vm provides the per-process page tables and the global pool of
// physical frames that back them.
package vm

import (
	"fmt"
	"log"
)

// PID stands for Process ID.
type PID uint32

// FrameID identifies a physical frame.
type FrameID int

// NoPage marks the absence of a virtual page.
const NoPage = -1

// A Page is an entry in the page table, maintaining the residency and access
// information of one virtual page.
type Page struct {
	Frame      FrameID
	Valid      bool
	Used       bool
	LastAccess float64
	RefCount   uint64
}

// A PageTable holds the pages of one process, together with the frames the
// process currently holds and the replacement cursor into them.
//
// Frames are kept in the order they were first acquired. Every valid page
// maps to exactly one held frame and every held frame backs exactly one valid
// page.
type PageTable struct {
	pages  []Page
	frames []FrameID
	quota  int
	cursor int
}

// NewPageTable creates a page table with numPages invalid pages that may hold
// at most quota frames.
func NewPageTable(numPages, quota int) *PageTable {
	if numPages <= 0 {
		log.Panicf("page table must have at least one page, got %d", numPages)
	}

	if quota <= 0 {
		log.Panicf("frame quota must be positive, got %d", quota)
	}

	return &PageTable{
		pages:  make([]Page, numPages),
		frames: make([]FrameID, 0, quota),
		quota:  quota,
	}
}

// NumPages returns the number of virtual pages.
func (t *PageTable) NumPages() int {
	return len(t.pages)
}

// Quota returns the maximum number of frames the table can hold.
func (t *PageTable) Quota() int {
	return t.quota
}

// Page returns a copy of the entry of a virtual page.
func (t *PageTable) Page(vpage int) Page {
	t.pageMustExist(vpage)
	return t.pages[vpage]
}

// IsResident tells if the virtual page is currently loaded in a frame.
func (t *PageTable) IsResident(vpage int) bool {
	t.pageMustExist(vpage)
	return t.pages[vpage].Valid
}

// FramesFull tells if the table already holds as many frames as its quota.
func (t *PageTable) FramesFull() bool {
	return len(t.frames) >= t.quota
}

// NumFrames returns the number of frames currently held.
func (t *PageTable) NumFrames() int {
	return len(t.frames)
}

// Frames returns the held frames in the order they were acquired.
func (t *PageTable) Frames() []FrameID {
	frames := make([]FrameID, len(t.frames))
	copy(frames, t.frames)

	return frames
}

// FrameAt returns the held frame at a position of the frame list.
func (t *PageTable) FrameAt(i int) FrameID {
	return t.frames[i]
}

// Cursor returns the position in the frame list the replacement cursor
// points to.
func (t *PageTable) Cursor() int {
	return t.cursor
}

// SetCursor moves the replacement cursor. The position wraps around the
// frame list.
func (t *PageTable) SetCursor(i int) {
	t.framesMustNotBeEmpty()
	t.cursor = i % len(t.frames)
}

// AdvanceCursor moves the replacement cursor to the next held frame.
func (t *PageTable) AdvanceCursor() {
	t.SetCursor(t.cursor + 1)
}

// ResidentPages returns the virtual pages that are currently valid, in
// ascending page order.
func (t *PageTable) ResidentPages() []int {
	resident := make([]int, 0, len(t.frames))

	for vpage, p := range t.pages {
		if p.Valid {
			resident = append(resident, vpage)
		}
	}

	return resident
}

// PageInFrame returns the valid page that occupies a held frame.
func (t *PageTable) PageInFrame(frame FrameID) int {
	for vpage, p := range t.pages {
		if p.Valid && p.Frame == frame {
			return vpage
		}
	}

	log.Panicf("frame %d is not backing any page", frame)

	return NoPage
}

// AddFrame takes ownership of a new frame and loads vpage into it.
func (t *PageTable) AddFrame(vpage int, frame FrameID, now float64) {
	t.pageMustExist(vpage)
	t.pageMustNotBeResident(vpage)

	if t.FramesFull() {
		log.Panicf("cannot hold more than %d frames", t.quota)
	}

	for _, f := range t.frames {
		if f == frame {
			log.Panicf("frame %d is already held", frame)
		}
	}

	t.frames = append(t.frames, frame)
	t.load(vpage, frame, now)
}

// Replace evicts victim and loads vpage into the frame the victim occupied.
func (t *PageTable) Replace(victim, vpage int, now float64) {
	t.pageMustExist(victim)
	t.pageMustExist(vpage)
	t.pageMustNotBeResident(vpage)

	if !t.pages[victim].Valid {
		log.Panicf("victim page %d is not resident", victim)
	}

	frame := t.pages[victim].Frame
	t.pages[victim].Valid = false
	t.load(vpage, frame, now)
}

func (t *PageTable) load(vpage int, frame FrameID, now float64) {
	t.pages[vpage] = Page{
		Frame:      frame,
		Valid:      true,
		LastAccess: now,
	}
}

// Touch records an access to a resident page. It sets the used bit, stamps
// the access time and counts the reference. Touching a page that is not
// resident does nothing.
func (t *PageTable) Touch(vpage int, now float64) {
	t.pageMustExist(vpage)

	p := &t.pages[vpage]
	if !p.Valid {
		return
	}

	p.Used = true
	p.LastAccess = now
	p.RefCount++
}

// ClearUsed clears the used bit of a page.
func (t *PageTable) ClearUsed(vpage int) {
	t.pageMustExist(vpage)
	t.pages[vpage].Used = false
}

// ResetRefCount sets the reference count of a page back to zero.
func (t *PageTable) ResetRefCount(vpage int) {
	t.pageMustExist(vpage)
	t.pages[vpage].RefCount = 0
}

// Validate checks that held frames and valid pages map one to one.
func (t *PageTable) Validate() error {
	held := make(map[FrameID]bool, len(t.frames))
	for _, f := range t.frames {
		if held[f] {
			return fmt.Errorf("frame %d is held twice", f)
		}

		held[f] = true
	}

	backed := make(map[FrameID]int, len(t.frames))
	for vpage, p := range t.pages {
		if !p.Valid {
			continue
		}

		if !held[p.Frame] {
			return fmt.Errorf("page %d maps to frame %d which is not held",
				vpage, p.Frame)
		}

		if other, dup := backed[p.Frame]; dup {
			return fmt.Errorf("pages %d and %d both map to frame %d",
				other, vpage, p.Frame)
		}

		backed[p.Frame] = vpage
	}

	if len(backed) != len(t.frames) {
		return fmt.Errorf("%d frames held but %d pages resident",
			len(t.frames), len(backed))
	}

	return nil
}

func (t *PageTable) pageMustExist(vpage int) {
	if vpage < 0 || vpage >= len(t.pages) {
		log.Panicf("page %d out of range [0, %d)", vpage, len(t.pages))
	}
}

func (t *PageTable) pageMustNotBeResident(vpage int) {
	if t.pages[vpage].Valid {
		log.Panicf("page %d is already resident", vpage)
	}
}

func (t *PageTable) framesMustNotBeEmpty() {
	if len(t.frames) == 0 {
		log.Panic("page table holds no frame")
	}
}
