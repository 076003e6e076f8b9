package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PageTable", func() {
	var table *PageTable

	BeforeEach(func() {
		table = NewPageTable(6, 2)
	})

	It("should start with no resident page", func() {
		for v := 0; v < 6; v++ {
			Expect(table.IsResident(v)).To(BeFalse())
		}

		Expect(table.NumPages()).To(Equal(6))
		Expect(table.NumFrames()).To(Equal(0))
		Expect(table.FramesFull()).To(BeFalse())
		Expect(table.Validate()).To(Succeed())
	})

	It("should load pages into new frames", func() {
		table.AddFrame(3, 7, 10)

		Expect(table.IsResident(3)).To(BeTrue())
		Expect(table.Page(3)).To(Equal(Page{
			Frame:      7,
			Valid:      true,
			LastAccess: 10,
		}))
		Expect(table.Frames()).To(Equal([]FrameID{7}))
		Expect(table.PageInFrame(7)).To(Equal(3))
		Expect(table.Validate()).To(Succeed())
	})

	It("should refuse frames over the quota", func() {
		table.AddFrame(0, 1, 0)
		table.AddFrame(1, 2, 0)

		Expect(table.FramesFull()).To(BeTrue())
		Expect(func() { table.AddFrame(2, 3, 0) }).To(Panic())
	})

	It("should refuse loading a resident page", func() {
		table.AddFrame(0, 1, 0)

		Expect(func() { table.AddFrame(0, 2, 0) }).To(Panic())
	})

	It("should refuse holding the same frame twice", func() {
		table.AddFrame(0, 1, 0)

		Expect(func() { table.AddFrame(1, 1, 0) }).To(Panic())
	})

	It("should move the victim frame on replace", func() {
		table.AddFrame(0, 4, 0)
		table.AddFrame(1, 5, 1)
		table.Touch(0, 2)

		table.Replace(0, 2, 3)

		Expect(table.IsResident(0)).To(BeFalse())
		Expect(table.Page(2)).To(Equal(Page{
			Frame:      4,
			Valid:      true,
			LastAccess: 3,
		}))
		Expect(table.Frames()).To(Equal([]FrameID{4, 5}))
		Expect(table.Validate()).To(Succeed())
	})

	It("should refuse a victim that is not resident", func() {
		table.AddFrame(0, 4, 0)

		Expect(func() { table.Replace(1, 2, 0) }).To(Panic())
	})

	It("should record accesses on touch", func() {
		table.AddFrame(1, 0, 0)

		table.Touch(1, 5)
		table.Touch(1, 6)

		p := table.Page(1)
		Expect(p.Used).To(BeTrue())
		Expect(p.LastAccess).To(Equal(6.0))
		Expect(p.RefCount).To(Equal(uint64(2)))

		table.ClearUsed(1)
		table.ResetRefCount(1)
		p = table.Page(1)
		Expect(p.Used).To(BeFalse())
		Expect(p.RefCount).To(Equal(uint64(0)))
	})

	It("should ignore touches to pages that are not resident", func() {
		table.Touch(2, 5)

		Expect(table.Page(2)).To(Equal(Page{}))
	})

	It("should wrap the cursor", func() {
		Expect(func() { table.AdvanceCursor() }).To(Panic())

		table.AddFrame(0, 4, 0)
		table.AddFrame(1, 5, 0)

		table.AdvanceCursor()
		Expect(table.Cursor()).To(Equal(1))
		table.AdvanceCursor()
		Expect(table.Cursor()).To(Equal(0))
		table.SetCursor(5)
		Expect(table.Cursor()).To(Equal(1))
		Expect(table.FrameAt(table.Cursor())).To(Equal(FrameID(5)))
	})

	It("should list resident pages in page order", func() {
		table.AddFrame(4, 0, 0)
		table.AddFrame(1, 1, 0)

		Expect(table.ResidentPages()).To(Equal([]int{1, 4}))
	})

	It("should panic on pages out of range", func() {
		Expect(func() { table.IsResident(6) }).To(Panic())
		Expect(func() { table.Page(-1) }).To(Panic())
	})

	It("should panic when no page is in the frame", func() {
		Expect(func() { table.PageInFrame(3) }).To(Panic())
	})
})
