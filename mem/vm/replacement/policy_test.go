package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/mem/vm"
)

var _ = Describe("Parse", func() {
	DescribeTable("known names",
		func(name, expected string) {
			p, err := Parse(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name()).To(Equal(expected))
		},
		Entry("fifo", "FIFO", "FIFO"),
		Entry("lru", "lru", "LRU"),
		Entry("clock", " Clock ", "CLOCK"),
		Entry("count", "count", "COUNT"),
	)

	It("should reject unknown names", func() {
		_, err := Parse("OPT")
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should refuse to replace before the quota is used up", func() {
		pt := vm.NewPageTable(4, 2)
		pt.AddFrame(0, 0, 0)

		for _, name := range Names {
			p, _ := Parse(name)
			Expect(func() { p.Replace(pt, 1, 0) }).To(Panic())
		}
	})

	It("should keep frames and pages one to one", func() {
		for _, name := range Names {
			p, _ := Parse(name)
			pt := loadedTable(8, 3)

			for i := 0; i < 40; i++ {
				vpage := (i*5 + 3) % 8
				if !pt.IsResident(vpage) {
					p.Replace(pt, vpage, float64(10+i))
				}

				pt.Touch(vpage, float64(10+i))
				Expect(pt.Validate()).To(Succeed(), name)
				Expect(pt.Frames()).To(Equal([]vm.FrameID{10, 11, 12}), name)
			}
		}
	})
})

var _ = Describe("FIFO", func() {
	It("should evict in load order", func() {
		pt := loadedTable(6, 3)
		p := NewFIFO()

		Expect(p.Replace(pt, 3, 5)).To(Equal(0))
		Expect(pt.Page(3).Frame).To(Equal(vm.FrameID(10)))
		Expect(p.Replace(pt, 4, 6)).To(Equal(1))
		Expect(p.Replace(pt, 0, 7)).To(Equal(2))
		Expect(p.Replace(pt, 5, 8)).To(Equal(3))
		Expect(pt.Page(5).Frame).To(Equal(vm.FrameID(10)))
	})

	It("should ignore accesses", func() {
		pt := loadedTable(6, 3)
		pt.Touch(0, 4)

		Expect(NewFIFO().Replace(pt, 3, 5)).To(Equal(0))
	})
})

var _ = Describe("LRU", func() {
	It("should evict the least recently accessed page", func() {
		pt := loadedTable(6, 3)
		pt.Touch(0, 5)

		Expect(NewLRU().Replace(pt, 3, 6)).To(Equal(1))
		Expect(pt.Page(3).Frame).To(Equal(vm.FrameID(11)))
		Expect(pt.Page(3).LastAccess).To(Equal(6.0))
	})

	It("should pick the lowest page on a tie", func() {
		pt := vm.NewPageTable(6, 3)
		pt.AddFrame(4, 0, 0)
		pt.AddFrame(2, 1, 0)
		pt.AddFrame(5, 2, 0)

		Expect(NewLRU().Replace(pt, 0, 1)).To(Equal(2))
	})

	It("should never evict a page accessed later than another", func() {
		pt := loadedTable(10, 4)
		p := NewLRU()
		refs := []int{0, 5, 1, 0, 6, 2, 7, 0, 5, 3, 9, 1, 0, 8}

		for i, vpage := range refs {
			now := float64(100 + i)
			if !pt.IsResident(vpage) {
				before := map[int]float64{}
				for _, v := range pt.ResidentPages() {
					before[v] = pt.Page(v).LastAccess
				}

				victim := p.Replace(pt, vpage, now)
				for _, t := range before {
					Expect(before[victim]).To(BeNumerically("<=", t))
				}
			}

			pt.Touch(vpage, now)
		}
	})
})

var _ = Describe("Clock", func() {
	It("should give used pages a second chance", func() {
		pt := loadedTable(6, 3)
		pt.Touch(0, 3)
		pt.Touch(1, 4)

		Expect(NewClock().Replace(pt, 3, 5)).To(Equal(2))
		Expect(pt.Page(0).Used).To(BeFalse())
		Expect(pt.Page(1).Used).To(BeFalse())
		Expect(pt.Cursor()).To(Equal(0))
		Expect(pt.Page(3).Frame).To(Equal(vm.FrameID(12)))
	})

	It("should evict under the cursor when all pages are used", func() {
		pt := loadedTable(6, 3)
		for v := 0; v < 3; v++ {
			pt.Touch(v, 3)
		}

		Expect(NewClock().Replace(pt, 3, 5)).To(Equal(0))
		Expect(pt.Cursor()).To(Equal(1))
	})

	It("should not evict a page whose used bit it just observed set", func() {
		pt := loadedTable(6, 3)
		p := NewClock()
		pt.Touch(1, 3)

		Expect(p.Replace(pt, 3, 5)).To(Equal(0))
		Expect(p.Replace(pt, 4, 6)).To(Equal(2))
		Expect(pt.IsResident(1)).To(BeTrue())
		Expect(p.Replace(pt, 5, 7)).To(Equal(3))
	})
})

var _ = Describe("Count", func() {
	It("should evict the least referenced page", func() {
		pt := loadedTable(6, 3)
		pt.Touch(0, 3)
		pt.Touch(0, 3)
		pt.Touch(1, 3)
		pt.Touch(2, 3)
		pt.Touch(2, 3)
		pt.Touch(2, 3)

		Expect(NewCount().Replace(pt, 3, 5)).To(Equal(1))
		Expect(pt.Page(1).RefCount).To(Equal(uint64(0)))
		Expect(pt.Page(3).RefCount).To(Equal(uint64(0)))
		Expect(pt.Page(3).Frame).To(Equal(vm.FrameID(11)))
		Expect(pt.Cursor()).To(Equal(1))
	})

	It("should break ties from the cursor", func() {
		pt := loadedTable(6, 3)
		p := NewCount()

		Expect(p.Replace(pt, 3, 5)).To(Equal(0))
		Expect(p.Replace(pt, 4, 6)).To(Equal(1))
		Expect(p.Replace(pt, 5, 7)).To(Equal(2))
		Expect(p.Replace(pt, 0, 8)).To(Equal(3))
	})
})
