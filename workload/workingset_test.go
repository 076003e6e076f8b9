package workload

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WorkingSet", func() {
	var (
		layout Layout
		seeds  ProcessSeeds
		ws     *WorkingSet
	)

	BeforeEach(func() {
		layout = Layout{Code: 10, Data: 8, Stack: 6, Heap: 6}
		seeds = ProcessSeeds{Address: 1, Phase: 2, Reuse: 3}
		ws = NewWorkingSet(layout, 250, seeds)
	})

	It("should draw distinct pages from each segment", func() {
		for i := 0; i < 50; i++ {
			for seg := Code; seg < numSegments; seg++ {
				pages := ws.SegmentPages(seg)
				start, end := layout.Bounds(seg)

				Expect(len(pages)).To(BeNumerically(">=", 1))
				Expect(len(pages)).To(BeNumerically("<=", layout.Size(seg)/2))

				seen := map[int]bool{}
				for _, p := range pages {
					Expect(p).To(BeNumerically(">=", start))
					Expect(p).To(BeNumerically("<", end))
					Expect(seen[p]).To(BeFalse())
					seen[p] = true
				}
			}

			ws.Regenerate()
		}
	})

	It("should keep one page for one-page segments", func() {
		ws = NewWorkingSet(Layout{Code: 1, Data: 1, Stack: 1, Heap: 1}, 5, seeds)

		Expect(ws.Pages()).To(Equal([]int{0, 1, 2, 3}))
	})

	It("should cycle through the segments while frames are not full", func() {
		for i := 0; i < 20; i++ {
			page := ws.NextPage(false)
			seg := Segment(i % 4)

			Expect(ws.SegmentPages(seg)).To(ContainElement(page))
			Expect(layout.SegmentOf(page)).To(Equal(seg))
		}
	})

	It("should track the hot pages", func() {
		code := ws.NextPage(false)
		data := ws.NextPage(false)

		c, o := ws.HotPages()
		Expect(c).To(Equal(code))
		Expect(o).To(Equal(data))
	})

	It("should favor hot pages once frames are full", func() {
		ws.NextPage(false)
		ws.NextPage(false)
		code, other := ws.HotPages()

		hot := 0
		for i := 0; i < 1000; i++ {
			page := ws.NextPage(true)
			if page == code || page == other {
				hot++
			}

			code, other = ws.HotPages()
		}

		Expect(hot).To(BeNumerically(">=", 850))
	})

	It("should fall back to the cycle when a hot page is missing", func() {
		ws = NewWorkingSet(layout, 250, seeds)

		for i := 0; i < 100; i++ {
			page := ws.NextPage(true)
			Expect(page).To(BeNumerically(">=", 0))
		}
	})

	It("should regenerate after the drawn number of accesses", func() {
		n := ws.UntilChange()
		Expect(n).To(BeNumerically(">", 0))

		ws.NextPage(false)

		for i := 0; i < n; i++ {
			ws.CountAccess()
		}

		Expect(ws.UntilChange()).To(Equal(0))

		ws.CountAccess()

		Expect(ws.UntilChange()).To(BeNumerically(">", 0))
		Expect(ws.NextPage(false)).To(BeNumerically("<", layout.Code))
	})

	It("should be reproducible", func() {
		other := NewWorkingSet(layout, 250, seeds)

		for i := 0; i < 500; i++ {
			full := i > 20
			Expect(ws.NextPage(full)).To(Equal(other.NextPage(full)))
			ws.CountAccess()
			other.CountAccess()
		}
	})

	It("should describe itself", func() {
		buf := new(bytes.Buffer)
		ws.Describe(buf)

		Expect(buf.String()).To(ContainSubstring("total 30"))
		Expect(buf.String()).To(ContainSubstring("Working set: code"))
	})
})

var _ = Describe("Sequence", func() {
	It("should replay pages in a loop", func() {
		s := NewSequence(0, 1, 2)

		pages := []int{}
		for i := 0; i < 7; i++ {
			pages = append(pages, s.NextPage(i%2 == 0))
			s.CountAccess()
		}

		Expect(pages).To(Equal([]int{0, 1, 2, 0, 1, 2, 0}))
		Expect(s.Issued()).To(Equal(7))
	})

	It("should not accept empty lists", func() {
		Expect(func() { NewSequence() }).To(Panic())
	})
})
