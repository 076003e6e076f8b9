package workload

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Layout", func() {
	layout := Layout{Code: 10, Data: 8, Stack: 6, Heap: 6}

	It("should lay out segments back to back", func() {
		Expect(layout.NumPages()).To(Equal(30))

		start, end := layout.Bounds(Code)
		Expect([]int{start, end}).To(Equal([]int{0, 10}))
		start, end = layout.Bounds(Stack)
		Expect([]int{start, end}).To(Equal([]int{18, 24}))
		start, end = layout.Bounds(Heap)
		Expect([]int{start, end}).To(Equal([]int{24, 30}))
	})

	It("should find the segment of a page", func() {
		Expect(layout.SegmentOf(0)).To(Equal(Code))
		Expect(layout.SegmentOf(10)).To(Equal(Data))
		Expect(layout.SegmentOf(23)).To(Equal(Stack))
		Expect(layout.SegmentOf(29)).To(Equal(Heap))
		Expect(func() { layout.SegmentOf(30) }).To(Panic())
	})

	It("should reject empty segments", func() {
		Expect(layout.Validate()).To(Succeed())
		Expect(Layout{Code: 1, Data: 1, Stack: 0, Heap: 1}.Validate()).
			To(MatchError(ContainSubstring("stack")))
	})
})

var _ = Describe("SeedGenerator", func() {
	It("should be reproducible", func() {
		a := NewSeedGenerator(7).Seeds(4)
		b := NewSeedGenerator(7).Seeds(4)

		Expect(a).To(Equal(b))
		Expect(a.Processes).To(HaveLen(4))
		Expect(a.Validate(4)).To(Succeed())
		Expect(a.Validate(5)).NotTo(Succeed())
		Expect(NumSeeds(4)).To(Equal(13))
	})

	It("should draw different seeds", func() {
		s := NewSeedGenerator(7).Seeds(2)
		all := map[uint64]bool{s.Global: true}

		for _, p := range s.Processes {
			all[p.Address] = true
			all[p.Phase] = true
			all[p.Reuse] = true
		}

		Expect(all).To(HaveLen(7))
	})
})

var _ = Describe("Streams", func() {
	It("should draw uniform integers within bounds", func() {
		u := NewUniform(3)
		seen := map[int]bool{}

		for i := 0; i < 1000; i++ {
			n := u.IntFromTo(5, 7)
			Expect(n).To(BeNumerically(">=", 5))
			Expect(n).To(BeNumerically("<=", 7))
			seen[n] = true
		}

		Expect(seen).To(HaveLen(3))
		Expect(u.IntFromTo(4, 4)).To(Equal(4))
	})

	It("should draw poisson counts around the mean", func() {
		p := NewPoisson(20, 11)
		sum := 0

		for i := 0; i < 10000; i++ {
			n := p.Next()
			Expect(n).To(BeNumerically(">=", 0))
			sum += n
		}

		Expect(float64(sum) / 10000).To(BeNumerically("~", 20, 0.5))
	})

	It("should draw bernoulli trials at the given rate", func() {
		b := NewBernoulli(0.9, 5)
		hits := 0

		for i := 0; i < 10000; i++ {
			if b.Next() {
				hits++
			}
		}

		Expect(float64(hits) / 10000).To(BeNumerically("~", 0.9, 0.02))
	})
})
