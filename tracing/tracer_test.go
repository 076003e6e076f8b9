package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/sim/hooking"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TotalTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *TotalTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewTotalTimeTracer(timeTeller, KindIs("page_fault"))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should add up overlapping tasks", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.StartTask(Task{ID: "1", Kind: "page_fault"})
		timeTeller.EXPECT().Now().Return(2.0)
		t.StartTask(Task{ID: "2", Kind: "page_fault"})
		timeTeller.EXPECT().Now().Return(4.0)
		t.EndTask(Task{ID: "1"})
		timeTeller.EXPECT().Now().Return(5.0)
		t.EndTask(Task{ID: "2"})

		Expect(t.TotalTime()).To(Equal(6.0))
		Expect(t.Count()).To(Equal(uint64(2)))
		Expect(t.AverageTime()).To(Equal(3.0))
	})

	It("should ignore filtered tasks", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.StartTask(Task{ID: "1", Kind: "access"})
		timeTeller.EXPECT().Now().Return(2.0)
		t.EndTask(Task{ID: "1"})

		Expect(t.TotalTime()).To(Equal(0.0))
		Expect(t.AverageTime()).To(Equal(0.0))
	})
})

var _ = Describe("BusyTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *BusyTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewBusyTimeTracer(timeTeller, nil)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should track busy time, two tasks", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.StartTask(Task{ID: "1"})
		timeTeller.EXPECT().Now().Return(2.0)
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().Now().Return(3.0)
		t.StartTask(Task{ID: "2"})
		timeTeller.EXPECT().Now().Return(4.0)
		t.EndTask(Task{ID: "2"})

		Expect(t.BusyTime()).To(Equal(2.0))
	})

	It("should count overlapping tasks once", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.StartTask(Task{ID: "1"})
		t.StartTask(Task{ID: "2"})
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().Now().Return(3.5)
		t.EndTask(Task{ID: "2"})

		Expect(t.BusyTime()).To(Equal(2.5))
	})

	It("should include the current busy period", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.StartTask(Task{ID: "1"})

		timeTeller.EXPECT().Now().Return(5.0)
		Expect(t.BusyTime()).To(Equal(4.0))

		t.TerminateAllTasks(6)
		Expect(t.BusyTime()).To(Equal(5.0))
	})

	It("should ignore unknown tasks", func() {
		t.EndTask(Task{ID: "9"})

		Expect(t.BusyTime()).To(Equal(0.0))
	})
})

var _ = Describe("traceHook", func() {
	It("should forward task events to the tracer", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		timeTeller := NewMockTimeTeller(mockCtrl)
		domain := &namedDomain{HookableBase: hooking.NewHookableBase()}
		tracer := NewTotalTimeTracer(timeTeller, nil)
		CollectTrace(domain, tracer)

		timeTeller.EXPECT().Now().Return(10.0)
		StartTask("f1", "", domain, "page_fault", "page 1", nil)
		timeTeller.EXPECT().Now().Return(110.0)
		EndTask("f1", domain)

		Expect(tracer.TotalTime()).To(Equal(100.0))
		mockCtrl.Finish()
	})
})
