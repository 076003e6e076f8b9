package simulation

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/tracing"
)

type tracedModel struct {
	*hooking.HookableBase
}

func (m *tracedModel) Name() string {
	return "Traced"
}

var _ = Describe("Simulation", func() {
	var (
		mockCtrl   *gomock.Controller
		dir        string
		simulation *Simulation
		model      *MockModel
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "simulation")
		Expect(err).NotTo(HaveOccurred())

		mockCtrl = gomock.NewController(GinkgoT())
		simulation = MakeBuilder().
			WithoutMonitoring().
			WithRecording().
			WithOutputFileName(filepath.Join(dir, "sim")).
			Build()

		model = NewMockModel(mockCtrl)
		model.EXPECT().Name().Return("model").AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()

		simulation.Terminate()

		os.RemoveAll(dir)
	})

	It("should create the services", func() {
		Expect(simulation.ID()).NotTo(BeEmpty())
		Expect(simulation.GetEngine()).NotTo(BeNil())
		Expect(simulation.GetDataRecorder()).NotTo(BeNil())
		Expect(simulation.GetVisTracer()).NotTo(BeNil())
		Expect(simulation.GetMonitor()).To(BeNil())
		Expect(filepath.Join(dir, "sim.sqlite3")).To(BeAnExistingFile())
	})

	It("should register a model", func() {
		simulation.RegisterModel(model)

		Expect(simulation.GetModelByName("model")).To(Equal(model))
		Expect(simulation.GetModelByName("other")).To(BeNil())
		Expect(simulation.Models()).To(HaveLen(1))
	})

	It("should not register a model twice", func() {
		simulation.RegisterModel(model)

		Expect(func() { simulation.RegisterModel(model) }).To(Panic())
	})

	It("should trace the tasks of hookable models", func() {
		m := &tracedModel{HookableBase: hooking.NewHookableBase()}

		simulation.RegisterModel(m)

		Expect(m.NumHooks()).To(Equal(1))
		Expect(func() {
			tracing.CollectTrace(m, simulation.GetVisTracer())
		}).To(Panic())
	})

	It("should refuse a monitor port without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should refuse an output file without recording", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().
				WithOutputFileName(filepath.Join(dir, "unused")).Build()
		}).To(Panic())
	})
})

var _ = Describe("Simulation without recording", func() {
	var (
		dir        string
		simulation *Simulation
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "simulation")
		Expect(err).NotTo(HaveOccurred())

		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(os.Chdir, wd)

		simulation = MakeBuilder().WithoutMonitoring().Build()
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should not create a database", func() {
		Expect(simulation.GetDataRecorder()).To(BeNil())
		Expect(simulation.GetVisTracer()).To(BeNil())

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("should register hookable models without tracing them", func() {
		m := &tracedModel{HookableBase: hooking.NewHookableBase()}

		simulation.RegisterModel(m)

		Expect(m.NumHooks()).To(Equal(0))
		Expect(simulation.GetModelByName("Traced")).To(BeIdenticalTo(m))
		Expect(simulation.Terminate).NotTo(Panic())
	})
})
