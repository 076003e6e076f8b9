package tracing

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/datarecording"
)

type testTimeTeller struct {
	now float64
}

func (t *testTimeTeller) Now() float64 {
	return t.now
}

var _ = Describe("DBTracer", func() {
	var (
		dir        string
		timeTeller *testTimeTeller
		recorder   datarecording.DataRecorder
		tracer     *DBTracer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "dbtracer")
		Expect(err).NotTo(HaveOccurred())

		timeTeller = &testTimeTeller{}
		recorder = datarecording.New(filepath.Join(dir, "trace"))
		tracer = NewDBTracer(timeTeller, recorder)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	readTasks := func() []taskTableEntry {
		Expect(recorder.Close()).To(Succeed())

		reader, err := datarecording.OpenReader(
			filepath.Join(dir, "trace.sqlite3"))
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		tasks, err := datarecording.ReadTable[taskTableEntry](
			context.Background(), reader, taskTableName,
			datarecording.Selection{OrderBy: []string{"StartTime"}})
		Expect(err).NotTo(HaveOccurred())

		return tasks
	}

	task := func(id string) Task {
		return Task{ID: id, Kind: "page_fault", What: "page 1", Location: "model"}
	}

	It("should store completed tasks", func() {
		timeTeller.now = 10
		tracer.StartTask(task("a"))
		timeTeller.now = 110
		tracer.EndTask(Task{ID: "a"})
		tracer.StartTask(task("b"))

		tasks := readTasks()
		Expect(tasks).To(HaveLen(1))
		Expect(tasks[0]).To(Equal(taskTableEntry{
			ID:        "a",
			Kind:      "page_fault",
			What:      "page 1",
			Location:  "model",
			StartTime: 10,
			EndTime:   110,
		}))
	})

	It("should only store tasks within the time range", func() {
		tracer.SetTimeRange(100, 300)

		timeTeller.now = 0
		tracer.StartTask(task("early"))
		timeTeller.now = 50
		tracer.EndTask(Task{ID: "early"})

		tracer.StartTask(task("inside"))
		timeTeller.now = 150
		tracer.EndTask(Task{ID: "inside"})

		timeTeller.now = 400
		tracer.StartTask(task("late"))
		timeTeller.now = 500
		tracer.EndTask(Task{ID: "late"})

		tasks := readTasks()
		Expect(tasks).To(HaveLen(1))
		Expect(tasks[0].ID).To(Equal("inside"))
	})

	It("should reject incomplete tasks", func() {
		Expect(func() { tracer.StartTask(Task{ID: "x"}) }).To(Panic())
		Expect(recorder.Close()).To(Succeed())
	})
})
