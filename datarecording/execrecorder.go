package datarecording

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const execTableName = "exec_info"

// ExecInfo is a property of the program execution that produced a database.
type ExecInfo struct {
	Property string
	Value    string
}

// execRecorder records program execution
type execRecorder struct {
	recorder DataRecorder
	entries  []ExecInfo
}

func newExecRecorder(recorder DataRecorder) *execRecorder {
	e := &execRecorder{
		recorder: recorder,
	}

	recorder.CreateTable(execTableName, ExecInfo{})

	return e
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}

// Start remembers when and how the program was started.
func (e *execRecorder) Start() {
	e.entries = append(e.entries,
		ExecInfo{"Start Time", timestamp()},
		ExecInfo{"Command", strings.Join(os.Args, " ")},
	)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = filepath.Dir(os.Args[0])
	}

	e.entries = append(e.entries, ExecInfo{"Working Directory", cwd})
}

// End writes the start information along with the exit time.
func (e *execRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(execTableName, entry)
	}

	e.recorder.InsertData(execTableName, ExecInfo{"End Time", timestamp()})
	e.entries = nil
}
