// Package simulation bundles the services a run needs around its models: the
// engine, the data recorder, the task tracer and the monitor.
package simulation

import (
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/sim/timing"
	"github.com/sarchlab/pagesim/tracing"
)

// A Model is a named part of the simulation.
type Model interface {
	Name() string
}

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id     string
	engine timing.Engine

	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	visTracer    *tracing.DBTracer

	models         []Model
	modelNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() timing.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// when recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetVisTracer returns the tracer used in the simulation. It is nil when
// recording is disabled.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// RegisterModel registers a model with the simulation. Models that accept
// hooks have their tasks traced into the data recorder when recording, and every model is
// shown by the monitor.
func (s *Simulation) RegisterModel(m Model) {
	name := m.Name()
	if _, found := s.modelNameIndex[name]; found {
		panic("model " + name + " already registered")
	}

	s.models = append(s.models, m)
	s.modelNameIndex[name] = len(s.models) - 1

	if hookable, ok := m.(tracing.NamedHookable); ok && s.visTracer != nil {
		tracing.CollectTrace(hookable, s.visTracer)
	}

	if s.monitor != nil {
		s.monitor.RegisterSubject(m)
	}
}

// GetModelByName returns the model with the given name, or nil.
func (s *Simulation) GetModelByName(name string) Model {
	i, found := s.modelNameIndex[name]
	if !found {
		return nil
	}

	return s.models[i]
}

// Models returns all registered models.
func (s *Simulation) Models() []Model {
	return s.models
}

// Terminate flushes the trace and closes the data recorder, if the
// simulation records.
func (s *Simulation) Terminate() {
	if s.dataRecorder == nil {
		return
	}

	s.visTracer.Terminate()
	s.dataRecorder.Close()
}
