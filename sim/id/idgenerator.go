// Package id provides the ID generators used to name events and runs.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs.
type IDGenerator interface {
	Generate() string
}

var (
	defaultGenerator = NewIDGenerator()
	runIDGenerator   = NewParallelIDGenerator()
)

// NewIDGenerator returns a generator that produces "1", "2", "3", ... Runs
// that use it name their events identically when replayed with the same
// seeds.
func NewIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewParallelIDGenerator returns a generator backed by globally unique xids.
// The IDs are not reproducible across runs.
func NewParallelIDGenerator() IDGenerator {
	return parallelIDGenerator{}
}

// Generate returns a new event ID. The IDs are sequential within a process.
func Generate() string {
	return defaultGenerator.Generate()
}

// GenerateRunID returns an ID that names a run. Run IDs are unique across
// processes, so runs recorded into different databases never share one.
func GenerateRunID() string {
	return runIDGenerator.Generate()
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	id := strconv.FormatUint(idNumber, 10)

	return id
}

type parallelIDGenerator struct {
}

func (g parallelIDGenerator) Generate() string {
	return xid.New().String()
}
