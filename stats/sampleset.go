// Package stats collects samples produced during a run and summarizes them.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Sample is a value observed at a simulated time.
type Sample struct {
	Time  float64
	Value float64
}

// Summary describes a set of samples.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// A SampleSet keeps every sample it is given.
type SampleSet struct {
	name    string
	samples []Sample
}

// NewSampleSet creates an empty SampleSet.
func NewSampleSet(name string) *SampleSet {
	return &SampleSet{name: name}
}

// Name returns the name of the sample set.
func (s *SampleSet) Name() string {
	return s.name
}

// Put adds a sample.
func (s *SampleSet) Put(t, v float64) {
	s.samples = append(s.samples, Sample{Time: t, Value: v})
}

// Len returns the number of samples.
func (s *SampleSet) Len() int {
	return len(s.samples)
}

// Samples returns the samples in the order they were put.
func (s *SampleSet) Samples() []Sample {
	samples := make([]Sample, len(s.samples))
	copy(samples, s.samples)

	return samples
}

// Summary computes the summary of the samples. All the fields but Count are
// NaN when there is no sample. StdDev is NaN for a single sample.
func (s *SampleSet) Summary() Summary {
	if len(s.samples) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan}
	}

	values := make([]float64, len(s.samples))
	for i, sample := range s.samples {
		values[i] = sample.Value
	}

	mean, std := stat.MeanStdDev(values, nil)

	return Summary{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}
