package bench

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/tuneinsight/nttbench/utils"
)

// DefaultTimer is the Timer used when none is configured.
var DefaultTimer = Timer{Warmup: 1, Runs: 9}

// Timer measures the wall-clock duration of a call.
type Timer struct {
	// Warmup is the number of untimed calls preceding the samples.
	Warmup int
	// Runs is the number of timed samples, at least one is always taken.
	Runs int
}

// Measurement is the summary of the samples of a Timer.
type Measurement struct {
	Samples []time.Duration
	Median  time.Duration
	Mean    time.Duration
	Min     time.Duration
	Max     time.Duration
	StdDev  time.Duration
}

// Measure calls f Warmup+Runs times and times the last Runs calls.
// reset is called before each call of f, outside of the timed region.
func (t Timer) Measure(reset, f func()) Measurement {

	for i := 0; i < t.Warmup; i++ {
		reset()
		f()
	}

	samples := make([]time.Duration, utils.Max(t.Runs, 1))

	for i := range samples {
		reset()
		start := time.Now()
		f()
		samples[i] = time.Since(start)
	}

	return NewMeasurement(samples)
}

// NewMeasurement returns the summary of the given samples.
// It panics if samples is empty.
func NewMeasurement(samples []time.Duration) (m Measurement) {

	values := make(stats.Float64Data, len(samples))
	for i, s := range samples {
		values[i] = float64(s)
	}

	m.Samples = samples
	m.Median = mustDuration(values.Median())
	m.Mean = mustDuration(values.Mean())
	m.Min = mustDuration(values.Min())
	m.Max = mustDuration(values.Max())
	m.StdDev = mustDuration(values.StandardDeviation())

	return
}

func mustDuration(v float64, err error) time.Duration {
	if err != nil {
		panic(fmt.Errorf("cannot summarize samples: %w", err))
	}
	return time.Duration(v)
}

func (m Measurement) String() string {
	return fmt.Sprintf("median=%v mean=%v min=%v max=%v stddev=%v runs=%d", m.Median, m.Mean, m.Min, m.Max, m.StdDev, len(m.Samples))
}
