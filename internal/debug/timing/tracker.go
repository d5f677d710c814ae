package timing

import (
	"slices"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Tracker records wall-clock durations per named operation. A nil *Tracker
// is valid and records nothing.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
	now     func() time.Time
}

// Summary describes the recorded durations of one operation.
type Summary struct {
	Operation string
	Count     int
	Mean      time.Duration
	StdDev    time.Duration
	Min       time.Duration
	Max       time.Duration
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
		now:     time.Now,
	}
}

// Start begins timing operation and returns the function that ends it.
func (tt *Tracker) Start(operation string) func() {
	if tt == nil {
		return func() {}
	}

	tt.mu.RLock()
	enabled := tt.enabled
	tt.mu.RUnlock()
	if !enabled {
		return func() {}
	}

	start := tt.now()
	return func() {
		tt.Record(operation, tt.now().Sub(start))
	}
}

func (tt *Tracker) Record(operation string, d time.Duration) {
	if tt == nil {
		return
	}

	tt.mu.Lock()
	defer tt.mu.Unlock()

	if !tt.enabled {
		return
	}
	tt.timings[operation] = append(tt.timings[operation], d)
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	if tt == nil {
		return nil
	}

	tt.mu.RLock()
	defer tt.mu.RUnlock()

	return slices.Clone(tt.timings[operation])
}

// Operations lists every operation with at least one recording, sorted.
func (tt *Tracker) Operations() []string {
	if tt == nil {
		return nil
	}

	tt.mu.RLock()
	defer tt.mu.RUnlock()

	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	return tt.Summarize(operation).Mean
}

// Summarize reduces the recordings of operation. An operation with no
// recordings yields a zero Summary carrying only its name.
func (tt *Tracker) Summarize(operation string) Summary {
	timings := tt.GetTimings(operation)
	s := Summary{Operation: operation, Count: len(timings)}
	if len(timings) == 0 {
		return s
	}

	values := make([]float64, len(timings))
	for i, d := range timings {
		values[i] = float64(d)
	}

	s.Min, s.Max = slices.Min(timings), slices.Max(timings)
	if len(values) == 1 {
		s.Mean = timings[0]
		return s
	}

	mean, std := stat.MeanStdDev(values, nil)
	s.Mean = time.Duration(mean)
	s.StdDev = time.Duration(std)
	return s
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

// Reset drops the recordings of operation, or all of them when it is empty.
func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
