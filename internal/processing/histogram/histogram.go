// Package histogram builds normalized intensity histograms of 8-bit frames.
package histogram

import (
	"fmt"

	"edgeframe/internal/frame"

	"gonum.org/v1/gonum/stat"
)

const (
	// MaxLevel is the highest 8-bit intensity.
	MaxLevel = 255
	// Levels is the number of histogram bins for an 8-bit frame.
	Levels = MaxLevel + 1
)

// Histogram holds normalized frequencies indexed by intensity.
type Histogram [Levels]float64

// levelValues holds 0..255 as float64 for weighted moments.
var levelValues = func() []float64 {
	v := make([]float64, Levels)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// Build counts samples into out[0..maxLevel] and normalizes by the sample
// count. Every sample must be <= maxLevel.
func Build(samples []uint8, maxLevel int, out []float64) error {
	if samples == nil {
		return fmt.Errorf("%w: nil sample buffer", frame.ErrInvalidArgument)
	}
	if out == nil {
		return fmt.Errorf("%w: nil histogram buffer", frame.ErrInvalidArgument)
	}
	if maxLevel < 0 || maxLevel > MaxLevel {
		return fmt.Errorf("%w: max level %d outside [0,%d]", frame.ErrInvalidArgument, maxLevel, MaxLevel)
	}
	if len(out) < maxLevel+1 {
		return fmt.Errorf("%w: histogram buffer holds %d bins, need %d",
			frame.ErrInvalidArgument, len(out), maxLevel+1)
	}
	if len(samples) == 0 {
		return fmt.Errorf("%w: no samples", frame.ErrInvalidArgument)
	}

	var counts [Levels]int
	for i, v := range samples {
		if int(v) > maxLevel {
			return fmt.Errorf("%w: sample %d has level %d above %d",
				frame.ErrInvalidArgument, i, v, maxLevel)
		}
		counts[v]++
	}

	n := float64(len(samples))
	for level := 0; level <= maxLevel; level++ {
		out[level] = float64(counts[level]) / n
	}

	return nil
}

// Of returns the normalized histogram of a whole frame.
func Of(f *frame.Frame) (Histogram, error) {
	var h Histogram
	if err := frame.ValidateForOperation(f, "histogram"); err != nil {
		return h, err
	}

	if err := Build(f.Pix(), MaxLevel, h[:]); err != nil {
		return h, err
	}
	return h, nil
}

// Sum returns the total weight, which is 1 within rounding for a built histogram.
func (h *Histogram) Sum() float64 {
	var sum float64
	for _, p := range h {
		sum += p
	}
	return sum
}

// Mean returns the intensity first moment.
func (h *Histogram) Mean() float64 {
	return stat.Mean(levelValues, h[:])
}
