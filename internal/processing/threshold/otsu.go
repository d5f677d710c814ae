package threshold

import (
	"math"

	"edgeframe/internal/frame"
	"edgeframe/internal/processing/histogram"
)

// weightEpsilon treats a cumulative weight this close to 0 or 1 as an empty
// class. It sits well below 1/N for any frame within frame.MaxDimension.
const weightEpsilon = 1e-12

const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// Select returns the level maximizing between-class variance, where the
// lower class of level t holds the levels below t. Levels where either class
// would be empty are skipped; ties keep the lowest level. A histogram with a
// single populated bin yields 0.
func Select(h histogram.Histogram) uint8 {
	var totalMean float64
	for level, p := range h {
		totalMean += float64(level) * p
	}

	var (
		best        uint8
		maxVariance = math.Inf(-1)
		w0, mean    float64
	)

	for level, p := range h {
		if w0 >= weightEpsilon && w0 <= 1-weightEpsilon {
			diff := totalMean*w0 - mean
			variance := diff * diff / (w0 * (1 - w0))
			if variance > maxVariance {
				maxVariance = variance
				best = uint8(level)
			}
		}

		w0 += p
		mean += float64(level) * p
	}

	return best
}

// Binarize writes Foreground where src > t and Background elsewhere.
func Binarize(src, dst *frame.Frame, t uint8) error {
	if err := frame.ValidatePair(src, dst, "binarize"); err != nil {
		return err
	}

	in, out := src.Pix(), dst.Pix()
	for i, v := range in {
		if v > t {
			out[i] = Foreground
		} else {
			out[i] = Background
		}
	}
	return nil
}

// Otsu binarizes src into dst with the Otsu threshold and returns it.
func Otsu(src, dst *frame.Frame) (uint8, error) {
	if err := frame.ValidatePair(src, dst, "otsu"); err != nil {
		return 0, err
	}

	h, err := histogram.Of(src)
	if err != nil {
		return 0, err
	}

	t := Select(h)
	return t, Binarize(src, dst, t)
}
