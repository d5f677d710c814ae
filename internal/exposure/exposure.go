// Package exposure derives the next sensor exposure setting from the mean
// brightness of the last captured frame.
package exposure

import (
	"fmt"
	"math"

	"edgeframe/internal/frame"
	"edgeframe/internal/processing/histogram"
)

// DefaultExposure is the sensor setting used before any frame is measured.
const DefaultExposure uint32 = 11264

// Mean returns the average intensity of f.
func Mean(f *frame.Frame) (float64, error) {
	h, err := histogram.Of(f)
	if err != nil {
		return 0, err
	}
	return h.Mean(), nil
}

// Controller moves the exposure towards a target mean brightness in coarse
// steps chosen by how far the frame is from the target.
type Controller struct {
	Target   uint8
	StepHigh uint32
	StepMid  uint32
	StepLow  uint32
	FarBand  uint8
	NearBand uint8
}

func DefaultController() Controller {
	return Controller{
		Target:   61,
		StepHigh: 1000,
		StepMid:  500,
		StepLow:  200,
		FarBand:  64,
		NearBand: 32,
	}
}

func (c Controller) Validate() error {
	if c.NearBand == 0 || c.FarBand < c.NearBand {
		return fmt.Errorf("%w: exposure bands must satisfy 0 < near (%d) <= far (%d)",
			frame.ErrInvalidArgument, c.NearBand, c.FarBand)
	}
	if c.StepLow > c.StepMid || c.StepMid > c.StepHigh {
		return fmt.Errorf("%w: exposure steps must satisfy low (%d) <= mid (%d) <= high (%d)",
			frame.ErrInvalidArgument, c.StepLow, c.StepMid, c.StepHigh)
	}
	return nil
}

// Step returns the adjustment for a frame of the given mean brightness: its
// magnitude and whether the exposure should go down.
func (c Controller) Step(mean float64) (step uint32, down bool) {
	avg := math.Floor(math.Max(mean, 0))
	target := float64(c.Target)

	distance := math.Abs(avg - target)
	switch {
	case distance >= float64(c.FarBand):
		step = c.StepHigh
	case distance >= float64(c.NearBand):
		step = c.StepMid
	case distance >= 1:
		step = c.StepLow
	}

	return step, avg > target
}

// Next returns the exposure to use after a frame with the given mean. The
// result saturates at 0 and math.MaxUint32.
func (c Controller) Next(current uint32, mean float64) uint32 {
	step, down := c.Step(mean)
	if down {
		if step > current {
			return 0
		}
		return current - step
	}

	if step > math.MaxUint32-current {
		return math.MaxUint32
	}
	return current + step
}

// Adjust measures f and returns its mean with the next exposure.
func (c Controller) Adjust(f *frame.Frame, current uint32) (next uint32, mean float64, err error) {
	mean, err = Mean(f)
	if err != nil {
		return current, 0, err
	}
	return c.Next(current, mean), mean, nil
}
