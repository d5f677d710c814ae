package canny

import (
	"fmt"
	"math"

	"edgeframe/internal/debug/timing"
	"edgeframe/internal/frame"
	"edgeframe/internal/logger"
	"edgeframe/internal/memory"
	"edgeframe/internal/processing/convolve"
	"edgeframe/internal/processing/filters"
	"edgeframe/internal/processing/gradient"
	"edgeframe/internal/processing/kernel"
	"edgeframe/internal/processing/threshold"
)

// Params controls one Canny run.
type Params struct {
	GaussianSize int
	Sigma        float64
	SobelSize    int
	High         uint8
	Low          uint8
	Workers      int
}

func DefaultParams() Params {
	return Params{
		GaussianSize: 5,
		Sigma:        1.4,
		SobelSize:    3,
		High:         80,
		Low:          40,
		Workers:      1,
	}
}

func (p Params) Validate() error {
	if err := kernel.ValidateSize(p.GaussianSize); err != nil {
		return fmt.Errorf("gaussian size: %w", err)
	}
	if err := kernel.ValidateSize(p.SobelSize); err != nil {
		return fmt.Errorf("sobel size: %w", err)
	}
	if !(p.Sigma > 0) || math.IsInf(p.Sigma, 0) {
		return fmt.Errorf("%w: sigma must be positive and finite, got %v", frame.ErrInvalidArgument, p.Sigma)
	}
	if p.High < p.Low {
		return fmt.Errorf("%w: high threshold %d below low threshold %d",
			frame.ErrInvalidArgument, p.High, p.Low)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", frame.ErrInvalidArgument, p.Workers)
	}
	return nil
}

// Detector runs the Gaussian, Sobel, magnitude, suppression and hysteresis
// stages in order. Intermediate frames are leased from the memory manager.
type Detector struct {
	memory   *memory.Manager
	gaussian *filters.GaussianFilter
	sobel    *filters.SobelFilter
	tracker  *timing.Tracker
	logger   logger.Logger
}

// NewDetector builds a detector. tracker and log may be nil.
func NewDetector(mem *memory.Manager, tracker *timing.Tracker, log logger.Logger) *Detector {
	if log == nil {
		log = logger.NewNop()
	}

	return &Detector{
		memory:   mem,
		gaussian: filters.NewGaussianFilter(mem),
		sobel:    filters.NewSobelFilter(mem),
		tracker:  tracker,
		logger:   log,
	}
}

// Detect writes the binary edge map of src into dst. dst is written only by
// the last stage, so on failure it is left as it was. src and dst may be
// the same frame.
func (d *Detector) Detect(src, dst *frame.Frame, p Params) error {
	if err := frame.ValidatePair(src, dst, "canny"); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if d.memory == nil {
		return fmt.Errorf("%w: nil memory manager", frame.ErrInvalidArgument)
	}

	defer d.tracker.Start("canny")()

	w, h := src.Width(), src.Height()
	leases := make([]*memory.FrameLease, 0, 5)
	defer func() {
		for _, l := range leases {
			l.Release()
		}
	}()

	lease := func() (*frame.Frame, error) {
		l, err := d.memory.AcquireFrame(w, h)
		if err != nil {
			return nil, err
		}
		leases = append(leases, l)
		return l.Frame(), nil
	}

	smooth, err := lease()
	if err != nil {
		return err
	}
	gx, err := lease()
	if err != nil {
		return err
	}
	gy, err := lease()
	if err != nil {
		return err
	}
	mag, err := lease()
	if err != nil {
		return err
	}
	angle, err := lease()
	if err != nil {
		return err
	}

	opts := []convolve.Option{convolve.WithWorkers(p.Workers)}

	stages := []struct {
		name string
		run  func() error
	}{
		{"gaussian", func() error { return d.gaussian.Apply(src, smooth, p.GaussianSize, p.Sigma, opts...) }},
		{"sobel", func() error { return d.sobel.Apply(smooth, gx, gy, p.SobelSize, opts...) }},
		{"magnitude", func() error { return gradient.MagnitudeAngle(gx, gy, mag, angle) }},
		// gx is free once the magnitude is known; it holds the thinned map.
		{"suppression", func() error { return gradient.Suppress(mag, angle, gx) }},
		{"hysteresis", func() error { return threshold.Hysteresis(gx, dst, p.High, p.Low) }},
	}

	for _, stage := range stages {
		stop := d.tracker.Start("canny." + stage.name)
		err := stage.run()
		stop()
		if err != nil {
			d.logger.Debug("CannyDetector", "stage failed", map[string]interface{}{
				"stage": stage.name,
				"error": err.Error(),
			})
			return err
		}
	}

	d.logger.Debug("CannyDetector", "edge map complete", map[string]interface{}{
		"width":  w,
		"height": h,
		"high":   p.High,
		"low":    p.Low,
	})

	return nil
}
