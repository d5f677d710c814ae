package filters

import (
	"fmt"

	"edgeframe/internal/frame"
	"edgeframe/internal/memory"
	"edgeframe/internal/processing/convolve"
	"edgeframe/internal/processing/kernel"
)

// GaussianFilter smooths a frame with a generated Gaussian kernel.
type GaussianFilter struct {
	memory *memory.Manager
}

func NewGaussianFilter(mem *memory.Manager) *GaussianFilter {
	return &GaussianFilter{memory: mem}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

// Apply writes src smoothed by a size x size Gaussian of the given sigma into dst.
func (g *GaussianFilter) Apply(src, dst *frame.Frame, size int, sigma float64, opts ...convolve.Option) error {
	if err := frame.ValidatePair(src, dst, g.Name()); err != nil {
		return err
	}
	if err := kernel.ValidateSize(size); err != nil {
		return err
	}

	scratch, err := acquire(g.memory, size*size)
	if err != nil {
		return err
	}
	defer scratch.Release()

	k, err := kernel.GaussianInto(scratch.Float64s(), size, sigma)
	if err != nil {
		return err
	}

	return convolve.Apply(src, dst, k, opts...)
}

func acquire(mem *memory.Manager, n int) (*memory.Scratch, error) {
	if mem == nil {
		return nil, fmt.Errorf("%w: nil memory manager", frame.ErrInvalidArgument)
	}
	return mem.AcquireFloat64(n)
}
