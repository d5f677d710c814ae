package filters

import (
	"fmt"

	"edgeframe/internal/frame"
	"edgeframe/internal/memory"
	"edgeframe/internal/processing/convolve"
	"edgeframe/internal/processing/kernel"
)

// SobelFilter produces horizontal and vertical gradient responses.
type SobelFilter struct {
	memory *memory.Manager
}

func NewSobelFilter(mem *memory.Manager) *SobelFilter {
	return &SobelFilter{memory: mem}
}

func (s *SobelFilter) Name() string {
	return "sobel_filter"
}

// Apply writes the Gx response into gx and the Gy response into gy. All
// arguments are checked before either output is touched.
func (s *SobelFilter) Apply(src, gx, gy *frame.Frame, size int, opts ...convolve.Option) error {
	if err := frame.ValidateSameSize(s.Name(), src, gx, gy); err != nil {
		return err
	}
	if gx == gy || src == gx || src == gy {
		return fmt.Errorf("%w: sobel outputs must be distinct frames", frame.ErrInvalidArgument)
	}
	if err := kernel.ValidateSize(size); err != nil {
		return err
	}

	gxScratch, err := acquire(s.memory, size*size)
	if err != nil {
		return err
	}
	defer gxScratch.Release()

	gyScratch, err := acquire(s.memory, size*size)
	if err != nil {
		return err
	}
	defer gyScratch.Release()

	kx, ky, err := kernel.SobelInto(gxScratch.Float64s(), gyScratch.Float64s(), size)
	if err != nil {
		return err
	}

	if err := convolve.Apply(src, gx, kx, opts...); err != nil {
		return err
	}
	return convolve.Apply(src, gy, ky, opts...)
}
