// Package convolve applies square kernels to 8-bit frames.
//
// Taps that fall outside the frame are redirected to the nearest border
// row/column (edge replication), each axis clamped independently. The
// weighted sum is accumulated in float64, its absolute value taken, then
// rounded half away from zero and saturated to [0,255].
package convolve

import (
	"fmt"
	"math"

	"edgeframe/internal/frame"
	"edgeframe/internal/processing/kernel"

	"golang.org/x/sync/errgroup"
)

type options struct {
	workers int
}

type Option func(*options)

// WithWorkers splits rows across n goroutines. n <= 1 runs inline.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Apply convolves src with k into dst. src and dst must be distinct frames of
// the same size.
func Apply(src, dst *frame.Frame, k *kernel.Kernel, opts ...Option) error {
	if err := frame.ValidatePair(src, dst, "convolve"); err != nil {
		return err
	}
	if k == nil {
		return fmt.Errorf("%w: nil kernel", frame.ErrInvalidArgument)
	}
	if err := kernel.ValidateSize(k.Size()); err != nil {
		return err
	}
	if src == dst {
		return fmt.Errorf("%w: convolution cannot run in place", frame.ErrInvalidArgument)
	}

	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	c := &convolver{
		src:     src.Pix(),
		dst:     dst.Pix(),
		width:   src.Width(),
		height:  src.Height(),
		weights: k.Weights(),
		size:    k.Size(),
		radius:  k.Radius(),
	}
	c.colIndex = c.clampedColumns()

	if o.workers <= 1 || c.height < 2 {
		c.rows(0, c.height)
		return nil
	}

	workers := min(o.workers, c.height)
	band := (c.height + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < c.height; start += band {
		end := min(start+band, c.height)
		g.Go(func() error {
			c.rows(start, end)
			return nil
		})
	}
	return g.Wait()
}

type convolver struct {
	src, dst      []uint8
	width, height int
	weights       []float64
	size, radius  int
	// colIndex[x*size+kc] is the clamped source column for output column x
	// and kernel column kc.
	colIndex []int
}

func (c *convolver) clampedColumns() []int {
	idx := make([]int, c.width*c.size)
	for x := 0; x < c.width; x++ {
		for kc := 0; kc < c.size; kc++ {
			idx[x*c.size+kc] = clamp(x+kc-c.radius, c.width)
		}
	}
	return idx
}

func (c *convolver) rows(start, end int) {
	for y := start; y < end; y++ {
		out := c.dst[y*c.width : (y+1)*c.width]
		for x := range out {
			cols := c.colIndex[x*c.size : (x+1)*c.size]

			var sum float64
			for kr := 0; kr < c.size; kr++ {
				rowOff := clamp(y+kr-c.radius, c.height) * c.width
				w := c.weights[kr*c.size : (kr+1)*c.size]
				for kc, sx := range cols {
					sum += w[kc] * float64(c.src[rowOff+sx])
				}
			}

			out[x] = Saturate(math.Abs(sum))
		}
	}
}

// clamp redirects an out-of-range coordinate to the nearest valid index.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Saturate rounds v half away from zero and clamps it to [0,255]. NaN maps to 0.
func Saturate(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	r := math.Round(v)
	if r >= 255 {
		return 255
	}
	return uint8(r)
}
