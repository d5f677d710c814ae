// Package kernel generates square convolution kernels with odd side length.
package kernel

import (
	"fmt"
	"math"

	"edgeframe/internal/frame"

	"gonum.org/v1/gonum/mat"
)

// Kernel is a square, odd-sided matrix of weights stored row-major.
type Kernel struct {
	dense *mat.Dense
	size  int
}

// ValidateSize rejects even or non-positive kernel sides.
func ValidateSize(size int) error {
	if size <= 0 || size%2 == 0 {
		return fmt.Errorf("%w: kernel size must be a positive odd number, got %d",
			frame.ErrInvalidArgument, size)
	}
	return nil
}

// FromValues wraps size*size row-major weights. The slice is used in place.
func FromValues(size int, values []float64) (*Kernel, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	if len(values) < size*size {
		return nil, fmt.Errorf("%w: kernel buffer holds %d weights, need %d",
			frame.ErrInvalidArgument, len(values), size*size)
	}

	return &Kernel{
		dense: mat.NewDense(size, size, values[:size*size]),
		size:  size,
	}, nil
}

func (k *Kernel) Size() int { return k.size }

// Radius is the distance from the center cell to the border.
func (k *Kernel) Radius() int { return k.size / 2 }

func (k *Kernel) At(row, col int) float64 { return k.dense.At(row, col) }

// Weights returns the row-major backing slice.
func (k *Kernel) Weights() []float64 { return k.dense.RawMatrix().Data }

func (k *Kernel) Sum() float64 { return mat.Sum(k.dense) }

// Max returns the largest weight.
func (k *Kernel) Max() float64 { return mat.Max(k.dense) }

// Gaussian returns a normalized size x size Gaussian kernel.
func Gaussian(size int, sigma float64) (*Kernel, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	return GaussianInto(make([]float64, size*size), size, sigma)
}

// GaussianInto generates the Gaussian kernel into buf, which must hold at
// least size*size values.
func GaussianInto(buf []float64, size int, sigma float64) (*Kernel, error) {
	if math.IsNaN(sigma) || sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma must be positive, got %v", frame.ErrInvalidArgument, sigma)
	}

	k, err := FromValues(size, buf)
	if err != nil {
		return nil, err
	}

	half := k.Radius()
	twoSigmaSq := 2 * sigma * sigma
	for row := 0; row < size; row++ {
		y := float64(row - half)
		for col := 0; col < size; col++ {
			x := float64(col - half)
			k.dense.Set(row, col, math.Exp(-(x*x+y*y)/twoSigmaSq))
		}
	}

	k.dense.Scale(1/k.Sum(), k.dense)
	return k, nil
}

// Sobel returns the horizontal and vertical derivative kernels.
func Sobel(size int) (gx, gy *Kernel, err error) {
	if err := ValidateSize(size); err != nil {
		return nil, nil, err
	}
	return SobelInto(make([]float64, size*size), make([]float64, size*size), size)
}

// SobelInto generates the derivative pair into the two buffers. Each cell is
// x/(2(x²+y²)) for Gx and y/(2(x²+y²)) for Gy, with x the column offset and
// y the row offset from the center; the center cell is 0.
func SobelInto(gxBuf, gyBuf []float64, size int) (gx, gy *Kernel, err error) {
	if gx, err = FromValues(size, gxBuf); err != nil {
		return nil, nil, err
	}
	if gy, err = FromValues(size, gyBuf); err != nil {
		return nil, nil, err
	}

	half := gx.Radius()
	for row := 0; row < size; row++ {
		y := float64(row - half)
		for col := 0; col < size; col++ {
			x := float64(col - half)
			if row == half && col == half {
				gx.dense.Set(row, col, 0)
				gy.dense.Set(row, col, 0)
				continue
			}
			norm := 2 * (x*x + y*y)
			gx.dense.Set(row, col, x/norm)
			gy.dense.Set(row, col, y/norm)
		}
	}

	return gx, gy, nil
}
