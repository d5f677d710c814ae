package frame

import (
	"fmt"
	"image"
	"image/draw"
)

// MaxDimension bounds either side of a frame.
const MaxDimension = 32768

// Frame is a row-major 8-bit grayscale image. The pixel buffer is owned by
// the Frame and its length always equals Width*Height.
type Frame struct {
	width  int
	height int
	pix    []uint8
}

// New returns a zeroed frame of the given size.
func New(width, height int) (*Frame, error) {
	if err := ValidateDimensions(width, height, "New"); err != nil {
		return nil, err
	}

	return &Frame{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

// FromPixels wraps pix as a frame. The slice is adopted, not copied.
func FromPixels(width, height int, pix []uint8) (*Frame, error) {
	if err := ValidateDimensions(width, height, "FromPixels"); err != nil {
		return nil, err
	}

	if pix == nil {
		return nil, fmt.Errorf("%w: nil pixel buffer", ErrInvalidArgument)
	}

	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: buffer length %d does not match %dx%d",
			ErrInvalidArgument, len(pix), width, height)
	}

	return &Frame{width: width, height: height, pix: pix}, nil
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }
func (f *Frame) Len() int    { return len(f.pix) }

// Pix exposes the backing buffer for stages that index it directly.
func (f *Frame) Pix() []uint8 { return f.pix }

func (f *Frame) At(x, y int) uint8 {
	return f.pix[y*f.width+x]
}

func (f *Frame) Set(x, y int, v uint8) {
	f.pix[y*f.width+x] = v
}

// SameSize reports whether o has the same dimensions as f.
func (f *Frame) SameSize(o *Frame) bool {
	return f.width == o.width && f.height == o.height
}

func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.pix))
	copy(pix, f.pix)
	return &Frame{width: f.width, height: f.height, pix: pix}
}

// CopyTo copies f into dst, which must have the same dimensions.
func (f *Frame) CopyTo(dst *Frame) error {
	if err := ValidatePair(f, dst, "CopyTo"); err != nil {
		return err
	}
	copy(dst.pix, f.pix)
	return nil
}

// Fill sets every pixel to v.
func (f *Frame) Fill(v uint8) {
	for i := range f.pix {
		f.pix[i] = v
	}
}

// FromImage converts any image to an 8-bit gray frame.
func FromImage(img image.Image) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}

	bounds := img.Bounds()
	f, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < f.height; y++ {
			off := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(f.pix[y*f.width:(y+1)*f.width], gray.Pix[off:off+f.width])
		}
		return f, nil
	}

	gray := image.NewGray(image.Rect(0, 0, f.width, f.height))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	copy(f.pix, gray.Pix)

	return f, nil
}

// ToImage returns a copy of the frame as an *image.Gray.
func (f *Frame) ToImage() *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, f.width, f.height))
	copy(gray.Pix, f.pix)
	return gray
}
