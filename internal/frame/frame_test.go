package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("zeroed buffer", func(t *testing.T) {
		f, err := New(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, f.Width())
		assert.Equal(t, 3, f.Height())
		assert.Len(t, f.Pix(), 12)
		for _, v := range f.Pix() {
			assert.Zero(t, v)
		}
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 4}, {MaxDimension + 1, 1}} {
			_, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidArgument, "dims %v", dims)
		}
	})
}

func TestFromPixels(t *testing.T) {
	_, err := FromPixels(2, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromPixels(2, 2, make([]uint8, 3))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	pix := []uint8{1, 2, 3, 4, 5, 6}
	f, err := FromPixels(3, 2, pix)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), f.At(2, 1))

	f.Set(0, 1, 42)
	assert.Equal(t, uint8(42), pix[3], "buffer is adopted, not copied")
}

func TestValidateSameSize(t *testing.T) {
	a, _ := New(3, 3)
	b, _ := New(3, 3)
	c, _ := New(3, 4)

	assert.NoError(t, ValidateSameSize("op", a, b))
	assert.ErrorIs(t, ValidateSameSize("op", a, c), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateSameSize("op", a, nil), ErrInvalidArgument)
	assert.ErrorIs(t, ValidatePair(nil, b, "op"), ErrInvalidArgument)
}

func TestCloneAndCopyTo(t *testing.T) {
	src, _ := FromPixels(2, 2, []uint8{9, 8, 7, 6})
	clone := src.Clone()
	clone.Set(0, 0, 0)
	assert.Equal(t, uint8(9), src.At(0, 0))

	dst, _ := New(2, 2)
	require.NoError(t, src.CopyTo(dst))
	assert.Equal(t, src.Pix(), dst.Pix())

	small, _ := New(1, 1)
	assert.ErrorIs(t, src.CopyTo(small), ErrInvalidArgument)
}

func TestImageConversion(t *testing.T) {
	t.Run("gray round trip", func(t *testing.T) {
		src, _ := FromPixels(3, 1, []uint8{0, 128, 255})
		back, err := FromImage(src.ToImage())
		require.NoError(t, err)
		assert.Equal(t, src.Pix(), back.Pix())
	})

	t.Run("gray sub-image with offset", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 4, 4))
		for i := range gray.Pix {
			gray.Pix[i] = uint8(i)
		}
		sub := gray.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

		f, err := FromImage(sub)
		require.NoError(t, err)
		assert.Equal(t, []uint8{5, 6, 9, 10}, f.Pix())
	})

	t.Run("color converted to gray", func(t *testing.T) {
		rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
		rgba.Set(0, 0, color.White)
		rgba.Set(1, 0, color.Black)

		f, err := FromImage(rgba)
		require.NoError(t, err)
		assert.Equal(t, []uint8{255, 0}, f.Pix())
	})

	t.Run("nil image", func(t *testing.T) {
		_, err := FromImage(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
