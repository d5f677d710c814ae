package filters

import (
	"testing"

	"edgeframe/internal/frame"
	"edgeframe/internal/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrames(t *testing.T, w, h, n int) []*frame.Frame {
	t.Helper()
	frames := make([]*frame.Frame, n)
	for i := range frames {
		f, err := frame.New(w, h)
		require.NoError(t, err)
		frames[i] = f
	}
	return frames
}

func TestGaussianFilter(t *testing.T) {
	mem := memory.NewManager(0, nil)
	g := NewGaussianFilter(mem)

	fs := newFrames(t, 8, 8, 2)
	src, dst := fs[0], fs[1]
	src.Fill(90)

	require.NoError(t, g.Apply(src, dst, 5, 1.0))
	for _, v := range dst.Pix() {
		assert.Equal(t, uint8(90), v)
	}
	assert.Equal(t, int64(0), mem.GetStats().ActiveBuffers)
}

func TestGaussianFilterSmoothsImpulse(t *testing.T) {
	g := NewGaussianFilter(memory.NewManager(0, nil))

	fs := newFrames(t, 5, 5, 2)
	src, dst := fs[0], fs[1]
	src.Set(2, 2, 255)

	require.NoError(t, g.Apply(src, dst, 3, 1.0))
	assert.Less(t, dst.At(2, 2), uint8(255))
	assert.Greater(t, dst.At(1, 2), uint8(0))
	assert.Equal(t, dst.At(1, 2), dst.At(3, 2))
	assert.Equal(t, dst.At(2, 1), dst.At(2, 3))
}

func TestGaussianFilterReleasesOnFailure(t *testing.T) {
	mem := memory.NewManager(0, nil)
	g := NewGaussianFilter(mem)
	fs := newFrames(t, 4, 4, 2)

	err := g.Apply(fs[0], fs[1], 3, -1)
	assert.ErrorIs(t, err, frame.ErrInvalidArgument)
	assert.Equal(t, int64(0), mem.GetStats().ActiveBuffers)

	assert.ErrorIs(t, g.Apply(fs[0], fs[1], 4, 1), frame.ErrInvalidArgument)
	assert.ErrorIs(t, g.Apply(nil, fs[1], 3, 1), frame.ErrInvalidArgument)
}

func TestGaussianFilterAllocationFailure(t *testing.T) {
	mem := memory.NewManager(8, nil)
	g := NewGaussianFilter(mem)

	fs := newFrames(t, 4, 4, 2)
	fs[1].Fill(33)

	err := g.Apply(fs[0], fs[1], 3, 1)
	assert.ErrorIs(t, err, frame.ErrAllocationFailure)
	for _, v := range fs[1].Pix() {
		assert.Equal(t, uint8(33), v, "destination untouched on allocation failure")
	}
}

func TestSobelFilter(t *testing.T) {
	mem := memory.NewManager(0, nil)
	s := NewSobelFilter(mem)

	// Vertical step edge: left half 0, right half 200.
	fs := newFrames(t, 6, 4, 3)
	src, gx, gy := fs[0], fs[1], fs[2]
	for y := 0; y < 4; y++ {
		for x := 3; x < 6; x++ {
			src.Set(x, y, 200)
		}
	}

	require.NoError(t, s.Apply(src, gx, gy, 3))

	for y := 0; y < 4; y++ {
		assert.Equal(t, uint8(0), gx.At(0, y))
		assert.Equal(t, uint8(200), gx.At(2, y))
		assert.Equal(t, uint8(200), gx.At(3, y))
		assert.Equal(t, uint8(0), gx.At(5, y))
		for x := 0; x < 6; x++ {
			assert.Equal(t, uint8(0), gy.At(x, y))
		}
	}
	assert.Equal(t, int64(0), mem.GetStats().ActiveBuffers)
}

func TestSobelFilterValidatesSiblingsFirst(t *testing.T) {
	mem := memory.NewManager(0, nil)
	s := NewSobelFilter(mem)

	fs := newFrames(t, 4, 4, 2)
	src, gx := fs[0], fs[1]
	src.Fill(10)
	gx.Fill(77)
	small, _ := frame.New(3, 3)

	assert.ErrorIs(t, s.Apply(src, gx, small, 3), frame.ErrInvalidArgument)
	assert.ErrorIs(t, s.Apply(src, gx, gx, 3), frame.ErrInvalidArgument)
	assert.ErrorIs(t, s.Apply(src, gx, nil, 3), frame.ErrInvalidArgument)
	for _, v := range gx.Pix() {
		assert.Equal(t, uint8(77), v)
	}
}

func TestSobelFilterAllocationFailure(t *testing.T) {
	// Room for the Gx scratch buffer only.
	mem := memory.NewManager(9*8, nil)
	s := NewSobelFilter(mem)

	fs := newFrames(t, 4, 4, 3)
	err := s.Apply(fs[0], fs[1], fs[2], 3)
	assert.ErrorIs(t, err, frame.ErrAllocationFailure)
	assert.Equal(t, int64(0), mem.GetStats().ActiveBuffers, "first buffer released on the failing path")
}

func TestNilMemoryManager(t *testing.T) {
	fs := newFrames(t, 2, 2, 3)
	assert.ErrorIs(t, NewGaussianFilter(nil).Apply(fs[0], fs[1], 1, 1), frame.ErrInvalidArgument)
	assert.ErrorIs(t, NewSobelFilter(nil).Apply(fs[0], fs[1], fs[2], 1), frame.ErrInvalidArgument)
}
