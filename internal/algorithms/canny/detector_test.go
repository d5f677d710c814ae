package canny

import (
	"math/rand"
	"testing"

	"edgeframe/internal/debug/timing"
	"edgeframe/internal/frame"
	"edgeframe/internal/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector(limit int64) (*Detector, *memory.Manager, *timing.Tracker) {
	mem := memory.NewManager(limit, nil)
	tracker := timing.NewTracker()
	return NewDetector(mem, tracker, nil), mem, tracker
}

// ramp is 8 columns wide with a two-step rise centered on column 4.
func ramp(t *testing.T, height int) *frame.Frame {
	t.Helper()
	row := []uint8{0, 0, 0, 0, 100, 200, 200, 200}
	pix := make([]uint8, 0, len(row)*height)
	for y := 0; y < height; y++ {
		pix = append(pix, row...)
	}
	f, err := frame.FromPixels(len(row), height, pix)
	require.NoError(t, err)
	return f
}

func TestDetectBlankImages(t *testing.T) {
	d, mem, _ := newDetector(memory.DefaultLimit)

	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 3}, {16, 9}, {33, 33}}
	for _, size := range sizes {
		for _, level := range []uint8{0, 1, 128, 255} {
			for _, high := range []uint8{1, 80} {
				src, _ := frame.New(size[0], size[1])
				src.Fill(level)
				dst, _ := frame.New(size[0], size[1])
				dst.Fill(42)

				p := DefaultParams()
				p.High, p.Low = high, 1
				require.NoError(t, d.Detect(src, dst, p))

				for i, v := range dst.Pix() {
					require.Zero(t, v, "size %v level %d high %d pixel %d", size, level, high, i)
				}
			}
		}
	}

	stats := mem.GetStats()
	assert.Equal(t, stats.TotalAllocated, stats.TotalReleased)
}

func TestDetectRamp(t *testing.T) {
	d, _, tracker := newDetector(memory.DefaultLimit)
	src := ramp(t, 5)
	dst, _ := frame.New(8, 5)

	p := Params{GaussianSize: 1, Sigma: 1, SobelSize: 3, High: 150, Low: 50, Workers: 1}
	require.NoError(t, d.Detect(src, dst, p))

	for y := 0; y < 5; y++ {
		for x := 0; x < 8; x++ {
			want := uint8(0)
			if x == 4 {
				want = 255
			}
			assert.Equal(t, want, dst.At(x, y), "pixel (%d,%d)", x, y)
		}
	}

	for _, op := range []string{"canny", "canny.gaussian", "canny.sobel", "canny.magnitude", "canny.suppression", "canny.hysteresis"} {
		assert.Len(t, tracker.GetTimings(op), 1, op)
	}
}

func TestDetectRampAboveHigh(t *testing.T) {
	d, _, _ := newDetector(memory.DefaultLimit)
	src := ramp(t, 3)
	dst, _ := frame.New(8, 3)

	p := Params{GaussianSize: 1, Sigma: 1, SobelSize: 3, High: 250, Low: 50, Workers: 1}
	require.NoError(t, d.Detect(src, dst, p))
	assert.Equal(t, make([]uint8, 24), dst.Pix())
}

func TestDetectInPlace(t *testing.T) {
	d, _, _ := newDetector(memory.DefaultLimit)
	f := ramp(t, 4)

	p := Params{GaussianSize: 1, Sigma: 1, SobelSize: 3, High: 150, Low: 50}
	require.NoError(t, d.Detect(f, f, p))
	assert.Equal(t, uint8(255), f.At(4, 2))
	assert.Zero(t, f.At(5, 2))
}

func TestDetectWorkersMatchSerial(t *testing.T) {
	d, _, _ := newDetector(memory.DefaultLimit)
	rng := rand.New(rand.NewSource(7))

	src, _ := frame.New(40, 31)
	for i := range src.Pix() {
		src.Pix()[i] = uint8(rng.Intn(256))
	}

	serial, _ := frame.New(40, 31)
	parallel, _ := frame.New(40, 31)

	p := DefaultParams()
	require.NoError(t, d.Detect(src, serial, p))
	p.Workers = 4
	require.NoError(t, d.Detect(src, parallel, p))

	assert.Equal(t, serial.Pix(), parallel.Pix())
}

func TestDetectFailuresLeaveDestination(t *testing.T) {
	src := ramp(t, 4)

	t.Run("invalid params", func(t *testing.T) {
		d, _, _ := newDetector(memory.DefaultLimit)
		dst, _ := frame.New(8, 4)
		dst.Fill(9)

		bad := []Params{
			{GaussianSize: 4, Sigma: 1, SobelSize: 3, High: 100, Low: 50},
			{GaussianSize: 5, Sigma: 0, SobelSize: 3, High: 100, Low: 50},
			{GaussianSize: 5, Sigma: 1, SobelSize: 0, High: 100, Low: 50},
			{GaussianSize: 5, Sigma: 1, SobelSize: 3, High: 40, Low: 50},
			{GaussianSize: 5, Sigma: 1, SobelSize: 3, High: 100, Low: 50, Workers: -1},
		}
		for _, p := range bad {
			assert.ErrorIs(t, d.Detect(src, dst, p), frame.ErrInvalidArgument, "%+v", p)
		}
		for _, v := range dst.Pix() {
			assert.Equal(t, uint8(9), v)
		}
	})

	t.Run("allocation failure", func(t *testing.T) {
		// Room for the first intermediate frames only.
		d, mem, _ := newDetector(3 * 32)
		dst, _ := frame.New(8, 4)
		dst.Fill(9)

		err := d.Detect(src, dst, DefaultParams())
		assert.ErrorIs(t, err, frame.ErrAllocationFailure)
		for _, v := range dst.Pix() {
			assert.Equal(t, uint8(9), v)
		}

		stats := mem.GetStats()
		assert.Equal(t, stats.TotalAllocated, stats.TotalReleased)
		assert.Zero(t, stats.ActiveBuffers)
	})

	t.Run("mismatched frames", func(t *testing.T) {
		d, _, _ := newDetector(memory.DefaultLimit)
		dst, _ := frame.New(7, 4)
		assert.ErrorIs(t, d.Detect(src, dst, DefaultParams()), frame.ErrInvalidArgument)
		assert.ErrorIs(t, d.Detect(nil, dst, DefaultParams()), frame.ErrInvalidArgument)
	})

	t.Run("nil memory manager", func(t *testing.T) {
		d := NewDetector(nil, nil, nil)
		dst, _ := frame.New(8, 4)
		assert.ErrorIs(t, d.Detect(src, dst, DefaultParams()), frame.ErrInvalidArgument)
	})
}
