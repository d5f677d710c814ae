package histogram

import (
	"math/rand"
	"testing"

	"edgeframe/internal/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{1, 16, 1000, 4096} {
		samples := make([]uint8, n)
		for i := range samples {
			samples[i] = uint8(rng.Intn(256))
		}

		out := make([]float64, Levels)
		require.NoError(t, Build(samples, MaxLevel, out))

		var sum float64
		for _, p := range out {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "n=%d", n)
	}
}

func TestAllZeroImage(t *testing.T) {
	f, err := frame.New(8, 5)
	require.NoError(t, err)

	h, err := Of(f)
	require.NoError(t, err)

	assert.Equal(t, 1.0, h[0])
	for level := 1; level < Levels; level++ {
		assert.Zero(t, h[level], "level %d", level)
	}
	assert.Zero(t, h.Mean())
}

func TestBuildRejects(t *testing.T) {
	out := make([]float64, Levels)

	tests := []struct {
		name     string
		samples  []uint8
		maxLevel int
		out      []float64
	}{
		{"nil samples", nil, MaxLevel, out},
		{"nil output", []uint8{1}, MaxLevel, nil},
		{"empty samples", []uint8{}, MaxLevel, out},
		{"short output", []uint8{1}, MaxLevel, make([]float64, 10)},
		{"negative max level", []uint8{0}, -1, out},
		{"sample above max level", []uint8{3, 9}, 7, out},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Build(tt.samples, tt.maxLevel, tt.out)
			assert.ErrorIs(t, err, frame.ErrInvalidArgument)
		})
	}
}

func TestBuildReducedRange(t *testing.T) {
	out := make([]float64, 4)
	require.NoError(t, Build([]uint8{0, 1, 1, 3}, 3, out))
	assert.Equal(t, []float64{0.25, 0.5, 0, 0.25}, out)
}

func TestMean(t *testing.T) {
	f, err := frame.FromPixels(2, 2, []uint8{10, 10, 200, 200})
	require.NoError(t, err)

	h, err := Of(f)
	require.NoError(t, err)
	assert.InDelta(t, 105.0, h.Mean(), 1e-9)
	assert.InDelta(t, 1.0, h.Sum(), 1e-12)
}

func TestOfNilFrame(t *testing.T) {
	_, err := Of(nil)
	assert.ErrorIs(t, err, frame.ErrInvalidArgument)
}
