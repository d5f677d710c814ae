package widgets

import (
	"fmt"
	"testing"

	"edgeframe/internal/algorithms/canny"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliderFor(t *testing.T, key string) SliderSpec {
	t.Helper()
	for _, s := range CannySliders() {
		if s.Key == key {
			return s
		}
	}
	require.FailNow(t, "no slider", key)
	return SliderSpec{}
}

func TestSliderValueSnapsOddSizes(t *testing.T) {
	s := sliderFor(t, canny.KeyGaussianSize)

	assert.Equal(t, 5, s.Value(5))
	assert.Equal(t, 5, s.Value(4))
	assert.Equal(t, 7, s.Value(5.6))
	assert.Equal(t, 31, s.Value(31))
	assert.Equal(t, 31, s.Value(30.9), "snapping never leaves the range")
}

func TestSliderValueKinds(t *testing.T) {
	assert.Equal(t, 1.4, sliderFor(t, canny.KeySigma).Value(1.4))
	assert.Equal(t, 80, sliderFor(t, canny.KeyHigh).Value(80.2))
}

func TestSliderFormat(t *testing.T) {
	assert.Equal(t, "Sigma: 1.4", sliderFor(t, canny.KeySigma).Format(1.4))
	assert.Equal(t, "Low Threshold: 40", sliderFor(t, canny.KeyLow).Format(40))
}

func TestCannySlidersUseConfigRanges(t *testing.T) {
	for _, s := range CannySliders() {
		assert.Less(t, s.Range.Min, s.Range.Max, s.Key)
		assert.Positive(t, s.Range.Step, s.Key)
	}
}

func TestSliderBindingKeepsAcceptedValueOnRejection(t *testing.T) {
	const low = 40
	var stored []interface{}

	b := &sliderBinding{
		spec:     sliderFor(t, canny.KeyHigh),
		accepted: 80,
		apply: func(key string, value interface{}) error {
			if value.(int) < low {
				return fmt.Errorf("%s %v below low threshold %d", key, value, low)
			}
			stored = append(stored, value)
			return nil
		},
	}

	value, err := b.commit(120.3)
	require.NoError(t, err)
	assert.Equal(t, 120, value)

	value, err = b.commit(10)
	assert.Error(t, err)
	assert.Equal(t, 120, value, "rejected value falls back to the last accepted one")
	assert.Equal(t, "High Threshold: 120", b.spec.Format(value))
	assert.Equal(t, 120.0, position(value))

	assert.Equal(t, []interface{}{120}, stored)
}

func TestSliderBindingWithoutHandler(t *testing.T) {
	b := &sliderBinding{spec: sliderFor(t, canny.KeySigma), accepted: 1.4}
	value, err := b.commit(2.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, value)
	assert.Equal(t, 2.5, position(value))
}
