package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMetrics(t *testing.T) {
	assert.Equal(t, "", FormatMetrics(nil))
	assert.Equal(t, "threshold: 97", FormatMetrics(map[string]float64{"threshold": 97}))
	assert.Equal(t, "edge_pixels: 12 | edge_ratio: 0.25",
		FormatMetrics(map[string]float64{"edge_ratio": 0.25, "edge_pixels": 12}))
}
