package algorithms

import (
	"edgeframe/internal/frame"
)

// Algorithm is a named whole-frame operation driven by loosely typed
// parameters, as set from configuration files, flags or the viewer.
type Algorithm interface {
	Process(input *frame.Frame, params map[string]interface{}) (*frame.Frame, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
}

// MetricsAlgorithm is implemented by algorithms that report scalar results
// alongside their output, such as the selected threshold.
type MetricsAlgorithm interface {
	Algorithm
	ProcessWithMetrics(input *frame.Frame, params map[string]interface{}) (*frame.Frame, map[string]float64, error)
}

type ProcessingResult struct {
	Algorithm string
	Output    *frame.Frame
	Metrics   map[string]float64
}
