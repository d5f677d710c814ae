package otsu

import (
	"edgeframe/internal/frame"
	"edgeframe/internal/logger"
	"edgeframe/internal/processing/threshold"
)

const Name = "Otsu"

// Processor binarizes a frame at its Otsu threshold. It takes no parameters.
type Processor struct {
	logger logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Processor{logger: log}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (p *Processor) ValidateParameters(map[string]interface{}) error {
	return nil
}

func (p *Processor) Process(input *frame.Frame, params map[string]interface{}) (*frame.Frame, error) {
	output, _, err := p.ProcessWithMetrics(input, params)
	return output, err
}

// ProcessWithMetrics returns the binary frame and the selected threshold
// under the "threshold" key.
func (p *Processor) ProcessWithMetrics(input *frame.Frame, _ map[string]interface{}) (*frame.Frame, map[string]float64, error) {
	if err := frame.ValidateForOperation(input, Name); err != nil {
		return nil, nil, err
	}

	output, err := frame.New(input.Width(), input.Height())
	if err != nil {
		return nil, nil, err
	}

	t, err := threshold.Otsu(input, output)
	if err != nil {
		return nil, nil, err
	}

	p.logger.Debug("OtsuProcessor", "threshold selected", map[string]interface{}{
		"threshold": t,
		"width":     input.Width(),
		"height":    input.Height(),
	})

	return output, map[string]float64{"threshold": float64(t)}, nil
}
