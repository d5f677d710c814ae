package canny

import (
	"fmt"

	"edgeframe/internal/algorithms/params"
	"edgeframe/internal/frame"
)

// Parameter keys understood by Processor.
const (
	KeyGaussianSize = "gaussian_size"
	KeySigma        = "sigma"
	KeySobelSize    = "sobel_size"
	KeyHigh         = "high_threshold"
	KeyLow          = "low_threshold"
	KeyWorkers      = "workers"
)

const Name = "Canny"

// Processor exposes a Detector through the map-parameter algorithm contract.
type Processor struct {
	detector *Detector
	defaults Params
}

func NewProcessor(detector *Detector, defaults Params) *Processor {
	return &Processor{detector: detector, defaults: defaults}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return ToMap(p.defaults)
}

func (p *Processor) ValidateParameters(m map[string]interface{}) error {
	_, err := p.ParamsFrom(m)
	return err
}

// ParamsFrom overlays m on the processor defaults and validates the result.
func (p *Processor) ParamsFrom(m map[string]interface{}) (Params, error) {
	out := p.defaults
	var err error

	if out.GaussianSize, err = params.Int(m, KeyGaussianSize, out.GaussianSize); err != nil {
		return Params{}, err
	}
	if out.Sigma, err = params.Float(m, KeySigma, out.Sigma); err != nil {
		return Params{}, err
	}
	if out.SobelSize, err = params.Int(m, KeySobelSize, out.SobelSize); err != nil {
		return Params{}, err
	}
	if out.High, err = params.Level(m, KeyHigh, out.High); err != nil {
		return Params{}, err
	}
	if out.Low, err = params.Level(m, KeyLow, out.Low); err != nil {
		return Params{}, err
	}
	if out.Workers, err = params.Int(m, KeyWorkers, out.Workers); err != nil {
		return Params{}, err
	}

	if err := out.Validate(); err != nil {
		return Params{}, err
	}
	return out, nil
}

func (p *Processor) Process(input *frame.Frame, m map[string]interface{}) (*frame.Frame, error) {
	output, _, err := p.ProcessWithMetrics(input, m)
	return output, err
}

// ProcessWithMetrics returns a new edge map and the number and ratio of
// edge pixels in it.
func (p *Processor) ProcessWithMetrics(input *frame.Frame, m map[string]interface{}) (*frame.Frame, map[string]float64, error) {
	if err := frame.ValidateForOperation(input, Name); err != nil {
		return nil, nil, err
	}

	cfg, err := p.ParamsFrom(m)
	if err != nil {
		return nil, nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	output, err := frame.New(input.Width(), input.Height())
	if err != nil {
		return nil, nil, err
	}

	if err := p.detector.Detect(input, output, cfg); err != nil {
		return nil, nil, err
	}

	edges := 0
	for _, v := range output.Pix() {
		if v != 0 {
			edges++
		}
	}

	return output, map[string]float64{
		"edge_pixels": float64(edges),
		"edge_ratio":  float64(edges) / float64(output.Len()),
	}, nil
}

// ToMap renders p with the Processor parameter keys.
func ToMap(p Params) map[string]interface{} {
	return map[string]interface{}{
		KeyGaussianSize: p.GaussianSize,
		KeySigma:        p.Sigma,
		KeySobelSize:    p.SobelSize,
		KeyHigh:         int(p.High),
		KeyLow:          int(p.Low),
		KeyWorkers:      p.Workers,
	}
}
