package widgets

import (
	"fmt"

	"edgeframe/internal/algorithms/canny"
	"edgeframe/internal/algorithms/otsu"
	"edgeframe/internal/algorithms/params"
	"edgeframe/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SliderSpec describes one parameter slider.
type SliderSpec struct {
	Key     string
	Label   string
	Range   config.ParameterRange
	Odd     bool
	Decimal bool
}

// CannySliders lists the Canny parameters exposed in the panel, bounded by
// the configuration ranges.
func CannySliders() []SliderSpec {
	spec := func(key, label string, odd, decimal bool) SliderSpec {
		return SliderSpec{Key: key, Label: label, Range: config.Ranges["canny."+key], Odd: odd, Decimal: decimal}
	}

	return []SliderSpec{
		spec(canny.KeyGaussianSize, "Gaussian Size", true, false),
		spec(canny.KeySigma, "Sigma", false, true),
		spec(canny.KeySobelSize, "Sobel Size", true, false),
		spec(canny.KeyHigh, "High Threshold", false, false),
		spec(canny.KeyLow, "Low Threshold", false, false),
	}
}

// Value converts a raw slider position into the parameter value.
func (s SliderSpec) Value(raw float64) interface{} {
	if s.Decimal {
		return raw
	}

	n := int(raw + 0.5)
	if s.Odd && n%2 == 0 {
		n++
	}
	if limit := int(s.Range.Max); n > limit {
		n = limit
	}
	return n
}

// Format renders the slider label for value.
func (s SliderSpec) Format(value interface{}) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("%s: %.1f", s.Label, v)
	default:
		return fmt.Sprintf("%s: %v", s.Label, v)
	}
}

// sliderBinding tracks the last value the handler accepted for one slider.
type sliderBinding struct {
	spec     SliderSpec
	accepted interface{}
	apply    func(string, interface{}) error
}

// commit offers the value at raw to apply. On rejection it returns the
// previously accepted value with the error so the slider can be reset.
func (b *sliderBinding) commit(raw float64) (interface{}, error) {
	value := b.spec.Value(raw)
	if b.apply != nil {
		if err := b.apply(b.spec.Key, value); err != nil {
			return b.accepted, err
		}
	}
	b.accepted = value
	return value, nil
}

// position maps a parameter value back onto the slider axis.
func position(value interface{}) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

type ParameterPanel struct {
	container              *fyne.Container
	parametersContent      *fyne.Container
	parameterChangeHandler func(string, interface{}) error
}

func NewParameterPanel() *ParameterPanel {
	pp := &ParameterPanel{}
	pp.parametersContent = container.NewVBox(widget.NewLabel("Parameters:"))
	pp.container = container.NewVBox(pp.parametersContent)
	return pp
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

// SetParameterChangeHandler installs the handler that stores a new value. A
// returned error resets the slider to the last accepted value.
func (pp *ParameterPanel) SetParameterChangeHandler(handler func(string, interface{}) error) {
	pp.parameterChangeHandler = handler
}

func (pp *ParameterPanel) UpdateParameters(algorithm string, values map[string]interface{}) {
	pp.parametersContent.RemoveAll()
	pp.parametersContent.Add(widget.NewLabel("Parameters:"))

	switch algorithm {
	case canny.Name:
		pp.buildSliders(CannySliders(), values)
	case otsu.Name:
		pp.parametersContent.Add(widget.NewLabel("The threshold is chosen from the frame histogram."))
	}

	pp.container.Refresh()
}

func (pp *ParameterPanel) buildSliders(specs []SliderSpec, values map[string]interface{}) {
	row := container.NewHBox()
	for _, spec := range specs {
		current, err := params.Float(values, spec.Key, spec.Range.Min)
		if err != nil {
			current = spec.Range.Min
		}

		binding := &sliderBinding{
			spec:     spec,
			accepted: spec.Value(current),
			apply: func(key string, value interface{}) error {
				if pp.parameterChangeHandler == nil {
					return nil
				}
				return pp.parameterChangeHandler(key, value)
			},
		}

		label := widget.NewLabel(spec.Format(binding.accepted))
		slider := widget.NewSlider(spec.Range.Min, spec.Range.Max)
		slider.Step = spec.Range.Step
		slider.SetValue(current)

		slider.OnChangeEnded = func(raw float64) {
			value, err := binding.commit(raw)
			label.SetText(spec.Format(value))
			if err != nil {
				slider.SetValue(position(value))
			}
		}

		row.Add(container.NewVBox(label, slider))
	}
	pp.parametersContent.Add(row)
}
