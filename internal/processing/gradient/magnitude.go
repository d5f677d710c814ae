package gradient

import (
	"fmt"
	"math"

	"edgeframe/internal/frame"
	"edgeframe/internal/processing/convolve"
)

// Direction codes stored in an angle frame.
const (
	Dir0   uint8 = 0
	Dir45  uint8 = 45
	Dir90  uint8 = 90
	Dir135 uint8 = 135
)

// Quantize folds deg into [0,180] and snaps it to the nearest of the four
// direction codes.
func Quantize(deg float64) uint8 {
	if deg < 0 {
		deg += 180
	}

	switch {
	case deg > 22.5 && deg <= 67.5:
		return Dir45
	case deg > 67.5 && deg <= 112.5:
		return Dir90
	case deg > 112.5 && deg <= 157.5:
		return Dir135
	default:
		return Dir0
	}
}

// MagnitudeAngle computes per-pixel gradient magnitude into mag and the
// quantized gradient direction into angle. Either output may be nil.
func MagnitudeAngle(gx, gy, mag, angle *frame.Frame) error {
	if mag == nil && angle == nil {
		return fmt.Errorf("%w: magnitude and angle outputs are both nil", frame.ErrInvalidArgument)
	}

	outputs := []*frame.Frame{gx, gy}
	if mag != nil {
		outputs = append(outputs, mag)
	}
	if angle != nil {
		outputs = append(outputs, angle)
	}
	if err := frame.ValidateSameSize("magnitude_angle", outputs...); err != nil {
		return err
	}
	if mag != nil && mag == angle {
		return fmt.Errorf("%w: magnitude and angle must be distinct frames", frame.ErrInvalidArgument)
	}

	// Outputs may alias gx or gy: each pixel is read before it is written.
	xs, ys := gx.Pix(), gy.Pix()
	var ms, as []uint8
	if mag != nil {
		ms = mag.Pix()
	}
	if angle != nil {
		as = angle.Pix()
	}

	for i := range xs {
		x, y := float64(xs[i]), float64(ys[i])
		if ms != nil {
			ms[i] = convolve.Saturate(math.Hypot(x, y))
		}
		if as != nil {
			as[i] = Quantize(math.Atan2(y, x) * 180 / math.Pi)
		}
	}

	return nil
}
