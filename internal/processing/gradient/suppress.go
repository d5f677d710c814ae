package gradient

import (
	"fmt"

	"edgeframe/internal/frame"
)

type offset struct{ dx, dy int }

// neighbors maps a direction code to the two pixels compared against the
// center. Rows grow downward.
var neighbors = map[uint8][2]offset{
	Dir0:   {{-1, 0}, {1, 0}},
	Dir45:  {{-1, -1}, {1, 1}},
	Dir90:  {{0, -1}, {0, 1}},
	Dir135: {{1, -1}, {-1, 1}},
}

// Suppress thins mag along the gradient: a pixel survives only when it is
// strictly greater than both neighbors in its direction. A pixel whose
// neighbor falls outside the frame is suppressed.
func Suppress(mag, angle, dst *frame.Frame) error {
	if err := frame.ValidateSameSize("non_max_suppression", mag, angle, dst); err != nil {
		return err
	}

	for i, code := range angle.Pix() {
		if _, ok := neighbors[code]; !ok {
			return fmt.Errorf("%w: unknown direction code %d at pixel %d",
				frame.ErrInvalidArgument, code, i)
		}
	}

	if dst == mag {
		mag = mag.Clone()
	}
	if dst == angle {
		angle = angle.Clone()
	}

	w, h := mag.Width(), mag.Height()
	m, a, out := mag.Pix(), angle.Pix(), dst.Pix()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			center := m[i]
			out[i] = 0

			keep := true
			for _, o := range neighbors[a[i]] {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h || m[ny*w+nx] >= center {
					keep = false
					break
				}
			}
			if keep {
				out[i] = center
			}
		}
	}

	return nil
}
