package threshold

import (
	"fmt"

	"edgeframe/internal/frame"
)

// Hysteresis keeps pixels >= high and every pixel >= low that is 8-connected,
// directly or through other such pixels, to one of them. Edges are written
// as Foreground, everything else Background.
func Hysteresis(src, dst *frame.Frame, high, low uint8) error {
	if err := frame.ValidatePair(src, dst, "hysteresis"); err != nil {
		return err
	}
	if high < low {
		return fmt.Errorf("%w: high threshold %d below low threshold %d",
			frame.ErrInvalidArgument, high, low)
	}

	w, h := src.Width(), src.Height()
	in := src.Pix()
	if src == dst {
		in = src.Clone().Pix()
	}
	out := dst.Pix()

	clear(out)
	stack := make([]int, 0, 64)
	for i, v := range in {
		if v < high || out[i] == Foreground {
			continue
		}

		out[i] = Foreground
		stack = append(stack, i)

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			px, py := p%w, p/w

			for dy := -1; dy <= 1; dy++ {
				ny := py + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := px + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= w {
						continue
					}
					n := ny*w + nx
					if out[n] != Foreground && in[n] >= low {
						out[n] = Foreground
						stack = append(stack, n)
					}
				}
			}
		}
	}

	return nil
}
