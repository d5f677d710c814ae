//go:build !purego

package imageio

import (
	"fmt"

	"edgeframe/internal/frame"

	"gocv.io/x/gocv"
)

// Backend names the file loader compiled into this build.
const Backend = "opencv"

func loadFile(path string) (*frame.Frame, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("could not load image: %s", path)
	}

	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unexpected mat type %v for %s", mat.Type(), path)
	}

	f, err := frame.New(mat.Cols(), mat.Rows())
	if err != nil {
		return nil, err
	}
	copy(f.Pix(), mat.ToBytes())
	return f, nil
}

func saveFile(path string, f *frame.Frame) error {
	mat, err := gocv.NewMatFromBytes(f.Height(), f.Width(), gocv.MatTypeCV8UC1, f.Pix())
	if err != nil {
		return fmt.Errorf("failed to wrap frame for OpenCV: %w", err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("could not write image: %s", path)
	}
	return nil
}
