//go:build purego

package imageio

import (
	"fmt"
	"os"

	"edgeframe/internal/frame"
)

// Backend names the file loader compiled into this build.
const Backend = "pure-go"

func loadFile(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	f, _, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func saveFile(path string, f *frame.Frame) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing image: %w", cerr)
		}
	}()

	return encode(file, f, FormatFromExtension(path))
}
