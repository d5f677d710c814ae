// Package imageio reads and writes frames as image files.
//
// The default build loads and stores files through OpenCV. Building with the
// purego tag swaps in a decoder written against the standard image packages
// and golang.org/x/image, which needs no cgo.
package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"edgeframe/internal/debug/timing"
	"edgeframe/internal/frame"
	"edgeframe/internal/logger"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const jpegQuality = 95

// Codec loads and saves frames, logging each transfer.
type Codec struct {
	logger  logger.Logger
	tracker *timing.Tracker
}

// NewCodec builds a codec. log and tracker may be nil.
func NewCodec(log logger.Logger, tracker *timing.Tracker) *Codec {
	if log == nil {
		log = logger.NewNop()
	}
	return &Codec{logger: log, tracker: tracker}
}

// FormatFromExtension maps a file name onto an encoder name. Unknown or
// missing extensions map to "png".
func FormatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	default:
		return "png"
	}
}

// Load reads the image at path as an 8-bit gray frame.
func (c *Codec) Load(path string) (*frame.Frame, error) {
	defer c.tracker.Start("imageio.load")()

	f, err := loadFile(path)
	if err != nil {
		c.logger.Error("ImageLoader", err, map[string]interface{}{"path": path, "backend": Backend})
		return nil, err
	}

	c.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"path":    path,
		"width":   f.Width(),
		"height":  f.Height(),
		"backend": Backend,
	})
	return f, nil
}

// Save writes f to path in the format named by its extension.
func (c *Codec) Save(path string, f *frame.Frame) error {
	if err := frame.ValidateForOperation(f, "save"); err != nil {
		return err
	}
	defer c.tracker.Start("imageio.save")()

	if err := saveFile(path, f); err != nil {
		c.logger.Error("ImageSaver", err, map[string]interface{}{"path": path, "backend": Backend})
		return err
	}

	c.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":    path,
		"format":  FormatFromExtension(path),
		"backend": Backend,
	})
	return nil
}

// Decode reads any registered image format from r and converts it to gray.
// It returns the decoder's format name.
func (c *Codec) Decode(r io.Reader) (*frame.Frame, string, error) {
	defer c.tracker.Start("imageio.decode")()

	f, format, err := decode(r)
	if err != nil {
		return nil, "", err
	}

	c.logger.Debug("ImageLoader", "image decoded", map[string]interface{}{
		"format": format,
		"width":  f.Width(),
		"height": f.Height(),
	})
	return f, format, nil
}

// Encode writes f to w as format ("png", "jpeg", "gif", "bmp" or "tiff").
func (c *Codec) Encode(w io.Writer, f *frame.Frame, format string) error {
	if err := frame.ValidateForOperation(f, "encode"); err != nil {
		return err
	}
	defer c.tracker.Start("imageio.encode")()

	if err := encode(w, f, format); err != nil {
		c.logger.Error("ImageSaver", err, map[string]interface{}{"format": format})
		return err
	}
	return nil
}

func decode(r io.Reader) (*frame.Frame, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	f, err := frame.FromImage(img)
	if err != nil {
		return nil, "", err
	}
	return f, format, nil
}

func encode(w io.Writer, f *frame.Frame, format string) error {
	img := f.ToImage()

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(w, img)
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: unsupported image format %q", frame.ErrInvalidArgument, format)
	}

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
