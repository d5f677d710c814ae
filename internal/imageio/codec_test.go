package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"edgeframe/internal/debug/timing"
	"edgeframe/internal/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(16, 8)
	require.NoError(t, err)
	for i := range f.Pix() {
		f.Pix()[i] = uint8(i * 2)
	}
	return f
}

func TestFormatFromExtension(t *testing.T) {
	tests := map[string]string{
		"a.png":       "png",
		"a.JPG":       "jpeg",
		"a.jpeg":      "jpeg",
		"dir/a.tif":   "tiff",
		"a.tiff":      "tiff",
		"a.bmp":       "bmp",
		"a.gif":       "gif",
		"a":           "png",
		"a.unknownxt": "png",
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFromExtension(path), path)
	}
}

func TestEncodeDecodeLossless(t *testing.T) {
	codec := NewCodec(nil, timing.NewTracker())
	src := gradientFrame(t)

	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, src, format))

			got, name, err := codec.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, name)
			assert.Equal(t, src.Pix(), got.Pix())
		})
	}
}

func TestEncodeLossy(t *testing.T) {
	codec := NewCodec(nil, nil)
	src := gradientFrame(t)

	for _, format := range []string{"jpeg", "gif"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, src, format))

			got, name, err := codec.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, name)
			assert.Equal(t, src.Width(), got.Width())
			assert.Equal(t, src.Height(), got.Height())
		})
	}
}

func TestDecodeColorToGray(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{255, 255, 255, 255})
	rgba.Set(1, 0, color.RGBA{0, 0, 0, 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, rgba))

	got, _, err := NewCodec(nil, nil).Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 0}, got.Pix())
}

func TestEncodeDecodeRejects(t *testing.T) {
	codec := NewCodec(nil, nil)
	src := gradientFrame(t)

	var buf bytes.Buffer
	assert.ErrorIs(t, codec.Encode(&buf, src, "webp"), frame.ErrInvalidArgument)
	assert.ErrorIs(t, codec.Encode(&buf, nil, "png"), frame.ErrInvalidArgument)

	_, _, err := codec.Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	codec := NewCodec(nil, nil)
	src := gradientFrame(t)

	for _, name := range []string{"out.png", "out.bmp", "out.tif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, codec.Save(path, src))

			got, err := codec.Load(path)
			require.NoError(t, err)
			assert.Equal(t, src.Pix(), got.Pix())
		})
	}

	_, err := codec.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
