package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// twoRowImage is 2x2: a red top row over a blue bottom row.
func twoRowImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: 255})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeAsset(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "flat.wgsl", []byte("@fragment fn fs_main() {}"))
	l := NewLoader(dir, WithLogger(logging.Discard()))

	src, err := l.ReadText("flat.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "@fragment fn fs_main() {}", src)
	assert.Equal(t, dir, l.Dir())
}

func TestReadNotFound(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		loader Loader
		asset  string
	}{
		{"missing file", NewLoader(dir, WithLogger(logging.Discard())), "nope.wgsl"},
		{"no asset dir", NewLoader("", WithLogger(logging.Discard())), "flat.wgsl"},
		{"escapes dir", NewLoader(dir, WithLogger(logging.Discard())), "../secret.wgsl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.ReadText(tt.asset)
			require.ErrorIs(t, err, ErrNotFound)

			_, err = tt.loader.ReadTexture(tt.asset)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestReadTexturePNG(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "checker.png", encodePNG(t, twoRowImage()))
	l := NewLoader(dir, WithLogger(logging.Discard()))

	tex, err := l.ReadTexture("checker.png")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	require.Len(t, tex.Pixels, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[0:4], "first row is the top row")
	assert.Equal(t, []byte{0, 0, 255, 255}, tex.Pixels[8:12])
}

func TestDecodeTextureSniffsContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, twoRowImage()))

	dir := t.TempDir()
	// the extension lies; the bytes are BMP
	writeAsset(t, dir, "sky.png", buf.Bytes())
	l := NewLoader(dir, WithLogger(logging.Discard()))

	tex, err := l.ReadTexture("sky.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[0:4])
}

func TestDecodeTextureFlipVertical(t *testing.T) {
	l := NewLoader("", WithFlipVertical(true), WithLogger(logging.Discard()))

	tex, err := l.DecodeTexture(encodePNG(t, twoRowImage()))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 255}, tex.Pixels[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[8:12])
}

func TestDecodeTextureGrayExpands(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 0x80})
	l := NewLoader("", WithLogger(logging.Discard()))

	tex, err := l.DecodeTexture(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x80, 0x80, 0xff}, tex.Pixels)
}

func TestDecodeTextureMaxSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
	l := NewLoader("", WithMaxTextureSize(32), WithLogger(logging.Discard()))

	tex, err := l.DecodeTexture(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, uint32(32), tex.Width)
	assert.Equal(t, uint32(8), tex.Height)
	assert.Len(t, tex.Pixels, 32*8*4)
}

func TestDecodeTextureUnsupported(t *testing.T) {
	l := NewLoader("", WithLogger(logging.Discard()))

	_, err := l.DecodeTexture([]byte("definitely not an image"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	// a recognised type that is not an image
	_, err = l.DecodeTexture([]byte("%PDF-1.4\n"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLayoutOf(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want pixelLayout
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 1, 1)), layoutGray},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), layoutRGB},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 1, 1)), layoutRGBA},
		{"paletted", image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black}), layoutRGBA},
		{"alpha only", image.NewAlpha(image.Rect(0, 0, 1, 1)), layoutUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutOf(tt.img))
		})
	}

	_, err := toTextureData(image.NewAlpha(image.Rect(0, 0, 1, 1)))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
