package loader

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// imageDecoder decodes one image format.
type imageDecoder func(r io.Reader) (image.Image, error)

// decoders maps the extension reported by filetype to the decoder for that format. The content is
// sniffed, so a texture's file extension does not have to match its format.
var decoders = map[string]imageDecoder{
	"png": png.Decode,
	"jpg": jpeg.Decode,
	"gif": gif.Decode,
	"bmp": bmp.Decode,
	"tif": tiff.Decode,
}

// pixelLayout is the channel layout of a decoded image before expansion to RGBA8.
type pixelLayout int

const (
	layoutUnknown pixelLayout = iota
	layoutGray
	layoutRGB
	layoutRGBA
)

// decodeImage sniffs the format from the leading bytes and decodes with the matching decoder.
//
// Parameters:
//   - r: the reader over the encoded image
//   - head: at least the first 262 bytes of the encoded image
//
// Returns:
//   - image.Image: the decoded image
//   - string: the detected format extension
//   - error: an error wrapping ErrUnsupportedFormat if no decoder matches
func decodeImage(r io.Reader, head []byte) (image.Image, string, error) {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return nil, "", fmt.Errorf("%w: unrecognised content", ErrUnsupportedFormat)
	}
	decode, ok := decoders[kind.Extension]
	if !ok {
		return nil, kind.Extension, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, err := decode(r)
	if err != nil {
		return nil, kind.Extension, fmt.Errorf("decode %s: %w", kind.Extension, err)
	}
	return img, kind.Extension, nil
}

// fitTexture scales img down so neither side exceeds maxSize, keeping the aspect ratio.
func fitTexture(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

func flipVertical(img image.Image) image.Image {
	return transform.FlipV(img)
}

// layoutOf reports the channel layout of the concrete image type.
func layoutOf(img image.Image) pixelLayout {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return layoutGray
	case *image.YCbCr, *image.CMYK:
		return layoutRGB
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.NYCbCrA, *image.Paletted:
		return layoutRGBA
	default:
		return layoutUnknown
	}
}

// toTextureData expands a decoded image into tightly packed RGBA8 rows.
func toTextureData(img image.Image) (common.TextureData, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return common.TextureData{}, fmt.Errorf("%w: empty image", ErrUnsupportedFormat)
	}
	pixels := make([]byte, w*h*4)

	switch layoutOf(img) {
	case layoutGray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
				i := (y*w + x) * 4
				pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = g, g, g, 0xff
			}
		}
	case layoutRGB:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
				i := (y*w + x) * 4
				pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c.R, c.G, c.B, 0xff
			}
		}
	case layoutRGBA:
		if src, ok := img.(*image.NRGBA); ok && src.Stride == w*4 && b.Min == (image.Point{}) {
			copy(pixels, src.Pix)
			break
		}
		dst := &image.NRGBA{Pix: pixels, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	default:
		return common.TextureData{}, fmt.Errorf("%w: pixel type %T", ErrUnsupportedFormat, img)
	}

	return common.TextureData{Pixels: pixels, Width: uint32(w), Height: uint32(h)}, nil
}
