/*
Package image converts between encoded images and the flat pixel buffers
tiles are cut from.

Decoded images keep their native pixel layout where the standard library has
one: 8 and 16-bit gray, 8 and 16-bit RGBA in both premultiplied and
non-premultiplied forms, and paletted. Anything else, such as the YCbCr
images produced by the JPEG decoder, is converted to 8-bit non-premultiplied
RGBA. Encoding always produces a PNG at the best compression level, in the
same layout the buffer holds.

PNG, GIF and JPEG decoding is provided by the standard library; BMP, TIFF and
WebP by golang.org/x/image.
*/
package image

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrFormat is returned when the input is not an image in a registered
	// format or is corrupt
	ErrFormat = errors.New("image: unknown or malformed image")
	// ErrEncode is returned when a buffer cannot be encoded
	ErrEncode = errors.New("image: cannot encode buffer")
)

// Model is the layout of a single pixel.
type Model int

// Supported pixel layouts
const (
	Gray Model = iota
	Gray16
	RGBA
	RGBA64
	NRGBA
	NRGBA64
	Paletted
)

var modelNames = [...]string{
	Gray:     "gray",
	Gray16:   "gray16",
	RGBA:     "rgba",
	RGBA64:   "rgba64",
	NRGBA:    "nrgba",
	NRGBA64:  "nrgba64",
	Paletted: "paletted",
}

func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return "unknown"
	}
	return modelNames[m]
}

// Channels returns the number of channels per pixel
func (m Model) Channels() int {
	switch m {
	case RGBA, RGBA64, NRGBA, NRGBA64:
		return 4
	default:
		return 1
	}
}

// BytesPerChannel returns the size of each channel in bytes
func (m Model) BytesPerChannel() int {
	switch m {
	case Gray16, RGBA64, NRGBA64:
		return 2
	default:
		return 1
	}
}

// Buffer is a decoded image held as rows of packed pixels.
type Buffer struct {
	Width  int
	Height int
	// Stride is the number of bytes between vertically adjacent pixels
	Stride int
	Model  Model
	// Palette is only set for the Paletted model
	Palette color.Palette
	Pix     []byte
}

// NewBuffer returns a zeroed buffer with the given layout and size.
func NewBuffer(m Model, p color.Palette, width, height int) *Buffer {
	stride := width * m.Channels() * m.BytesPerChannel()
	return &Buffer{
		Width:   width,
		Height:  height,
		Stride:  stride,
		Model:   m,
		Palette: p,
		Pix:     make([]byte, stride*height),
	}
}

// Channels returns the number of channels per pixel
func (b *Buffer) Channels() int {
	return b.Model.Channels()
}

// BitDepth returns the number of bits per channel
func (b *Buffer) BitDepth() int {
	return b.Model.BytesPerChannel() << 3
}

// BytesPerPixel returns the size of each pixel in bytes
func (b *Buffer) BytesPerPixel() int {
	return b.Model.Channels() * b.Model.BytesPerChannel()
}

// Image returns an image.Image sharing the buffer's pixels.
func (b *Buffer) Image() image.Image {
	r := image.Rect(0, 0, b.Width, b.Height)
	switch b.Model {
	case Gray:
		return &image.Gray{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case Gray16:
		return &image.Gray16{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case RGBA:
		return &image.RGBA{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case RGBA64:
		return &image.RGBA64{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case NRGBA:
		return &image.NRGBA{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case NRGBA64:
		return &image.NRGBA64{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case Paletted:
		return &image.Paletted{Pix: b.Pix, Stride: b.Stride, Rect: r, Palette: b.Palette}
	}
	return nil
}

// BytesPerPixel returns the size in bytes of a decoded pixel for an image
// reporting color model m, as returned by DecodeConfig.
func BytesPerPixel(m color.Model) int {
	if _, ok := m.(color.Palette); ok {
		return 1
	}
	switch m {
	case color.GrayModel, color.AlphaModel:
		return 1
	case color.Gray16Model, color.Alpha16Model:
		return 2
	case color.RGBA64Model, color.NRGBA64Model:
		return 8
	}
	return 4
}
