package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// fromImage wraps the pixels of m without copying them when its layout is
// supported. Pix is resliced so the top-left corner of the bounds is at
// offset zero.
func fromImage(m image.Image) *Buffer {
	b := m.Bounds()
	buf := &Buffer{
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	switch m := m.(type) {
	case *image.Gray:
		buf.Model, buf.Stride, buf.Pix = Gray, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
	case *image.Gray16:
		buf.Model, buf.Stride, buf.Pix = Gray16, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
	case *image.RGBA:
		buf.Model, buf.Stride, buf.Pix = RGBA, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
	case *image.RGBA64:
		buf.Model, buf.Stride, buf.Pix = RGBA64, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
	case *image.NRGBA:
		buf.Model, buf.Stride, buf.Pix = NRGBA, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
	case *image.NRGBA64:
		buf.Model, buf.Stride, buf.Pix = NRGBA64, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
	case *image.Paletted:
		buf.Model, buf.Stride, buf.Pix = Paletted, m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
		buf.Palette = m.Palette
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(dst, dst.Bounds(), m, b.Min, xdraw.Src)
		buf.Model, buf.Stride, buf.Pix = NRGBA, dst.Stride, dst.Pix
	}

	return buf
}

// Decode reads an image in any registered format from r and returns its
// pixels.
func Decode(r io.Reader) (*Buffer, string, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return fromImage(m), format, nil
}

// DecodeConfig returns the dimensions and format name of an image without
// decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	c, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return c, format, nil
}
