package image

import (
	"fmt"
	"image/png"
	"io"
)

var encoder = png.Encoder{
	CompressionLevel: png.BestCompression,
}

// Encode writes the buffer b to w as a PNG.
func Encode(w io.Writer, b *Buffer) error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrEncode, b.Width, b.Height)
	}
	if len(b.Pix) < (b.Height-1)*b.Stride+b.Width*b.BytesPerPixel() {
		return fmt.Errorf("%w: not enough pixel data", ErrEncode)
	}

	m := b.Image()
	if m == nil {
		return fmt.Errorf("%w: unsupported model %s", ErrEncode, b.Model)
	}

	if err := encoder.Encode(w, m); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return nil
}
