/*
Package tile implements tile extraction and deduplication.

A tile is a square block of pixels at a grid-aligned position in the source
image. Tiles are compared byte for byte; two tiles are the same only if every
byte of every row is equal, there is no tolerance and no flipped or rotated
matching.
*/
package tile

import (
	"bytes"

	"github.com/bodgit/pngtileset/geometry"
)

// Source describes the pixel storage tiles are extracted from. Pix holds
// rows of Stride bytes each and every pixel is BytesPerPixel bytes.
type Source struct {
	Pix           []byte
	Stride        int
	BytesPerPixel int
}

// View is a window onto one tile held in a larger pixel buffer. It does not
// own or copy the pixels.
type View struct {
	pix    []byte
	stride int
	width  int // bytes per row
	rows   int
}

// Extract returns a view of the size by size pixel tile at c.
func Extract(src Source, size int, c geometry.Coord) View {
	width := size * src.BytesPerPixel
	base := c.Row*size*src.Stride + c.Col*width
	return View{
		pix:    src.Pix[base:],
		stride: src.Stride,
		width:  width,
		rows:   size,
	}
}

// Rows returns the number of pixel rows in the tile
func (v View) Rows() int {
	return v.rows
}

// Row returns the bytes of pixel row y of the tile.
func (v View) Row(y int) []byte {
	o := y * v.stride
	return v.pix[o : o+v.width : o+v.width]
}

// Equal reports whether both tiles hold exactly the same bytes.
func (v View) Equal(o View) bool {
	if v.rows != o.rows || v.width != o.width {
		return false
	}
	for y := 0; y < v.rows; y++ {
		if !bytes.Equal(v.Row(y), o.Row(y)) {
			return false
		}
	}
	return true
}

// CopyTo copies the tile row by row into dst, which must be the same size.
func (v View) CopyTo(dst View) {
	for y := 0; y < v.rows; y++ {
		copy(dst.Row(y), v.Row(y))
	}
}

// Bytes returns a contiguous copy of the tile.
func (v View) Bytes() []byte {
	b := make([]byte, 0, v.width*v.rows)
	for y := 0; y < v.rows; y++ {
		b = append(b, v.Row(y)...)
	}
	return b
}
