/*
Package tilemap implements the tilemap written alongside a tileset image.

A tilemap holds one tileset index for every tile position in the source
image. Indices are stored in screen order rather than raster order: all of the
tiles for the first screen, row by row, then all of the tiles for the next
screen and so on, so that a screen's worth of data can be loaded as one
contiguous run.

Two encodings are supported. The text encoding is a comma terminated list of
decimal indices, broken into lines of one screen row each with a blank line
between screens. The binary encoding is each index as an unsigned 32-bit
little-endian integer, in the same order and with no header.
*/
package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bodgit/pngtileset/geometry"
)

// IndexSize is the size in bytes of each index in the binary encoding
const IndexSize = 4

var errLength = errors.New("tilemap: binary length does not match geometry")

// Format selects the tilemap encoding.
type Format int

const (
	// Text is comma separated decimal
	Text Format = iota
	// Binary is unsigned 32-bit little-endian
	Binary
)

// Ext returns the filename extension conventionally used for the format.
func (f Format) Ext() string {
	if f == Binary {
		return ".bin"
	}
	return ".csv"
}

func (f Format) String() string {
	if f == Binary {
		return "binary"
	}
	return "text"
}

// Map is a tilemap. It implements the encoding.TextMarshaler,
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Map struct {
	geometry geometry.Geometry
	indices  []int
}

// New returns a tilemap sized for every tile position in g, with every
// index set to zero.
func New(g geometry.Geometry) *Map {
	return &Map{
		geometry: g,
		indices:  make([]int, g.Positions()),
	}
}

// Len returns the number of indices in the tilemap
func (m *Map) Len() int {
	return len(m.indices)
}

// Set stores the index of the tile at source position c.
func (m *Map) Set(c geometry.Coord, index int) {
	m.indices[m.geometry.Position(c)] = index
}

// At returns the index of the tile at source position c.
func (m *Map) At(c geometry.Coord) int {
	return m.indices[m.geometry.Position(c)]
}

// Indices returns the indices in output order. The slice is shared with the
// tilemap.
func (m *Map) Indices() []int {
	return m.indices
}

// MarshalText encodes the tilemap as comma separated decimal indices. A line
// break precedes each screen row and an extra one precedes each screen.
func (m *Map) MarshalText() ([]byte, error) {
	row := m.geometry.ScreenColumns()
	screen := m.geometry.ScreenTiles()

	b := new(bytes.Buffer)
	var tmp []byte
	for i, v := range m.indices {
		if i%row == 0 {
			b.WriteByte('\n')
		}
		if i%screen == 0 {
			b.WriteByte('\n')
		}
		tmp = strconv.AppendInt(tmp[:0], int64(v), 10)
		b.Write(tmp)
		b.WriteByte(',')
	}

	return b.Bytes(), nil
}

// MarshalBinary encodes the tilemap as unsigned 32-bit little-endian
// indices.
func (m *Map) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, len(m.indices)*IndexSize)
	for _, v := range m.indices {
		if v < 0 || uint64(v) > 0xffffffff {
			return nil, fmt.Errorf("tilemap: index %d out of range", v)
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(v))
	}
	return b, nil
}

// UnmarshalBinary decodes indices written by MarshalBinary. The tilemap must
// have been created with New using the same geometry.
func (m *Map) UnmarshalBinary(b []byte) error {
	if len(b) != len(m.indices)*IndexSize {
		return errLength
	}

	r := bytes.NewReader(b)
	for i := range m.indices {
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return err
		}
		m.indices[i] = int(v)
	}

	return nil
}

// Encode writes the tilemap to w in format f.
func Encode(w io.Writer, m *Map, f Format) error {
	var (
		b   []byte
		err error
	)
	switch f {
	case Text:
		b, err = m.MarshalText()
	case Binary:
		b, err = m.MarshalBinary()
	default:
		return fmt.Errorf("tilemap: unknown format %d", f)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}
