package tile

import (
	"github.com/bodgit/pngtileset/crc32"
	"github.com/bodgit/pngtileset/geometry"
)

// Set is an ordered collection of distinct tiles packed into a tileset
// image a fixed number of tiles wide. Tiles keep the index they were added
// at; the first tile added is index 0.
type Set struct {
	pix      []byte
	stride   int
	columns  int
	size     int
	bpp      int
	n        int
	capacity int

	// Indices of tiles sharing a fingerprint, in ascending order
	buckets map[uint32][]int
}

// NewSet returns an empty set of size by size pixel tiles laid out columns
// tiles wide, with room for capacity tiles. The backing pixels are allocated
// up front and start zeroed.
func NewSet(size, bytesPerPixel, columns, capacity int) *Set {
	rows := (capacity + columns - 1) / columns
	stride := columns * size * bytesPerPixel
	return &Set{
		pix:      make([]byte, rows*size*stride),
		stride:   stride,
		columns:  columns,
		size:     size,
		bpp:      bytesPerPixel,
		capacity: capacity,
		buckets:  make(map[uint32][]int),
	}
}

// Len returns the number of tiles in the set
func (s *Set) Len() int {
	return s.n
}

// Tile returns a view of tile k.
func (s *Set) Tile(k int) View {
	return Extract(Source{Pix: s.pix, Stride: s.stride, BytesPerPixel: s.bpp}, s.size, geometry.Coord{
		Row: k / s.columns,
		Col: k % s.columns,
	})
}

func (s *Set) fingerprint(v View) uint32 {
	return crc32.UpdateRows(0, v.pix, v.stride, v.width, v.rows)
}

// Find returns the index of the earliest added tile equal to v.
func (s *Set) Find(v View) (int, bool) {
	return s.find(v, s.fingerprint(v))
}

func (s *Set) find(v View, sum uint32) (int, bool) {
	for _, k := range s.buckets[sum] {
		if s.Tile(k).Equal(v) {
			return k, true
		}
	}
	return 0, false
}

// Insert returns the index of the tile equal to v, adding a copy of v to the
// end of the set first if there is no such tile. The boolean reports whether
// v was added.
func (s *Set) Insert(v View) (int, bool) {
	sum := s.fingerprint(v)
	if k, ok := s.find(v, sum); ok {
		return k, false
	}

	if s.n == s.capacity {
		panic("tile: set is full")
	}

	k := s.n
	v.CopyTo(s.Tile(k))
	s.buckets[sum] = append(s.buckets[sum], k)
	s.n++

	return k, true
}

// Layout returns the tileset image: just enough whole rows of tiles to hold
// every tile in the set. Slots after the last tile in the final row are
// zero. The pixels are shared with the set.
func (s *Set) Layout() (pix []byte, width, height, stride int) {
	rows := (s.n + s.columns - 1) / s.columns
	height = rows * s.size
	return s.pix[:height*s.stride], s.columns * s.size, height, s.stride
}
