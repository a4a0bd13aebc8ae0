package tile

import (
	"github.com/bodgit/pngtileset/geometry"
	"github.com/bodgit/pngtileset/tilemap"
)

// Deduplicate walks every tile of src in raster order and returns the set of
// distinct tiles, in order of first appearance, along with a tilemap giving
// the set index of the tile at every position. The geometry is assumed to
// be valid for src.
func Deduplicate(src Source, g geometry.Geometry) (*Set, *tilemap.Map) {
	s := NewSet(g.TileSize, src.BytesPerPixel, g.TilesetWidth, g.Positions())
	m := tilemap.New(g)

	rows, cols := g.Rows(), g.Columns()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := geometry.Coord{Row: row, Col: col}
			k, _ := s.Insert(Extract(src, g.TileSize, c))
			m.Set(c, k)
		}
	}

	return s, m
}
