/*
Package geometry describes how a source image is divided into tiles and
screens, and validates that the division is consistent.

The tile grid is addressed in tile units, row-major. Screens are rectangular
groups of tiles used to decide the order tile indices are written out in; a
tilemap stores each screen's tiles as one contiguous run, screens in
row-major order and tiles within a screen also in row-major order.
*/
package geometry

import "fmt"

// Coord is the position of a tile in the source grid, in tile units.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Geometry holds the dimensions of the source image, its tiles and screens,
// and the width of the tileset image. All values are in pixels except
// TilesetWidth, which is in tiles.
type Geometry struct {
	ImageWidth   int
	ImageHeight  int
	TileSize     int
	ScreenWidth  int
	ScreenHeight int
	TilesetWidth int
}

// Columns returns the width of the source grid in tiles
func (g Geometry) Columns() int {
	return g.ImageWidth / g.TileSize
}

// Rows returns the height of the source grid in tiles
func (g Geometry) Rows() int {
	return g.ImageHeight / g.TileSize
}

// Positions returns the number of tile positions in the source grid
func (g Geometry) Positions() int {
	return g.Columns() * g.Rows()
}

// ScreenColumns returns the width of a screen in tiles
func (g Geometry) ScreenColumns() int {
	return g.ScreenWidth / g.TileSize
}

// ScreenRows returns the height of a screen in tiles
func (g Geometry) ScreenRows() int {
	return g.ScreenHeight / g.TileSize
}

// ScreenTiles returns the number of tiles in one screen
func (g Geometry) ScreenTiles() int {
	return g.ScreenColumns() * g.ScreenRows()
}

// Position returns the index in the tilemap at which the tile at c is
// stored.
//
// The block-column term is scaled by the screen height in tiles; since the
// block column start is itself a multiple of the screen width, the product is
// the block column index times the screen area, which is exactly the number
// of tiles held by the screens to the left within the same screen row.
func (g Geometry) Position(c Coord) int {
	w, sw, sh := g.Columns(), g.ScreenColumns(), g.ScreenRows()

	rowStart := c.Row / sh * sh
	colStart := c.Col / sw * sw

	a := rowStart*w + (c.Row-rowStart)*sw
	b := colStart*sh + (c.Col - colStart)

	return a + b
}

// Coord is the inverse of Position.
func (g Geometry) Coord(position int) Coord {
	w, sw, sh := g.Columns(), g.ScreenColumns(), g.ScreenRows()
	area := sw * sh

	screenRow := position / (sh * w)
	position -= screenRow * sh * w
	screenCol := position / area
	position -= screenCol * area

	return Coord{
		Row: screenRow*sh + position/sw,
		Col: screenCol*sw + position%sw,
	}
}
