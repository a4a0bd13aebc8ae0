package pngtileset

import (
	"fmt"
	"strings"

	"github.com/bodgit/pngtileset/geometry"
	"github.com/bodgit/pngtileset/tilemap"
)

// Defaults used by DefaultConfig
const (
	DefaultTilesetWidth = 16
	DefaultTileSize     = 16
	DefaultScreenWidth  = 320
	DefaultScreenHeight = 192
	DefaultMaxBytes     = 1 << 30
)

// Config holds the options for a conversion.
type Config struct {
	// Format of the tilemap file
	Format tilemap.Format
	// TilesetWidth is the width of the tileset image in tiles
	TilesetWidth int
	// TileSize is the width and height of a tile in pixels
	TileSize int
	// ScreenWidth and ScreenHeight are the size of a screen in pixels
	ScreenWidth  int
	ScreenHeight int
	// MaxBytes caps the memory used for pixel and index buffers
	MaxBytes int64
}

// DefaultConfig returns the default options: a text tilemap, 16 pixel tiles,
// a tileset 16 tiles wide and 320 by 192 pixel screens.
func DefaultConfig() Config {
	return Config{
		Format:       tilemap.Text,
		TilesetWidth: DefaultTilesetWidth,
		TileSize:     DefaultTileSize,
		ScreenWidth:  DefaultScreenWidth,
		ScreenHeight: DefaultScreenHeight,
		MaxBytes:     DefaultMaxBytes,
	}
}

// Validate checks every option is in range. Options are checked against the
// image dimensions separately, once they are known.
func (c Config) Validate() error {
	var bad []string
	for _, o := range []struct {
		name  string
		value int
	}{
		{"tileset width", c.TilesetWidth},
		{"tile size", c.TileSize},
		{"screen width", c.ScreenWidth},
		{"screen height", c.ScreenHeight},
	} {
		if o.value <= 0 {
			bad = append(bad, o.name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s must be positive", ErrArgument, strings.Join(bad, ", "))
	}

	switch c.Format {
	case tilemap.Text, tilemap.Binary:
	default:
		return fmt.Errorf("%w: unknown tilemap format %d", ErrArgument, c.Format)
	}

	if c.MaxBytes < 0 {
		return fmt.Errorf("%w: negative memory limit", ErrArgument)
	}

	return nil
}

func (c Config) geometry(width, height int) geometry.Geometry {
	return geometry.Geometry{
		ImageWidth:   width,
		ImageHeight:  height,
		TileSize:     c.TileSize,
		ScreenWidth:  c.ScreenWidth,
		ScreenHeight: c.ScreenHeight,
		TilesetWidth: c.TilesetWidth,
	}
}

// key identifies the options that affect the output files.
func (c Config) key() string {
	return fmt.Sprintf("t%d w%d s%dx%d %s", c.TileSize, c.TilesetWidth, c.ScreenWidth, c.ScreenHeight, c.Format)
}
