/*
Package pngtileset converts an image into a tileset image holding each
distinct tile once and a tilemap of tileset indices, one per tile position.

The tilemap is ordered screen by screen so each screen of the source image can
be loaded as one contiguous run of indices; see package tilemap for the file
formats and package geometry for the ordering.
*/
package pngtileset

import (
	"github.com/hashicorp/go-hclog"
)

// Converter runs conversions with a fixed set of options.
type Converter struct {
	config  Config
	logger  hclog.Logger
	catalog *Catalog
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithCatalog records conversions in catalog and skips any conversion it
// shows is already up to date.
func WithCatalog(catalog *Catalog) Option {
	return func(c *Converter) { c.catalog = catalog }
}

// New returns a Converter using config.
func New(config Config, opts ...Option) *Converter {
	c := &Converter{
		config: config,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result describes a finished conversion.
type Result struct {
	Tileset string
	Tilemap string
	// Positions is the number of tile positions in the input
	Positions int
	// Tiles is the number of distinct tiles
	Tiles int
	// Width and Height are the tileset image size in pixels
	Width  int
	Height int
	// Skipped is set when the catalog showed the outputs were up to date
	Skipped bool
}
