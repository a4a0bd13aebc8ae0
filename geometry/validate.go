package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every *ValidationError with errors.Is
var ErrInvalid = errors.New("geometry: invalid")

// Constraint names a geometry rule.
type Constraint string

// The rules checked by Validate, in the order they are checked.
const (
	Positive              Constraint = "positive"
	ImageMultipleOfTile   Constraint = "image-multiple-of-tile"
	ScreenMultipleOfTile  Constraint = "screen-multiple-of-tile"
	ImageMultipleOfScreen Constraint = "image-multiple-of-screen"
	TileWithinImage       Constraint = "tile-within-image"
	ScreenWithinImage     Constraint = "screen-within-image"
	TileWithinScreen      Constraint = "tile-within-screen"
)

var messages = map[Constraint]string{
	Positive:              "dimensions have to be positive",
	ImageMultipleOfTile:   "image dimensions have to be multiple of tile size",
	ScreenMultipleOfTile:  "screen size has to be multiple of tile size",
	ImageMultipleOfScreen: "image dimensions have to be multiple of screen size",
	TileWithinImage:       "tile size cannot exceed image dimensions",
	ScreenWithinImage:     "screen size cannot exceed image dimensions",
	TileWithinScreen:      "tile size cannot exceed screen size",
}

// ValidationError reports the first geometry rule that was broken.
type ValidationError struct {
	Constraint Constraint
	Geometry   Geometry
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("geometry: %s", messages[e.Constraint])
}

// Is reports whether target is ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Validate checks the geometry is consistent before any tiles are
// extracted. It returns a *ValidationError naming the first broken rule.
func (g Geometry) Validate() error {
	fail := func(c Constraint) error {
		return &ValidationError{Constraint: c, Geometry: g}
	}

	switch {
	case g.ImageWidth <= 0 || g.ImageHeight <= 0 || g.TileSize <= 0 ||
		g.ScreenWidth <= 0 || g.ScreenHeight <= 0 || g.TilesetWidth <= 0:
		return fail(Positive)
	case g.ImageWidth%g.TileSize != 0 || g.ImageHeight%g.TileSize != 0:
		return fail(ImageMultipleOfTile)
	case g.ScreenWidth%g.TileSize != 0 || g.ScreenHeight%g.TileSize != 0:
		return fail(ScreenMultipleOfTile)
	case g.ImageWidth%g.ScreenWidth != 0 || g.ImageHeight%g.ScreenHeight != 0:
		return fail(ImageMultipleOfScreen)
	case g.TileSize >= g.ImageWidth || g.TileSize >= g.ImageHeight:
		return fail(TileWithinImage)
	case g.ScreenWidth > g.ImageWidth || g.ScreenHeight > g.ImageHeight:
		return fail(ScreenWithinImage)
	case g.TileSize >= g.ScreenWidth || g.TileSize >= g.ScreenHeight:
		return fail(TileWithinScreen)
	}

	return nil
}
