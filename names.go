package pngtileset

import (
	"strings"

	"github.com/bodgit/pngtileset/tilemap"
)

const tilesetSuffix = "_tileset.png"

// OutputNames returns the tileset image and tilemap filenames written for
// input. A three letter extension such as ".png" is dropped from input
// first; anything else is kept as part of the name.
func OutputNames(input string, format tilemap.Format) (string, string) {
	base := input
	if i := strings.LastIndexByte(input, '.'); i >= 0 && i == len(input)-4 {
		base = input[:i]
	}
	return base + tilesetSuffix, base + format.Ext()
}
