package pngtileset

import (
	"errors"
	goimage "image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/pngtileset/geometry"
	"github.com/bodgit/pngtileset/image"
	"github.com/bodgit/pngtileset/tile"
	"github.com/bodgit/pngtileset/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeImage writes a PNG of cols by rows tiles of size pixels where the
// tile at (row, col) is a solid color picked by id(row, col).
func writeImage(t *testing.T, file string, rows, cols, size int, paletted bool, id func(row, col int) int) {
	t.Helper()

	palette := color.Palette{}
	for i := 0; i < 16; i++ {
		palette = append(palette, color.RGBA{byte(i * 16), byte(255 - i*16), byte(i * 7), 0xff})
	}

	r := goimage.Rect(0, 0, cols*size, rows*size)
	var m interface {
		goimage.Image
		Set(x, y int, c color.Color)
	}
	if paletted {
		m = goimage.NewPaletted(r, palette)
	} else {
		m = goimage.NewNRGBA(r)
	}

	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := palette[id(y/size, x/size)%len(palette)]
			// Give every tile some structure beyond a flat color
			if x%size == y%size {
				c = palette[(id(y/size, x/size)+1)%len(palette)]
			}
			m.Set(x, y, c)
		}
	}

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func decodeFile(t *testing.T, file string) *image.Buffer {
	t.Helper()

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	b, _, err := image.Decode(f)
	require.NoError(t, err)
	return b
}

func TestConvertReconstructs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "level.png")
	ids := func(row, col int) int { return (row*3 + col*5) % 7 }
	writeImage(t, input, 4, 8, 8, false, ids)

	config := DefaultConfig()
	config.Format = tilemap.Binary
	config.TileSize = 8
	config.ScreenWidth = 32
	config.ScreenHeight = 16
	config.TilesetWidth = 3

	res, err := New(config).Convert(input)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "level_tileset.png"), res.Tileset)
	assert.Equal(t, filepath.Join(dir, "level.bin"), res.Tilemap)
	assert.Equal(t, 32, res.Positions)
	assert.Equal(t, 7, res.Tiles)
	assert.Equal(t, 24, res.Width)
	assert.Equal(t, 24, res.Height)
	assert.False(t, res.Skipped)

	src := decodeFile(t, input)
	set := decodeFile(t, res.Tileset)
	assert.Equal(t, src.Model, set.Model)
	assert.Equal(t, res.Width, set.Width)
	assert.Equal(t, res.Height, set.Height)

	b, err := os.ReadFile(res.Tilemap)
	require.NoError(t, err)
	require.Len(t, b, 32*tilemap.IndexSize)

	g := config.geometry(src.Width, src.Height)
	m := tilemap.New(g)
	require.NoError(t, m.UnmarshalBinary(b))

	source := tile.Source{Pix: src.Pix, Stride: src.Stride, BytesPerPixel: src.BytesPerPixel()}
	tileset := tile.Source{Pix: set.Pix, Stride: set.Stride, BytesPerPixel: set.BytesPerPixel()}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			c := geometry.Coord{Row: row, Col: col}
			k := m.At(c)
			require.True(t, k >= 0 && k < res.Tiles)

			want := tile.Extract(source, 8, c)
			got := tile.Extract(tileset, 8, geometry.Coord{Row: k / 3, Col: k % 3})
			assert.True(t, want.Equal(got), "tile %v", c)
		}
	}

	// Two unused slots at the end of the last row
	for y := 16; y < 24; y++ {
		for _, p := range set.Pix[y*set.Stride+8*set.BytesPerPixel() : (y+1)*set.Stride] {
			require.Zero(t, p)
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "screen.png")
	writeImage(t, input, 24, 40, 16, true, func(row, col int) int { return (row / 3) ^ col%4 })

	res, err := New(DefaultConfig()).Convert(input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "screen.csv"), res.Tilemap)

	set := decodeFile(t, res.Tileset)
	assert.Equal(t, image.Paletted, set.Model)
	assert.Len(t, set.Palette, 16)

	tileset1, err := os.ReadFile(res.Tileset)
	require.NoError(t, err)
	tilemap1, err := os.ReadFile(res.Tilemap)
	require.NoError(t, err)
	assert.Equal(t, "\n\n", string(tilemap1[:2]))

	_, err = New(DefaultConfig()).Convert(input)
	require.NoError(t, err)

	tileset2, err := os.ReadFile(res.Tileset)
	require.NoError(t, err)
	tilemap2, err := os.ReadFile(res.Tilemap)
	require.NoError(t, err)

	assert.Equal(t, tileset1, tileset2)
	assert.Equal(t, tilemap1, tilemap2)
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()

	badSize := filepath.Join(dir, "bad.png")
	writeImage(t, badSize, 3, 3, 16, false, func(int, int) int { return 0 })

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image at all"), 0o644))

	big := filepath.Join(dir, "big.png")
	writeImage(t, big, 12, 20, 16, false, func(int, int) int { return 0 })

	tests := []struct {
		name   string
		input  string
		modify func(*Config)
		want   error
	}{
		{
			name:  "missing input",
			input: filepath.Join(dir, "missing.png"),
			want:  ErrFile,
		},
		{
			name:  "not an image",
			input: garbage,
			want:  ErrFormat,
		},
		{
			name:   "screen not multiple of tile",
			input:  badSize,
			modify: func(c *Config) { c.ScreenWidth, c.ScreenHeight = 50, 48 },
			want:   ErrValidation,
		},
		{
			name:   "zero tile size",
			input:  big,
			modify: func(c *Config) { c.TileSize = 0 },
			want:   ErrArgument,
		},
		{
			name:   "memory limit",
			input:  big,
			modify: func(c *Config) { c.MaxBytes = 1024 },
			want:   ErrResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			if tt.modify != nil {
				tt.modify(&config)
			}

			res, err := New(config).Convert(tt.input)
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "%v", err)

			// No partial outputs left behind
			tileset, tilemap := OutputNames(tt.input, config.Format)
			assert.NoFileExists(t, tileset)
			assert.NoFileExists(t, tilemap)
		})
	}
}

func TestConvertGIFFrameSmallerThanScreen(t *testing.T) {
	input := filepath.Join(t.TempDir(), "anim.gif")

	frame := goimage.NewPaletted(goimage.Rect(0, 0, 32, 32), color.Palette{color.Black, color.White})
	for i := range frame.Pix {
		frame.Pix[i] = byte(i % 3 % 2)
	}

	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, gif.EncodeAll(f, &gif.GIF{
		Image:  []*goimage.Paletted{frame},
		Delay:  []int{0},
		Config: goimage.Config{Width: 64, Height: 64},
	}))
	require.NoError(t, f.Close())

	config := DefaultConfig()
	config.TileSize = 8
	config.ScreenWidth, config.ScreenHeight = 32, 32

	res, err := New(config).Convert(input)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrFormat), "%v", err)

	tileset, tilemap := OutputNames(input, config.Format)
	assert.NoFileExists(t, tileset)
	assert.NoFileExists(t, tilemap)
}

func TestConvertKeepsInput(t *testing.T) {
	dir := t.TempDir()

	for _, tt := range []struct {
		input  string
		format tilemap.Format
	}{
		{"map.csv", tilemap.Text},
		{"map.bin", tilemap.Binary},
	} {
		t.Run(tt.input, func(t *testing.T) {
			input := filepath.Join(dir, tt.input)
			writeImage(t, input, 12, 40, 16, false, func(row, col int) int { return row ^ col })

			want, err := os.ReadFile(input)
			require.NoError(t, err)

			config := DefaultConfig()
			config.Format = tt.format

			_, err = New(config).Convert(input)
			assert.True(t, errors.Is(err, ErrFile), "%v", err)

			got, err := os.ReadFile(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			tileset, _ := OutputNames(input, config.Format)
			assert.NoFileExists(t, tileset)
		})
	}
}

func TestConvertValidationConstraint(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.png")
	writeImage(t, input, 3, 3, 16, false, func(int, int) int { return 0 })

	config := DefaultConfig()
	config.ScreenWidth, config.ScreenHeight = 50, 48

	_, err := New(config).Convert(input)

	var verr *geometry.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, geometry.ScreenMultipleOfTile, verr.Constraint)
	assert.Equal(t, 48, verr.Geometry.ImageWidth)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	c := DefaultConfig()
	c.ScreenWidth, c.TilesetWidth = 0, -1
	err := c.Validate()
	assert.True(t, errors.Is(err, ErrArgument))
	assert.Contains(t, err.Error(), "tileset width, screen width must be positive")

	c = DefaultConfig()
	c.Format = tilemap.Format(7)
	assert.True(t, errors.Is(c.Validate(), ErrArgument))

	c = DefaultConfig()
	c.MaxBytes = -1
	assert.True(t, errors.Is(c.Validate(), ErrArgument))
}

func TestOutputNames(t *testing.T) {
	tests := []struct {
		input   string
		format  tilemap.Format
		tileset string
		tilemap string
	}{
		{"level.png", tilemap.Text, "level_tileset.png", "level.csv"},
		{"level.png", tilemap.Binary, "level_tileset.png", "level.bin"},
		{"dir/level1.bmp", tilemap.Text, "dir/level1_tileset.png", "dir/level1.csv"},
		{"level", tilemap.Text, "level_tileset.png", "level.csv"},
		{"level.webp", tilemap.Binary, "level.webp_tileset.png", "level.webp.bin"},
		{"a.b.png", tilemap.Text, "a.b_tileset.png", "a.b.csv"},
		{".png", tilemap.Text, "_tileset.png", ".csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tileset, tilemap := OutputNames(tt.input, tt.format)
			assert.Equal(t, tt.tileset, tileset)
			assert.Equal(t, tt.tilemap, tilemap)
		})
	}
}
