package pngtileset

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/pngtileset/geometry"
	"github.com/bodgit/pngtileset/image"
	"github.com/bodgit/pngtileset/tile"
	"github.com/bodgit/pngtileset/tilemap"
)

// pipeline holds everything acquired while converting one input. release
// gives it all back whichever way the conversion ends.
type pipeline struct {
	*Converter

	input   string
	tileset string
	tilemap string

	in      *os.File
	outputs []*os.File
}

func (p *pipeline) release(err *error) {
	if p.in != nil {
		p.in.Close()
	}

	for _, f := range p.outputs {
		if cerr := f.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && *err == nil {
			*err = fmt.Errorf("%w: %w", ErrFile, cerr)
		}
	}

	if *err == nil {
		return
	}

	// Don't leave partial output behind
	for _, f := range p.outputs {
		if rerr := os.Remove(f.Name()); rerr != nil {
			p.logger.Warn("unable to remove partial output", "file", f.Name(), "error", rerr)
		}
	}
}

func (p *pipeline) read() ([]byte, string, error) {
	f, err := os.Open(p.input)
	if err != nil {
		return nil, "", fmt.Errorf("%w: can't open input file: %w", ErrFile, err)
	}
	p.in = f

	h := sha1.New()
	b, err := io.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("%w: can't read input file: %w", ErrFile, err)
	}

	return b, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (p *pipeline) create(file string) (*os.File, error) {
	if fi, err := os.Stat(file); err == nil {
		if in, err := p.in.Stat(); err == nil && os.SameFile(fi, in) {
			return nil, fmt.Errorf("%w: output file %s is the input file", ErrFile, file)
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return nil, fmt.Errorf("%w: can't open output file: %w", ErrFile, err)
	}
	p.outputs = append(p.outputs, f)
	return f, nil
}

// write buffers everything fn writes to f and returns its digest.
func (p *pipeline) write(f *os.File, fn func(io.Writer) error) (string, error) {
	h := sha1.New()
	w := bufio.NewWriter(io.MultiWriter(f, h))

	if err := fn(w); err != nil {
		if !errors.Is(err, ErrEncode) {
			err = fmt.Errorf("%w: %w", ErrFile, err)
		}
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFile, err)
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (p *pipeline) finish() error {
	for _, f := range p.outputs {
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %w", ErrFile, err)
		}
	}
	return nil
}

// reserve checks the buffers for g fit within the memory limit: the decoded
// image, a tileset with room for every tile position and the tilemap.
func (p *pipeline) reserve(g geometry.Geometry, bpp int) error {
	if p.config.MaxBytes == 0 {
		return nil
	}

	source := int64(g.ImageWidth) * int64(g.ImageHeight) * int64(bpp)
	rows := int64(g.Positions()+g.TilesetWidth-1) / int64(g.TilesetWidth)
	tileset := rows * int64(g.TileSize) * int64(g.TilesetWidth*g.TileSize) * int64(bpp)
	indices := int64(g.Positions()) * 8

	if need := source + tileset + indices; need > p.config.MaxBytes {
		return fmt.Errorf("%w: %dx%d image needs %d bytes, limit is %d", ErrResource, g.ImageWidth, g.ImageHeight, need, p.config.MaxBytes)
	}

	return nil
}

func (p *pipeline) run() (*Result, error) {
	data, sha, err := p.read()
	if err != nil {
		return nil, err
	}

	if p.catalog != nil {
		r, err := p.catalog.Lookup(p.input, sha, p.config.key())
		if err != nil {
			return nil, fmt.Errorf("%w: catalog: %w", ErrFile, err)
		}
		if r != nil && r.current(p.tileset, p.tilemap) {
			p.logger.Info("outputs up to date", "input", p.input)
			return &Result{
				Tileset: p.tileset,
				Tilemap: p.tilemap,
				Tiles:   r.Tiles,
				Skipped: true,
			}, nil
		}
	}

	tilesetFile, err := p.create(p.tileset)
	if err != nil {
		return nil, err
	}
	tilemapFile, err := p.create(p.tilemap)
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	g := p.config.geometry(cfg.Width, cfg.Height)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := p.reserve(g, image.BytesPerPixel(cfg.ColorModel)); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	// A GIF frame can be smaller than the logical screen
	if src.Width != cfg.Width || src.Height != cfg.Height {
		return nil, fmt.Errorf("%w: decoded %dx%d image, header says %dx%d", ErrFormat, src.Width, src.Height, cfg.Width, cfg.Height)
	}
	p.logger.Debug("decoded image", "input", p.input, "format", format, "width", src.Width, "height", src.Height, "model", src.Model, "depth", src.BitDepth())

	set, m := tile.Deduplicate(tile.Source{
		Pix:           src.Pix,
		Stride:        src.Stride,
		BytesPerPixel: src.BytesPerPixel(),
	}, g)

	pix, width, height, stride := set.Layout()
	out := &image.Buffer{
		Width:   width,
		Height:  height,
		Stride:  stride,
		Model:   src.Model,
		Palette: src.Palette,
		Pix:     pix,
	}

	tilesetSHA, err := p.write(tilesetFile, func(w io.Writer) error {
		return image.Encode(w, out)
	})
	if err != nil {
		return nil, err
	}

	tilemapSHA, err := p.write(tilemapFile, func(w io.Writer) error {
		return tilemap.Encode(w, m, p.config.Format)
	})
	if err != nil {
		return nil, err
	}

	if err := p.finish(); err != nil {
		return nil, err
	}

	p.logger.Info("converted", "input", p.input, "positions", g.Positions(), "tiles", set.Len(), "tileset", p.tileset, "tilemap", p.tilemap)

	if p.catalog != nil {
		if err := p.catalog.Store(&Record{
			Input:       p.input,
			SHA1:        sha,
			Options:     p.config.key(),
			Tiles:       set.Len(),
			Tileset:     p.tileset,
			TilesetSHA1: tilesetSHA,
			Tilemap:     p.tilemap,
			TilemapSHA1: tilemapSHA,
		}); err != nil {
			return nil, fmt.Errorf("%w: catalog: %w", ErrFile, err)
		}
	}

	return &Result{
		Tileset:   p.tileset,
		Tilemap:   p.tilemap,
		Positions: g.Positions(),
		Tiles:     set.Len(),
		Width:     width,
		Height:    height,
	}, nil
}

// Convert converts input, writing the tileset image and tilemap next to it
// with names from OutputNames. Every error is fatal to the conversion and
// any output already created is removed.
func (c *Converter) Convert(input string) (res *Result, err error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	p := &pipeline{
		Converter: c,
		input:     input,
	}
	p.tileset, p.tilemap = OutputNames(input, c.config.Format)

	defer p.release(&err)

	return p.run()
}
