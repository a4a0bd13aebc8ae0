package pngtileset

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog records completed conversions in a SQLite database so that a
// conversion whose input, options and outputs are unchanged can be skipped.
type Catalog struct {
	db *sql.DB
}

// Record is one completed conversion.
type Record struct {
	Input       string
	SHA1        string
	Options     string
	Tiles       int
	Tileset     string
	TilesetSHA1 string
	Tilemap     string
	TilemapSHA1 string
}

// NewCatalog opens, creating if necessary, the catalog database in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, input TEXT NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, tiles INTEGER NOT NULL, tileset TEXT NOT NULL, tileset_sha1 TEXT NOT NULL, tilemap TEXT NOT NULL, tilemap_sha1 TEXT NOT NULL, UNIQUE(input, sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Lookup returns the conversion of input with the given content digest and
// options, or nil if there is none.
func (c *Catalog) Lookup(input, sha, options string) (*Record, error) {
	r := Record{
		Input:   input,
		SHA1:    sha,
		Options: options,
	}
	switch err := c.db.QueryRow("SELECT tiles, tileset, tileset_sha1, tilemap, tilemap_sha1 FROM conversion WHERE input = ? AND sha1 = ? AND options = ?", input, sha, options).Scan(&r.Tiles, &r.Tileset, &r.TilesetSHA1, &r.Tilemap, &r.TilemapSHA1); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &r, nil
	default:
		return nil, err
	}
}

// Store adds or replaces a conversion.
func (c *Catalog) Store(r *Record) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO conversion (input, sha1, options, tiles, tileset, tileset_sha1, tilemap, tilemap_sha1) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", r.Input, r.SHA1, r.Options, r.Tiles, r.Tileset, r.TilesetSHA1, r.Tilemap, r.TilemapSHA1); err != nil {
		return err
	}
	return nil
}

// Count returns the number of recorded conversions.
func (c *Catalog) Count() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM conversion").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func sha1File(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// current reports whether the outputs named in r are still on disk as they
// were written.
func (r *Record) current(tileset, tilemap string) bool {
	if r.Tileset != tileset || r.Tilemap != tilemap {
		return false
	}
	for _, f := range []struct{ file, sha string }{
		{r.Tileset, r.TilesetSHA1},
		{r.Tilemap, r.TilemapSHA1},
	} {
		sha, err := sha1File(f.file)
		if err != nil || sha != f.sha {
			return false
		}
	}
	return true
}
