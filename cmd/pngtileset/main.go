package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bodgit/pngtileset"
	"github.com/bodgit/pngtileset/tilemap"
	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

const progName = "pngtileset"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// Options taking a number may have it attached, as in -ws320
var numericFlags = []string{"ws", "hs", "w", "t"}

func takesValue(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if name == "db" {
		return true
	}
	for _, f := range numericFlags {
		if name == f {
			return true
		}
	}
	return false
}

// normalizeArgs rewrites attached numeric values into -name=value form and
// moves the input file after every flag so they can appear in any order.
func normalizeArgs(args []string) []string {
	var flags, inputs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			inputs = append(inputs, args[i+1:]...)
			i = len(args)
		case takesValue(arg):
			flags = append(flags, arg)
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			inputs = append(inputs, arg)
		case strings.HasPrefix(arg, "--"):
			flags = append(flags, arg)
		default:
			name := arg[1:]
			for _, f := range numericFlags {
				if strings.HasPrefix(name, f) && !strings.HasPrefix(name[len(f):], "=") {
					name = f + "=" + name[len(f):]
					break
				}
			}
			flags = append(flags, "-"+name)
		}
	}

	return append(append(flags, "--"), inputs...)
}

func newLogger(verbose bool) hclog.Logger {
	level := os.Getenv("PNGTILESET_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	if verbose {
		level = "debug"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   progName,
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

func fail(err error) error {
	return cli.Exit(fmt.Sprintf("%s: %v", progName, err), 1)
}

func convert(c *cli.Context) error {
	if c.NArg() != 1 {
		_ = cli.ShowAppHelp(c)
		return fail(fmt.Errorf("%w: expected exactly one input file", pngtileset.ErrArgument))
	}

	logger := newLogger(c.Bool("verbose"))

	config := pngtileset.DefaultConfig()
	if c.Bool("b") {
		config.Format = tilemap.Binary
	}
	config.TilesetWidth = c.Int("w")
	config.TileSize = c.Int("t")
	config.ScreenWidth = c.Int("ws")
	config.ScreenHeight = c.Int("hs")

	if err := config.Validate(); err != nil {
		return fail(err)
	}

	opts := []pngtileset.Option{
		pngtileset.WithLogger(logger),
	}

	if db := c.String("db"); db != "" {
		catalog, err := pngtileset.NewCatalog(db)
		if err != nil {
			return fail(fmt.Errorf("%w: catalog: %w", pngtileset.ErrFile, err))
		}
		defer catalog.Close()

		opts = append(opts, pngtileset.WithCatalog(catalog))
	}

	res, err := pngtileset.New(config, opts...).Convert(c.Args().First())
	if err != nil {
		return fail(err)
	}

	logger.Debug("finished", "tileset", res.Tileset, "tilemap", res.Tilemap, "tiles", res.Tiles, "skipped", res.Skipped)

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = progName
	app.Usage = "Simple PNG to tileset & CSV converter"
	app.Version = "1.0.0"
	app.ArgsUsage = "INFILE"
	app.Description = "Writes INFILE_tileset.png and INFILE.csv (or .bin with -b) next to INFILE.\nWithout INFILE this usage is printed and the exit status is 1."

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "b",
			Usage: "write a binary tilemap instead of CSV",
		},
		&cli.IntFlag{
			Name:  "w",
			Value: pngtileset.DefaultTilesetWidth,
			Usage: "width of tileset (in tiles)",
		},
		&cli.IntFlag{
			Name:  "t",
			Value: pngtileset.DefaultTileSize,
			Usage: "tile size (px)",
		},
		&cli.IntFlag{
			Name:  "ws",
			Value: pngtileset.DefaultScreenWidth,
			Usage: "width of screen (px)",
		},
		&cli.IntFlag{
			Name:  "hs",
			Value: pngtileset.DefaultScreenHeight,
			Usage: "height of screen (px)",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PNGTILESET_DB"},
			Usage:   "path to conversion catalog, skips conversions already up to date",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = convert

	return app
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(progName + ": ")

	args := append([]string{os.Args[0]}, normalizeArgs(os.Args[1:])...)
	if err := newApp().Run(args); err != nil {
		log.Fatal(err)
	}
}
