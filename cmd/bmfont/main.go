// Package main is the bmfont command line tool: inspect BMF fonts, preview
// and export rendered text, manage the font catalog, and push text to a
// Pixoo display.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/palette"
	"github.com/jwulff/bmfont-go/internal/render"
	"github.com/jwulff/bmfont-go/internal/storage"
	"github.com/jwulff/bmfont-go/internal/storage/sqlite"
)

// defaultDB is used when neither -db nor BMFONT_DB is set.
const defaultDB = "bmfont.db"

func main() {
	if len(os.Args) < 2 {
		showUsage()
		return
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "info":
		err = runInfo(args)
	case "preview":
		err = runPreview(args)
	case "export":
		err = runExport(args)
	case "import":
		err = runImport(args)
	case "fonts":
		err = runFonts(args)
	case "preset":
		err = runPreset(args)
	case "device":
		err = runDevice(args)
	case "send":
		err = runSend(args)
	default:
		showUsage()
		return
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("Usage:")
	fmt.Println("  bmfont info [font flags]                       - Show font header and index statistics")
	fmt.Println("  bmfont preview [flags] <text>                  - Show ASCII preview of rendered text")
	fmt.Println("  bmfont export -o out.bmp [flags] <text>        - Render text to a BMP image")
	fmt.Println("                -engine drawer                   - Draw with font.Drawer instead")
	fmt.Println("  bmfont import -font file.bmf <name>            - Copy a font into the catalog")
	fmt.Println("  bmfont fonts [-delete name]                    - List or delete catalog fonts")
	fmt.Println("  bmfont preset save|list|delete [flags] [name]  - Manage render presets")
	fmt.Println("  bmfont device add|list|delete [id] [ip] [name] - Manage Pixoo devices")
	fmt.Println("  bmfont send -host <IP>|-device <id> <text>     - Render text on a Pixoo64")
	fmt.Println()
	fmt.Println("Font flags:")
	fmt.Println("  -font <path>        - BMF font file (default: built-in 8px font)")
	fmt.Println("  -catalog <name>     - Font stored in the catalog (always preloaded)")
	fmt.Println("  -index disk|memory  - Index search strategy (font files only)")
	fmt.Println("  -blocks, -preload   - Block-narrowed search, preload bitmaps (font files only)")
	fmt.Println("  -nocache            - Allocate a glyph buffer per render pass")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  BMFONT_DB           - Catalog database path (default: bmfont.db)")
}

// fontFlags selects and opens a font.
type fontFlags struct {
	path    string
	catalog string
	index   string
	blocks  bool
	preload bool
	noCache bool
	db      string
	verbose bool
}

func (f *fontFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.path, "font", "", "BMF font file")
	fs.StringVar(&f.catalog, "catalog", "", "catalog font name")
	fs.StringVar(&f.index, "index", "disk", "index search: disk or memory")
	fs.BoolVar(&f.blocks, "blocks", true, "narrow index searches by Unicode block")
	fs.BoolVar(&f.preload, "preload", false, "load every bitmap into memory")
	fs.BoolVar(&f.noCache, "nocache", false, "allocate a glyph buffer per render pass")
	fs.StringVar(&f.db, "db", dbPath(), "catalog database path")
	fs.BoolVar(&f.verbose, "v", false, "log debug output to stderr")
}

func dbPath() string {
	if p := os.Getenv("BMFONT_DB"); p != "" {
		return p
	}
	return defaultDB
}

func (f *fontFlags) options() (bmfont.Options, error) {
	opts := bmfont.Options{BlockIndex: f.blocks, Preload: f.preload, NoBitmapCache: f.noCache}
	switch f.index {
	case "disk":
		opts.Index = bmfont.IndexDisk
	case "memory":
		opts.Index = bmfont.IndexMemory
	default:
		return opts, fmt.Errorf("unknown index mode %q", f.index)
	}
	return opts, nil
}

// catalogIgnored names the font flags that have no effect on catalog fonts.
var catalogIgnored = []string{"index", "blocks", "preload"}

// check rejects flag combinations that cannot be honoured. Catalog fonts are
// always preloaded, so index options set alongside -catalog are an error.
func (f *fontFlags) check(fs *flag.FlagSet) error {
	if f.catalog == "" {
		return nil
	}
	if f.path != "" {
		return fmt.Errorf("-font and -catalog cannot be used together")
	}
	var bad []string
	fs.Visit(func(fl *flag.Flag) {
		if slices.Contains(catalogIgnored, fl.Name) {
			bad = append(bad, "-"+fl.Name)
		}
	})
	if len(bad) > 0 {
		return fmt.Errorf("%s cannot be used with -catalog: catalog fonts are always preloaded",
			strings.Join(bad, ", "))
	}
	return nil
}

// open returns the selected font. The built-in font is used when neither a
// file nor a catalog name is given.
func (f *fontFlags) open(ctx context.Context, fs *flag.FlagSet) (*bmfont.Font, error) {
	if err := f.check(fs); err != nil {
		return nil, err
	}
	if f.verbose {
		bmfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	switch {
	case f.path != "":
		opts, err := f.options()
		if err != nil {
			return nil, err
		}
		return bmfont.OpenFile(f.path, opts)
	case f.catalog != "":
		store, err := sqlite.NewFileStore(f.db)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return storage.LoadFont(ctx, store, f.catalog, bmfont.Options{NoBitmapCache: f.noCache})
	default:
		return render.OpenBuiltin()
	}
}

// renderFlags collects render.Options from the command line.
type renderFlags struct {
	preset      string
	size        int
	color       string
	background  string
	transparent string
	mode        string
	halfWidth   bool
	wrap        bool
	reverse     bool
	spacing     int
	x, y        int
	center      bool
}

func (r *renderFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&r.preset, "preset", "", "start from a stored preset")
	fs.IntVar(&r.size, "size", 0, "glyph size in pixels (default: native)")
	fs.StringVar(&r.color, "color", "", "text color: name, #RRGGBB or RGB565")
	fs.StringVar(&r.background, "bg", "", "background color")
	fs.StringVar(&r.transparent, "transparent", "", "key color that is not drawn, or none")
	fs.StringVar(&r.mode, "mode", "", "palette mode: auto, mono or rgb565")
	fs.BoolVar(&r.halfWidth, "halfwidth", true, "draw ASCII at half width")
	fs.BoolVar(&r.wrap, "wrap", false, "wrap at the right edge")
	fs.BoolVar(&r.reverse, "reverse", false, "invert mono output")
	fs.IntVar(&r.spacing, "spacing", 0, "extra pixels between lines")
	fs.IntVar(&r.x, "x", 0, "left edge of the text")
	fs.IntVar(&r.y, "y", 0, "top edge of the text")
	fs.BoolVar(&r.center, "center", false, "center the text horizontally, ignoring -x")
}

// draw renders text onto s at the flag position.
func (r *renderFlags) draw(s domain.Surface, f *bmfont.Font, text string, opts render.Options) error {
	var err error
	if r.center {
		_, err = render.RenderCentered(s, f, text, r.y, opts)
	} else {
		_, err = render.Render(s, f, text, r.x, r.y, opts)
	}
	return err
}

// options builds render options. Flags set explicitly on the command line
// override the preset.
func (r *renderFlags) options(ctx context.Context, fs *flag.FlagSet, db string) (render.Options, error) {
	opts := render.DefaultOptions()
	if r.preset != "" {
		store, err := sqlite.NewFileStore(db)
		if err != nil {
			return opts, err
		}
		defer store.Close()
		p, err := store.GetPreset(ctx, r.preset)
		if err != nil {
			return opts, err
		}
		opts = render.OptionsFromPreset(*p)
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "size":
			opts.Size = r.size
		case "color":
			opts.Color, err = render.ParseColor(r.color)
		case "bg":
			opts.Background, err = render.ParseColor(r.background)
		case "transparent":
			opts.Transparent, err = parseKey(r.transparent)
		case "mode":
			opts.Mode, err = palette.ParseMode(r.mode)
		case "halfwidth":
			opts.HalfWidth = r.halfWidth
		case "wrap":
			opts.AutoWrap = r.wrap
		case "reverse":
			opts.Reverse = r.reverse
		case "spacing":
			opts.LineSpacing = r.spacing
		}
	})
	return opts, err
}

func parseKey(s string) (int, error) {
	if strings.EqualFold(s, "none") {
		return palette.NoKey, nil
	}
	c, err := render.ParseColor(s)
	return int(c), err
}
