package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/pixoo"
	"github.com/jwulff/bmfont-go/internal/render"
	"github.com/jwulff/bmfont-go/internal/storage"
	"github.com/jwulff/bmfont-go/internal/storage/sqlite"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var ff fontFlags
	ff.register(fs)
	fs.Parse(args)

	f, err := ff.open(context.Background(), fs)
	if err != nil {
		return err
	}
	defer f.Close()

	h := f.Header()
	fmt.Printf("Version:        %d\n", h.Version)
	fmt.Printf("Map mode:       %d\n", h.MapMode)
	fmt.Printf("Native size:    %dx%d\n", h.NativeSize, h.NativeSize)
	fmt.Printf("Glyph bytes:    %d\n", h.GlyphByteSize)
	fmt.Printf("Bitmap offset:  %d\n", h.BitmapOffset)
	fmt.Printf("Glyphs:         %d\n", f.GlyphCount())
	if f.GlyphCount() > 0 {
		fmt.Printf("Code range:     U+%04X - U+%04X\n", f.FirstCode(), f.LastCode())
	}
	for _, b := range f.Blocks() {
		fmt.Printf("  %-8s %d glyphs\n", b.Block, (b.End-b.Start)/bmfont.EntryLen)
	}
	return nil
}

// surfaceFlags picks the target surface.
type surfaceFlags struct {
	display string
	width   int
	height  int
}

func (s *surfaceFlags) register(fs *flag.FlagSet, display string, width, height int) {
	fs.StringVar(&s.display, "display", display, "surface type: mono, rgb565 or pixoo64")
	fs.IntVar(&s.width, "width", width, "surface width")
	fs.IntVar(&s.height, "height", height, "surface height")
}

func (s *surfaceFlags) surface() (domain.Surface, error) {
	t, err := domain.ParseDisplayType(s.display)
	if err != nil {
		return nil, err
	}
	return domain.NewDisplay(s.display, t, s.width, s.height).NewSurface(), nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	var ff fontFlags
	var rf renderFlags
	var sf surfaceFlags
	ff.register(fs)
	rf.register(fs)
	sf.register(fs, string(domain.DisplayTypeMono), 64, 16)
	file := fs.String("in", "", "read text from a file, - for stdin")
	encoding := fs.String("encoding", "", "input file encoding (default: utf-8)")
	fs.Parse(args)

	ctx := context.Background()
	text, err := readText(fs.Args(), *file, *encoding)
	if err != nil {
		return err
	}
	opts, err := rf.options(ctx, fs, ff.db)
	if err != nil {
		return err
	}
	s, err := sf.surface()
	if err != nil {
		return err
	}
	f, err := ff.open(ctx, fs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := rf.draw(s, f, text, opts); err != nil {
		return err
	}
	w, h := s.Dimensions()
	fmt.Printf("%dx%d %s preview:\n\n", w, h, sf.display)
	printSurface(os.Stdout, s)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var ff fontFlags
	var rf renderFlags
	ff.register(fs)
	rf.register(fs)
	out := fs.String("o", "out.bmp", "output BMP file")
	width := fs.Int("width", 0, "image width (default: fit the text)")
	height := fs.Int("height", 0, "image height (default: fit the text)")
	zoom := fs.Int("zoom", 1, "scale the image by an integer factor")
	engine := fs.String("engine", "render", "render, or drawer for font.Drawer over an x/image face")
	file := fs.String("in", "", "read text from a file, - for stdin")
	encoding := fs.String("encoding", "", "input file encoding (default: utf-8)")
	fs.Parse(args)

	if *engine != "render" && *engine != "drawer" {
		return fmt.Errorf("unknown engine %q", *engine)
	}

	ctx := context.Background()
	text, err := readText(fs.Args(), *file, *encoding)
	if err != nil {
		return err
	}
	opts, err := rf.options(ctx, fs, ff.db)
	if err != nil {
		return err
	}
	f, err := ff.open(ctx, fs)
	if err != nil {
		return err
	}
	defer f.Close()

	bounds := render.Measure(f, text, opts)
	if *width <= 0 {
		*width = rf.x + bounds.Width
	}
	if *height <= 0 {
		*height = rf.y + bounds.Height
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("nothing to draw")
	}

	frame := domain.NewFrameWithColor(*width, *height, domain.RGBFrom565(opts.Background))
	if *engine == "render" {
		if err := rf.draw(frame, f, text, opts); err != nil {
			return err
		}
	}
	img := frame.Image()
	if *engine == "drawer" {
		x := rf.x
		if rf.center {
			x = (*width - bounds.Width) / 2
		}
		drawFace(img, f, text, x, rf.y, opts)
	}

	w, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeBMP(w, img, *zoom); err != nil {
		w.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %dx%d image to %s\n", *width*max(*zoom, 1), *height*max(*zoom, 1), *out)
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	var ff fontFlags
	ff.register(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: bmfont import -font file.bmf <name>")
	}
	name := fs.Arg(0)
	ctx := context.Background()

	f, err := ff.open(ctx, fs)
	if err != nil {
		return err
	}
	defer f.Close()

	store, err := sqlite.NewFileStore(ff.db)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := storage.ImportFont(ctx, store, name, f)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %q: %d glyphs at %dpx into %s\n", rec.Name, rec.GlyphCount, rec.NativeSize, ff.db)
	return nil
}

func runFonts(args []string) error {
	fs := flag.NewFlagSet("fonts", flag.ExitOnError)
	db := fs.String("db", dbPath(), "catalog database path")
	remove := fs.String("delete", "", "delete the named font")
	fs.Parse(args)

	ctx := context.Background()
	store, err := sqlite.NewFileStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	if *remove != "" {
		if err := store.DeleteFont(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("Deleted font %q\n", *remove)
		return nil
	}

	fonts, err := store.GetFonts(ctx)
	if err != nil {
		return err
	}
	if len(fonts) == 0 {
		fmt.Println("No fonts in catalog.")
		return nil
	}
	for _, f := range fonts {
		fmt.Printf("  %-20s %3dpx %6d glyphs  imported %s\n",
			f.Name, f.NativeSize, f.GlyphCount, f.ImportedAt.Format(time.DateOnly))
	}
	return nil
}

func runPreset(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bmfont preset save|list|delete [flags] [name]")
	}
	fs := flag.NewFlagSet("preset", flag.ExitOnError)
	var rf renderFlags
	rf.register(fs)
	db := fs.String("db", dbPath(), "catalog database path")
	fs.Parse(args[1:])

	ctx := context.Background()
	store, err := sqlite.NewFileStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	switch args[0] {
	case "save":
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: bmfont preset save [flags] <name>")
		}
		opts, err := rf.options(ctx, fs, *db)
		if err != nil {
			return err
		}
		if err := store.SavePreset(ctx, opts.Preset(fs.Arg(0))); err != nil {
			return err
		}
		fmt.Printf("Saved preset %q\n", fs.Arg(0))
	case "list":
		presets, err := store.GetPresets(ctx)
		if err != nil {
			return err
		}
		for _, p := range presets {
			o := render.OptionsFromPreset(*p)
			fmt.Printf("  %-16s size=%d color=0x%04X bg=0x%04X mode=%s wrap=%t\n",
				p.Name, o.Size, o.Color, o.Background, o.Mode, o.AutoWrap)
		}
	case "delete":
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: bmfont preset delete <name>")
		}
		return store.DeletePreset(ctx, fs.Arg(0))
	default:
		return fmt.Errorf("unknown preset command %q", args[0])
	}
	return nil
}

func runDevice(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bmfont device add|list|delete [id] [ip] [name]")
	}
	fs := flag.NewFlagSet("device", flag.ExitOnError)
	db := fs.String("db", dbPath(), "catalog database path")
	fs.Parse(args[1:])

	ctx := context.Background()
	store, err := sqlite.NewFileStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	switch args[0] {
	case "add":
		if fs.NArg() < 2 {
			return fmt.Errorf("usage: bmfont device add <id> <ip> [name]")
		}
		name := fs.Arg(0)
		if fs.NArg() > 2 {
			name = fs.Arg(2)
		}
		return store.SaveDevice(ctx, storage.NewDevice(fs.Arg(0), fs.Arg(1), name, string(domain.DisplayTypePixoo64)))
	case "list":
		devices, err := store.GetDevices(ctx)
		if err != nil {
			return err
		}
		for i, d := range devices {
			fmt.Printf("  %d. %s (%s) - %s\n", i+1, d.Name, d.ID, d.IP)
		}
	case "delete":
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: bmfont device delete <id>")
		}
		return store.DeleteDevice(ctx, fs.Arg(0))
	default:
		return fmt.Errorf("unknown device command %q", args[0])
	}
	return nil
}

func runSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	var ff fontFlags
	var rf renderFlags
	ff.register(fs)
	rf.register(fs)
	host := fs.String("host", "", "Pixoo IP address")
	device := fs.String("device", "", "stored device id")
	brightness := fs.Int("brightness", -1, "set brightness 0-100 before drawing")
	file := fs.String("in", "", "read text from a file, - for stdin")
	encoding := fs.String("encoding", "", "input file encoding (default: utf-8)")
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := sqlite.NewFileStore(ff.db)
	if err != nil {
		return err
	}
	defer store.Close()

	if *host == "" && *device != "" {
		d, err := store.GetDevice(ctx, *device)
		if err != nil {
			return err
		}
		*host = d.IP
	}
	if *host == "" {
		return fmt.Errorf("IP address required: use -host or -device")
	}

	text, err := readText(fs.Args(), *file, *encoding)
	if err != nil {
		return err
	}
	opts, err := rf.options(ctx, fs, ff.db)
	if err != nil {
		return err
	}
	opts.Clear = true
	f, err := ff.open(ctx, fs)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("Sending text to Pixoo at %s...\n", *host)
	client := pixoo.NewClient(*host)
	if *brightness >= 0 {
		if err := client.SetBrightness(ctx, *brightness); err != nil {
			return fmt.Errorf("failed to set brightness: %w", err)
		}
	}

	display := pixoo.NewDisplay(client)
	opts.Show = false
	if err := rf.draw(display, f, text, opts); err != nil {
		return err
	}
	if err := display.ShowContext(ctx); err != nil {
		return err
	}

	cached := &storage.CachedFrame{
		Width:       display.Width,
		Height:      display.Height,
		FrameData:   display.Pixels,
		GeneratedAt: time.Now(),
	}
	if err := store.CacheFrame(ctx, cached); err != nil {
		fmt.Printf("  Warning: could not cache frame: %v\n", err)
	}

	fmt.Println("Frame sent successfully!")
	return nil
}
