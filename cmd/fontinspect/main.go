// Command fontinspect resolves fonts, shapes text, and renders glyph outlines.
//
// Usage:
//
//	fontinspect -family "DejaVu Sans,sans-serif" -weight 700 -text "Hello"
//	fontinspect -dirs ./fonts -text "A" -o a.png -size 128
//	fontinspect -i
//
// Settings may also come from a YAML file (-config, default fontinspect.yaml);
// flags override it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gogpu/fonts"
	"github.com/gogpu/fonts/backend/gotext"
	"github.com/gogpu/fonts/backend/opentype"
	"github.com/gogpu/fonts/source"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("fontinspect", flag.ContinueOnError)
	var (
		configPath  = flags.String("config", "fontinspect.yaml", "YAML config file (optional)")
		dirs        = flags.String("dirs", "", "comma-separated font directories")
		system      = flags.Bool("system", false, "scan system fonts (default: only when -dirs is empty)")
		family      = flags.String("family", "", "comma-separated family names, in order of preference")
		weight      = flags.Float64("weight", 0, "font weight (100..900)")
		style       = flags.String("style", "", "normal, italic or oblique")
		lang        = flags.String("lang", "", "BCP 47 language used for shaping")
		text        = flags.String("text", "", "text to shape")
		glyph       = flags.Int("glyph", -1, "glyph id to render (default: first glyph of -text)")
		output      = flags.String("o", "", "write the glyph outline to this PNG file")
		size        = flags.Float64("size", 0, "render size in pixels per em")
		hinting     = flags.String("hinting", "", "none, vertical or full")
		interactive = flags.Bool("i", false, "interactive mode")
		level       = flags.String("log", "", "log level (debug, info, warn, error)")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadOptional(*configPath)
	if err != nil {
		return err
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dirs":
			cfg.Fonts.Dirs = splitList(*dirs)
		case "system":
			cfg.Fonts.System = system
		case "family":
			cfg.Query.Families = splitList(*family)
		case "weight":
			cfg.Query.Weight = float32(*weight)
		case "style":
			cfg.Query.Style = *style
		case "lang":
			cfg.Fonts.Language = *lang
		case "size":
			cfg.Render.Size = float32(*size)
		case "hinting":
			cfg.Render.Hinting = *hinting
		case "log":
			cfg.Log.Level = *level
		}
	})

	lvl, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	fonts.SetLogger(logger)

	fs := fonts.New(
		fonts.WithSource(newSource(cfg.Fonts, logger)),
		fonts.WithBackend(newBackend(cfg.Fonts)),
	)

	if *interactive {
		return repl(fs, cfg)
	}

	props, err := cfg.Query.Properties()
	if err != nil {
		return err
	}
	font, ok := fs.ResolveBestFont(cfg.Query.FamilyNames(), props)
	if !ok {
		return fmt.Errorf("no font for %v %v", cfg.Query.FamilyNames(), props)
	}
	defer font.Release()
	printFont(font)

	var buf *fonts.Buffer
	if *text != "" {
		buf = font.CreateBuffer(*text)
		defer buf.Release()
		printGlyphs(buf.Glyphs(nil))
	}

	if *output == "" {
		return nil
	}
	gid := fonts.GlyphID(0)
	switch {
	case *glyph >= 0:
		gid = fonts.GlyphID(*glyph)
	case buf != nil && len(buf.Glyphs(nil)) > 0:
		gid = buf.Glyphs(nil)[0].ID
	default:
		return errors.New("-o needs -glyph or -text")
	}
	opts, err := cfg.Render.options()
	if err != nil {
		return err
	}
	if err := renderGlyph(font, gid, opts, *output); err != nil {
		return err
	}
	pterm.Info.Printf("glyph %d written to %s\n", gid, *output)
	return nil
}

func newSource(cfg FontsConfig, logger *slog.Logger) source.Source {
	if cfg.UseSystem() {
		opts := []source.SystemOption{
			source.WithFontDirs(cfg.Dirs...),
			source.WithLogger(logger),
		}
		if cfg.CacheDir != "" {
			opts = append(opts, source.WithCacheDir(cfg.CacheDir))
		}
		return source.NewSystemSource(opts...)
	}

	s := source.NewStaticSource()
	for _, dir := range cfg.Dirs {
		if err := s.AddDir(dir); err != nil {
			logger.Warn("some fonts were skipped", "dir", dir, "error", err)
		}
	}
	logger.Debug("static font source", "families", len(s.Families()))
	return s
}

func newBackend(cfg FontsConfig) *opentype.Backend {
	if cfg.Language == "" {
		return opentype.New()
	}
	return opentype.New(gotext.WithLanguage(cfg.Language))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
