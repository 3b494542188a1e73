package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strings"

	"golang.org/x/image/vector"

	"github.com/gogpu/fonts"
	"github.com/gogpu/fonts/backend"
)

const (
	defaultSize = 64
	padding     = 2
)

func (r RenderConfig) options() (backend.Hinting, error) {
	size := r.Size
	if size <= 0 {
		size = defaultSize
	}
	switch strings.ToLower(r.Hinting) {
	case "", "full":
		return backend.Hinting{Mode: backend.HintingFull, PixelsPerEm: size}, nil
	case "vertical":
		return backend.Hinting{Mode: backend.HintingVertical, PixelsPerEm: size}, nil
	case "none":
		return backend.Hinting{}, errors.New("rendering needs vertical or full hinting")
	default:
		return backend.Hinting{}, fmt.Errorf("unknown hinting %q", r.Hinting)
	}
}

// translated offsets outline points into the rasterizer's pixel space.
type translated struct {
	r      *vector.Rasterizer
	dx, dy float32
}

func (t translated) pt(x, y float32) (float32, float32) {
	return x + t.dx, y + t.dy
}

func (t translated) MoveTo(x, y float32) { t.r.MoveTo(t.pt(x, y)) }
func (t translated) LineTo(x, y float32) { t.r.LineTo(t.pt(x, y)) }

func (t translated) QuadTo(x1, y1, x, y float32) {
	ax, ay := t.pt(x1, y1)
	bx, by := t.pt(x, y)
	t.r.QuadTo(ax, ay, bx, by)
}

func (t translated) CubeTo(x1, y1, x2, y2, x, y float32) {
	ax, ay := t.pt(x1, y1)
	bx, by := t.pt(x2, y2)
	cx, cy := t.pt(x, y)
	t.r.CubeTo(ax, ay, bx, by, cx, cy)
}

func (t translated) ClosePath() { t.r.ClosePath() }

// rasterize draws glyph gid into an alpha mask cropped to its bounds.
func rasterize(font *fonts.Font, gid fonts.GlyphID, hinting backend.Hinting) (*image.Alpha, error) {
	var rec backend.PathRecorder
	if err := font.Outline(gid, hinting, &rec); err != nil {
		return nil, err
	}
	minX, minY, maxX, maxY, ok := rec.Bounds()
	if !ok {
		return nil, errors.New("glyph has no outline")
	}
	w := int(math.Ceil(float64(maxX-minX))) + 2*padding
	h := int(math.Ceil(float64(maxY-minY))) + 2*padding

	r := vector.NewRasterizer(w, h)
	t := translated{r: r, dx: padding - minX, dy: padding - minY}
	if err := font.Outline(gid, hinting, t); err != nil {
		return nil, err
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst, nil
}

func renderGlyph(font *fonts.Font, gid fonts.GlyphID, hinting backend.Hinting, path string) error {
	img, err := rasterize(font, gid, hinting)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
