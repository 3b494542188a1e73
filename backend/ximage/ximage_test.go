package ximage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/source"
)

// glyphIndex returns the glyph for r, failing the test if it is missing.
func glyphIndex(t *testing.T, f *Font, r rune) backend.GlyphID {
	t.Helper()
	idx, err := f.SFNT().GlyphIndex(nil, r)
	if err != nil || idx == 0 {
		t.Fatalf("GlyphIndex(%q) = %d, %v", r, idx, err)
	}
	return backend.GlyphID(idx)
}

func loadRegular(t *testing.T) *Font {
	t.Helper()
	f, err := NewLoader().Load(source.FromData(goregular.TTF, 0))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return f.(*Font)
}

func TestLoadFromData(t *testing.T) {
	f := loadRegular(t)

	if got := f.FullName(); got != "Go Regular" {
		t.Errorf("FullName() = %q, want %q", got, "Go Regular")
	}
	if f.GlyphCount() == 0 {
		t.Error("GlyphCount() = 0")
	}
	if f.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", f.UnitsPerEm())
	}
	if len(f.Data()) != len(goregular.TTF) {
		t.Error("Data() does not return the parsed bytes")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := NewLoader().Load(source.FromPath(path, 0))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.FullName() != "Go Regular" {
		t.Errorf("FullName() = %q", f.FullName())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		desc source.Descriptor
	}{
		{"missing file", source.FromPath(filepath.Join(t.TempDir(), "nope.ttf"), 0)},
		{"garbage", source.FromData([]byte("definitely not a font"), 0)},
		{"index out of range", source.FromData(goregular.TTF, 3)},
		{"empty", source.Descriptor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLoader().Load(tt.desc); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestOutlineUnhinted(t *testing.T) {
	f := loadRegular(t)
	gid := glyphIndex(t, f, 'A')

	var rec backend.PathRecorder
	if err := f.Outline(gid, backend.NoHinting(), &rec); err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if len(rec.Segments) == 0 {
		t.Fatal("no segments for 'A'")
	}
	if rec.Segments[0].Op != backend.SegmentMoveTo {
		t.Errorf("first op = %v, want MoveTo", rec.Segments[0].Op)
	}
	if last := rec.Segments[len(rec.Segments)-1].Op; last != backend.SegmentClose {
		t.Errorf("last op = %v, want Close", last)
	}

	minX, minY, maxX, maxY, ok := rec.Bounds()
	if !ok {
		t.Fatal("no bounds")
	}
	// Font units: a capital letter spans hundreds of units, above the baseline (y-down).
	if maxX-minX < 500 || maxY-minY < 500 {
		t.Errorf("bounds %v,%v..%v,%v too small for font units", minX, minY, maxX, maxY)
	}
	if minY >= 0 {
		t.Errorf("minY = %v, want negative (y grows downward)", minY)
	}
}

func TestOutlineHinted(t *testing.T) {
	f := loadRegular(t)
	gid := glyphIndex(t, f, 'o')

	for _, mode := range []backend.HintingMode{backend.HintingVertical, backend.HintingFull} {
		t.Run(mode.String(), func(t *testing.T) {
			var rec backend.PathRecorder
			if err := f.Outline(gid, backend.Hinting{Mode: mode, PixelsPerEm: 16}, &rec); err != nil {
				t.Fatalf("Outline: %v", err)
			}
			_, minY, _, maxY, ok := rec.Bounds()
			if !ok || maxY-minY > 16 {
				t.Errorf("hinted bounds %v..%v exceed 16px em", minY, maxY)
			}
			for _, s := range rec.Segments {
				if s.Op == backend.SegmentClose {
					continue
				}
				p := s.Points[0]
				if p[1] != float32(math.Round(float64(p[1]))) {
					t.Errorf("y %v not on pixel grid", p[1])
				}
				if mode == backend.HintingFull && p[0] != float32(math.Round(float64(p[0]))) {
					t.Errorf("x %v not on pixel grid", p[0])
				}
			}
		})
	}
}

func TestOutlineErrors(t *testing.T) {
	f := loadRegular(t)
	var rec backend.PathRecorder

	err := f.Outline(backend.GlyphID(f.GlyphCount()+10), backend.NoHinting(), &rec)
	var gle *backend.GlyphLoadingError
	if !errors.As(err, &gle) {
		t.Fatalf("Outline(out of range) error = %v, want *GlyphLoadingError", err)
	}
	if gle.GID != backend.GlyphID(f.GlyphCount()+10) {
		t.Errorf("GID = %d", gle.GID)
	}

	for _, ppem := range []float32{0, -12, float32(math.NaN()), float32(math.Inf(1))} {
		rec.Reset()
		err = f.Outline(1, backend.Hinting{Mode: backend.HintingFull, PixelsPerEm: ppem}, &rec)
		if !errors.As(err, &gle) {
			t.Errorf("Outline(ppem %v) error = %v, want *GlyphLoadingError", ppem, err)
		}
		if len(rec.Segments) != 0 {
			t.Errorf("Outline(ppem %v) emitted %d segments", ppem, len(rec.Segments))
		}
	}
}

func TestOutlineIntoRasterizer(t *testing.T) {
	f := loadRegular(t)
	gid := glyphIndex(t, f, 'H')

	r := vector.NewRasterizer(64, 64)
	if err := f.Outline(gid, backend.Hinting{Mode: backend.HintingFull, PixelsPerEm: 32}, translated{r, 8, 40}); err != nil {
		t.Fatalf("Outline: %v", err)
	}
}

// translated offsets every point so the glyph lands inside the rasterizer.
type translated struct {
	r      *vector.Rasterizer
	dx, dy float32
}

func (t translated) MoveTo(x, y float32) { t.r.MoveTo(x+t.dx, y+t.dy) }
func (t translated) LineTo(x, y float32) { t.r.LineTo(x+t.dx, y+t.dy) }
func (t translated) QuadTo(x1, y1, x, y float32) {
	t.r.QuadTo(x1+t.dx, y1+t.dy, x+t.dx, y+t.dy)
}
func (t translated) CubeTo(x1, y1, x2, y2, x, y float32) {
	t.r.CubeTo(x1+t.dx, y1+t.dy, x2+t.dx, y2+t.dy, x+t.dx, y+t.dy)
}
func (t translated) ClosePath() { t.r.ClosePath() }
