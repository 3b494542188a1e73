// Package ximage loads fonts with golang.org/x/image/font/opentype.
//
// Loaded fonts report their full name and glyph count and extract glyph
// outlines through golang.org/x/image/font/sfnt. Outline coordinates follow
// the sfnt convention: the y axis grows downward, so a backend.PathBuilder
// such as golang.org/x/image/vector.Rasterizer can consume them directly.
package ximage

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/source"
)

// Loader implements backend.Loader.
type Loader struct{}

// NewLoader returns a font loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements backend.Loader.Load.
// Both file and in-memory descriptors are accepted; collections are
// indexed by the descriptor's face index.
func (l *Loader) Load(d source.Descriptor) (backend.Font, error) {
	data, err := d.ReadAll()
	if err != nil {
		return nil, err
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("ximage: failed to parse %s: %w", d, err)
	}
	if int(d.Index) >= coll.NumFonts() {
		return nil, fmt.Errorf("ximage: face index %d out of range for %s (%d faces)", d.Index, d, coll.NumFonts())
	}
	f, err := coll.Font(int(d.Index))
	if err != nil {
		return nil, fmt.Errorf("ximage: failed to open face %d of %s: %w", d.Index, d, err)
	}
	return newFont(f, data), nil
}

// Font implements backend.Font over an sfnt.Font.
type Font struct {
	sfnt     *sfnt.Font
	data     []byte
	fullName string
	upem     fixed.Int26_6
}

func newFont(f *sfnt.Font, data []byte) *Font {
	out := &Font{sfnt: f, data: data}
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
		out.fullName = name
	}
	if out.fullName == "" {
		out.fullName, _ = f.Name(&buf, sfnt.NameIDFamily)
	}
	out.upem = fixed.Int26_6(int32(f.UnitsPerEm()) << 6)
	return out
}

// FullName implements backend.Font.FullName.
func (f *Font) FullName() string {
	return f.fullName
}

// GlyphCount implements backend.Font.GlyphCount.
func (f *Font) GlyphCount() uint32 {
	return uint32(f.sfnt.NumGlyphs()) //nolint:gosec // NumGlyphs is bounded by a uint16 table field
}

// UnitsPerEm returns the font's design units per em.
func (f *Font) UnitsPerEm() int {
	return int(f.sfnt.UnitsPerEm())
}

// Data returns the raw font file bytes the font was parsed from.
// The slice must not be modified.
func (f *Font) Data() []byte {
	return f.data
}

// SFNT returns the underlying parsed font.
func (f *Font) SFNT() *sfnt.Font {
	return f.sfnt
}

// bufferPool reuses sfnt scratch buffers across outline calls.
var bufferPool = sync.Pool{
	New: func() any { return new(sfnt.Buffer) },
}

// Outline implements backend.Font.Outline.
func (f *Font) Outline(gid backend.GlyphID, hinting backend.Hinting, b backend.PathBuilder) error {
	ppem := f.upem
	if hinting.Mode != backend.HintingNone {
		if ppe := float64(hinting.PixelsPerEm); ppe <= 0 || math.IsNaN(ppe) || math.IsInf(ppe, 0) {
			return &backend.GlyphLoadingError{GID: gid, Err: fmt.Errorf("invalid pixels per em %v", hinting.PixelsPerEm)}
		}
		ppem = fixed.Int26_6(hinting.PixelsPerEm * 64)
	}

	buf := bufferPool.Get().(*sfnt.Buffer)
	defer bufferPool.Put(buf)

	segments, err := f.sfnt.LoadGlyph(buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return &backend.GlyphLoadingError{GID: gid, Err: err}
	}
	// The builder may re-enter the font; copy out of the shared buffer first.
	segments = append(sfnt.Segments(nil), segments...)

	p := pointMapper{mode: hinting.Mode}
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				b.ClosePath()
			}
			x, y := p.point(seg.Args[0])
			b.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := p.point(seg.Args[0])
			b.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			x1, y1 := p.point(seg.Args[0])
			x, y := p.point(seg.Args[1])
			b.QuadTo(x1, y1, x, y)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := p.point(seg.Args[0])
			x2, y2 := p.point(seg.Args[1])
			x, y := p.point(seg.Args[2])
			b.CubeTo(x1, y1, x2, y2, x, y)
		}
	}
	if open {
		b.ClosePath()
	}
	return nil
}

// pointMapper converts 26.6 fixed points, snapping per hinting mode.
type pointMapper struct {
	mode backend.HintingMode
}

func (p pointMapper) point(pt fixed.Point26_6) (float32, float32) {
	x, y := fixedToFloat32(pt.X), fixedToFloat32(pt.Y)
	switch p.mode {
	case backend.HintingVertical:
		y = float32(math.Round(float64(y)))
	case backend.HintingFull:
		x = float32(math.Round(float64(x)))
		y = float32(math.Round(float64(y)))
	}
	return x, y
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
