// Package gotext binds fonts to HarfBuzz shaping from go-text/typesetting.
//
// Shaping runs at a size of one em in font units, so advances and offsets
// come out in the font's design units. The script is taken from the first
// non-space rune; mixed-script text should be split by the caller.
package gotext

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/source"
)

// Option configures a Binder.
type Option func(*Binder)

// WithLanguage sets the BCP 47 language passed to the shaper. Default "en".
func WithLanguage(tag string) Option {
	return func(b *Binder) {
		b.lang = language.NewLanguage(tag)
	}
}

// WithDirection sets the text direction. Default left-to-right.
func WithDirection(dir di.Direction) Option {
	return func(b *Binder) {
		b.dir = dir
	}
}

// Binder implements backend.Binder.
type Binder struct {
	lang language.Language
	dir  di.Direction
}

// NewBinder returns a binder with the given options applied.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{
		lang: language.NewLanguage("en"),
		dir:  di.DirectionLTR,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// dataFont is implemented by loaded fonts that keep their file bytes,
// letting Bind skip a second read of the descriptor.
type dataFont interface {
	Data() []byte
}

// Bind implements backend.Binder.Bind.
// Path and in-memory descriptors are both supported.
func (b *Binder) Bind(f backend.Font, d source.Descriptor) (backend.Binding, error) {
	var data []byte
	if df, ok := f.(dataFont); ok && len(df.Data()) > 0 {
		data = df.Data()
	} else {
		var err error
		if data, err = d.ReadAll(); err != nil {
			return nil, err
		}
	}

	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gotext: failed to parse %s: %w", d, err)
	}
	if int(d.Index) >= len(faces) {
		return nil, fmt.Errorf("gotext: face index %d out of range for %s (%d faces)", d.Index, d, len(faces))
	}
	face := faces[d.Index]
	return &Binding{
		font: face.Font,
		size: fixed.I(int(face.Upem())),
		lang: b.lang,
		dir:  b.dir,
	}, nil
}

// Binding implements backend.Binding. The parsed font is read-only and
// shared by every shaper created from it.
type Binding struct {
	font *font.Font
	size fixed.Int26_6
	lang language.Language
	dir  di.Direction
}

// NewShaper implements backend.Binding.NewShaper.
func (b *Binding) NewShaper() backend.Shaper {
	return &Shaper{
		binding: b,
		face:    font.NewFace(b.font),
	}
}

// Shaper implements backend.Shaper. It owns a HarfBuzz workspace and the
// rune and offset scratch slices, all reused across Shape calls.
type Shaper struct {
	binding *Binding
	face    *font.Face
	hb      shaping.HarfbuzzShaper
	runes   []rune
	offsets []uint32
}

// Shape implements backend.Shaper.Shape.
func (s *Shaper) Shape(text string, dst []backend.GlyphPosition) []backend.GlyphPosition {
	if text == "" {
		return dst
	}

	s.runes = s.runes[:0]
	s.offsets = s.offsets[:0]
	for i, r := range text {
		s.runes = append(s.runes, r)
		s.offsets = append(s.offsets, uint32(i)) //nolint:gosec // string offsets fit in uint32
	}

	input := shaping.Input{
		Text:      s.runes,
		RunStart:  0,
		RunEnd:    len(s.runes),
		Direction: s.binding.dir,
		Face:      s.face,
		Size:      s.binding.size,
		Script:    detectScript(s.runes),
		Language:  s.binding.lang,
	}
	out := s.hb.Shape(input)

	vertical := s.binding.dir.IsVertical()
	for _, g := range out.Glyphs {
		pos := backend.GlyphPosition{
			ID:      backend.GlyphID(g.GlyphID),
			XOffset: int32(g.XOffset.Round()),
			YOffset: int32(g.YOffset.Round()),
		}
		if idx := g.TextIndex(); idx >= 0 && idx < len(s.offsets) {
			pos.Cluster = s.offsets[idx]
		}
		if vertical {
			pos.YAdvance = int32(g.Advance.Round())
		} else {
			pos.XAdvance = int32(g.Advance.Round())
		}
		dst = append(dst, pos)
	}
	return dst
}

// detectScript inspects the runes and returns the script of the first
// non-space character.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
