package backend

import (
	"errors"

	"github.com/gogpu/fonts/source"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrUnsupportedDescriptor is returned when a backend cannot handle a descriptor variant.
	ErrUnsupportedDescriptor = errors.New("backend: unsupported descriptor")
)

// Font is a parsed font.
type Font interface {
	// FullName returns the full display name, e.g. "DejaVu Sans Bold".
	FullName() string

	// GlyphCount returns the number of glyphs in the font.
	GlyphCount() uint32

	// Outline emits the outline of glyph gid into b.
	// Failures are reported as *GlyphLoadingError.
	Outline(gid GlyphID, hinting Hinting, b PathBuilder) error
}

// Loader parses the font a descriptor points at.
type Loader interface {
	Load(d source.Descriptor) (Font, error)
}

// Binding is a font prepared for shaping.
type Binding interface {
	// NewShaper allocates a shaping workspace for this font.
	NewShaper() Shaper
}

// Shaper shapes text against one font. A Shaper keeps its scratch memory
// between calls, so reusing it for successive texts avoids reallocation.
//
// A Shaper is not safe for concurrent use.
type Shaper interface {
	// Shape appends the glyph run for text to dst and returns the result.
	Shape(text string, dst []GlyphPosition) []GlyphPosition
}

// Binder prepares loaded fonts for shaping.
type Binder interface {
	Bind(f Font, d source.Descriptor) (Binding, error)
}

// Backend is a named Loader and Binder pair.
type Backend interface {
	// Name returns the backend identifier (e.g., "opentype").
	Name() string

	Loader
	Binder
}
