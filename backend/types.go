package backend

import "fmt"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a glyph index within a font.
type GlyphID uint32

// GlyphPosition is one shaped glyph.
// Advances and offsets are in font units.
type GlyphPosition struct {
	// ID is the glyph index in the font.
	ID GlyphID

	// Cluster is the byte offset of the glyph's source text in the shaped string.
	Cluster uint32

	XAdvance int32
	YAdvance int32
	XOffset  int32
	YOffset  int32
}

// HintingMode selects how outline points are snapped to the pixel grid.
type HintingMode int

const (
	// HintingNone emits unscaled outlines in font units.
	HintingNone HintingMode = iota
	// HintingVertical scales to the requested size and rounds y coordinates.
	HintingVertical
	// HintingFull scales to the requested size and rounds both coordinates.
	HintingFull
)

// String returns the string representation of the hinting mode.
func (h HintingMode) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// Hinting are the outline extraction options.
type Hinting struct {
	Mode HintingMode

	// PixelsPerEm is the target size. Ignored for HintingNone.
	PixelsPerEm float32
}

// NoHinting returns options for unhinted outlines in font units.
func NoHinting() Hinting {
	return Hinting{Mode: HintingNone}
}

// PathBuilder receives outline segments.
// golang.org/x/image/vector.Rasterizer satisfies it.
type PathBuilder interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(x1, y1, x, y float32)
	CubeTo(x1, y1, x2, y2, x, y float32)
	ClosePath()
}

// GlyphLoadingError reports a failure to extract a glyph outline.
type GlyphLoadingError struct {
	GID GlyphID
	Err error
}

func (e *GlyphLoadingError) Error() string {
	return fmt.Sprintf("backend: failed to load glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphLoadingError) Unwrap() error {
	return e.Err
}
