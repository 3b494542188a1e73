package fonts

import (
	"iter"
	"log/slog"

	"github.com/gogpu/fonts/backend"
	_ "github.com/gogpu/fonts/backend/opentype" // default backend
	"github.com/gogpu/fonts/internal/registry"
	"github.com/gogpu/fonts/source"
)

// FontID identifies a loaded font. A stale id never resolves to a later font.
type FontID = registry.FontID

// BufferID identifies a shaped buffer. A stale id never resolves to a later buffer.
type BufferID = registry.BufferID

// GlyphID is a glyph index within a font.
type GlyphID = backend.GlyphID

// GlyphPosition is one shaped glyph: id, source byte offset, and advances
// and offsets in font units.
type GlyphPosition = backend.GlyphPosition

// Stats counts live fonts and buffers.
type Stats = registry.Stats

// FontInfo describes a live font.
type FontInfo = registry.FontInfo

// Fonts is the font registry and buffer pool.
type Fonts struct {
	reg *registry.Registry
}

// New creates an empty registry. Without options, fonts are looked up among
// the installed system fonts and handled by the default backend.
func New(opts ...Option) *Fonts {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := Logger
	if o.logger != nil {
		l := o.logger
		logger = func() *slog.Logger { return l }
	}
	if o.source == nil {
		o.source = source.NewSystemSource(source.WithLogger(logger()))
	}
	if o.loader == nil || o.binder == nil {
		b := backend.MustDefault()
		if o.loader == nil {
			o.loader = b
		}
		if o.binder == nil {
			o.binder = b
		}
	}

	return &Fonts{
		reg: registry.New(registry.Config{
			Source:    o.source,
			Loader:    o.loader,
			Binder:    o.binder,
			Logger:    logger,
			Normalize: o.normalize,
		}),
	}
}

// ResolveBestFont returns a handle to the font that best matches families
// (tried in order) and props. It returns false when no font matches or the
// chosen font cannot be loaded.
func (fs *Fonts) ResolveBestFont(families []source.FamilyName, props source.Properties) (*Font, bool) {
	id, ok := fs.reg.Resolve(families, props)
	if !ok {
		return nil, false
	}
	return newFont(fs.reg, id), true
}

// FontByID returns a new handle to a live font.
func (fs *Fonts) FontByID(id FontID) (*Font, bool) {
	if !fs.reg.AcquireFont(id) {
		return nil, false
	}
	return newFont(fs.reg, id), true
}

// BufferByID returns a new handle to a live buffer.
func (fs *Fonts) BufferByID(id BufferID) (*Buffer, bool) {
	font, ok := fs.reg.AcquireBuffer(id)
	if !ok {
		return nil, false
	}
	return newBuffer(fs.reg, id, newFont(fs.reg, font)), true
}

// BufferByRef upgrades a weak reference. It fails if the buffer has been
// destroyed or the id now names a buffer of another font.
func (fs *Fonts) BufferByRef(ref BufferRef) (*Buffer, bool) {
	if !fs.reg.AcquireBufferRef(ref.Font, ref.Buffer) {
		return nil, false
	}
	return newBuffer(fs.reg, ref.Buffer, newFont(fs.reg, ref.Font)), true
}

// Stats returns the number of live fonts and buffers.
func (fs *Fonts) Stats() Stats {
	return fs.reg.Stats()
}

// LiveFonts iterates over the loaded fonts. The registry must not be
// modified during iteration.
func (fs *Fonts) LiveFonts() iter.Seq[FontInfo] {
	return fs.reg.Fonts()
}
