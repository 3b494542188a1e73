package registry

import (
	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/geom"
	"github.com/gogpu/fonts/internal/slot"
)

type bufferEntry struct {
	text      string
	transform geom.Matrix
	shaper    backend.Shaper
	glyphs    []backend.GlyphPosition
	font      FontID
	refs      int
}

func (e *bufferEntry) shape() {
	e.glyphs = e.shaper.Shape(e.text, e.glyphs[:0])
}

// CreateBuffer shapes text with a live font and stores the result in a new
// buffer with one reference and the identity transform. The buffer does not
// add a reference to the font; the caller owns that.
func (r *Registry) CreateBuffer(font FontID, text string) BufferID {
	r.guard.exclusive("create_buffer")
	defer r.guard.releaseExclusive()

	f := r.font("create_buffer", font)
	e := &bufferEntry{
		text:      r.normalize(text),
		transform: geom.Identity(),
		shaper:    f.binding.NewShaper(),
		font:      font,
		refs:      1,
	}
	e.shape()
	return BufferID(r.buffers.Insert(e))
}

// Replace overwrites a buffer's text and reshapes it, reusing the buffer's
// shaping workspace and glyph storage.
func (r *Registry) Replace(id BufferID, text string) {
	r.guard.exclusive("replace")
	defer r.guard.releaseExclusive()

	e := r.buffer("replace", id)
	e.text = r.normalize(text)
	e.shape()
}

// Glyphs appends the buffer's shaped glyphs to dst.
func (r *Registry) Glyphs(id BufferID, dst []backend.GlyphPosition) []backend.GlyphPosition {
	r.guard.shared("glyphs")
	defer r.guard.releaseShared()
	return append(dst, r.buffer("glyphs", id).glyphs...)
}

// Text returns the buffer's current (normalized) text.
func (r *Registry) Text(id BufferID) string {
	r.guard.shared("text")
	defer r.guard.releaseShared()
	return r.buffer("text", id).text
}

// Transform composes the buffer's own transform with parent. The buffer's
// transform applies first.
func (r *Registry) Transform(id BufferID, parent geom.Matrix) geom.Matrix {
	r.guard.shared("transform")
	defer r.guard.releaseShared()
	return parent.Multiply(r.buffer("transform", id).transform)
}

// SetTransform sets the buffer's own transform.
func (r *Registry) SetTransform(id BufferID, m geom.Matrix) {
	r.guard.exclusive("set_transform")
	defer r.guard.releaseExclusive()
	r.buffer("set_transform", id).transform = m
}

// BufferFont returns the font a live buffer was shaped with.
func (r *Registry) BufferFont(id BufferID) FontID {
	r.guard.shared("buffer_font")
	defer r.guard.releaseShared()
	return r.buffer("buffer_font", id).font
}

// BufferRefs returns the current reference count of a live buffer.
func (r *Registry) BufferRefs(id BufferID) int {
	r.guard.shared("buffer_refs")
	defer r.guard.releaseShared()
	return r.buffer("buffer_refs", id).refs
}

// BufferLive reports whether id names a live buffer.
func (r *Registry) BufferLive(id BufferID) bool {
	r.guard.shared("buffer_live")
	defer r.guard.releaseShared()
	return r.buffers.Contains(slot.ID(id))
}

// AcquireBuffer adds a reference to a live buffer and to its font, and
// returns the font id. It returns false if the buffer is gone.
func (r *Registry) AcquireBuffer(id BufferID) (FontID, bool) {
	r.guard.exclusive("acquire_buffer")
	defer r.guard.releaseExclusive()

	e, ok := r.buffers.Get(slot.ID(id))
	if !ok {
		return 0, false
	}
	r.acquire(id, e)
	return e.font, true
}

// AcquireBufferRef is AcquireBuffer for a weak reference: it also fails
// when the buffer now belongs to a different font than font.
func (r *Registry) AcquireBufferRef(font FontID, id BufferID) bool {
	r.guard.exclusive("acquire_buffer_ref")
	defer r.guard.releaseExclusive()

	e, ok := r.buffers.Get(slot.ID(id))
	if !ok || e.font != font {
		return false
	}
	r.acquire(id, e)
	return true
}

func (r *Registry) acquire(id BufferID, e *bufferEntry) {
	f, ok := r.fonts.Get(slot.ID(e.font))
	if !ok {
		panic(&InvariantError{Op: "acquire_buffer", ID: id, Kind: DeadBufferFont})
	}
	e.refs++
	f.refs++
}

// RetainBuffer adds a reference to a live buffer.
func (r *Registry) RetainBuffer(id BufferID) {
	r.guard.exclusive("retain_buffer")
	defer r.guard.releaseExclusive()
	r.buffer("retain_buffer", id).refs++
}

// ReleaseBuffer drops a reference, destroying the buffer at zero. The
// buffer's font reference is released separately by its owner.
func (r *Registry) ReleaseBuffer(id BufferID) {
	r.guard.exclusive("release_buffer")
	defer r.guard.releaseExclusive()

	e := r.buffer("release_buffer", id)
	e.refs--
	if e.refs == 0 {
		r.buffers.Remove(slot.ID(id))
	}
}

func (r *Registry) buffer(op string, id BufferID) *bufferEntry {
	e, ok := r.buffers.Get(slot.ID(id))
	if !ok {
		panic(&InvariantError{Op: op, ID: id, Kind: DeadBuffer})
	}
	return e
}

func (r *Registry) normalize(text string) string {
	if r.cfg.Normalize == nil {
		return text
	}
	return r.cfg.Normalize.String(text)
}
