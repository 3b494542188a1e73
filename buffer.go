package fonts

import (
	"github.com/gogpu/fonts/geom"
	"github.com/gogpu/fonts/internal/registry"
)

// BufferRef is a weak reference to a buffer. It does not keep the buffer or
// its font alive.
type BufferRef struct {
	Font   FontID
	Buffer BufferID
}

// Buffer is a handle owning one reference to a shaped buffer and, through
// its font handle, one reference to the buffer's font.
type Buffer struct {
	reg      *registry.Registry
	id       BufferID
	font     *Font
	view     *Font
	released bool
}

func newBuffer(reg *registry.Registry, id BufferID, font *Font) *Buffer {
	view := &Font{reg: reg, id: font.id, borrowed: true}
	return &Buffer{reg: reg, id: id, font: font, view: view}
}

func (b *Buffer) check() {
	if b.released {
		panic(ErrReleased)
	}
}

// ID returns the buffer's id.
func (b *Buffer) ID() BufferID {
	return b.id
}

// Font returns a borrowed handle to the buffer's font. It is valid until
// the buffer is released and cannot itself be released; Clone it to keep
// the font beyond the buffer's lifetime.
func (b *Buffer) Font() *Font {
	b.check()
	return b.view
}

// Glyphs appends the shaped glyphs to dst in shaping order.
func (b *Buffer) Glyphs(dst []GlyphPosition) []GlyphPosition {
	b.check()
	return b.reg.Glyphs(b.id, dst)
}

// Text returns the buffer's text.
func (b *Buffer) Text() string {
	b.check()
	return b.reg.Text(b.id)
}

// Replace sets new text and reshapes it with the buffer's font.
// Every handle to the buffer sees the change.
func (b *Buffer) Replace(text string) {
	b.check()
	b.reg.Replace(b.id, text)
}

// Transform returns the buffer's transform composed with parent: the
// buffer's own transform is applied first, then parent.
func (b *Buffer) Transform(parent geom.Matrix) geom.Matrix {
	b.check()
	return b.reg.Transform(b.id, parent)
}

// SetTransform sets the buffer's own transform.
func (b *Buffer) SetTransform(m geom.Matrix) {
	b.check()
	b.reg.SetTransform(b.id, m)
}

// RefCount returns the number of references to the buffer.
func (b *Buffer) RefCount() int {
	b.check()
	return b.reg.BufferRefs(b.id)
}

// WeakRef returns a weak reference to the buffer.
func (b *Buffer) WeakRef() BufferRef {
	b.check()
	return BufferRef{Font: b.font.id, Buffer: b.id}
}

// Clone returns a new handle, adding one reference to the buffer and one to
// its font.
func (b *Buffer) Clone() *Buffer {
	b.check()
	b.reg.RetainBuffer(b.id)
	return newBuffer(b.reg, b.id, b.font.Clone())
}

// Release drops the buffer reference, then the font reference.
// Calling Release again has no effect.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.view.released = true
	b.reg.ReleaseBuffer(b.id)
	b.font.Release()
}
