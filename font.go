package fonts

import (
	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/fingerprint"
	"github.com/gogpu/fonts/internal/registry"
)

// Font is a handle owning one reference to a loaded font.
type Font struct {
	reg      *registry.Registry
	id       FontID
	released bool
	borrowed bool
}

func newFont(reg *registry.Registry, id FontID) *Font {
	return &Font{reg: reg, id: id}
}

func (f *Font) check() {
	if f.released {
		panic(ErrReleased)
	}
}

// ID returns the font's id.
func (f *Font) ID() FontID {
	return f.id
}

// FullName returns the font's display name, e.g. "Go Bold".
func (f *Font) FullName() string {
	f.check()
	return f.reg.FullName(f.id)
}

// GlyphCount returns the number of glyphs in the font.
func (f *Font) GlyphCount() uint32 {
	f.check()
	return f.reg.GlyphCount(f.id)
}

// Outline writes the outline of glyph gid into b. b may query fonts and
// buffers but must not create, clone, or release any.
func (f *Font) Outline(gid GlyphID, hinting backend.Hinting, b backend.PathBuilder) error {
	f.check()
	return f.reg.Outline(f.id, gid, hinting, b)
}

// Fingerprint returns the content fingerprint the font is deduplicated by.
func (f *Font) Fingerprint() fingerprint.Fingerprint {
	f.check()
	return f.reg.FontPrint(f.id)
}

// RefCount returns the number of references to the font, including those
// held by buffers.
func (f *Font) RefCount() int {
	f.check()
	return f.reg.FontRefs(f.id)
}

// CreateBuffer shapes text with this font. The returned buffer holds its
// own reference to the font.
func (f *Font) CreateBuffer(text string) *Buffer {
	f.check()
	id := f.reg.CreateBuffer(f.id, text)
	return newBuffer(f.reg, id, f.Clone())
}

// Clone returns a new handle to the same font.
func (f *Font) Clone() *Font {
	f.check()
	f.reg.RetainFont(f.id)
	return newFont(f.reg, f.id)
}

// Release drops the handle's reference. The font is unloaded when the last
// reference is gone. Calling Release again has no effect. Release panics
// with ErrBorrowedHandle on a handle returned by Buffer.Font.
func (f *Font) Release() {
	if f.borrowed {
		panic(ErrBorrowedHandle)
	}
	if f.released {
		return
	}
	f.released = true
	f.reg.ReleaseFont(f.id)
}
