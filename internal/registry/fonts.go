package registry

import (
	"errors"
	"iter"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/fingerprint"
	"github.com/gogpu/fonts/internal/slot"
	"github.com/gogpu/fonts/source"
)

type fontEntry struct {
	print   fingerprint.Fingerprint
	face    backend.Font
	binding backend.Binding
	refs    int
}

// FontInfo describes a live font.
type FontInfo struct {
	ID          FontID
	FullName    string
	Fingerprint fingerprint.Fingerprint
	Refs        int
}

// Resolve selects the best font for the request and returns its id with
// one new reference. A font already loaded under the same fingerprint is
// reused. Failures to find, load, or bind a font return false; load and
// bind failures are logged and leave no entry behind.
func (r *Registry) Resolve(families []source.FamilyName, props source.Properties) (FontID, bool) {
	r.guard.exclusive("resolve")
	defer r.guard.releaseExclusive()

	desc, err := r.cfg.Source.SelectBestMatch(families, props)
	if err != nil {
		return 0, false
	}
	if !desc.Valid() {
		panic(&UnsupportedDescriptorError{Descriptor: desc})
	}

	fp := fingerprint.Of(desc)
	if id, ok := r.byPrint[fp]; ok {
		r.font("resolve", id).refs++
		return id, true
	}

	face, err := r.cfg.Loader.Load(desc)
	if err != nil {
		r.checkUnsupported(desc, err)
		r.log().Error("failed to load font", "descriptor", desc.String(), "error", err)
		return 0, false
	}
	binding, err := r.cfg.Binder.Bind(face, desc)
	if err != nil {
		r.checkUnsupported(desc, err)
		r.log().Error("failed to bind font", "descriptor", desc.String(), "error", err)
		return 0, false
	}

	id := FontID(r.fonts.Insert(&fontEntry{
		print:   fp,
		face:    face,
		binding: binding,
		refs:    1,
	}))
	r.byPrint[fp] = id
	r.log().Debug("load font", "id", id.String(), "name", face.FullName(), "fingerprint", fp.Short())
	return id, true
}

func (r *Registry) checkUnsupported(desc source.Descriptor, err error) {
	if errors.Is(err, backend.ErrUnsupportedDescriptor) {
		panic(&UnsupportedDescriptorError{Descriptor: desc, Err: err})
	}
}

// AcquireFont adds a reference to id if it is live.
func (r *Registry) AcquireFont(id FontID) bool {
	r.guard.exclusive("acquire_font")
	defer r.guard.releaseExclusive()

	e, ok := r.fonts.Get(slot.ID(id))
	if !ok {
		return false
	}
	e.refs++
	return true
}

// RetainFont adds a reference to a live font.
func (r *Registry) RetainFont(id FontID) {
	r.guard.exclusive("retain_font")
	defer r.guard.releaseExclusive()
	r.font("retain_font", id).refs++
}

// ReleaseFont drops a reference, unloading the font at zero.
func (r *Registry) ReleaseFont(id FontID) {
	r.guard.exclusive("release_font")
	defer r.guard.releaseExclusive()

	e := r.font("release_font", id)
	e.refs--
	if e.refs > 0 {
		return
	}
	r.fonts.Remove(slot.ID(id))
	delete(r.byPrint, e.print)
	r.log().Debug("unload font", "id", id.String(), "name", e.face.FullName())
}

// FullName returns the font's display name.
func (r *Registry) FullName(id FontID) string {
	r.guard.shared("full_name")
	defer r.guard.releaseShared()
	return r.font("full_name", id).face.FullName()
}

// GlyphCount returns the number of glyphs in the font.
func (r *Registry) GlyphCount(id FontID) uint32 {
	r.guard.shared("glyph_count")
	defer r.guard.releaseShared()
	return r.font("glyph_count", id).face.GlyphCount()
}

// Outline emits a glyph outline into b. b may read from the registry but
// must not mutate it.
func (r *Registry) Outline(id FontID, gid backend.GlyphID, hinting backend.Hinting, b backend.PathBuilder) error {
	r.guard.shared("outline")
	defer r.guard.releaseShared()
	return r.font("outline", id).face.Outline(gid, hinting, b)
}

// FontRefs returns the current reference count of a live font.
func (r *Registry) FontRefs(id FontID) int {
	r.guard.shared("font_refs")
	defer r.guard.releaseShared()
	return r.font("font_refs", id).refs
}

// FontPrint returns the fingerprint of a live font.
func (r *Registry) FontPrint(id FontID) fingerprint.Fingerprint {
	r.guard.shared("font_print")
	defer r.guard.releaseShared()
	return r.font("font_print", id).print
}

// FontLive reports whether id names a live font.
func (r *Registry) FontLive(id FontID) bool {
	r.guard.shared("font_live")
	defer r.guard.releaseShared()
	return r.fonts.Contains(slot.ID(id))
}

// Fonts iterates over the live fonts. The registry must not be mutated
// during iteration.
func (r *Registry) Fonts() iter.Seq[FontInfo] {
	return func(yield func(FontInfo) bool) {
		r.guard.shared("fonts")
		defer r.guard.releaseShared()
		for id, e := range r.fonts.All() {
			info := FontInfo{
				ID:          FontID(id),
				FullName:    e.face.FullName(),
				Fingerprint: e.print,
				Refs:        e.refs,
			}
			if !yield(info) {
				return
			}
		}
	}
}

// font returns the live entry for id or panics naming op.
func (r *Registry) font(op string, id FontID) *fontEntry {
	e, ok := r.fonts.Get(slot.ID(id))
	if !ok {
		panic(&InvariantError{Op: op, ID: id, Kind: DeadFont})
	}
	return e
}
