package registry

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/geom"
	"github.com/gogpu/fonts/internal/slot"
	"github.com/gogpu/fonts/source"
)

// fakeSource maps family names straight to descriptors.
type fakeSource map[source.FamilyName]source.Descriptor

func (s fakeSource) SelectBestMatch(families []source.FamilyName, _ source.Properties) (source.Descriptor, error) {
	for _, f := range families {
		if d, ok := s[f]; ok {
			return d, nil
		}
	}
	return source.Descriptor{}, source.ErrNotFound
}

type fakeFont struct {
	name    string
	builder func() // called from Outline, lets tests re-enter the registry
}

func (f *fakeFont) FullName() string   { return f.name }
func (f *fakeFont) GlyphCount() uint32 { return 42 }

func (f *fakeFont) Outline(gid backend.GlyphID, _ backend.Hinting, b backend.PathBuilder) error {
	if gid >= 42 {
		return &backend.GlyphLoadingError{GID: gid, Err: errors.New("no such glyph")}
	}
	b.MoveTo(0, 0)
	if f.builder != nil {
		f.builder()
	}
	b.LineTo(float32(gid), 0)
	b.ClosePath()
	return nil
}

type fakeLoader struct {
	loads int
	err   error
}

func (l *fakeLoader) Load(d source.Descriptor) (backend.Font, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.loads++
	return &fakeFont{name: d.Path}, nil
}

type fakeBinder struct {
	binds   int
	shapers int
	err     error
}

func (b *fakeBinder) Bind(backend.Font, source.Descriptor) (backend.Binding, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.binds++
	return b, nil
}

func (b *fakeBinder) NewShaper() backend.Shaper {
	b.shapers++
	return runeShaper{}
}

// runeShaper emits one glyph per rune with the rune as glyph id.
type runeShaper struct{}

func (runeShaper) Shape(text string, dst []backend.GlyphPosition) []backend.GlyphPosition {
	for i, r := range text {
		dst = append(dst, backend.GlyphPosition{
			ID:       backend.GlyphID(r),
			Cluster:  uint32(i),
			XAdvance: int32(10 * utf8.RuneLen(r)),
		})
	}
	return dst
}

type fixture struct {
	reg    *Registry
	loader *fakeLoader
	binder *fakeBinder
	logs   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logs := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := &fixture{
		loader: &fakeLoader{},
		binder: &fakeBinder{},
		logs:   logs,
	}
	f.reg = New(Config{
		Source: fakeSource{
			"Sans":      source.FromPath("/fonts/sans.ttf", 0),
			"Sans Bold": source.FromPath("/fonts/sans.ttc", 1),
			"Alias":     source.FromPath("/fonts/sans.ttf", 0),
			"Other":     source.FromPath("/fonts/sans.ttc", 0),
			"Memory":    source.FromData([]byte("font bytes"), 0),
			"Broken":    {},
		},
		Loader: f.loader,
		Binder: f.binder,
		Logger: func() *slog.Logger { return logger },
	})
	return f
}

func (f *fixture) resolve(t *testing.T, family string) FontID {
	t.Helper()
	id, ok := f.reg.Resolve(source.Families(family), source.DefaultProperties())
	if !ok {
		t.Fatalf("Resolve(%q) failed", family)
	}
	return id
}

// expectPanic runs fn and returns the recovered value, failing if fn returns normally.
func expectPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}

func TestRefcountConservation(t *testing.T) {
	f := newFixture(t)

	a := f.resolve(t, "Sans")
	b := f.resolve(t, "Sans")
	if !f.reg.AcquireFont(a) {
		t.Fatal("AcquireFont on live font failed")
	}
	f.reg.RetainFont(b)

	if a != b {
		t.Fatalf("same font resolved to %v and %v", a, b)
	}
	if got := f.reg.FontRefs(a); got != 4 {
		t.Fatalf("refs = %d, want 4", got)
	}
	if f.loader.loads != 1 || f.binder.binds != 1 {
		t.Errorf("loads=%d binds=%d, want 1 each", f.loader.loads, f.binder.binds)
	}

	for i := 0; i < 3; i++ {
		f.reg.ReleaseFont(a)
	}
	if !f.reg.FontLive(a) {
		t.Fatal("font unloaded with one reference left")
	}
	f.reg.ReleaseFont(a)
	if f.reg.FontLive(a) {
		t.Fatal("font still live after last release")
	}
	if s := f.reg.Stats(); s != (Stats{}) {
		t.Errorf("Stats() = %+v, want empty", s)
	}
	if !strings.Contains(f.logs.String(), "unload font") {
		t.Error("unload not logged")
	}
}

func TestFingerprintDedup(t *testing.T) {
	f := newFixture(t)

	sans := f.resolve(t, "Sans")
	alias := f.resolve(t, "Alias")
	if sans != alias {
		t.Errorf("identical descriptors resolved to %v and %v", sans, alias)
	}
	if f.reg.FontPrint(sans) != f.reg.FontPrint(alias) {
		t.Error("fingerprints differ for one font")
	}

	// Same collection, different face index.
	bold := f.resolve(t, "Sans Bold")
	other := f.resolve(t, "Other")
	if bold == other {
		t.Error("faces of one collection share an id")
	}
	mem := f.resolve(t, "Memory")
	if f.reg.Stats().Fonts != 4 {
		t.Errorf("Fonts = %d, want 4", f.reg.Stats().Fonts)
	}
	if f.loader.loads != 4 {
		t.Errorf("loads = %d, want 4", f.loader.loads)
	}

	seen := map[FontID]int{}
	for info := range f.reg.Fonts() {
		seen[info.ID] = info.Refs
	}
	want := map[FontID]int{sans: 2, bold: 1, other: 1, mem: 1}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Errorf("Fonts() = %v, want %v", seen, want)
	}
}

func TestResolveFailures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		if _, ok := f.reg.Resolve(source.Families("Missing"), source.DefaultProperties()); ok {
			t.Error("Resolve(Missing) succeeded")
		}
		if f.logs.Len() != 0 {
			t.Errorf("resolution failure logged: %s", f.logs)
		}
	})

	t.Run("load error", func(t *testing.T) {
		f := newFixture(t)
		f.loader.err = errors.New("corrupt")
		if _, ok := f.reg.Resolve(source.Families("Sans"), source.DefaultProperties()); ok {
			t.Fatal("Resolve succeeded with failing loader")
		}
		if !strings.Contains(f.logs.String(), "failed to load font") {
			t.Errorf("load failure not logged: %s", f.logs)
		}
		if s := f.reg.Stats(); s.Fonts != 0 {
			t.Fatalf("partial entry left behind: %+v", s)
		}

		f.loader.err = nil
		id := f.resolve(t, "Sans")
		if f.reg.FontRefs(id) != 1 {
			t.Errorf("refs after retry = %d, want 1", f.reg.FontRefs(id))
		}
	})

	t.Run("bind error", func(t *testing.T) {
		f := newFixture(t)
		f.binder.err = errors.New("no cmap")
		if _, ok := f.reg.Resolve(source.Families("Sans"), source.DefaultProperties()); ok {
			t.Fatal("Resolve succeeded with failing binder")
		}
		if !strings.Contains(f.logs.String(), "failed to bind font") {
			t.Errorf("bind failure not logged: %s", f.logs)
		}
		if s := f.reg.Stats(); s.Fonts != 0 {
			t.Fatalf("partial entry left behind: %+v", s)
		}
		f.binder.err = nil
		f.resolve(t, "Sans")
		if f.loader.loads != 2 {
			t.Errorf("loads = %d, want 2 (no cached half-entry)", f.loader.loads)
		}
	})
}

func TestUnsupportedDescriptor(t *testing.T) {
	f := newFixture(t)
	v := expectPanic(t, func() {
		f.reg.Resolve(source.Families("Broken"), source.DefaultProperties())
	})
	if _, ok := v.(*UnsupportedDescriptorError); !ok {
		t.Errorf("panic = %v, want *UnsupportedDescriptorError", v)
	}

	f.loader.err = fmt.Errorf("wrapped: %w", backend.ErrUnsupportedDescriptor)
	v = expectPanic(t, func() {
		f.reg.Resolve(source.Families("Memory"), source.DefaultProperties())
	})
	ude, ok := v.(*UnsupportedDescriptorError)
	if !ok || !errors.Is(ude, backend.ErrUnsupportedDescriptor) {
		t.Errorf("panic = %v, want wrapped ErrUnsupportedDescriptor", v)
	}

	// The exclusive borrow was released during unwinding.
	if s := f.reg.Stats(); s.Fonts != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestStaleIDsRejected(t *testing.T) {
	f := newFixture(t)

	old := f.resolve(t, "Sans")
	f.reg.ReleaseFont(old)
	fresh := f.resolve(t, "Other")

	if old == fresh {
		t.Fatal("reused slot produced the same id")
	}
	if f.reg.AcquireFont(old) {
		t.Error("AcquireFont accepted a stale id")
	}
	if f.reg.FontRefs(fresh) != 1 {
		t.Errorf("stale acquire touched the new entry: refs = %d", f.reg.FontRefs(fresh))
	}

	buf := f.reg.CreateBuffer(fresh, "x")
	f.reg.ReleaseBuffer(buf)
	buf2 := f.reg.CreateBuffer(fresh, "y")
	if _, ok := f.reg.AcquireBuffer(buf); ok {
		t.Error("AcquireBuffer accepted a stale id")
	}
	if f.reg.BufferRefs(buf2) != 1 {
		t.Errorf("refs = %d, want 1", f.reg.BufferRefs(buf2))
	}
}

func TestInvariantViolations(t *testing.T) {
	tests := []struct {
		name string
		op   string
		kind Kind
		fn   func(f *fixture, font FontID, buf BufferID)
	}{
		{"retain dead font", "retain_font", DeadFont, func(f *fixture, font FontID, _ BufferID) {
			f.reg.RetainFont(font + 1)
		}},
		{"release dead font", "release_font", DeadFont, func(f *fixture, font FontID, _ BufferID) {
			f.reg.ReleaseFont(font + 1)
		}},
		{"buffer on dead font", "create_buffer", DeadFont, func(f *fixture, font FontID, _ BufferID) {
			f.reg.CreateBuffer(font+1, "x")
		}},
		{"retain dead buffer", "retain_buffer", DeadBuffer, func(f *fixture, _ FontID, buf BufferID) {
			f.reg.RetainBuffer(buf + 1)
		}},
		{"release dead buffer", "release_buffer", DeadBuffer, func(f *fixture, _ FontID, buf BufferID) {
			f.reg.ReleaseBuffer(buf + 1)
		}},
		{"replace dead buffer", "replace", DeadBuffer, func(f *fixture, _ FontID, buf BufferID) {
			f.reg.Replace(buf+1, "x")
		}},
		{"buffer outlives font", "acquire_buffer", DeadBufferFont, func(f *fixture, font FontID, buf BufferID) {
			f.reg.ReleaseFont(font)
			f.reg.AcquireBuffer(buf)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			font := f.resolve(t, "Sans")
			buf := f.reg.CreateBuffer(font, "abc")

			v := expectPanic(t, func() { tt.fn(f, font, buf) })
			ie, ok := v.(*InvariantError)
			if !ok {
				t.Fatalf("panic = %v, want *InvariantError", v)
			}
			if ie.Op != tt.op || ie.Kind != tt.kind {
				t.Errorf("got %s/%s, want %s/%s", ie.Op, ie.Kind, tt.op, tt.kind)
			}
			if !strings.Contains(ie.Error(), tt.op) {
				t.Errorf("Error() = %q does not name the op", ie.Error())
			}
		})
	}
}

func TestReshape(t *testing.T) {
	f := newFixture(t)
	font := f.resolve(t, "Sans")

	buf := f.reg.CreateBuffer(font, "hello")
	if got := len(f.reg.Glyphs(buf, nil)); got != 5 {
		t.Fatalf("glyphs = %d, want 5", got)
	}

	f.reg.Replace(buf, "añb")
	fresh := f.reg.CreateBuffer(font, "añb")

	got := f.reg.Glyphs(buf, nil)
	want := f.reg.Glyphs(fresh, nil)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("reshaped glyphs %v, fresh buffer %v", got, want)
	}
	if got[2].Cluster != 3 {
		t.Errorf("cluster after multibyte rune = %d, want 3", got[2].Cluster)
	}
	if f.reg.Text(buf) != "añb" {
		t.Errorf("Text() = %q", f.reg.Text(buf))
	}
	if f.binder.shapers != 2 {
		t.Errorf("shapers created = %d, want 2 (Replace must reuse)", f.binder.shapers)
	}

	// Glyphs returns a copy: mutating it does not touch the cached run.
	got[0].ID = 0
	if f.reg.Glyphs(buf, nil)[0].ID != 'a' {
		t.Error("Glyphs aliases the cached run")
	}
}

func TestTransformOrder(t *testing.T) {
	f := newFixture(t)
	buf := f.reg.CreateBuffer(f.resolve(t, "Sans"), "x")

	if m := f.reg.Transform(buf, geom.Identity()); !m.IsIdentity() {
		t.Errorf("initial transform = %+v, want identity", m)
	}

	f.reg.SetTransform(buf, geom.Translate(10, 0))
	m := f.reg.Transform(buf, geom.Scale(2, 2))
	p := m.TransformPoint(geom.Point{X: 1, Y: 0})
	// Translate first: (1,0) -> (11,0); then scale: (22,0).
	if p.X != 22 || p.Y != 0 {
		t.Errorf("composed transform maps (1,0) to %v, want (22,0)", p)
	}
}

func TestWeakReferences(t *testing.T) {
	f := newFixture(t)
	sans := f.resolve(t, "Sans")
	other := f.resolve(t, "Other")
	buf := f.reg.CreateBuffer(sans, "weak")

	if f.reg.AcquireBufferRef(other, buf) {
		t.Error("AcquireBufferRef accepted the wrong font")
	}
	if f.reg.BufferRefs(buf) != 1 || f.reg.FontRefs(sans) != 1 {
		t.Error("failed weak dereference changed counts")
	}

	if !f.reg.AcquireBufferRef(sans, buf) {
		t.Fatal("AcquireBufferRef on live buffer failed")
	}
	if f.reg.BufferRefs(buf) != 2 || f.reg.FontRefs(sans) != 2 {
		t.Errorf("refs = %d/%d, want 2/2", f.reg.BufferRefs(buf), f.reg.FontRefs(sans))
	}

	f.reg.ReleaseBuffer(buf)
	f.reg.ReleaseBuffer(buf)
	if f.reg.AcquireBufferRef(sans, buf) {
		t.Error("AcquireBufferRef succeeded on a destroyed buffer")
	}
}

func TestBorrowConflict(t *testing.T) {
	f := newFixture(t)
	font := f.resolve(t, "Sans")
	e, _ := f.reg.fonts.Get(slot.ID(font))
	fake := e.face.(*fakeFont)

	// Reading during Outline is allowed.
	var name string
	fake.builder = func() { name = f.reg.FullName(font) }
	var rec backend.PathRecorder
	if err := f.reg.Outline(font, 3, backend.NoHinting(), &rec); err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if name != "/fonts/sans.ttf" || len(rec.Segments) != 3 {
		t.Errorf("name=%q segments=%d", name, len(rec.Segments))
	}

	// Mutating during Outline is not.
	fake.builder = func() { f.reg.ReleaseFont(font) }
	v := expectPanic(t, func() {
		_ = f.reg.Outline(font, 3, backend.NoHinting(), &rec)
	})
	err, ok := v.(error)
	if !ok || !errors.Is(err, ErrBorrowConflict) {
		t.Fatalf("panic = %v, want ErrBorrowConflict", v)
	}
	if !strings.Contains(err.Error(), "release_font") {
		t.Errorf("error %q does not name the conflicting op", err)
	}

	// The guard recovered; the font is untouched.
	fake.builder = nil
	if f.reg.FontRefs(font) != 1 {
		t.Errorf("refs = %d, want 1", f.reg.FontRefs(font))
	}
	f.reg.ReleaseFont(font)
}

func TestOutlineGlyphError(t *testing.T) {
	f := newFixture(t)
	font := f.resolve(t, "Sans")
	if got := f.reg.GlyphCount(font); got != 42 {
		t.Errorf("GlyphCount = %d", got)
	}
	err := f.reg.Outline(font, 100, backend.NoHinting(), &backend.PathRecorder{})
	var gle *backend.GlyphLoadingError
	if !errors.As(err, &gle) || gle.GID != 100 {
		t.Errorf("Outline error = %v, want *GlyphLoadingError for 100", err)
	}
}

func TestNormalization(t *testing.T) {
	f := newFixture(t)
	nfc := norm.NFC
	f.reg.cfg.Normalize = &nfc

	buf := f.reg.CreateBuffer(f.resolve(t, "Sans"), "e\u0301")
	if got := f.reg.Text(buf); got != "\u00e9" {
		t.Errorf("Text() = %q, want composed form", got)
	}
	if n := len(f.reg.Glyphs(buf, nil)); n != 1 {
		t.Errorf("glyphs = %d, want 1", n)
	}
}
