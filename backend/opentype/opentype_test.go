package opentype

import (
	"testing"

	"golang.org/x/image/font/gofont/gobold"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/source"
)

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(Name) {
		t.Fatalf("%q not registered", Name)
	}
	b := backend.Default()
	if b == nil || b.Name() != Name {
		t.Fatalf("Default() = %v, want %q", b, Name)
	}
}

func TestLoadAndBind(t *testing.T) {
	b := New()
	d := source.FromData(gobold.TTF, 0)

	f, err := b.Load(d)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.FullName() != "Go Bold" {
		t.Errorf("FullName() = %q, want %q", f.FullName(), "Go Bold")
	}

	binding, err := b.Bind(f, d)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	glyphs := binding.NewShaper().Shape("Go", nil)
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}

	var rec backend.PathRecorder
	if err := f.Outline(glyphs[0].ID, backend.NoHinting(), &rec); err != nil {
		t.Fatalf("Outline(%d): %v", glyphs[0].ID, err)
	}
	if len(rec.Segments) == 0 {
		t.Error("shaped glyph has no outline")
	}
}
