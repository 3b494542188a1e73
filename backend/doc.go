// Package backend defines the capabilities the font registry needs from
// font-loading and text-shaping libraries.
//
// A Backend combines a Loader, which parses a font file into a Font
// (full name, glyph count, outlines), and a Binder, which prepares a font for
// shaping. Keeping the registry behind these interfaces lets a platform swap
// libraries without touching reference counting.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The default backend lives in backend/opentype:
//
//	import _ "github.com/gogpu/fonts/backend/opentype"
//
// # Backend Selection
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("opentype")
//
// # Available Backends
//
// - "opentype": golang.org/x/image parsing + go-text/typesetting HarfBuzz shaping
package backend
