// Package fonts loads fonts on demand and keeps text shaped against them.
//
// # Overview
//
// A Fonts value owns two pools of expensive resources: loaded fonts and
// shaped-text buffers. Fonts are found through a source.Source (the host's
// installed fonts by default), deduplicated by a fingerprint of where their
// bytes come from, and reference counted. Buffers hold text shaped against
// one font and keep that font alive until the buffer itself is released.
//
// # Quick Start
//
//	fs := fonts.New()
//
//	font, ok := fs.ResolveBestFont(
//	    source.Families("Inter", "sans-serif"),
//	    source.Properties{Weight: source.WeightBold, Stretch: source.StretchNormal},
//	)
//	if !ok {
//	    return errNoFont
//	}
//	defer font.Release()
//
//	buf := font.CreateBuffer("Hello, world")
//	defer buf.Release()
//
//	for _, g := range buf.Glyphs(nil) {
//	    // g.ID, g.Cluster, g.XAdvance, ...
//	}
//
// # Handles
//
// Font and Buffer are handles: each one owns a single reference. Clone adds
// a reference and returns a new handle; Release drops the handle's reference
// and may be called more than once. Any other method on a released handle
// panics with ErrReleased. A buffer handle owns a font handle, so cloning a
// buffer adds one reference to the buffer and one to its font.
//
// BufferRef is a weak reference: it keeps nothing alive and is turned back
// into a handle with Fonts.BufferByRef, which fails once the buffer is gone.
//
// # Units
//
// Glyph advances and offsets are in font design units. Outlines are in font
// units for backend.HintingNone and in pixels otherwise, with y growing
// downward.
//
// # Concurrency
//
// A Fonts value and its handles are for use by one goroutine at a time.
// Overlapping mutations, including re-entering the registry from a
// PathBuilder passed to Outline, panic with ErrBorrowConflict.
package fonts
