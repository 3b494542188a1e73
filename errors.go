package fonts

import (
	"errors"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/internal/registry"
	"github.com/gogpu/fonts/source"
)

// ErrReleased is the panic value when a released handle is used.
var ErrReleased = errors.New("fonts: handle used after release")

// ErrBorrowedHandle is the panic value when the font handle returned by
// Buffer.Font is released. The buffer owns that reference.
var ErrBorrowedHandle = errors.New("fonts: release of borrowed font handle")

// ErrBorrowConflict is the panic value (wrapped) when the registry is
// mutated while another operation is still using it.
var ErrBorrowConflict = registry.ErrBorrowConflict

// ErrNotFound is returned by sources when no font matches a request.
var ErrNotFound = source.ErrNotFound

// InvariantError is the panic value for reference-counting states that
// correct handle use cannot produce.
type InvariantError = registry.InvariantError

// UnsupportedDescriptorError is the panic value when the source selects a
// font the backend cannot open.
type UnsupportedDescriptorError = registry.UnsupportedDescriptorError

// GlyphLoadingError is returned by Font.Outline.
type GlyphLoadingError = backend.GlyphLoadingError
