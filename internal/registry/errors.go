package registry

import (
	"errors"
	"fmt"

	"github.com/gogpu/fonts/source"
)

// ErrBorrowConflict is the panic value (wrapped) when the registry is
// re-entered in a way that conflicts with an outstanding borrow, e.g. a
// PathBuilder releasing a handle from inside Outline.
var ErrBorrowConflict = errors.New("registry: borrow conflict")

// Kind categorizes an invariant violation.
type Kind int

const (
	// DeadFont means a font id that must be live was not.
	DeadFont Kind = iota + 1
	// DeadBuffer means a buffer id that must be live was not.
	DeadBuffer
	// DeadBufferFont means a live buffer refers to a font that is gone.
	DeadBufferFont
)

func (k Kind) String() string {
	switch k {
	case DeadFont:
		return "dead font"
	case DeadBuffer:
		return "dead buffer"
	case DeadBufferFont:
		return "buffer outlived its font"
	default:
		return "unknown"
	}
}

// InvariantError is the panic value when a reference-counting path finds
// state that correct handle use can never produce.
type InvariantError struct {
	// Op is the registry operation that detected the violation.
	Op   string
	ID   fmt.Stringer
	Kind Kind
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("registry: %s [%s]: id %v", e.Op, e.Kind, e.ID)
}

// UnsupportedDescriptorError is the panic value when a font source hands
// out a descriptor the configured backend cannot open at all.
type UnsupportedDescriptorError struct {
	Descriptor source.Descriptor
	Err        error
}

func (e *UnsupportedDescriptorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry: unsupported font descriptor %s: %v", e.Descriptor, e.Err)
	}
	return fmt.Sprintf("registry: unsupported font descriptor %s", e.Descriptor)
}

func (e *UnsupportedDescriptorError) Unwrap() error {
	return e.Err
}
