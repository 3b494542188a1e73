// Package opentype registers the default "opentype" backend: fonts are loaded
// by golang.org/x/image and shaped by go-text/typesetting.
//
// Import for side effects:
//
//	import _ "github.com/gogpu/fonts/backend/opentype"
package opentype

import (
	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/backend/gotext"
	"github.com/gogpu/fonts/backend/ximage"
)

// Name is the registered backend name.
const Name = "opentype"

func init() {
	backend.Register(Name, func() backend.Backend {
		return New()
	})
}

// Backend composes the x/image loader and the go-text binder.
type Backend struct {
	*ximage.Loader
	*gotext.Binder
}

// New returns the backend with the given binder options.
func New(opts ...gotext.Option) *Backend {
	return &Backend{
		Loader: ximage.NewLoader(),
		Binder: gotext.NewBinder(opts...),
	}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return Name
}
