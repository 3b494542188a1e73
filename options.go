package fonts

import (
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/source"
)

// Option configures a Fonts during creation.
//
// Example:
//
//	// System fonts, default backend
//	fs := fonts.New()
//
//	// Only the fonts in one directory
//	src := source.NewStaticSource()
//	if err := src.AddDir("assets/fonts"); err != nil { ... }
//	fs := fonts.New(fonts.WithSource(src))
type Option func(*options)

type options struct {
	source    source.Source
	loader    backend.Loader
	binder    backend.Binder
	logger    *slog.Logger
	normalize *norm.Form
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		source: nil, // SystemSource if nil
		loader: nil, // backend.Default() if nil
		binder: nil, // backend.Default() if nil
	}
}

// WithSource sets where fonts are looked up.
func WithSource(s source.Source) Option {
	return func(o *options) {
		o.source = s
	}
}

// WithBackend sets both the loader and the binder.
func WithBackend(b backend.Backend) Option {
	return func(o *options) {
		o.loader = b
		o.binder = b
	}
}

// WithLoader overrides the font loader.
func WithLoader(l backend.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithBinder overrides the shaping binder.
func WithBinder(b backend.Binder) Option {
	return func(o *options) {
		o.binder = b
	}
}

// WithLogger sets a logger for this instance instead of the package-wide
// one from Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithNormalization normalizes buffer text to form before it is stored and
// shaped. Buffer.Text returns the normalized text.
func WithNormalization(form norm.Form) Option {
	return func(o *options) {
		o.normalize = &form
	}
}
