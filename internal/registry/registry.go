// Package registry holds loaded fonts and shaped buffers in one shared
// container and maintains their reference counts.
//
// Fonts are deduplicated by fingerprint: resolving a request that lands on
// an already loaded font bumps its count instead of loading it again.
// Buffers are never deduplicated. Ids are generational, so an id that
// outlives its entry is rejected rather than aliased to a newer one.
//
// The registry has a single-writer model. Reads take a shared borrow and
// mutations an exclusive one; a conflicting borrow panics with
// ErrBorrowConflict instead of blocking.
package registry

import (
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/fonts/backend"
	"github.com/gogpu/fonts/fingerprint"
	"github.com/gogpu/fonts/internal/slot"
	"github.com/gogpu/fonts/source"
)

// FontID identifies a loaded font.
type FontID slot.ID

func (id FontID) String() string { return slot.ID(id).String() }

// BufferID identifies a shaped buffer.
type BufferID slot.ID

func (id BufferID) String() string { return slot.ID(id).String() }

// Config wires a Registry to its collaborators.
type Config struct {
	Source source.Source
	Loader backend.Loader
	Binder backend.Binder

	// Logger is consulted on every log call. Nil discards.
	Logger func() *slog.Logger

	// Normalize, when set, is applied to buffer text before it is stored.
	Normalize *norm.Form
}

// Stats counts live entries.
type Stats struct {
	Fonts   int
	Buffers int
}

// Registry is the font registry and buffer pool.
type Registry struct {
	cfg   Config
	guard guard

	fonts   *slot.Table[*fontEntry]
	byPrint map[fingerprint.Fingerprint]FontID
	buffers *slot.Table[*bufferEntry]
}

// New creates an empty registry.
func New(cfg Config) *Registry {
	if cfg.Logger == nil {
		discard := slog.New(slog.DiscardHandler)
		cfg.Logger = func() *slog.Logger { return discard }
	}
	return &Registry{
		cfg:     cfg,
		fonts:   slot.New[*fontEntry](8),
		byPrint: make(map[fingerprint.Fingerprint]FontID),
		buffers: slot.New[*bufferEntry](32),
	}
}

// Stats returns the number of live fonts and buffers.
func (r *Registry) Stats() Stats {
	r.guard.shared("stats")
	defer r.guard.releaseShared()
	return Stats{Fonts: r.fonts.Len(), Buffers: r.buffers.Len()}
}

func (r *Registry) log() *slog.Logger {
	return r.cfg.Logger()
}
