package source

import (
	"fmt"
	"os"
	"strings"
)

// FamilyName is a font family name or one of the generic families.
type FamilyName string

// Generic family names.
const (
	Serif     FamilyName = "serif"
	SansSerif FamilyName = "sans-serif"
	Monospace FamilyName = "monospace"
	Cursive   FamilyName = "cursive"
	Fantasy   FamilyName = "fantasy"
)

// IsGeneric reports whether f names a generic family.
func (f FamilyName) IsGeneric() bool {
	switch FamilyName(strings.ToLower(string(f))) {
	case Serif, SansSerif, Monospace, Cursive, Fantasy:
		return true
	}
	return false
}

// Families converts plain strings to family names.
func Families(names ...string) []FamilyName {
	out := make([]FamilyName, len(names))
	for i, n := range names {
		out[i] = FamilyName(n)
	}
	return out
}

// Descriptor locates one face of a font: either a file path or raw font
// bytes, plus the face index inside a collection.
type Descriptor struct {
	// Path is the font file. Empty for in-memory fonts.
	Path string

	// Data holds the raw font when Path is empty.
	Data []byte

	// Index is the face index within a collection (0 for single-face files).
	Index uint32
}

// FromPath returns a descriptor for face index of the file at path.
func FromPath(path string, index uint32) Descriptor {
	return Descriptor{Path: path, Index: index}
}

// FromData returns a descriptor for face index of an in-memory font.
func FromData(data []byte, index uint32) Descriptor {
	return Descriptor{Data: data, Index: index}
}

// IsPath reports whether d refers to a file.
func (d Descriptor) IsPath() bool {
	return d.Path != ""
}

// IsMemory reports whether d carries the font bytes itself.
func (d Descriptor) IsMemory() bool {
	return d.Path == "" && len(d.Data) > 0
}

// Valid reports whether d refers to anything at all.
func (d Descriptor) Valid() bool {
	return d.IsPath() || d.IsMemory()
}

// ReadAll returns the font bytes, reading the file for path descriptors.
func (d Descriptor) ReadAll() ([]byte, error) {
	if d.IsMemory() {
		return d.Data, nil
	}
	if !d.IsPath() {
		return nil, ErrEmptyDescriptor
	}
	// #nosec G304 -- font paths come from the font source
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read font file: %w", err)
	}
	return data, nil
}

func (d Descriptor) String() string {
	if d.IsPath() {
		return fmt.Sprintf("%s#%d", d.Path, d.Index)
	}
	return fmt.Sprintf("<%d bytes>#%d", len(d.Data), d.Index)
}
