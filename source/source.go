// Package source selects concrete font faces for family/style requests.
//
// A Source maps an ordered list of family candidates and style Properties to
// one Descriptor. Two implementations are provided:
//
//   - StaticSource: an explicit index of font files, matched with the CSS
//     font matching rules
//   - SystemSource: the host's installed fonts, indexed by go-text fontscan
package source

import "errors"

var (
	// ErrNotFound is returned when no face matches a request.
	ErrNotFound = errors.New("source: no matching font")

	// ErrEmptyDescriptor is returned when a descriptor has neither a path nor data.
	ErrEmptyDescriptor = errors.New("source: empty descriptor")
)

// Source picks the face that best matches a request.
type Source interface {
	// SelectBestMatch returns the best face among families, tried in order,
	// honoring props. It returns ErrNotFound when nothing matches.
	SelectBestMatch(families []FamilyName, props Properties) (Descriptor, error)
}
