package source

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontExtensions lists the file extensions AddDir picks up.
var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
	".otc": true,
}

type staticFace struct {
	props Properties
	desc  Descriptor
}

// StaticSource resolves requests against an explicit set of faces.
//
// StaticSource is not safe for concurrent mutation; populate it before use.
type StaticSource struct {
	families map[string][]staticFace // keyed by lower-cased family name
	names    map[string]string       // lower-cased -> display family name
	generic  map[FamilyName][]string
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		families: make(map[string][]staticFace),
		names:    make(map[string]string),
		generic:  make(map[FamilyName][]string),
	}
}

// Add registers one face of family.
func (s *StaticSource) Add(family string, props Properties, d Descriptor) {
	key := strings.ToLower(family)
	if _, ok := s.names[key]; !ok {
		s.names[key] = family
	}
	s.families[key] = append(s.families[key], staticFace{props: props.Normalized(), desc: d})
}

// AddFile registers every face of the font file at path, reading family and
// subfamily names from the font's name table.
func (s *StaticSource) AddFile(path string) error {
	data, err := FromPath(path, 0).ReadAll()
	if err != nil {
		return err
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return fmt.Errorf("source: failed to parse %s: %w", path, err)
	}

	var buf sfnt.Buffer
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			return fmt.Errorf("source: failed to read face %d of %s: %w", i, path, err)
		}
		family := fontName(f, &buf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
		if family == "" {
			return fmt.Errorf("source: %s face %d has no family name", path, i)
		}
		sub := fontName(f, &buf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
		s.Add(family, PropertiesFromSubfamily(sub), FromPath(path, uint32(i))) //nolint:gosec // face count fits uint32
	}
	return nil
}

// AddDir walks dir and registers every font file found.
// Files that fail to parse are skipped; their errors are joined and returned.
func (s *StaticSource) AddDir(dir string) error {
	var errs []error
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fontExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if err := s.AddFile(path); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return errors.Join(errs...)
}

// SetGeneric maps a generic family to concrete families, tried in order.
func (s *StaticSource) SetGeneric(generic FamilyName, families ...string) {
	s.generic[FamilyName(strings.ToLower(string(generic)))] = families
}

// Families returns the registered family names, sorted.
func (s *StaticSource) Families() []string {
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// SelectBestMatch implements Source.
// The first candidate family that has any face wins; the face is chosen
// within that family by props.
func (s *StaticSource) SelectBestMatch(families []FamilyName, props Properties) (Descriptor, error) {
	for _, fam := range families {
		for _, name := range s.expand(fam) {
			faces := s.families[strings.ToLower(name)]
			if len(faces) == 0 {
				continue
			}
			cands := make([]Properties, len(faces))
			for i, f := range faces {
				cands[i] = f.props
			}
			return faces[bestMatch(cands, props)].desc, nil
		}
	}
	return Descriptor{}, ErrNotFound
}

func (s *StaticSource) expand(fam FamilyName) []string {
	if fam.IsGeneric() {
		return s.generic[FamilyName(strings.ToLower(string(fam)))]
	}
	return []string{string(fam)}
}

func fontName(f *sfnt.Font, buf *sfnt.Buffer, ids ...sfnt.NameID) string {
	for _, id := range ids {
		if name, err := f.Name(buf, id); err == nil && name != "" {
			return name
		}
	}
	return ""
}
