package source

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"

	"github.com/gogpu/fonts/internal/cache"
)

// SystemOption configures a SystemSource.
type SystemOption func(*systemConfig)

type systemConfig struct {
	cacheDir       string
	fontDirs       []string
	systemFonts    bool
	queryCacheSize int
	logger         *slog.Logger
}

func defaultSystemConfig() systemConfig {
	return systemConfig{
		systemFonts:    true,
		queryCacheSize: 64,
		logger:         slog.New(slog.DiscardHandler),
	}
}

// WithCacheDir sets the directory fontscan stores its font index in.
// The default is the user cache directory.
func WithCacheDir(dir string) SystemOption {
	return func(c *systemConfig) {
		c.cacheDir = dir
	}
}

// WithFontDirs adds directories scanned in addition to the system fonts.
func WithFontDirs(dirs ...string) SystemOption {
	return func(c *systemConfig) {
		c.fontDirs = append(c.fontDirs, dirs...)
	}
}

// WithSystemFonts enables or disables indexing of installed fonts.
// Disabling it restricts the source to WithFontDirs.
func WithSystemFonts(enabled bool) SystemOption {
	return func(c *systemConfig) {
		c.systemFonts = enabled
	}
}

// WithQueryCacheSize sets how many resolved queries are remembered.
func WithQueryCacheSize(n int) SystemOption {
	return func(c *systemConfig) {
		c.queryCacheSize = n
	}
}

// WithLogger routes fontscan diagnostics to l at debug level.
func WithLogger(l *slog.Logger) SystemOption {
	return func(c *systemConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// SystemSource resolves requests against the fonts installed on the host,
// indexed by go-text fontscan. The index is built on first use.
//
// SystemSource is safe for concurrent use.
type SystemSource struct {
	cfg systemConfig

	mu      sync.Mutex
	fm      *fontscan.FontMap
	loadErr error
	queries *cache.Cache[string, Descriptor]
}

// NewSystemSource creates a SystemSource. No fonts are scanned until the
// first SelectBestMatch call.
func NewSystemSource(opts ...SystemOption) *SystemSource {
	cfg := defaultSystemConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SystemSource{
		cfg:     cfg,
		queries: cache.New[string, Descriptor](cfg.queryCacheSize),
	}
}

// SelectBestMatch implements Source.
func (s *SystemSource) SelectBestMatch(families []FamilyName, props Properties) (Descriptor, error) {
	key := queryKey(families, props)
	if d, ok := s.queries.Get(key); ok {
		return d, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return Descriptor{}, err
	}

	names := make([]string, len(families))
	for i, f := range families {
		names[i] = string(f)
	}
	s.fm.SetQuery(fontscan.Query{Families: names, Aspect: props.aspect()})

	face := s.fm.ResolveFace(' ')
	if face == nil {
		return Descriptor{}, ErrNotFound
	}
	family, _ := s.fm.FontMetadata(face.Font)
	if !acceptsFamily(families, family) {
		return Descriptor{}, ErrNotFound
	}
	loc := s.fm.FontLocation(face.Font)
	if loc.File == "" {
		return Descriptor{}, ErrNotFound
	}

	d := FromPath(loc.File, uint32(loc.Index))
	s.queries.Set(key, d)
	return d, nil
}

// QueryCacheStats reports hits and misses of the query memo.
func (s *SystemSource) QueryCacheStats() cache.Stats {
	return s.queries.Stats()
}

// load builds the font index once. Caller must hold s.mu.
func (s *SystemSource) load() error {
	if s.fm != nil {
		return s.loadErr
	}

	s.fm = fontscan.NewFontMap(printfLogger{s.cfg.logger})
	if s.cfg.systemFonts {
		if err := s.fm.UseSystemFonts(s.cfg.cacheDir); err != nil {
			s.loadErr = fmt.Errorf("source: failed to index system fonts: %w", err)
		}
	}

	added := 0
	for _, dir := range s.cfg.fontDirs {
		added += s.addDir(dir)
	}
	if s.loadErr != nil && added > 0 {
		s.cfg.logger.Warn("system fonts unavailable, using font dirs only", "err", s.loadErr)
		s.loadErr = nil
	}
	return s.loadErr
}

// addDir adds every font file below dir and returns how many were added.
func (s *SystemSource) addDir(dir string) int {
	added := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fontExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		// #nosec G304 -- directories are configured by the caller
		data, err := os.ReadFile(path)
		if err != nil {
			s.cfg.logger.Warn("skipping font file", "path", path, "err", err)
			return nil
		}
		if err := s.fm.AddFont(bytes.NewReader(data), path, ""); err != nil {
			s.cfg.logger.Warn("skipping font file", "path", path, "err", err)
			return nil
		}
		added++
		return nil
	})
	if err != nil {
		s.cfg.logger.Warn("failed to scan font dir", "dir", dir, "err", err)
	}
	return added
}

func (p Properties) aspect() font.Aspect {
	p = p.Normalized()
	style := font.StyleNormal
	if p.Style != StyleNormal {
		style = font.StyleItalic
	}
	return font.Aspect{
		Style:   style,
		Weight:  font.Weight(p.Weight),
		Stretch: font.Stretch(p.Stretch),
	}
}

// acceptsFamily reports whether a face of the given family answers a request
// for families. fontscan falls back to any font covering the queried rune;
// only generic families accept such a substitute.
func acceptsFamily(families []FamilyName, family string) bool {
	got := font.NormalizeFamily(family)
	for _, f := range families {
		if f.IsGeneric() || font.NormalizeFamily(string(f)) == got {
			return true
		}
	}
	return false
}

func queryKey(families []FamilyName, props Properties) string {
	var sb strings.Builder
	for _, f := range families {
		sb.WriteString(strings.ToLower(string(f)))
		sb.WriteByte(0)
	}
	sb.WriteString(props.String())
	return sb.String()
}

// printfLogger adapts slog to the fontscan.Logger interface.
type printfLogger struct {
	l *slog.Logger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.l.Debug(fmt.Sprintf(format, args...), "component", "fontscan")
}
