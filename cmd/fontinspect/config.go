package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/fonts/source"
)

// Config represents the optional fontinspect.yaml configuration.
type Config struct {
	Fonts  FontsConfig  `yaml:"fonts"`
	Query  QueryConfig  `yaml:"query"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// FontsConfig selects where fonts come from.
type FontsConfig struct {
	Dirs     []string `yaml:"dirs,omitempty"`
	System   *bool    `yaml:"system,omitempty"`
	CacheDir string   `yaml:"cache_dir,omitempty"`
	Language string   `yaml:"language,omitempty"`
}

// QueryConfig is the default font request.
type QueryConfig struct {
	Families []string `yaml:"families,omitempty"`
	Weight   float32  `yaml:"weight,omitempty"`
	Style    string   `yaml:"style,omitempty"`
	Stretch  float32  `yaml:"stretch,omitempty"`
}

// RenderConfig controls PNG output.
type RenderConfig struct {
	Size    float32 `yaml:"size,omitempty"`
	Hinting string  `yaml:"hinting,omitempty"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// LoadOptional reads the config file at path if present.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Properties converts the query to font properties.
func (q QueryConfig) Properties() (source.Properties, error) {
	style, err := parseStyle(q.Style)
	if err != nil {
		return source.Properties{}, err
	}
	return source.Properties{
		Weight:  source.Weight(q.Weight),
		Style:   style,
		Stretch: source.Stretch(q.Stretch),
	}.Normalized(), nil
}

// FamilyNames returns the requested families, or sans-serif if none.
func (q QueryConfig) FamilyNames() []source.FamilyName {
	if len(q.Families) == 0 {
		return []source.FamilyName{source.SansSerif}
	}
	return source.Families(q.Families...)
}

// UseSystem reports whether system fonts are scanned. Default: only when
// no font directories are configured.
func (f FontsConfig) UseSystem() bool {
	if f.System != nil {
		return *f.System
	}
	return len(f.Dirs) == 0
}

func parseStyle(s string) (source.Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "regular":
		return source.StyleNormal, nil
	case "italic":
		return source.StyleItalic, nil
	case "oblique":
		return source.StyleOblique, nil
	default:
		return 0, fmt.Errorf("unknown style %q", s)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
