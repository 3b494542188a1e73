package source

import (
	"fmt"
	"strings"
)

// Weight is a numeric font weight on the CSS scale (1..1000).
type Weight float32

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemibold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// String returns a human-readable representation of the font weight.
func (w Weight) String() string {
	switch w {
	case WeightThin:
		return "thin"
	case WeightExtraLight:
		return "extra_light"
	case WeightLight:
		return "light"
	case WeightNormal:
		return "normal"
	case WeightMedium:
		return "medium"
	case WeightSemibold:
		return "semibold"
	case WeightBold:
		return "bold"
	case WeightExtraBold:
		return "extra_bold"
	case WeightBlack:
		return "black"
	default:
		return fmt.Sprintf("Weight(%g)", float32(w))
	}
}

// Style represents the slant of a font.
type Style int

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

// String returns a human-readable representation of the font style.
func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Stretch is the width of a font relative to its normal width (1.0).
type Stretch float32

const (
	StretchUltraCondensed Stretch = 0.5
	StretchExtraCondensed Stretch = 0.625
	StretchCondensed      Stretch = 0.75
	StretchSemiCondensed  Stretch = 0.875
	StretchNormal         Stretch = 1.0
	StretchSemiExpanded   Stretch = 1.125
	StretchExpanded       Stretch = 1.25
	StretchExtraExpanded  Stretch = 1.5
	StretchUltraExpanded  Stretch = 2.0
)

// Properties are the style properties used to pick a face within a family.
// Zero Weight and zero Stretch mean normal.
type Properties struct {
	Weight  Weight
	Style   Style
	Stretch Stretch
}

// DefaultProperties returns normal weight, normal style, normal stretch.
func DefaultProperties() Properties {
	return Properties{
		Weight:  WeightNormal,
		Style:   StyleNormal,
		Stretch: StretchNormal,
	}
}

// Normalized replaces zero fields with their normal values.
func (p Properties) Normalized() Properties {
	if p.Weight <= 0 {
		p.Weight = WeightNormal
	}
	if p.Stretch <= 0 {
		p.Stretch = StretchNormal
	}
	return p
}

func (p Properties) String() string {
	p = p.Normalized()
	return fmt.Sprintf("%s/%s/%g", p.Weight, p.Style, float32(p.Stretch))
}

// subfamily keywords, longest first so "extrabold" wins over "bold".
var (
	weightKeywords = []struct {
		word   string
		weight Weight
	}{
		{"extralight", WeightExtraLight},
		{"ultralight", WeightExtraLight},
		{"extrabold", WeightExtraBold},
		{"ultrabold", WeightExtraBold},
		{"semibold", WeightSemibold},
		{"demibold", WeightSemibold},
		{"hairline", WeightThin},
		{"medium", WeightMedium},
		{"light", WeightLight},
		{"black", WeightBlack},
		{"heavy", WeightBlack},
		{"thin", WeightThin},
		{"bold", WeightBold},
	}
	stretchKeywords = []struct {
		word    string
		stretch Stretch
	}{
		{"ultracondensed", StretchUltraCondensed},
		{"extracondensed", StretchExtraCondensed},
		{"semicondensed", StretchSemiCondensed},
		{"ultraexpanded", StretchUltraExpanded},
		{"extraexpanded", StretchExtraExpanded},
		{"semiexpanded", StretchSemiExpanded},
		{"condensed", StretchCondensed},
		{"expanded", StretchExpanded},
	}
)

// PropertiesFromSubfamily infers properties from a subfamily name such as
// "Bold Italic" or "SemiCondensed Light".
func PropertiesFromSubfamily(name string) Properties {
	s := strings.ToLower(name)
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)

	p := DefaultProperties()
	for _, kw := range weightKeywords {
		if strings.Contains(s, kw.word) {
			p.Weight = kw.weight
			break
		}
	}
	for _, kw := range stretchKeywords {
		if strings.Contains(s, kw.word) {
			p.Stretch = kw.stretch
			break
		}
	}
	switch {
	case strings.Contains(s, "italic"):
		p.Style = StyleItalic
	case strings.Contains(s, "oblique"):
		p.Style = StyleOblique
	}
	return p
}
