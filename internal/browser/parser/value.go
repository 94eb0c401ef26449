// File: internal/browser/parser/value.go
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value variant.
type ValueKind int

const (
	KeywordValue ValueKind = iota
	LengthValue
	ColorValue
)

// Unit of a length value.
type Unit int

const (
	UnitPx Unit = iota
	UnitPercent
)

func (u Unit) String() string {
	if u == UnitPercent {
		return "%"
	}
	return "px"
}

// Color represents an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Value is a typed CSS value. Only the fields matching Kind are meaningful.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Color   Color
}

// Keyword builds a keyword value.
func Keyword(k string) Value { return Value{Kind: KeywordValue, Keyword: k} }

// Px builds an absolute length.
func Px(v float64) Value { return Value{Kind: LengthValue, Length: v, Unit: UnitPx} }

// Percent builds a percentage length.
func Percent(v float64) Value { return Value{Kind: LengthValue, Length: v, Unit: UnitPercent} }

// ColorOf wraps a color.
func ColorOf(c Color) Value { return Value{Kind: ColorValue, Color: c} }

// IsKeyword reports whether v is the given keyword.
func (v Value) IsKeyword(k string) bool { return v.Kind == KeywordValue && v.Keyword == k }

// IsAuto reports whether v is the `auto` keyword.
func (v Value) IsAuto() bool { return v.IsKeyword("auto") }

// ToPx resolves the value to pixels. Percentages resolve against reference.
// Keywords and colors do not resolve and yield (0, false).
func (v Value) ToPx(reference float64) (float64, bool) {
	if v.Kind != LengthValue {
		return 0, false
	}
	if v.Unit == UnitPercent {
		return v.Length * reference / 100, true
	}
	return v.Length, true
}

func (v Value) String() string {
	switch v.Kind {
	case LengthValue:
		return strconv.FormatFloat(v.Length, 'f', -1, 64) + v.Unit.String()
	case ColorValue:
		c := v.Color
		if c.A == 255 {
			return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
	default:
		return v.Keyword
	}
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"aqua":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"fuchsia":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"maroon":      {128, 0, 0, 255},
	"navy":        {0, 0, 128, 255},
	"olive":       {128, 128, 0, 255},
	"purple":      {128, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseValue converts a single raw CSS token into a typed value. Anything
// that is not a recognized length or color is kept as a lower-case keyword.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if lower == "" {
		return Keyword("")
	}
	if c, ok := ParseColor(lower); ok {
		return ColorOf(c)
	}
	if v, ok := parseLength(lower); ok {
		return v
	}
	return Keyword(lower)
}

func parseLength(s string) (Value, bool) {
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || ((ch == '-' || ch == '+') && end == 0) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return Value{}, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Value{}, false
	}
	switch s[end:] {
	case "px", "":
		return Px(n), true
	case "%":
		return Percent(n), true
	default:
		return Value{}, false
	}
}

// ParseColor parses named, hex (#rgb, #rgba, #rrggbb, #rrggbbaa) and
// rgb()/rgba() colors.
func ParseColor(value string) (Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))

	if color, ok := namedColors[value]; ok {
		return color, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, false
		}
	}
	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 3, 4:
		r = hexDigit(hex[0]) * 17
		g = hexDigit(hex[1]) * 17
		b = hexDigit(hex[2]) * 17
		if len(hex) == 4 {
			a = hexDigit(hex[3]) * 17
		}
	case 6, 8:
		r = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		g = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		b = hexDigit(hex[4])<<4 | hexDigit(hex[5])
		if len(hex) == 8 {
			a = hexDigit(hex[6])<<4 | hexDigit(hex[7])
		}
	default:
		return Color{}, false
	}
	return Color{R: r, G: g, B: b, A: a}, true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigit(c byte) uint8 {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

var rgbRegex = regexp.MustCompile(`^rgba?\((.*)\)$`)

func parseRGBColor(value string) (Color, bool) {
	matches := rgbRegex.FindStringSubmatch(value)
	if len(matches) != 2 {
		return Color{}, false
	}

	parts := strings.FieldsFunc(matches[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	c := Color{A: 255}
	var ok bool
	if c.R, ok = parseColorComponent(parts[0], false); !ok {
		return Color{}, false
	}
	if c.G, ok = parseColorComponent(parts[1], false); !ok {
		return Color{}, false
	}
	if c.B, ok = parseColorComponent(parts[2], false); !ok {
		return Color{}, false
	}
	if len(parts) == 4 {
		if c.A, ok = parseColorComponent(parts[3], true); !ok {
			return Color{}, false
		}
	}
	return c, true
}

func parseColorComponent(value string, isAlpha bool) (uint8, bool) {
	value = strings.TrimSpace(value)

	if strings.HasSuffix(value, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0, false
		}
		return uint8(clamp(percent/100.0*255.0+0.5, 0, 255)), true
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if isAlpha {
		return uint8(clamp(f*255.0+0.5, 0, 255)), true
	}
	return uint8(clamp(f+0.5, 0, 255)), true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
