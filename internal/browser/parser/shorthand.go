// File: internal/browser/parser/shorthand.go
package parser

import "strings"

var sides = [4]string{"top", "right", "bottom", "left"}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "solid": true, "dashed": true, "dotted": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// expandDeclaration turns one `property: raw` pair into longhand
// declarations. Unrecognized shorthand tokens are dropped.
func expandDeclaration(property, raw string, important bool) []Declaration {
	tokens := splitTokens(raw)
	if len(tokens) == 0 {
		return nil
	}
	decl := func(p string, v Value) Declaration {
		return Declaration{Property: p, Value: v, Important: important}
	}

	switch property {
	case "margin", "padding":
		return expand1To4(tokens, func(side string) string { return property + "-" + side }, decl)
	case "border-width":
		return expand1To4(tokens, func(side string) string { return "border-" + side + "-width" }, decl)
	case "border":
		var out []Declaration
		for _, tok := range tokens {
			v := ParseValue(tok)
			switch {
			case v.Kind == ColorValue:
				out = append(out, decl("border-color", v))
			case v.Kind == LengthValue || isBorderWidthKeyword(v):
				for _, side := range sides {
					out = append(out, decl("border-"+side+"-width", v))
				}
			case borderStyles[v.Keyword]:
				out = append(out, decl("border-style", v))
			}
		}
		return out
	case "border-top", "border-right", "border-bottom", "border-left":
		var out []Declaration
		for _, tok := range tokens {
			v := ParseValue(tok)
			if v.Kind == LengthValue || isBorderWidthKeyword(v) {
				out = append(out, decl(property+"-width", v))
			}
		}
		return out
	case "background":
		for _, tok := range tokens {
			if v := ParseValue(tok); v.Kind == ColorValue {
				return []Declaration{decl("background-color", v)}
			}
		}
		return nil
	}

	if len(tokens) == 1 {
		return []Declaration{decl(property, ParseValue(tokens[0]))}
	}
	// Multi-token values for longhands we do not model are kept verbatim.
	return []Declaration{decl(property, Keyword(strings.ToLower(strings.Join(tokens, " "))))}
}

func expand1To4(tokens []string, name func(side string) string, decl func(string, Value) Declaration) []Declaration {
	if len(tokens) > 4 {
		return nil
	}
	vals := make([]Value, len(tokens))
	for i, t := range tokens {
		vals[i] = ParseValue(t)
	}
	var top, right, bottom, left Value
	switch len(vals) {
	case 1:
		top, right, bottom, left = vals[0], vals[0], vals[0], vals[0]
	case 2:
		top, right, bottom, left = vals[0], vals[1], vals[0], vals[1]
	case 3:
		top, right, bottom, left = vals[0], vals[1], vals[2], vals[1]
	case 4:
		top, right, bottom, left = vals[0], vals[1], vals[2], vals[3]
	}
	return []Declaration{
		decl(name("top"), top),
		decl(name("right"), right),
		decl(name("bottom"), bottom),
		decl(name("left"), left),
	}
}

func isBorderWidthKeyword(v Value) bool {
	return v.IsKeyword("thin") || v.IsKeyword("medium") || v.IsKeyword("thick")
}

// splitTokens splits on whitespace outside parentheses, so that
// `1px solid rgb(0, 0, 0)` yields three tokens.
func splitTokens(raw string) []string {
	var tokens []string
	depth, start := 0, -1
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch == '(':
			depth++
		case ch == ')' && depth > 0:
			depth--
		case isWhitespace(ch) && depth == 0:
			if start >= 0 {
				tokens = append(tokens, raw[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, raw[start:])
	}
	return tokens
}
