// File: internal/browser/style/defaults.go
package style

import "github.com/Pablo96/robinson/internal/browser/parser"

// DefaultUserAgentCSS is the default stylesheet for HTML documents. It is
// only applied when passed to a Resolver with WithUserAgentSheet.
const DefaultUserAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, dl, dt, dd,
header, footer, section, article, nav, main, aside, form, fieldset,
blockquote, pre, hr, address, figure, figcaption, table, center {
    display: block;
}

head, script, style, title, meta, link, base, template, noscript {
    display: none;
}

body { margin: 8px; }
p { margin-top: 16px; margin-bottom: 16px; }
h1 { margin-top: 21px; margin-bottom: 21px; }
ul, ol { padding-left: 40px; }
hr { border-width: 1px; border-color: gray; }
`

// DefaultUserAgentSheet parses DefaultUserAgentCSS.
func DefaultUserAgentSheet() parser.Stylesheet {
	return parser.Parse(DefaultUserAgentCSS)
}

// DefaultInitialValues returns a fresh copy of the initial value table used
// when a property is neither specified nor inherited.
func DefaultInitialValues() PropertyMap {
	m := PropertyMap{
		"display":          parser.Keyword("inline"),
		"width":            parser.Keyword("auto"),
		"height":           parser.Keyword("auto"),
		"color":            parser.ColorOf(parser.Color{A: 255}),
		"background-color": parser.ColorOf(parser.Color{}),
		"border-color":     parser.Keyword("currentcolor"),
		"border-style":     parser.Keyword("none"),
		"font-family":      parser.Keyword("serif"),
		"font-size":        parser.Px(16),
		"font-weight":      parser.Keyword("normal"),
		"font-style":       parser.Keyword("normal"),
		"line-height":      parser.Keyword("normal"),
		"text-align":       parser.Keyword("left"),
		"visibility":       parser.Keyword("visible"),
		"white-space":      parser.Keyword("normal"),
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		m["margin-"+side] = parser.Px(0)
		m["padding-"+side] = parser.Px(0)
		m["border-"+side+"-width"] = parser.Px(0)
	}
	return m
}

// DefaultInheritedProperties lists the properties that take the parent's
// computed value when not specified.
func DefaultInheritedProperties() []string {
	return []string{
		"color",
		"font-family",
		"font-size",
		"font-style",
		"font-weight",
		"line-height",
		"text-align",
		"visibility",
		"white-space",
	}
}
