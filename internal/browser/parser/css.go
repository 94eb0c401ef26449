// File: internal/browser/parser/css.go
package parser

import (
	"sort"
	"strings"

	"github.com/Pablo96/robinson/internal/observability"
	"go.uber.org/zap"
)

// Declaration is a single longhand property assignment.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

// Rule pairs selectors with declarations. Selectors are kept sorted by
// descending specificity so the first match is the most specific one.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Stylesheet is an ordered list of rules in source order.
type Stylesheet struct {
	Rules []Rule
}

// Append returns a stylesheet holding s's rules followed by other's.
func (s Stylesheet) Append(other Stylesheet) Stylesheet {
	rules := make([]Rule, 0, len(s.Rules)+len(other.Rules))
	rules = append(rules, s.Rules...)
	rules = append(rules, other.Rules...)
	return Stylesheet{Rules: rules}
}

// Parser holds the state of the CSS parser.
type Parser struct {
	input string
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: input, pos: 0}
}

// Parse is shorthand for NewParser(input).Parse().
func Parse(input string) Stylesheet {
	return NewParser(input).Parse()
}

// ParseInline parses the body of a style attribute (declarations without
// braces).
func ParseInline(styleAttr string) []Declaration {
	p := NewParser("{" + styleAttr + "}")
	return p.parseDeclarations()
}

// Parse analyzes the input and builds a Stylesheet. It never fails: rules
// whose selectors are all unsupported, at-rules and comments are skipped.
func (p *Parser) Parse() Stylesheet {
	var rules []Rule
	for {
		p.consumeWhitespace()
		if p.eof() {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}
		if p.currentChar() == '@' {
			p.skipAtRule()
			continue
		}

		prelude := p.readPrelude()
		if p.eof() {
			break
		}
		selectors := parseSelectorList(prelude)
		declarations := p.parseDeclarations()

		if len(selectors) == 0 {
			observability.GetLogger().Debug("Skipping rule with no supported selector",
				zap.String("selector", strings.TrimSpace(prelude)))
			continue
		}
		if len(declarations) > 0 {
			rules = append(rules, Rule{Selectors: selectors, Declarations: declarations})
		}
	}
	return Stylesheet{Rules: rules}
}

// readPrelude consumes everything up to (not including) the next '{',
// dropping comments.
func (p *Parser) readPrelude() string {
	var b strings.Builder
	for !p.eof() && p.currentChar() != '{' {
		if p.startsWith("/*") {
			p.skipComment()
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(p.consumeChar())
	}
	return b.String()
}

func parseSelectorList(prelude string) []Selector {
	var selectors []Selector
	for _, part := range strings.Split(prelude, ",") {
		sel, ok := parseSelector(strings.TrimSpace(part))
		if !ok {
			observability.GetLogger().Debug("Ignoring unsupported selector", zap.String("selector", part))
			continue
		}
		selectors = append(selectors, sel)
	}
	sort.SliceStable(selectors, func(i, j int) bool {
		return selectors[j].Specificity().Less(selectors[i].Specificity())
	})
	return selectors
}

// parseSelector parses `tag#id.class.class` or `*`. Combinators, attribute
// selectors and pseudo-classes make the whole selector unsupported.
func parseSelector(text string) (Selector, bool) {
	if text == "" {
		return Selector{}, false
	}
	p := NewParser(text)
	sel := Selector{}
	universal := false

	if p.currentChar() == '*' {
		p.consumeChar()
		universal = true
	} else if isValidIdentifierStart(p.currentChar()) {
		sel.TagName = strings.ToLower(p.parseIdentifier())
	}

	for !p.eof() {
		switch p.currentChar() {
		case '#':
			p.consumeChar()
			id := p.parseIdentifier()
			if id == "" {
				return Selector{}, false
			}
			sel.ID = id
		case '.':
			p.consumeChar()
			class := p.parseIdentifier()
			if class == "" {
				return Selector{}, false
			}
			sel.Classes = append(sel.Classes, class)
		default:
			return Selector{}, false
		}
	}
	return sel, universal || sel.isValid()
}

// parseDeclarations parses the content within { ... } and expands
// shorthands into longhands.
func (p *Parser) parseDeclarations() []Declaration {
	p.consumeWhitespace()
	if p.eof() || p.currentChar() != '{' {
		return nil
	}
	p.consumeChar() // '{'

	var declarations []Declaration
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '}' {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}

		property, value, important := p.parseDeclaration()
		if property == "" || value == "" {
			continue
		}
		expanded := expandDeclaration(strings.ToLower(property), value, important)
		if len(expanded) == 0 {
			observability.GetLogger().Debug("Dropping unparsable declaration",
				zap.String("property", property), zap.String("value", value))
		}
		declarations = append(declarations, expanded...)
	}

	if !p.eof() && p.currentChar() == '}' {
		p.consumeChar()
	}
	return declarations
}

// parseDeclaration parses a single 'property: value;' pair.
func (p *Parser) parseDeclaration() (prop, val string, important bool) {
	if !isValidIdentifierStart(p.currentChar()) {
		p.skipTo(';', '}')
		if !p.eof() && p.currentChar() == ';' {
			p.consumeChar()
		}
		return
	}
	prop = p.parseIdentifier()
	p.consumeWhitespace()

	if p.eof() || p.currentChar() != ':' {
		p.skipTo(';', '}')
		if !p.eof() && p.currentChar() == ';' {
			p.consumeChar()
		}
		return "", "", false
	}
	p.consumeChar()
	p.consumeWhitespace()

	val = p.parseValue()

	if strings.HasSuffix(strings.ToLower(val), "!important") {
		important = true
		val = strings.TrimSpace(val[:len(val)-len("!important")])
	}

	p.consumeWhitespace()
	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
	return
}

// parseValue reads a raw value until ';' or '}'.
func (p *Parser) parseValue() string {
	start := p.pos
	for !p.eof() {
		ch := p.currentChar()
		if ch == ';' || ch == '}' {
			break
		}
		if ch == '"' || ch == '\'' {
			p.skipQuotedString(ch)
			continue
		}
		if ch == '(' {
			p.consumeChar()
			p.skipBlock('(', ')')
			continue
		}
		p.pos++
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

// --- Lexer-like Helpers ---

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && isWhitespace(p.currentChar()) {
		p.pos++
	}
}

func (p *Parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *Parser) skipComment() {
	p.pos += 2
	endIndex := strings.Index(p.input[p.pos:], "*/")
	if endIndex == -1 {
		p.pos = len(p.input)
	} else {
		p.pos += endIndex + 2
	}
}

func (p *Parser) skipTo(targets ...byte) {
	for !p.eof() {
		ch := p.currentChar()
		for _, target := range targets {
			if ch == target {
				return
			}
		}
		p.pos++
	}
}

// skipBlock assumes the opening delimiter was already consumed.
func (p *Parser) skipBlock(open, close byte) {
	depth := 1
	for !p.eof() {
		c := p.consumeChar()
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func (p *Parser) skipQuotedString(quote byte) {
	p.consumeChar()
	for !p.eof() {
		ch := p.consumeChar()
		if ch == '\\' {
			p.consumeChar()
		} else if ch == quote {
			return
		}
	}
}

func (p *Parser) skipAtRule() {
	p.consumeChar() // '@'
	_ = p.parseIdentifier()
	for !p.eof() {
		ch := p.currentChar()
		if ch == '{' {
			p.consumeChar()
			p.skipBlock('{', '}')
			return
		}
		if ch == ';' {
			p.consumeChar()
			return
		}
		p.pos++
	}
}

func (p *Parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isValidIdentifierChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isValidIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isValidIdentifierChar(ch byte) bool {
	return isValidIdentifierStart(ch) || (ch >= '0' && ch <= '9')
}
