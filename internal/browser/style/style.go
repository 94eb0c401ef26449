// File: internal/browser/style/style.go
package style

import (
	"sort"

	"github.com/Pablo96/robinson/internal/browser/dom"
	"github.com/Pablo96/robinson/internal/browser/parser"
	"github.com/Pablo96/robinson/internal/observability"
	"go.uber.org/zap"
)

// PropertyMap maps property names to computed values.
type PropertyMap map[string]parser.Value

// Display is the box-generation mode of a node.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "inline"
	}
}

// StyledNode pairs a document node with its computed values.
type StyledNode struct {
	Node     *dom.Node
	Values   PropertyMap
	Children []*StyledNode
}

// Value returns the computed value of a property.
func (sn *StyledNode) Value(name string) (parser.Value, bool) {
	v, ok := sn.Values[name]
	return v, ok
}

// Lookup returns the value of name, or of fallback, or def.
func (sn *StyledNode) Lookup(name, fallback string, def parser.Value) parser.Value {
	if v, ok := sn.Values[name]; ok {
		return v
	}
	if v, ok := sn.Values[fallback]; ok {
		return v
	}
	return def
}

// Display maps the display keyword to a Display. Keywords other than
// block and none generate inline boxes.
func (sn *StyledNode) Display() Display {
	if sn.Node != nil && sn.Node.Type == dom.TextNode {
		return DisplayInline
	}
	v, ok := sn.Values["display"]
	if !ok {
		return DisplayInline
	}
	switch {
	case v.IsKeyword("block"):
		return DisplayBlock
	case v.IsKeyword("none"):
		return DisplayNone
	default:
		return DisplayInline
	}
}

// Count returns the number of styled nodes in the subtree.
func (sn *StyledNode) Count() int {
	if sn == nil {
		return 0
	}
	n := 1
	for _, c := range sn.Children {
		n += c.Count()
	}
	return n
}

// Origin identifies where a declaration came from.
type Origin int

const (
	OriginUserAgent Origin = iota
	OriginAuthor
	OriginInline
)

// Resolver computes style trees. It holds only configuration, so one
// Resolver can serve many documents.
type Resolver struct {
	userAgent    []parser.Stylesheet
	initial      PropertyMap
	inherited    map[string]bool
	inlineStyles bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithUserAgentSheet adds a stylesheet applied at user-agent origin.
func WithUserAgentSheet(sheet parser.Stylesheet) Option {
	return func(r *Resolver) { r.userAgent = append(r.userAgent, sheet) }
}

// WithInitialValues replaces the initial value table.
func WithInitialValues(values PropertyMap) Option {
	return func(r *Resolver) { r.initial = values }
}

// WithInheritedProperties replaces the set of inherited properties.
func WithInheritedProperties(props ...string) Option {
	return func(r *Resolver) {
		r.inherited = make(map[string]bool, len(props))
		for _, p := range props {
			r.inherited[p] = true
		}
	}
}

// WithInlineStyles toggles support for the style attribute.
func WithInlineStyles(enabled bool) Option {
	return func(r *Resolver) { r.inlineStyles = enabled }
}

// NewResolver creates a Resolver with the default initial and inherited
// tables, inline styles enabled, and no user-agent sheet.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{initial: DefaultInitialValues(), inlineStyles: true}
	WithInheritedProperties(DefaultInheritedProperties()...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the style tree for a document with a default Resolver.
func Resolve(root *dom.Node, sheet parser.Stylesheet) *StyledNode {
	return NewResolver().Resolve(root, sheet)
}

// Resolve builds the style tree for root. Author sheets are applied in the
// given order after the user-agent sheets. Nodes whose display is none are
// omitted with their whole subtree; if the root itself is hidden the result
// is nil.
func (r *Resolver) Resolve(root *dom.Node, sheets ...parser.Stylesheet) *StyledNode {
	if root == nil {
		return nil
	}
	return r.styleTree(root, nil, sheets)
}

func (r *Resolver) styleTree(node *dom.Node, parent PropertyMap, sheets []parser.Stylesheet) *StyledNode {
	sn := &StyledNode{Node: node, Values: r.ComputeValues(node, parent, sheets)}
	if sn.Display() == DisplayNone {
		observability.GetLogger().Debug("Excluding display:none subtree",
			zap.Stringer("node", node), zap.Int("nodes", node.Count()))
		return nil
	}
	for _, child := range node.Children {
		if c := r.styleTree(child, sn.Values, sheets); c != nil {
			sn.Children = append(sn.Children, c)
		}
	}
	return sn
}

type weightedDeclaration struct {
	decl        parser.Declaration
	priority    int
	specificity parser.Specificity
}

// ComputeValues computes the value of every known property for one node:
// the winning declaration, else the parent's value for inherited
// properties, else the initial value.
func (r *Resolver) ComputeValues(node *dom.Node, parent PropertyMap, sheets []parser.Stylesheet) PropertyMap {
	values := make(PropertyMap, len(r.initial))
	for k, v := range r.initial {
		values[k] = v
	}
	for k, v := range parent {
		if r.inherited[k] {
			values[k] = v
		}
	}

	if node.Type == dom.TextNode {
		values["display"] = parser.Keyword("inline")
		return values
	}

	for _, wd := range r.cascade(node, sheets) {
		v := wd.decl.Value
		switch {
		case v.IsKeyword("inherit"):
			if pv, ok := parent[wd.decl.Property]; ok {
				values[wd.decl.Property] = pv
			} else if iv, ok := r.initial[wd.decl.Property]; ok {
				values[wd.decl.Property] = iv
			}
		case v.IsKeyword("initial"):
			if iv, ok := r.initial[wd.decl.Property]; ok {
				values[wd.decl.Property] = iv
			} else {
				delete(values, wd.decl.Property)
			}
		default:
			values[wd.decl.Property] = v
		}
	}
	return values
}

// cascade returns the declarations that apply to node in ascending
// precedence: later entries override earlier ones.
func (r *Resolver) cascade(node *dom.Node, sheets []parser.Stylesheet) []weightedDeclaration {
	var decls []weightedDeclaration

	collect := func(sheet parser.Stylesheet, origin Origin) {
		for _, rule := range sheet.Rules {
			sel, ok := matchRule(node, rule)
			if !ok {
				continue
			}
			for _, d := range rule.Declarations {
				decls = append(decls, weightedDeclaration{
					decl:        d,
					priority:    cascadePriority(origin, d.Important),
					specificity: sel.Specificity(),
				})
			}
		}
	}

	for _, sheet := range r.userAgent {
		collect(sheet, OriginUserAgent)
	}
	for _, sheet := range sheets {
		collect(sheet, OriginAuthor)
	}
	if r.inlineStyles {
		if attr, ok := node.Attr("style"); ok {
			for _, d := range parser.ParseInline(attr) {
				decls = append(decls, weightedDeclaration{
					decl:        d,
					priority:    cascadePriority(OriginInline, d.Important),
					specificity: parser.Specificity{A: 1},
				})
			}
		}
	}

	// Stable: equal weights keep source order, so the later rule wins.
	sort.SliceStable(decls, func(i, j int) bool {
		if decls[i].priority != decls[j].priority {
			return decls[i].priority < decls[j].priority
		}
		return decls[i].specificity.Less(decls[j].specificity)
	})
	return decls
}

func cascadePriority(origin Origin, important bool) int {
	switch origin {
	case OriginUserAgent:
		if important {
			return 5
		}
		return 0
	case OriginAuthor:
		if important {
			return 3
		}
		return 1
	default:
		if important {
			return 4
		}
		return 2
	}
}

// matchRule returns the most specific selector of rule matching node.
// Rule selectors are stored in descending specificity, so the first match wins.
func matchRule(node *dom.Node, rule parser.Rule) (parser.Selector, bool) {
	for _, sel := range rule.Selectors {
		if Matches(node, sel) {
			return sel, true
		}
	}
	return parser.Selector{}, false
}

// Matches reports whether a simple selector matches an element.
func Matches(node *dom.Node, sel parser.Selector) bool {
	if !node.IsElement() {
		return false
	}
	if !sel.IsUniversal() && sel.TagName != node.Tag {
		return false
	}
	if sel.ID != "" {
		if id, ok := node.ID(); !ok || id != sel.ID {
			return false
		}
	}
	for _, class := range sel.Classes {
		if !node.HasClass(class) {
			return false
		}
	}
	return true
}
