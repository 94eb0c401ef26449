// File: internal/browser/dom/node.go
package dom

import (
	"sort"
	"strings"
)

// NodeType discriminates the two kinds of document node.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Node is a document tree node. Tag, Attributes and Children are only
// meaningful for ElementNode, Text only for TextNode. Nodes are treated as
// read-only once a document has been built.
type Node struct {
	Type       NodeType
	Tag        string
	Attributes map[string]string
	Text       string
	Children   []*Node
}

// Elem creates an element node. Tag names are lower-cased.
func Elem(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{
		Type:       ElementNode,
		Tag:        strings.ToLower(tag),
		Attributes: attrs,
		Children:   children,
	}
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Type: TextNode, Text: content}
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool { return n != nil && n.Type == ElementNode }

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

// ID returns the element's id attribute.
func (n *Node) ID() (string, bool) {
	return n.Attr("id")
}

// Classes returns the set of class names on the element.
func (n *Node) Classes() map[string]struct{} {
	set := make(map[string]struct{})
	v, ok := n.Attr("class")
	if !ok {
		return set
	}
	for _, c := range strings.Fields(v) {
		set[c] = struct{}{}
	}
	return set
}

// HasClass reports whether the element carries the class name.
func (n *Node) HasClass(name string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == name {
			return true
		}
	}
	return false
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Walk visits the subtree in pre-order. Returning false from fn stops descent
// into that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// String renders a short description such as `div#main.a.b` or `"text"`.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Type == TextNode {
		text := strings.Join(strings.Fields(n.Text), " ")
		if len(text) > 32 {
			text = text[:29] + "..."
		}
		return `"` + text + `"`
	}
	var b strings.Builder
	b.WriteString(n.Tag)
	if id, ok := n.ID(); ok && id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	classes := make([]string, 0)
	for c := range n.Classes() {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}
