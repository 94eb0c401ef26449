// File: internal/browser/dom/loader_test.go
package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildsElementTree(t *testing.T) {
	doc, err := ParseString(`<!DOCTYPE html>
<html>
  <head><title>t</title></head>
  <body>
    <!-- dropped -->
    <div id="a" class="x y"><p>Hello</p></div>
  </body>
</html>`)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	assert.Equal(t, "html", doc.Root.Tag)

	require.Len(t, doc.Root.Children, 2, "head and body")
	body := doc.Root.Children[1]
	assert.Equal(t, "body", body.Tag)

	require.Len(t, body.Children, 1, "comments and blank text are dropped")
	div := body.Children[0]
	id, _ := div.ID()
	assert.Equal(t, "a", id)
	assert.True(t, div.HasClass("y"))

	p := div.Children[0]
	require.Len(t, p.Children, 1)
	assert.Equal(t, TextNode, p.Children[0].Type)
	assert.Equal(t, "Hello", p.Children[0].Text)
}

func TestParseCollectsEmbeddedStyles(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><head>
<style>div { display: block; }</style>
<style>   </style>
</head><body><style>p { color: red; }</style></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"div { display: block; }", "p { color: red; }"}, doc.Styles)
}

func TestParseDuplicateAttributeKeepsFirst(t *testing.T) {
	doc, err := ParseString(`<div id="first" id="second"></div>`)
	require.NoError(t, err)

	var div *Node
	doc.Root.Walk(func(n *Node) bool {
		if n.Tag == "div" {
			div = n
		}
		return true
	})
	require.NotNil(t, div)
	id, _ := div.ID()
	assert.Equal(t, "first", id)
}

func TestParseWithoutElements(t *testing.T) {
	doc, err := ParseString("")
	// The html parser always synthesizes <html><head><body>.
	require.NoError(t, err)
	assert.Equal(t, "html", doc.Root.Tag)
	assert.Equal(t, 3, doc.Root.Count())
}
