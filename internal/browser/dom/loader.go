// File: internal/browser/dom/loader.go
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoRootElement is returned when the markup contains no element at all.
var ErrNoRootElement = errors.New("document has no root element")

// Document is a parsed page: the element tree plus the text of any embedded
// <style> elements, in document order.
type Document struct {
	Root   *Node
	Styles []string
}

// Parse reads HTML markup and converts it into the document tree.
// Comments and doctypes are dropped, as are whitespace-only text nodes.
func Parse(r io.Reader) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	if len(gq.Nodes) == 0 {
		return nil, ErrNoRootElement
	}

	var rootNode *html.Node
	for n := gq.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			rootNode = n
			break
		}
	}
	if rootNode == nil {
		return nil, ErrNoRootElement
	}

	doc := &Document{Root: convert(rootNode)}
	gq.Find("style").Each(func(_ int, s *goquery.Selection) {
		if css := strings.TrimSpace(s.Text()); css != "" {
			doc.Styles = append(doc.Styles, css)
		}
	})
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

func convert(n *html.Node) *Node {
	switch n.Type {
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			// First occurrence wins for duplicated attributes.
			if _, dup := attrs[a.Key]; !dup {
				attrs[a.Key] = a.Val
			}
		}
		el := Elem(n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return Text(n.Data)
	default:
		return nil
	}
}
