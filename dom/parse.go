package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse builds a Document from HTML. The x/net/html parser normalizes the
// tree the way browsers do (implied html/head/body elements, lowercased
// names), so a fragment like "<form>...</form>" parses fine.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: %w", err)
	}
	root := convertChildren(nil, node)
	if root == nil {
		return nil, fmt.Errorf("dom: no root element")
	}
	return &Document{Root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func convertChildren(parent *Element, n *html.Node) *Element {
	var first *Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el := NewElement(c.Data)
			for _, a := range c.Attr {
				el.SetAttr(a.Key, a.Val)
			}
			if parent != nil {
				parent.AppendChild(el)
			}
			if first == nil {
				first = el
			}
			convertChildren(el, c)
		case html.TextNode:
			if parent != nil {
				parent.appendText(c.Data)
			}
		}
	}
	return first
}
