// Package dom implements a minimal in-memory HTML element tree: just enough
// structure to model documents, forms and their controls, and to dispatch
// submit events the way a browser does (synchronously, bubbling to ancestors).
//
// It is deliberately not a full DOM. Attributes are the only element state,
// so things a browser tracks as live properties (checkedness, selection,
// current input value) are represented by the corresponding attributes.
package dom

import (
	"strings"
)

type Attr struct {
	Name  string
	Value string
}

// Element is a node in the tree. Tag and attribute names are lowercase;
// Set/Lookup methods fold case so callers don't have to.
type Element struct {
	Tag    string
	Parent *Element

	attrs    []Attr
	children []*Element
	text     string

	bindings []submitBinding
}

func NewElement(tag string, attrs ...Attr) *Element {
	el := &Element{Tag: strings.ToLower(tag)}
	for _, a := range attrs {
		el.SetAttr(a.Name, a.Value)
	}
	return el
}

func (el *Element) Attr(name string) string {
	v, _ := el.LookupAttr(name)
	return v
}

func (el *Element) LookupAttr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range el.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (el *Element) HasAttr(name string) bool {
	_, ok := el.LookupAttr(name)
	return ok
}

// SetAttr adds or overwrites an attribute, preserving the position of an
// existing one. Returns el for use in literals-style tree building.
func (el *Element) SetAttr(name, value string) *Element {
	name = strings.ToLower(name)
	for i, a := range el.attrs {
		if a.Name == name {
			el.attrs[i].Value = value
			return el
		}
	}
	el.attrs = append(el.attrs, Attr{name, value})
	return el
}

func (el *Element) RemoveAttr(name string) {
	name = strings.ToLower(name)
	for i, a := range el.attrs {
		if a.Name == name {
			el.attrs = append(el.attrs[:i], el.attrs[i+1:]...)
			return
		}
	}
}

func (el *Element) AppendChild(children ...*Element) *Element {
	for _, c := range children {
		if c.Parent != nil {
			c.Remove()
		}
		c.Parent = el
		el.children = append(el.children, c)
	}
	return el
}

func (el *Element) Children() []*Element {
	return el.children
}

// Remove detaches el from its parent. Any state stored in el's attributes
// goes away with it; nothing else in the tree references it.
func (el *Element) Remove() {
	p := el.Parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == el {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	el.Parent = nil
}

func (el *Element) appendText(s string) {
	el.text += s
}

// Text returns the text content directly inside el (not descendants).
func (el *Element) Text() string {
	return el.text
}

func (el *Element) SetText(s string) {
	el.text = s
}

// Walk visits el and its descendants in document order (pre-order).
func (el *Element) Walk(f func(*Element)) {
	f(el)
	for _, c := range el.children {
		c.Walk(f)
	}
}

// Closest returns the nearest ancestor (or el itself) with the given tag.
func (el *Element) Closest(tag string) *Element {
	tag = strings.ToLower(tag)
	for cur := el; cur != nil; cur = cur.Parent {
		if cur.Tag == tag {
			return cur
		}
	}
	return nil
}

// Descendants returns descendants with the given tag in document order.
func (el *Element) Descendants(tag string) []*Element {
	tag = strings.ToLower(tag)
	var result []*Element
	el.Walk(func(c *Element) {
		if c != el && c.Tag == tag {
			result = append(result, c)
		}
	})
	return result
}

type Document struct {
	Root *Element
}

func (doc *Document) Forms() []*Element {
	return doc.Root.Descendants("form")
}

// Form returns the form with the given id attribute, or nil.
func (doc *Document) Form(id string) *Element {
	for _, form := range doc.Forms() {
		if form.Attr("id") == id {
			return form
		}
	}
	return nil
}
