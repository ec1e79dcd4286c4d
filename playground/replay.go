package playground

import (
	"net/url"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/submitguard/submitguard/dom"
)

// applyValues replays a posted value set onto the in-memory form, mutating
// control state the way filling the form in a browser would: text-ish inputs
// take posted values in document order, checkboxes and radios become checked
// exactly when their value was posted, select options likewise.
func applyValues(form *dom.Element, values url.Values) {
	used := make(map[string]int)
	for _, c := range form.Controls() {
		name := c.Attr("name")
		if name == "" || c.IsSubmitControl() {
			continue
		}
		posted := values[name]
		switch c.Tag {
		case "input":
			switch strings.ToLower(c.Attr("type")) {
			case "checkbox", "radio":
				setChecked(c, slices.Contains(posted, checkedValue(c)))
			case "file":
				// no server-side replay for file selections
			default:
				if i := used[name]; i < len(posted) {
					c.SetAttr("value", posted[i])
					used[name] = i + 1
				}
			}
		case "textarea":
			if i := used[name]; i < len(posted) {
				c.SetText(posted[i])
				used[name] = i + 1
			}
		case "select":
			for _, opt := range c.Descendants("option") {
				setSelected(opt, slices.Contains(posted, opt.OptionValue()))
			}
		}
	}
}

// findSubmitter locates the submit control whose value matches the clicked
// button reported by the client. Returns nil when no button was reported.
func findSubmitter(form *dom.Element, value string) *dom.Element {
	if value == "" {
		return nil
	}
	for _, c := range form.Controls() {
		if c.IsSubmitControl() && c.Attr("value") == value {
			return c
		}
	}
	return nil
}

func checkedValue(c *dom.Element) string {
	if v, ok := c.LookupAttr("value"); ok {
		return v
	}
	return "on"
}

func setChecked(c *dom.Element, checked bool) {
	if checked {
		c.SetAttr("checked", "")
	} else {
		c.RemoveAttr("checked")
	}
}

func setSelected(opt *dom.Element, selected bool) {
	if selected {
		opt.SetAttr("selected", "")
	} else {
		opt.RemoveAttr("selected")
	}
}
