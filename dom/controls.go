package dom

import "strings"

var controlTags = map[string]bool{
	"input":    true,
	"select":   true,
	"textarea": true,
	"button":   true,
}

func (el *Element) IsFormControl() bool {
	return controlTags[el.Tag]
}

// Controls returns the form's controls in document order.
func (form *Element) Controls() []*Element {
	var result []*Element
	form.Walk(func(c *Element) {
		if c != form && c.IsFormControl() {
			result = append(result, c)
		}
	})
	return result
}

// ControlDisabled reports whether the control is disabled, either directly
// or through an enclosing fieldset. The search stops at the form.
func (el *Element) ControlDisabled() bool {
	if el.HasAttr("disabled") {
		return true
	}
	for cur := el.Parent; cur != nil && cur.Tag != "form"; cur = cur.Parent {
		if cur.Tag == "fieldset" && cur.HasAttr("disabled") {
			return true
		}
	}
	return false
}

// IsSubmitControl reports whether activating el submits the form:
// input type=submit/image, or a button whose type is submit or unset.
func (el *Element) IsSubmitControl() bool {
	switch el.Tag {
	case "input":
		t := strings.ToLower(el.Attr("type"))
		return t == "submit" || t == "image"
	case "button":
		t := strings.ToLower(el.Attr("type"))
		return t == "" || t == "submit"
	}
	return false
}

// ControlValues returns the values the control contributes to a standard
// form serialization, in order. Controls that contribute nothing in their
// current state (unchecked checkboxes, file inputs, buttons) return nil.
// The name attribute is not consulted here; callers filter unnamed controls.
func (el *Element) ControlValues() []string {
	switch el.Tag {
	case "input":
		switch strings.ToLower(el.Attr("type")) {
		case "checkbox", "radio":
			if !el.HasAttr("checked") {
				return nil
			}
			if v, ok := el.LookupAttr("value"); ok {
				return []string{v}
			}
			return []string{"on"}
		case "file", "submit", "image", "reset", "button":
			// File values are not serializable as plain text; button values
			// only accompany the activating control, which the standard
			// no-submitter serialization omits.
			return nil
		default:
			return []string{el.Attr("value")}
		}
	case "button":
		return nil
	case "textarea":
		return []string{el.Text()}
	case "select":
		return el.selectValues()
	}
	return nil
}

func (el *Element) selectValues() []string {
	var values []string
	options := el.Descendants("option")
	for _, opt := range options {
		if opt.HasAttr("selected") && !opt.HasAttr("disabled") {
			values = append(values, opt.OptionValue())
		}
	}
	if values == nil && !el.HasAttr("multiple") {
		// A single select without an explicit selection shows (and submits)
		// its first enabled option.
		for _, opt := range options {
			if !opt.HasAttr("disabled") {
				return []string{opt.OptionValue()}
			}
		}
	}
	return values
}

// OptionValue returns the value an option element submits: its value
// attribute, falling back to its trimmed text content.
func (opt *Element) OptionValue() string {
	if v, ok := opt.LookupAttr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}
