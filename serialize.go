// Package submitguard suppresses duplicate form submissions: a submission
// whose serialized field values are identical to the immediately preceding
// allowed submission of the same form is cancelled, and anything else
// proceeds and becomes the new baseline.
//
// The baseline travels with the form itself, stored in the
// data-form-submit-single-last attribute, so it disappears together with the
// element and no external registry or cleanup is needed.
package submitguard

import (
	"net/url"
	"strings"

	"github.com/submitguard/submitguard/dom"
)

// Serialize encodes the form's current control values as "&"-joined,
// percent-encoded name=value pairs in document order, per the standard
// application/x-www-form-urlencoded convention. Disabled and unnamed
// controls are skipped, as are submit controls (so two submit buttons on an
// otherwise identical form serialize identically) and file inputs (their
// values have no plain-text serialization; see the note on FieldCount).
func Serialize(form *dom.Element) string {
	var b strings.Builder
	for _, c := range form.Controls() {
		name := c.Attr("name")
		if name == "" || c.ControlDisabled() || c.IsSubmitControl() {
			continue
		}
		for _, v := range c.ControlValues() {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// FieldCount returns the number of name=value pairs Serialize would produce.
func FieldCount(form *dom.Element) int {
	n := 0
	for _, c := range form.Controls() {
		if c.Attr("name") == "" || c.ControlDisabled() || c.IsSubmitControl() {
			continue
		}
		n += len(c.ControlValues())
	}
	return n
}
