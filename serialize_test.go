package submitguard

import (
	"testing"

	"github.com/submitguard/submitguard/dom"
)

func parseForm(t *testing.T, html string) *dom.Element {
	t.Helper()
	doc, err := dom.ParseString(html)
	if err != nil {
		t.Fatal(err)
	}
	form := doc.Form("f")
	if form == nil {
		t.Fatal("** no form with id=f in test HTML")
	}
	return form
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"simple", `<form id="f"><input name="a" value="1"><input name="b" value="2"></form>`,
			"a=1&b=2"},
		{"escaping", `<form id="f"><input name="email" value="a@x.com"><input name="q" value="two words"></form>`,
			"email=a%40x.com&q=two+words"},
		{"unnamed skipped", `<form id="f"><input value="1"><input name="b" value="2"></form>`,
			"b=2"},
		{"disabled skipped", `<form id="f"><input name="a" value="1" disabled><input name="b" value="2"></form>`,
			"b=2"},
		{"disabled fieldset", `<form id="f"><fieldset disabled><input name="a" value="1"></fieldset><input name="b" value="2"></form>`,
			"b=2"},
		{"submit controls skipped", `<form id="f"><input name="a" value="1"><input type="submit" name="op" value="save"><button name="op" value="delete">Go</button></form>`,
			"a=1"},
		{"file input skipped", `<form id="f"><input type="file" name="upload"><input name="a" value="1"></form>`,
			"a=1"},
		{"unchecked boxes skipped", `<form id="f"><input type="checkbox" name="x"><input type="checkbox" name="y" checked></form>`,
			"y=on"},
		{"multi select", `<form id="f"><select name="tag" multiple><option value="go" selected></option><option value="js"></option><option value="rust" selected></option></select></form>`,
			"tag=go&tag=rust"},
		{"empty form", `<form id="f"></form>`,
			""},
		{"empty value kept", `<form id="f"><input name="a" value=""></form>`,
			"a="},
	}
	for _, tt := range tests {
		form := parseForm(t, tt.html)
		actual := Serialize(form)
		if actual != tt.expected {
			t.Errorf("** %s: Serialize = %q, expected %q", tt.name, actual, tt.expected)
		} else {
			t.Logf("✓ %s: %q", tt.name, actual)
		}
	}
}

func TestSerializeDocumentOrderNotSorted(t *testing.T) {
	form := parseForm(t, `<form id="f"><input name="z" value="1"><input name="a" value="2"></form>`)
	if actual := Serialize(form); actual != "z=1&a=2" {
		t.Errorf("** Serialize = %q, expected document order z=1&a=2", actual)
	}
}

func TestFieldCount(t *testing.T) {
	form := parseForm(t, `<form id="f">
		<input name="a" value="1">
		<input name="b" value="2" disabled>
		<input type="submit" name="op" value="save">
		<select name="tag" multiple><option value="go" selected></option><option value="rust" selected></option></select>
	</form>`)
	if n := FieldCount(form); n != 3 {
		t.Errorf("** FieldCount = %d, expected 3", n)
	}
}
