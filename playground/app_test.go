package playground

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestApp(t *testing.T, adjust func(*Settings)) *App {
	t.Helper()
	settings := &Settings{
		AppName:                  "Submit Guard Playground",
		DataDir:                  t.TempDir(),
		DisableRateLimits:        true,
		JournalRecentDefaultSize: 10,
	}
	if adjust != nil {
		adjust(settings)
	}
	app, err := NewApp(settings, AppOptions{Logf: t.Logf})
	if err != nil {
		t.Fatalf("** NewApp failed: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func postSubmit(t *testing.T, app *App, formID string, values url.Values) *submitOut {
	t.Helper()
	req := httptest.NewRequest("POST", "/forms/"+formID+"/submit", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("** POST /forms/%s/submit returned %d: %s", formID, w.Code, w.Body.String())
	}
	var out submitOut
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("** bad submit response: %v", err)
	}
	return &out
}

func TestHomePage(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("** GET / returned %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"signup", "profile", "search", "Not submitted yet"} {
		if !strings.Contains(body, want) {
			t.Errorf("** home page is missing %q", want)
		}
	}
	// Disabled controls never serialize, so the page must not list them either.
	if strings.Contains(body, "referral") {
		t.Errorf("** home page lists a disabled control")
	}
}

func TestSubmitDeduplication(t *testing.T) {
	app := newTestApp(t, nil)

	first := postSubmit(t, app, "signup", url.Values{
		"name": {"Alice"}, "email": {"a@x.com"}, "submitter": {"save"},
	})
	if first.Form != "signup" {
		t.Fatalf("** route did not resolve the form path parameter: %+v", first)
	}
	if !first.Allowed || first.Duplicate {
		t.Fatalf("** first submission not allowed: %+v", first)
	}
	if first.Baseline != "name=Alice&email=a%40x.com" {
		t.Errorf("** baseline = %q", first.Baseline)
	}

	// Same values, different button: still a duplicate.
	second := postSubmit(t, app, "signup", url.Values{
		"name": {"Alice"}, "email": {"a@x.com"}, "submitter": {"save-and-invite"},
	})
	if second.Allowed || !second.Duplicate {
		t.Errorf("** identical resubmission was not suppressed: %+v", second)
	}
	if second.Baseline != first.Baseline {
		t.Errorf("** baseline changed on duplicate: %q", second.Baseline)
	}

	third := postSubmit(t, app, "signup", url.Values{
		"name": {"Alice"}, "email": {"b@x.com"}, "submitter": {"save"},
	})
	if !third.Allowed {
		t.Errorf("** changed submission was suppressed: %+v", third)
	}
	if third.Baseline != "name=Alice&email=b%40x.com" {
		t.Errorf("** baseline after change = %q", third.Baseline)
	}
}

func TestSubmitIdempotentFormNeverGuarded(t *testing.T) {
	app := newTestApp(t, nil)

	for i := 0; i < 3; i++ {
		out := postSubmit(t, app, "search", url.Values{"q": {"weather"}})
		if !out.Allowed {
			t.Errorf("** GET-method form submission %d was suppressed", i+1)
		}
		if out.Baseline != "" {
			t.Errorf("** guard recorded a baseline on an exempt form: %q", out.Baseline)
		}
	}
}

func TestSubmitRichControls(t *testing.T) {
	app := newTestApp(t, nil)

	out := postSubmit(t, app, "profile", url.Values{
		"bio": {"hello"}, "newsletter": {"on"}, "plan": {"pro"},
	})
	if !out.Allowed {
		t.Fatalf("** profile submission suppressed: %+v", out)
	}
	if out.Serialized != "bio=hello&newsletter=on&plan=pro" {
		t.Errorf("** serialized = %q", out.Serialized)
	}

	// Unchecking the checkbox changes the value set.
	out = postSubmit(t, app, "profile", url.Values{
		"bio": {"hello"}, "plan": {"pro"},
	})
	if !out.Allowed {
		t.Errorf("** changed checkbox state treated as duplicate")
	}
	if out.Serialized != "bio=hello&plan=pro" {
		t.Errorf("** serialized = %q", out.Serialized)
	}

	out = postSubmit(t, app, "profile", url.Values{
		"bio": {"hello"}, "plan": {"pro"},
	})
	if !out.Duplicate {
		t.Errorf("** identical resubmission was not suppressed")
	}
}

func TestSubmitUnknownForm(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("POST", "/forms/nonexistent/submit", strings.NewReader("a=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("** unknown form returned %d, wanted 404", w.Code)
	}
}

func TestJournalEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	postSubmit(t, app, "signup", url.Values{"name": {"Alice"}, "email": {"a@x.com"}})
	postSubmit(t, app, "signup", url.Values{"name": {"Alice"}, "email": {"a@x.com"}}) // duplicate
	postSubmit(t, app, "signup", url.Values{"name": {"Alice"}, "email": {"b@x.com"}})

	req := httptest.NewRequest("GET", "/forms/signup/journal", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("** GET journal returned %d: %s", w.Code, w.Body.String())
	}
	var out journalOut
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("** bad journal response: %v", err)
	}
	if out.Form != "signup" {
		t.Errorf("** journal route did not resolve the form path parameter: %q", out.Form)
	}
	if len(out.Records) != 2 {
		t.Fatalf("** journal has %d records, wanted 2 (duplicates must not be recorded)", len(out.Records))
	}
	if out.Records[0].Serialized != "name=Alice&email=b%40x.com" {
		t.Errorf("** newest journal record = %q", out.Records[0].Serialized)
	}
	if out.Records[1].Serialized != "name=Alice&email=a%40x.com" {
		t.Errorf("** older journal record = %q", out.Records[1].Serialized)
	}
}

func TestJournalAdminToken(t *testing.T) {
	app := newTestApp(t, func(s *Settings) {
		s.AdminToken = "hunter2"
	})

	req := httptest.NewRequest("GET", "/forms/signup/journal", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("** journal without token returned %d, wanted 403", w.Code)
	}

	req = httptest.NewRequest("GET", "/forms/signup/journal", nil)
	req.Header.Set("X-Admin-Token", "hunter2")
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("** journal with token returned %d, wanted 200", w.Code)
	}
}
