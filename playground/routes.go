package playground

import (
	"crypto/subtle"
	"net/http"
	"reflect"

	"github.com/andreyvit/httpform"
	"github.com/uptrace/bunrouter"

	"github.com/submitguard/submitguard"
	"github.com/submitguard/submitguard/journal"
)

func (app *App) initRoutes() {
	r := bunrouter.New()
	r.GET("/", app.wrap(app.handleHome))
	r.POST("/forms/:form/submit", app.wrap(app.handleSubmit))
	r.GET("/forms/:form/journal", app.wrap(app.handleJournal))
	app.router = r
}

func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func (app *App) wrap(h bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		if err := h(w, req); err != nil {
			app.writeError(w, err)
		}
		return nil
	}
}

func decodeInput(req bunrouter.Request, in any) error {
	err := httpform.Default.DecodeVal(req.Request, req.Params(), reflect.ValueOf(in))
	if err != nil {
		return httpError(http.StatusBadRequest, "bad_input", err.Error())
	}
	return nil
}

type formView struct {
	ID       string      `json:"id"`
	Method   string      `json:"method"`
	Guarded  bool        `json:"guarded"`
	Baseline string      `json:"baseline"`
	Fields   []fieldView `json:"fields"`
}

type fieldView struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type homeData struct {
	AppName string
	Forms   []*formView
}

func (app *App) handleHome(w http.ResponseWriter, req bunrouter.Request) error {
	app.domLock.Lock()
	data := &homeData{
		AppName: app.Settings.AppName,
		Forms:   app.describeForms(),
	}
	app.domLock.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return app.templates.render(w, "demo", app.Settings.AppName, data)
}

func (app *App) describeForms() []*formView {
	var result []*formView
	for _, form := range app.doc.Forms() {
		fv := &formView{
			ID:       form.Attr("id"),
			Method:   form.Attr("method"),
			Guarded:  app.Settings.GuardAllForms || !submitguard.IdempotentMethod(form.Attr("method")),
			Baseline: form.Attr(submitguard.BaselineAttr),
		}
		for _, c := range form.Controls() {
			name := c.Attr("name")
			if name == "" || c.ControlDisabled() || c.IsSubmitControl() {
				continue
			}
			fv.Fields = append(fv.Fields, fieldView{Name: name, Values: c.ControlValues()})
		}
		result = append(result, fv)
	}
	return result
}

type submitIn struct {
	FormID    string `form:"form,path" json:"-"`
	Submitter string `json:"submitter"`
}

type submitOut struct {
	Form       string `json:"form"`
	Allowed    bool   `json:"allowed"`
	Duplicate  bool   `json:"duplicate"`
	Serialized string `json:"serialized"`
	Baseline   string `json:"baseline"`
}

// handleSubmit replays the posted values onto the in-memory form and
// dispatches a submit event through the guard. A suppressed duplicate is a
// normal 200 outcome, not an error.
func (app *App) handleSubmit(w http.ResponseWriter, req bunrouter.Request) error {
	var in submitIn
	if err := decodeInput(req, &in); err != nil {
		return err
	}
	if err := app.enforceSubmitRateLimit(); err != nil {
		return err
	}

	if err := req.Request.ParseForm(); err != nil {
		return httpError(http.StatusBadRequest, "bad_form", err.Error())
	}
	values := req.Request.PostForm
	delete(values, "submitter")

	app.domLock.Lock()
	defer app.domLock.Unlock()

	form := app.doc.Form(in.FormID)
	if form == nil {
		return httpError(http.StatusNotFound, "unknown_form", "no form with id "+in.FormID)
	}

	applyValues(form, values)
	serialized := submitguard.Serialize(form)
	allowed := form.Submit(findSubmitter(form, in.Submitter))

	writeJSON(w, http.StatusOK, &submitOut{
		Form:       in.FormID,
		Allowed:    allowed,
		Duplicate:  !allowed,
		Serialized: serialized,
		Baseline:   form.Attr(submitguard.BaselineAttr),
	})
	return nil
}

type journalIn struct {
	FormID string `form:"form,path" json:"-"`
	Limit  int    `json:"limit"`
}

type journalRecordOut struct {
	ID         journal.RecordID `json:"id"`
	Time       string           `json:"time"`
	Serialized string           `json:"serialized"`
	FieldCount int              `json:"fieldCount"`
}

type journalOut struct {
	Form    string              `json:"form"`
	Records []*journalRecordOut `json:"records"`
}

func (app *App) handleJournal(w http.ResponseWriter, req bunrouter.Request) error {
	var in journalIn
	if err := decodeInput(req, &in); err != nil {
		return err
	}
	if err := app.checkAdminToken(req.Request); err != nil {
		return err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = app.Settings.JournalRecentDefaultSize
	}
	if limit <= 0 {
		limit = 20
	}

	recs, err := app.jrnl.Recent(in.FormID, limit)
	if err != nil {
		return err
	}
	out := &journalOut{Form: in.FormID, Records: make([]*journalRecordOut, 0, len(recs))}
	for _, rec := range recs {
		out.Records = append(out.Records, &journalRecordOut{
			ID:         rec.ID,
			Time:       rec.Time.Format("2006-01-02 15:04:05"),
			Serialized: rec.Serialized,
			FieldCount: rec.FieldCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
	return nil
}

func (app *App) checkAdminToken(r *http.Request) error {
	expected := string(app.Settings.AdminToken)
	if expected == "" {
		return nil
	}
	actual := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(actual), []byte(expected)) != 1 {
		return httpError(http.StatusForbidden, "forbidden", "")
	}
	return nil
}
