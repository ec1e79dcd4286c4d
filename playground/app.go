// Package playground is a demo web app for the submit guard: it holds a
// server-side DOM with a few forms, lets HTTP clients replay submissions onto
// them, and reports which submissions the guard allowed or suppressed.
package playground

import (
	"log"
	"os"
	"sync"

	"github.com/uptrace/bunrouter"
	"golang.org/x/time/rate"

	"github.com/submitguard/submitguard"
	"github.com/submitguard/submitguard/dom"
	"github.com/submitguard/submitguard/journal"
)

type AppOptions struct {
	Logf func(format string, args ...any)
}

type App struct {
	Settings *Settings
	logf     func(format string, args ...any)

	doc     *dom.Document
	guard   *submitguard.Guard
	binding *submitguard.Binding
	jrnl    *journal.Journal

	submitLimiter *rate.Limiter
	router        *bunrouter.Router
	templates     *templateSet

	// Submission events must be dispatched serially per form; HTTP handlers
	// are not, so all DOM access goes through this lock.
	domLock sync.Mutex
}

func NewApp(settings *Settings, opt AppOptions) (*App, error) {
	if opt.Logf == nil {
		opt.Logf = log.Printf
	}
	app := &App{
		Settings: settings,
		logf:     opt.Logf,
	}

	doc, err := dom.ParseString(formsHTML)
	if err != nil {
		return nil, err
	}
	app.doc = doc

	if settings.DataDir == "" {
		settings.DataDir = must(os.MkdirTemp("", "submitguard*"))
	}
	ensure(os.MkdirAll(settings.DataDir, 0755))
	app.jrnl, err = journal.Open(settings.DataDir, journal.Options{
		Logf:    opt.Logf,
		Verbose: settings.VerboseDB,
	})
	if err != nil {
		return nil, err
	}

	app.guard = &submitguard.Guard{
		Observer: app.recordAllowedSubmission,
		Logf:     opt.Logf,
	}
	app.binding = submitguard.Bind(doc.Root, app.guard, submitguard.BindOptions{
		GuardAll: settings.GuardAllForms,
	})

	limits := settings.SubmitRateLimit
	if limits.PerSec == 0 {
		limits = RateLimitSettings{PerSec: 10, Burst: 20}
	}
	app.submitLimiter = rate.NewLimiter(limits.PerSec, limits.Burst)

	app.templates, err = loadTemplates()
	if err != nil {
		app.jrnl.Close()
		return nil, err
	}

	app.initRoutes()
	return app, nil
}

func (app *App) Close() {
	app.binding.Unbind()
	app.jrnl.Close()
}

func (app *App) Journal() *journal.Journal {
	return app.jrnl
}

// recordAllowedSubmission is the guard's observer: it runs after a submission
// has been allowed and its baseline stored, and has no vote in that decision.
func (app *App) recordAllowedSubmission(form *dom.Element, serialized string, submitter *dom.Element) error {
	formID := form.Attr("id")
	id, err := app.jrnl.Append(formID, serialized, submitguard.FieldCount(form))
	if err != nil {
		return err
	}
	app.logf("journal: %v recorded for form %s", id, formID)
	return nil
}
