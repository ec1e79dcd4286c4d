package submitguard

import (
	"github.com/submitguard/submitguard/dom"
)

// BaselineAttr stores the serialization of the most recent allowed
// submission directly on the form element. Absent until the first allowed
// submission; removed implicitly when the form leaves the document.
const BaselineAttr = "data-form-submit-single-last"

// Observer is notified after a submission is allowed and its baseline
// recorded. Observer errors are reported through Logf and never affect the
// outcome of the submission.
type Observer func(form *dom.Element, serialized string, submitter *dom.Element) error

type Guard struct {
	Observer Observer
	Logf     func(format string, args ...any)
}

// OnFormSubmit decides a single submission: it serializes the form, compares
// against the baseline stored on the element, and either cancels the event
// (identical values) or lets it proceed and records the new baseline.
// Exactly one of the two happens per call; the baseline changes if and only
// if the submission is allowed. It never fails.
//
// The guard does not inspect the form's method: callers exclude forms with
// idempotent methods when binding (see Bind).
func (g *Guard) OnFormSubmit(e *dom.SubmitEvent) {
	current := Serialize(e.Form)
	if previous, ok := e.Form.LookupAttr(BaselineAttr); ok && current == previous {
		e.PreventDefault()
		return
	}
	e.Form.SetAttr(BaselineAttr, current)
	if g.Observer != nil {
		if err := g.Observer(e.Form, current, e.Submitter); err != nil && g.Logf != nil {
			g.Logf("WARNING: submitguard: observer failed: %v", err)
		}
	}
}
