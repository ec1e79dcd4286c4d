package dom

import (
	"golang.org/x/exp/slices"
)

// SubmitEvent is dispatched on a form and bubbles to its ancestors. Handlers
// run synchronously, in binding order, within the dispatching call; there is
// no yield point between them.
type SubmitEvent struct {
	Form      *Element
	Submitter *Element

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault suppresses the default action (the actual submission).
// Other handlers bound to the event still run.
func (e *SubmitEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *SubmitEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from bubbling to further ancestors after
// the current element's handlers finish.
func (e *SubmitEvent) StopPropagation() {
	e.propagationStopped = true
}

type SubmitHandler func(e *SubmitEvent)

type submitBinding struct {
	name    string
	filter  func(*Element) bool
	handler SubmitHandler
}

// OnSubmit registers a delegated submit handler on el under the given
// namespace name. The handler runs for submit events dispatched on el or any
// descendant whose form passes the filter (nil filter matches every form).
// Binding the same name twice adds a second handler; use OffSubmit to detach
// everything bound under a name.
func (el *Element) OnSubmit(name string, filter func(*Element) bool, h SubmitHandler) {
	el.bindings = append(el.bindings, submitBinding{name, filter, h})
}

// OffSubmit detaches all submit handlers bound on el under the given name.
func (el *Element) OffSubmit(name string) {
	o := 0
	for _, b := range el.bindings {
		if b.name != name {
			el.bindings[o] = b
			o++
		}
	}
	el.bindings = el.bindings[:o]
}

// Submit dispatches a submit event on the form and reports whether the
// default action proceeds (i.e. no handler called PreventDefault). The event
// bubbles from the form to the root of the tree; handlers bound on each
// element run in binding order. Dispatch runs to completion before Submit
// returns, so two submissions of the same form can never interleave.
func (form *Element) Submit(submitter *Element) bool {
	e := &SubmitEvent{Form: form, Submitter: submitter}
	for cur := form; cur != nil; cur = cur.Parent {
		// Handlers may rebind; run against a snapshot.
		for _, b := range slices.Clone(cur.bindings) {
			if b.filter == nil || b.filter(e.Form) {
				b.handler(e)
			}
		}
		if e.propagationStopped {
			break
		}
	}
	return !e.defaultPrevented
}
