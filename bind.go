package submitguard

import (
	"strings"

	"github.com/submitguard/submitguard/dom"
)

// DefaultNamespace is the event namespace Bind attaches under, so an
// application can detach the guard without touching its own submit handlers.
const DefaultNamespace = "submit-single"

type BindOptions struct {
	// Namespace overrides DefaultNamespace.
	Namespace string

	// GuardAll extends guarding to forms with an idempotent method. By
	// default such forms are left alone: resubmitting them is harmless on
	// the server, and suppressing it would break reload-style UX.
	GuardAll bool
}

type Binding struct {
	root      *dom.Element
	namespace string
}

// Bind attaches the guard as a delegated submit handler on root (typically
// the document root), filtered to form elements. There is no global
// registry: each Bind call owns exactly one delegated binding, and Unbind
// removes it.
func Bind(root *dom.Element, g *Guard, opts BindOptions) *Binding {
	ns := opts.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	filter := func(form *dom.Element) bool {
		if form.Tag != "form" {
			return false
		}
		return opts.GuardAll || !IdempotentMethod(form.Attr("method"))
	}
	root.OnSubmit(ns, filter, g.OnFormSubmit)
	return &Binding{root: root, namespace: ns}
}

func (b *Binding) Unbind() {
	b.root.OffSubmit(b.namespace)
}

// IdempotentMethod reports whether a form method attribute names a method
// safe to repeat. A missing or unrecognized method defaults to GET in HTML,
// and dialog forms never reach the network.
func IdempotentMethod(method string) bool {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "get", "dialog":
		return true
	}
	return false
}
