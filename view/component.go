// Package view is the runtime of generated views: component base, mount
// context, event wiring, text formatting and the If/For constructs.
package view

import (
	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/signals"
)

// Component is implemented by every compiled view. Init builds the view's
// nodes under parent; calling it twice builds them twice.
type Component interface {
	Init(doc dom.Document, parent dom.Element) error
}

// Base is embedded by component structs. It owns the scope through which
// the view's subscriptions are made.
type Base struct {
	scope *signals.Scope
}

// Scope returns the component's subscription scope, creating it on first use.
func (b *Base) Scope() *signals.Scope {
	if b.scope == nil {
		b.scope = signals.NewScope()
	}
	return b.scope
}

// Teardown removes every subscription made by the view, its constructs and
// the child components it owns. Nodes stay in the document.
func (b *Base) Teardown() {
	if b.scope != nil {
		b.scope.Close()
		b.scope = nil
	}
}

type scoped interface {
	Scope() *signals.Scope
}

// Own ties the scope of child, when it has one, to scope so that tearing
// down the parent tears down the child.
func Own(scope *signals.Scope, child any) {
	if scope == nil {
		return
	}
	if c, ok := child.(scoped); ok {
		scope.Adopt(c.Scope())
	}
}
