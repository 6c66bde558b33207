package view

import (
	"github.com/vcrobe/tsz/signals"
)

// If builds a fragment while a bool cell is true.
//
// By default every publish of true builds a fresh copy of the fragment and
// earlier copies stay in place; false does nothing. With Replace, the
// previous copy is removed and its subscriptions closed before a rebuild,
// and a publish of false removes it.
type If struct {
	cond    signals.Binding[bool]
	replace bool
	built   []built
}

type built struct {
	rec   *recorder
	scope *signals.Scope
}

// IfOption configures an If.
type IfOption func(*If)

// Replace makes the If keep at most one copy of its fragment.
func Replace() IfOption {
	return func(f *If) { f.replace = true }
}

// NewIf returns a conditional bound to cond.
func NewIf(cond signals.Binding[bool], opts ...IfOption) *If {
	f := &If{cond: cond}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init builds body now if the condition holds, then follows the cell.
func (f *If) Init(m Mount, body Fragment) error {
	if f.cond.Get() {
		if err := f.build(m, body); err != nil {
			return err
		}
	}
	f.cond.SubscribeIn(m.Scope, func(v bool) {
		switch {
		case v:
			Check(f.build(m, body))
		case f.replace:
			Check(f.clear())
		}
	})
	return nil
}

// Built reports how many copies of the fragment are currently in place.
func (f *If) Built() int {
	return len(f.built)
}

func (f *If) build(m Mount, body Fragment) error {
	if f.replace {
		if err := f.clear(); err != nil {
			return err
		}
	}
	cm := m.child()
	rec := &recorder{Element: m.Parent}
	cm.Parent = rec
	f.built = append(f.built, built{rec: rec, scope: cm.Scope})
	return body(cm)
}

func (f *If) clear() error {
	copies := f.built
	f.built = nil
	for _, b := range copies {
		b.scope.Close()
		if err := b.rec.detach(); err != nil {
			return err
		}
	}
	return nil
}
