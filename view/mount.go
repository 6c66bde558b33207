package view

import (
	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/events"
	"github.com/vcrobe/tsz/signals"
)

// Mount is where generated code builds: the document, the parent element
// and the scope that records subscriptions. A nil Scope makes subscriptions
// permanent.
type Mount struct {
	Doc    dom.Document
	Parent dom.Element
	Scope  *signals.Scope
}

// At returns m with a different parent.
func (m Mount) At(parent dom.Element) Mount {
	m.Parent = parent
	return m
}

// child returns m with a new scope below m.Scope.
func (m Mount) child() Mount {
	if m.Scope == nil {
		m.Scope = signals.NewScope()
	} else {
		m.Scope = m.Scope.Child()
	}
	return m
}

// Fragment builds a subtree into a mount.
type Fragment func(m Mount) error

// Listen calls fn each time event fires on el.
func Listen(el dom.Element, event string, fn func()) error {
	return el.AddEventListener(event, events.AdaptNoArgEvent(fn))
}

// ListenEvent calls fn with the event each time it fires on el.
func ListenEvent(el dom.Element, event string, fn func(dom.Event)) error {
	return el.AddEventListener(event, events.AdaptEvent(fn))
}

// recorder forwards to an element and remembers the nodes appended through
// it, so a construct can later remove exactly the subtree it built.
type recorder struct {
	dom.Element
	nodes []dom.Node
}

func (r *recorder) AppendChild(child dom.Node) error {
	if err := r.Element.AppendChild(child); err != nil {
		return err
	}
	r.nodes = append(r.nodes, child)
	return nil
}

// detach removes the recorded nodes from the parent.
func (r *recorder) detach() error {
	nodes := r.nodes
	r.nodes = nil
	for _, n := range nodes {
		if err := r.Element.RemoveChild(n); err != nil {
			return err
		}
	}
	return nil
}
