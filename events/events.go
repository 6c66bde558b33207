// Package events lists the host events a template may bind with an
// event-named argument, and adapts handlers to the dom listener shape.
package events

import (
	"slices"

	"github.com/vcrobe/tsz/dom"
)

// EventSignature describes a recognized event.
type EventSignature struct {
	Name string
	// Tags restricts the event to these host tags. Nil means any element.
	Tags []string
}

var registry = map[string]EventSignature{
	"click":      {Name: "click"},
	"dblclick":   {Name: "dblclick"},
	"input":      {Name: "input", Tags: []string{"input", "textarea", "select"}},
	"change":     {Name: "change", Tags: []string{"input", "textarea", "select"}},
	"submit":     {Name: "submit", Tags: []string{"form"}},
	"keydown":    {Name: "keydown"},
	"keyup":      {Name: "keyup"},
	"focus":      {Name: "focus"},
	"blur":       {Name: "blur"},
	"mouseenter": {Name: "mouseenter"},
	"mouseleave": {Name: "mouseleave"},
}

// Lookup returns the signature of a recognized event.
func Lookup(name string) (EventSignature, bool) {
	sig, ok := registry[name]
	return sig, ok
}

// IsEvent reports whether an argument key names an event.
func IsEvent(name string) bool {
	_, ok := registry[name]
	return ok
}

// IsSupported reports whether event can be bound on tag.
func IsSupported(event, tag string) bool {
	sig, ok := registry[event]
	if !ok {
		return false
	}
	return sig.Tags == nil || slices.Contains(sig.Tags, tag)
}

// Names returns the recognized events in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AdaptNoArgEvent wraps a handler that ignores the event.
func AdaptNoArgEvent(handler func()) func(dom.Event) {
	return func(dom.Event) {
		handler()
	}
}

// AdaptEvent wraps a handler that receives the event.
func AdaptEvent(handler func(dom.Event)) func(dom.Event) {
	return handler
}
