// Package dom defines the host document interface that generated views
// build against, with an in-memory implementation for tests and tooling and
// a syscall/js implementation for the browser.
package dom

// Node is anything that can be appended to an Element.
type Node interface {
	NodeName() string
}

// Element is a host element.
type Element interface {
	Node
	Tag() string
	SetAttribute(name, value string) error
	AppendChild(child Node) error
	RemoveChild(child Node) error
	// AddEventListener registers fn for event on the element. The host owns
	// fn and releases it when the element leaves the document.
	AddEventListener(event string, fn func(Event)) error
}

// Text is a host text node.
type Text interface {
	Node
	SetText(data string)
	Content() string
}

// Document creates host nodes.
type Document interface {
	CreateElement(tag string) (Element, error)
	CreateTextNode(data string) Text
	Body() (Element, error)
}

// Event is delivered to listeners.
type Event interface {
	Type() string
	Target() Element
}
