package testcomponents

import (
	"fmt"

	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/view"
)

// Harness is a minimal test harness that mounts a view on an in-memory
// document, without browser or WASM dependencies.
//
// It lets tests:
// - Mount a component under the document body
// - Fire events at elements by id
// - Inspect the resulting HTML and text
type Harness struct {
	doc  *dom.MemoryDocument
	body dom.Element
	comp view.Component
}

// NewHarness creates a harness for comp on a fresh document.
func NewHarness(comp view.Component) *Harness {
	return &Harness{doc: dom.NewDocument(), comp: comp}
}

// Mount runs the component's initializer under the document body.
// It must be called once, before any other method.
func (h *Harness) Mount() error {
	body, err := h.doc.Body()
	if err != nil {
		return err
	}
	h.body = body
	return h.comp.Init(h.doc, body)
}

// Document returns the document the component is mounted on.
func (h *Harness) Document() *dom.MemoryDocument {
	return h.doc
}

// HTML returns the current inner HTML of the body.
func (h *Harness) HTML() string {
	return h.doc.String()
}

// Element returns the element with the given id.
func (h *Harness) Element(id string) (*dom.MemoryElement, error) {
	el, ok := h.doc.ByID(id)
	if !ok {
		return nil, fmt.Errorf("no element with id %q in %s", id, h.HTML())
	}
	return el, nil
}

// Text returns the text content of the element with the given id.
func (h *Harness) Text(id string) (string, error) {
	el, err := h.Element(id)
	if err != nil {
		return "", err
	}
	return el.TextContent(), nil
}

// Dispatch fires event at the element with the given id and reports how
// many listeners ran.
func (h *Harness) Dispatch(id, event string) (int, error) {
	el, err := h.Element(id)
	if err != nil {
		return 0, err
	}
	return h.doc.Dispatch(el, event)
}

// Click fires a click at the element with the given id. It fails when no
// listener handled the click.
func (h *Harness) Click(id string) error {
	n, err := h.Dispatch(id, "click")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("element %q has no click listener", id)
	}
	return nil
}

// Count returns the number of attached elements named tag.
func (h *Harness) Count(tag string) int {
	return len(h.doc.FindAll(tag))
}

// Teardown releases the component's subscriptions when it embeds view.Base.
func (h *Harness) Teardown() {
	if t, ok := h.comp.(interface{ Teardown() }); ok {
		t.Teardown()
	}
}
