//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"
)

// BrowserDocument wraps the page's global document.
type BrowserDocument struct {
	v         js.Value
	callbacks map[string][]js.Func
	nextID    int
}

// Browser returns the page document.
func Browser() (*BrowserDocument, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("dom: no global document")
	}
	return &BrowserDocument{v: doc, callbacks: make(map[string][]js.Func)}, nil
}

func (d *BrowserDocument) CreateElement(tag string) (el Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dom: createElement(%q): %v", tag, r)
		}
	}()
	return &browserElement{doc: d, v: d.v.Call("createElement", tag)}, nil
}

func (d *BrowserDocument) CreateTextNode(data string) Text {
	return &browserText{v: d.v.Call("createTextNode", data)}
}

func (d *BrowserDocument) Body() (Element, error) {
	body := d.v.Get("body")
	if !body.Truthy() {
		return nil, fmt.Errorf("dom: document has no body")
	}
	return &browserElement{doc: d, v: body}, nil
}

// release frees the js.Func listeners of v and its descendants.
func (d *BrowserDocument) release(v js.Value) {
	if key := v.Get("dataset"); key.Truthy() {
		if id := key.Get("tszListeners"); id.Truthy() {
			for _, fn := range d.callbacks[id.String()] {
				fn.Release()
			}
			delete(d.callbacks, id.String())
		}
	}
	children := v.Get("childNodes")
	if !children.Truthy() {
		return
	}
	for i := 0; i < children.Length(); i++ {
		d.release(children.Index(i))
	}
}

type browserElement struct {
	doc *BrowserDocument
	v   js.Value
}

func (e *browserElement) NodeName() string { return e.v.Get("nodeName").String() }

func (e *browserElement) Tag() string { return e.v.Get("localName").String() }

func (e *browserElement) SetAttribute(name, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dom: setAttribute(%q): %v", name, r)
		}
	}()
	e.v.Call("setAttribute", name, value)
	return nil
}

func (e *browserElement) AppendChild(child Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dom: appendChild: %v", r)
		}
	}()
	e.v.Call("appendChild", jsValue(child))
	return nil
}

func (e *browserElement) RemoveChild(child Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dom: removeChild: %v", r)
		}
	}()
	v := jsValue(child)
	e.v.Call("removeChild", v)
	e.doc.release(v)
	return nil
}

func (e *browserElement) AddEventListener(event string, fn func(Event)) error {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(&browserEvent{doc: e.doc, v: ev})
		return nil
	})
	dataset := e.v.Get("dataset")
	id := dataset.Get("tszListeners")
	if !id.Truthy() {
		e.doc.nextID++
		dataset.Set("tszListeners", fmt.Sprint(e.doc.nextID))
		id = dataset.Get("tszListeners")
	}
	e.doc.callbacks[id.String()] = append(e.doc.callbacks[id.String()], cb)
	e.v.Call("addEventListener", event, cb)
	return nil
}

type browserText struct {
	v js.Value
}

func (t *browserText) NodeName() string { return "#text" }

func (t *browserText) SetText(data string) { t.v.Set("data", data) }

func (t *browserText) Content() string { return t.v.Get("data").String() }

type browserEvent struct {
	doc *BrowserDocument
	v   js.Value
}

func (e *browserEvent) Type() string {
	if !e.v.Truthy() {
		return ""
	}
	return e.v.Get("type").String()
}

func (e *browserEvent) Target() Element {
	if !e.v.Truthy() {
		return nil
	}
	return &browserElement{doc: e.doc, v: e.v.Get("target")}
}

func jsValue(n Node) js.Value {
	switch c := n.(type) {
	case *browserElement:
		return c.v
	case *browserText:
		return c.v
	}
	panic(fmt.Sprintf("dom: %T is not a browser node", n))
}
