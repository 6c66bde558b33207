package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MemoryDocument is an in-memory Document backed by golang.org/x/net/html
// nodes. Event listeners and element wrappers are kept by the document,
// keyed by node, and dropped when their element is removed from its parent.
type MemoryDocument struct {
	root      *html.Node
	body      *html.Node
	elems     map[*html.Node]*MemoryElement
	listeners map[*html.Node]map[string][]func(Event)
}

var _ Document = (*MemoryDocument)(nil)

// NewDocument returns an empty html/head/body document.
func NewDocument() *MemoryDocument {
	root, err := html.Parse(strings.NewReader(""))
	if err != nil {
		// Parsing the empty string cannot fail.
		panic(err)
	}
	d := &MemoryDocument{
		root:      root,
		elems:     make(map[*html.Node]*MemoryElement),
		listeners: make(map[*html.Node]map[string][]func(Event)),
	}
	d.body = findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	return d
}

// CreateElement creates a detached element. Tag names follow the HTML name
// rules; unknown names are accepted like custom elements.
func (d *MemoryDocument) CreateElement(tag string) (Element, error) {
	if !validName(tag) {
		return nil, fmt.Errorf("dom: invalid tag name %q", tag)
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     strings.ToLower(tag),
		DataAtom: atom.Lookup([]byte(strings.ToLower(tag))),
	}
	return d.wrap(n), nil
}

// CreateTextNode creates a detached text node.
func (d *MemoryDocument) CreateTextNode(data string) Text {
	return &MemoryText{doc: d, n: &html.Node{Type: html.TextNode, Data: data}}
}

// Body returns the document body.
func (d *MemoryDocument) Body() (Element, error) {
	if d.body == nil {
		return nil, fmt.Errorf("dom: document has no body")
	}
	return d.wrap(d.body), nil
}

// Dispatch fires an event of type typ at target and bubbles it through the
// target's ancestors. It returns the number of listeners invoked.
func (d *MemoryDocument) Dispatch(target Element, typ string) (int, error) {
	el, ok := target.(*MemoryElement)
	if !ok || el.doc != d {
		return 0, fmt.Errorf("dom: %v does not belong to this document", target)
	}
	ev := &memoryEvent{typ: typ, target: el}
	calls := 0
	for n := el.n; n != nil; n = n.Parent {
		fns := d.listeners[n][typ]
		for _, fn := range fns {
			fn(ev)
			calls++
		}
	}
	return calls, nil
}

// Listeners reports how many listeners are registered on el.
func (d *MemoryDocument) Listeners(el Element) int {
	m, ok := el.(*MemoryElement)
	if !ok {
		return 0
	}
	total := 0
	for _, fns := range d.listeners[m.n] {
		total += len(fns)
	}
	return total
}

// FindAll returns the attached elements named tag in document order.
func (d *MemoryDocument) FindAll(tag string) []*MemoryElement {
	var out []*MemoryElement
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, d.wrap(n))
		}
	})
	return out
}

// ByID returns the attached element whose id attribute equals id.
func (d *MemoryDocument) ByID(id string) (*MemoryElement, bool) {
	n := findFirst(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := attr(n, "id")
		return ok && v == id
	})
	if n == nil {
		return nil, false
	}
	return d.wrap(n), true
}

// Render writes the whole document as HTML.
func (d *MemoryDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the inner HTML of the body.
func (d *MemoryDocument) String() string {
	if d.body == nil {
		return ""
	}
	return InnerHTML(d.wrap(d.body))
}

func (d *MemoryDocument) wrap(n *html.Node) *MemoryElement {
	if el, ok := d.elems[n]; ok {
		return el
	}
	el := &MemoryElement{doc: d, n: n}
	d.elems[n] = el
	return el
}

func (d *MemoryDocument) release(n *html.Node) {
	walk(n, func(c *html.Node) {
		delete(d.listeners, c)
		delete(d.elems, c)
	})
}

// MemoryElement is the Element of a MemoryDocument.
type MemoryElement struct {
	doc *MemoryDocument
	n   *html.Node
}

var _ Element = (*MemoryElement)(nil)

func (e *MemoryElement) NodeName() string { return strings.ToUpper(e.n.Data) }

func (e *MemoryElement) Tag() string { return e.n.Data }

// SetAttribute sets or replaces an attribute.
func (e *MemoryElement) SetAttribute(name, value string) error {
	if !validName(name) {
		return fmt.Errorf("dom: invalid attribute name %q on <%s>", name, e.n.Data)
	}
	for i := range e.n.Attr {
		if e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return nil
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// Attr returns the value of an attribute.
func (e *MemoryElement) Attr(name string) (string, bool) {
	return attr(e.n, name)
}

// AppendChild appends child, moving it from its current parent if any.
func (e *MemoryElement) AppendChild(child Node) error {
	n, err := e.doc.node(child)
	if err != nil {
		return err
	}
	if n == e.n || isAncestor(n, e.n) {
		return fmt.Errorf("dom: cannot append <%s> inside itself", n.Data)
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	e.n.AppendChild(n)
	return nil
}

// RemoveChild detaches child and releases the listeners of its subtree.
func (e *MemoryElement) RemoveChild(child Node) error {
	n, err := e.doc.node(child)
	if err != nil {
		return err
	}
	if n.Parent != e.n {
		return fmt.Errorf("dom: %s is not a child of <%s>", child.NodeName(), e.n.Data)
	}
	e.n.RemoveChild(n)
	e.doc.release(n)
	return nil
}

// AddEventListener registers fn for event.
func (e *MemoryElement) AddEventListener(event string, fn func(Event)) error {
	if event == "" || fn == nil {
		return fmt.Errorf("dom: invalid listener for %q on <%s>", event, e.n.Data)
	}
	m := e.doc.listeners[e.n]
	if m == nil {
		m = make(map[string][]func(Event))
		e.doc.listeners[e.n] = m
	}
	m[event] = append(m[event], fn)
	return nil
}

// Children returns the child nodes in order.
func (e *MemoryElement) Children() []Node {
	var out []Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			out = append(out, e.doc.wrap(c))
		case html.TextNode:
			out = append(out, &MemoryText{doc: e.doc, n: c})
		}
	}
	return out
}

// Parent returns the parent element, or nil when detached.
func (e *MemoryElement) Parent() *MemoryElement {
	if e.n.Parent == nil || e.n.Parent.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(e.n.Parent)
}

// TextContent concatenates the text of every descendant text node.
func (e *MemoryElement) TextContent() string {
	var sb strings.Builder
	walk(e.n, func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	})
	return sb.String()
}

// MemoryText is the Text of a MemoryDocument.
type MemoryText struct {
	doc *MemoryDocument
	n   *html.Node
}

var _ Text = (*MemoryText)(nil)

func (t *MemoryText) NodeName() string { return "#text" }

func (t *MemoryText) SetText(data string) { t.n.Data = data }

func (t *MemoryText) Content() string { return t.n.Data }

// InnerHTML renders the children of el. It is empty for elements of other
// documents.
func InnerHTML(el Element) string {
	m, ok := el.(*MemoryElement)
	if !ok {
		return ""
	}
	var buf bytes.Buffer
	for c := m.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

type memoryEvent struct {
	typ    string
	target *MemoryElement
}

func (e *memoryEvent) Type() string { return e.typ }

func (e *memoryEvent) Target() Element { return e.target }

func (d *MemoryDocument) node(child Node) (*html.Node, error) {
	switch c := child.(type) {
	case *MemoryElement:
		if c.doc == d {
			return c.n, nil
		}
	case *MemoryText:
		if c.doc == d {
			return c.n, nil
		}
	}
	return nil, fmt.Errorf("dom: node %T does not belong to this document", child)
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func isAncestor(n, of *html.Node) bool {
	for p := of.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}
