//go:build !wasm

package view

import (
	"errors"
	"testing"

	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/signals"
	"golang.org/x/text/language"
)

func newMount(t *testing.T) (*dom.MemoryDocument, Mount) {
	t.Helper()
	doc := dom.NewDocument()
	body, err := doc.Body()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return doc, Mount{Doc: doc, Parent: body, Scope: signals.NewScope()}
}

func paragraph(text string) Fragment {
	return func(m Mount) error {
		p, err := m.Doc.CreateElement("p")
		if err != nil {
			return err
		}
		if err := p.AppendChild(m.Doc.CreateTextNode(text)); err != nil {
			return err
		}
		return m.Parent.AppendChild(p)
	}
}

// TestIf_Accumulates verifies the default conditional builds a new subtree
// on every publish of true and never removes earlier ones.
func TestIf_Accumulates(t *testing.T) {
	// Arrange
	doc, m := newMount(t)
	show := signals.NewIn(signals.NewArena(), false)
	cond := NewIf(show.Bind())

	// Act & Assert: nothing is built while false
	if err := cond.Init(m, paragraph("shown")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := len(doc.FindAll("p")); got != 0 {
		t.Fatalf("Expected no paragraph initially, got %d", got)
	}

	show.Mut().Set(true)
	if got := len(doc.FindAll("p")); got != 1 {
		t.Fatalf("Expected 1 paragraph after true, got %d", got)
	}

	show.Mut().Set(true)
	if got := len(doc.FindAll("p")); got != 2 {
		t.Errorf("Expected 2 paragraphs after a second true, got %d", got)
	}

	show.Mut().Set(false)
	show.Mut().Set(true)
	if got := len(doc.FindAll("p")); got != 3 {
		t.Errorf("Expected false to keep subtrees and true to add one, got %d", got)
	}
}

func TestIf_InitiallyTrue(t *testing.T) {
	doc, m := newMount(t)
	show := signals.NewIn(signals.NewArena(), true)

	if err := NewIf(show.Bind()).Init(m, paragraph("x")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := len(doc.FindAll("p")); got != 1 {
		t.Errorf("Expected 1 paragraph, got %d", got)
	}
}

// TestIf_Replace verifies the replace option keeps at most one subtree and
// closes the subscriptions of removed ones.
func TestIf_Replace(t *testing.T) {
	doc, m := newMount(t)
	a := signals.NewArena()
	show := signals.NewIn(a, true)
	label := signals.NewIn(a, "one")
	cond := NewIf(show.Bind(), Replace())

	body := func(m Mount) error {
		txt := m.Doc.CreateTextNode(label.Get())
		label.Observe(m.Scope, func() { txt.SetText(label.Get()) })
		return m.Parent.AppendChild(txt)
	}
	if err := cond.Init(m, body); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	show.Mut().Set(true)
	if doc.String() != "one" {
		t.Errorf("Expected a single copy, got %q", doc.String())
	}
	if n := a.Subscribers(label.Ref().ID()); n != 1 {
		t.Errorf("Expected 1 label subscriber, got %d", n)
	}

	show.Mut().Set(false)
	if doc.String() != "" {
		t.Errorf("Expected false to remove the subtree, got %q", doc.String())
	}
	if n := a.Subscribers(label.Ref().ID()); n != 0 {
		t.Errorf("Expected label subscriptions closed, got %d", n)
	}
	if cond.Built() != 0 {
		t.Errorf("Expected no built copies, got %d", cond.Built())
	}
}

// TestFor_Rebuild verifies a cell-backed list rebuilds all items on publish.
func TestFor_Rebuild(t *testing.T) {
	doc, m := newMount(t)
	items := signals.NewIn(signals.NewArena(), []string{"a", "b"})
	list := NewFor(items.Bind())

	err := list.Init(m, func(m Mount, i int, item string) error {
		return paragraph(Sprintf("%d:%s", i, item))(m)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := doc.String(); got != "<p>0:a</p><p>1:b</p>" {
		t.Errorf("Unexpected initial render %q", got)
	}

	items.Mut().Set([]string{"c"})
	if got := doc.String(); got != "<p>0:c</p>" {
		t.Errorf("Unexpected render after publish %q", got)
	}
	if list.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", list.Len())
	}
}

func TestForEach_Reflection(t *testing.T) {
	doc, m := newMount(t)

	err := ForEach([3]int{1, 2, 3}).Init(m, func(m Mount, i int, item any) error {
		return paragraph(Sprint(item))(m)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := len(doc.FindAll("p")); got != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", got)
	}

	if err := ForEach(42).Init(m, func(Mount, int, any) error { return nil }); err == nil {
		t.Errorf("Expected error iterating an int")
	}
}

func TestForEach_Referrer(t *testing.T) {
	doc, m := newMount(t)
	items := signals.NewIn(signals.NewArena(), []int{1})

	_ = ForEach(items).Init(m, func(m Mount, i int, item any) error {
		return paragraph(Sprint(item))(m)
	})
	items.Mut().Set([]int{1, 2})

	if got := doc.String(); got != "<p>1</p><p>2</p>" {
		t.Errorf("Unexpected render %q", got)
	}
}

func TestListen(t *testing.T) {
	doc, m := newMount(t)
	btn, _ := doc.CreateElement("button")
	_ = m.Parent.AppendChild(btn)
	clicks := 0
	var target string

	if err := Listen(btn, "click", func() { clicks++ }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_ = ListenEvent(btn, "click", func(e dom.Event) { target = e.Target().Tag() })
	_, _ = doc.Dispatch(btn, "click")

	if clicks != 1 || target != "button" {
		t.Errorf("Expected one click on button, got %d clicks on %q", clicks, target)
	}
}

func TestCheck_ReportsToFaultHandler(t *testing.T) {
	var got error
	prev := SetFaultHandler(func(err error) { got = err })
	defer SetFaultHandler(prev)

	Check(nil)
	if got != nil {
		t.Fatalf("Expected nil error to be ignored")
	}
	want := errors.New("boom")
	Check(want)
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSprintf_Language(t *testing.T) {
	defer SetLanguage(language.Und)

	if got := Sprintf("%d", 1500); got != "1500" {
		t.Errorf("Expected plain formatting, got %q", got)
	}
	SetLanguage(language.English)
	if got := Sprintf("%d", 1500); got != "1,500" {
		t.Errorf("Expected grouped digits, got %q", got)
	}
}

// TestBase_TeardownClosesOwnedScopes verifies tearing down a parent closes
// the scope of an owned child component.
func TestBase_TeardownClosesOwnedScopes(t *testing.T) {
	var parent, child Base
	Own(parent.Scope(), &child)
	cs := child.Scope()

	parent.Teardown()

	if !cs.Closed() {
		t.Errorf("Expected child scope to be closed")
	}
}
