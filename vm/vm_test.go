//go:build !wasm

package vm

import (
	"go/parser"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/vcrobe/tsz/compiler"
	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/signals"
)

func lower(t *testing.T, src string) *compiler.Program {
	t.Helper()
	v, err := compiler.ParseView("test.tsz", []byte(src))
	if err != nil {
		t.Fatalf("Expected template to parse, got: %v", err)
	}
	prog, err := compiler.Lower(v)
	if err != nil {
		t.Fatalf("Expected template to lower, got: %v", err)
	}
	return prog
}

func mount(t *testing.T, c interface {
	Init(dom.Document, dom.Element) error
}) *dom.MemoryDocument {
	t.Helper()
	doc := dom.NewDocument()
	body, err := doc.Body()
	if err != nil {
		t.Fatalf("Expected body, got %v", err)
	}
	if err := c.Init(doc, body); err != nil {
		t.Fatalf("Expected Init to succeed, got: %v", err)
	}
	return doc
}

func click(t *testing.T, doc *dom.MemoryDocument, id string) {
	t.Helper()
	el, ok := doc.ByID(id)
	if !ok {
		t.Fatalf("Expected element #%s", id)
	}
	if _, err := doc.Dispatch(el, "click"); err != nil {
		t.Fatalf("Expected dispatch to succeed, got %v", err)
	}
}

type counterState struct {
	Count signals.Cell[int]
	Show  signals.Cell[bool]
	Items signals.Cell[[]string]
	Max   int
}

func newCounterState() *counterState {
	a := signals.NewArena()
	return &counterState{
		Count: signals.NewIn(a, 0),
		Show:  signals.NewIn(a, false),
		Items: signals.NewIn(a, []string{"a", "b"}),
		Max:   8,
	}
}

func (s *counterState) Inc() { signals.Add(s.Count.Mut(), 1) }

func (s *counterState) Label() string { return "n=" + strconv.Itoa(s.Count.Get()) }

func (s *counterState) Double(n int) int { return 2 * n }

const counterTemplate = `declare Counter;
div(id: "root", class: [box, $count]) {
    "Count is {$count} of {max}, {label}"
    button(id: "inc", click: @inc) { "+" }
    button(id: "add", click: { $count += max / 4 }) { "add" }
    button(id: "reset", click: { $count = double(0) }) { "reset" }
    If($show) { span { "shown" } }
    ul { For($items, as: it) { li { "{index}:{it}" } } }
}`

// TestInstance_InitialRender verifies every operation kind builds the same
// tree generated code would.
func TestInstance_InitialRender(t *testing.T) {
	// Arrange
	inst := New().Instantiate(lower(t, counterTemplate), newCounterState())

	// Act
	doc := mount(t, inst)

	// Assert
	want := `<div id="root" class="box 0">Count is 0 of 8, n=0` +
		`<button id="inc">+</button><button id="add">add</button><button id="reset">reset</button>` +
		`<ul><li>0:a</li><li>1:b</li></ul></div>`
	if got := doc.String(); got != want {
		t.Errorf("Expected HTML:\n%s\ngot:\n%s", want, got)
	}
}

// TestInstance_Events verifies method handlers and inline statements mutate
// state and the text and attributes follow.
func TestInstance_Events(t *testing.T) {
	// Arrange
	state := newCounterState()
	doc := mount(t, New().Instantiate(lower(t, counterTemplate), state))
	root, _ := doc.ByID("root")

	// Act & Assert
	click(t, doc, "inc")
	if !strings.Contains(doc.String(), "Count is 1 of 8, n=1") {
		t.Errorf("Expected count 1 after inc, got %s", doc.String())
	}
	if class, _ := root.Attr("class"); class != "box 1" {
		t.Errorf("Expected class 'box 1', got %q", class)
	}

	click(t, doc, "add")
	if state.Count.Get() != 3 {
		t.Errorf("Expected count 3 after adding max/4, got %d", state.Count.Get())
	}

	click(t, doc, "reset")
	if state.Count.Get() != 0 || !strings.Contains(doc.String(), "Count is 0 of 8, n=0") {
		t.Errorf("Expected count 0 after reset, got %d: %s", state.Count.Get(), doc.String())
	}
}

func TestInstance_Constructs(t *testing.T) {
	// Arrange
	state := newCounterState()
	doc := mount(t, New().Instantiate(lower(t, counterTemplate), state))

	// Act
	state.Show.Mut().Set(true)
	state.Items.Mut().Set([]string{"x"})

	// Assert
	html := doc.String()
	if !strings.Contains(html, "<ul><li>0:x</li></ul>") {
		t.Errorf("Expected rebuilt list, got %s", html)
	}
	if !strings.HasSuffix(html, "<span>shown</span></div>") {
		t.Errorf("Expected shown span appended to the div, got %s", html)
	}
}

type refState struct {
	refs map[string]signals.Ref
}

func (s *refState) State(name string) (signals.Ref, bool) {
	r, ok := s.refs[name]
	return r, ok
}

// TestMachine_Components verifies registered views receive state references
// and are torn down with their parent.
func TestMachine_Components(t *testing.T) {
	// Arrange
	vm := New()
	vm.RegisterView("Badge", lower(t, "declare Badge;\nspan(class: \"badge\") { \"#{$n}\" }"), func(args Args) (any, error) {
		v, _ := args.Get("n", 0)
		ref, _ := v.(signals.Ref)
		return &refState{refs: map[string]signals.Ref{"n": ref}}, nil
	})
	state := newCounterState()
	host := vm.Instantiate(lower(t, "declare Host;\ndiv { Badge(n: $count); }"), state)
	doc := mount(t, host)

	// Act
	state.Count.Mut().Set(5)

	// Assert
	if got := doc.String(); got != `<div><span class="badge">#5</span></div>` {
		t.Errorf("Expected badge #5, got %s", got)
	}

	// Act: tear down the host
	host.Teardown()
	state.Count.Mut().Set(6)

	// Assert
	if !strings.Contains(doc.String(), "#5") {
		t.Errorf("Expected badge to stay at #5 after teardown, got %s", doc.String())
	}
	if n := state.Count.Ref().Arena().Subscribers(state.Count.Ref().ID()); n != 0 {
		t.Errorf("Expected 0 subscribers after teardown, got %d", n)
	}
}

func TestMachine_Errors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"declare X;\nUnknown;", "component Unknown is not registered"},
		{"declare X;\n\"{$missing}\"", "state missing not found"},
		{"declare X;\n\"{$max}\"", "is not a cell"},
		{"declare X;\nbutton(click: @nothing);", "method nothing not found"},
		{"declare X;\nbutton(click: @double);", "expected func() or func(dom.Event)"},
		{"declare X;\nIf($count) { \"x\" }", "not bool"},
	}
	for _, tt := range tests {
		inst := New().Instantiate(lower(t, tt.src), newCounterState())
		doc := dom.NewDocument()
		body, _ := doc.Body()
		err := inst.Init(doc, body)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: expected error containing %q, got %v", tt.src, tt.want, err)
		}
	}
}

func TestArgs_Get(t *testing.T) {
	args := Args{{Value: 1}, {Key: "b", Value: 2}, {Value: 3}}

	if v, ok := args.Get("b", -1); !ok || v != 2 {
		t.Errorf("Expected b=2, got %v %v", v, ok)
	}
	if v, ok := args.Get("c", 1); !ok || v != 3 {
		t.Errorf("Expected second positional 3, got %v %v", v, ok)
	}
	if _, ok := args.Get("c", 5); ok {
		t.Error("Expected no argument")
	}
}

type evalState struct {
	Max   int
	Flag  bool
	Items []string
	Names map[string]string
	Ptr   *int
}

func (s *evalState) Double(n int) int { return 2 * n }

// TestEval covers the expression subset plain template values may use.
func TestEval(t *testing.T) {
	// Arrange
	state := &evalState{Max: 8, Items: []string{"a", "b"}, Names: map[string]string{"k": "v"}}
	in := New().Instantiate(&compiler.Program{}, state)
	tests := []struct {
		expr string
		want any
	}{
		{"1 + 2*3", 7},
		{"7 / 2", 3},
		{"7.0 / 2", 3.5},
		{"Max % 3", 2},
		{"max * 2", 16},
		{`"a" + "b"`, "ab"},
		{"Max > 3 && !Flag", true},
		{"Flag || Max == 8", true},
		{"len(Items)", 2},
		{"Items[1]", "b"},
		{`Names["k"]`, "v"},
		{"Double(Max) - 1", 15},
		{"double(2)", 4},
		{"-Max", -8},
		{"1 << 3", 8},
		{"'a'", 'a'},
		{"Ptr == nil", true},
		{"item", "loop"},
	}

	for _, tt := range tests {
		x, err := parser.ParseExpr(tt.expr)
		if err != nil {
			t.Fatalf("%s: %v", tt.expr, err)
		}

		// Act
		got, err := in.eval(x, env{"item": "loop"})

		// Assert
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.expr, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: expected %#v, got %#v", tt.expr, tt.want, got)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	in := New().Instantiate(&compiler.Program{}, &evalState{Items: []string{"a"}})
	for _, expr := range []string{"1 / 0", "Missing", "Items[5]", `"a" - "b"`, "Max(1)", "Flag + 1", "Double()"} {
		x, err := parser.ParseExpr(expr)
		if err != nil {
			t.Fatalf("%s: %v", expr, err)
		}
		if _, err := in.eval(x, nil); err == nil {
			t.Errorf("%s: expected an error", expr)
		}
	}
}
