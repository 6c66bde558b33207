package compiler

import (
	"strings"
	"testing"
)

func counterInfo() *componentInfo {
	s := newSchema()
	s.State["value"] = fieldDescriptor{Name: "value", GoType: "signals.Cell[int]", Value: "int"}
	s.State["show"] = fieldDescriptor{Name: "show", GoType: "signals.Cell[bool]", Value: "bool"}
	s.State["Rows"] = fieldDescriptor{Name: "Rows", GoType: "signals.Cell[[]string]", Value: "[]string"}
	s.Fields["max"] = fieldDescriptor{Name: "max", GoType: "int"}
	s.Fields["names"] = fieldDescriptor{Name: "names", GoType: "[]string"}
	s.Methods["inc"] = methodDescriptor{Name: "inc"}
	s.Methods["Pressed"] = methodDescriptor{Name: "Pressed", Params: []paramDescriptor{{Name: "e", Type: "dom.Event"}}}
	s.Methods["label"] = methodDescriptor{Name: "label", Returns: []string{"string"}}
	s.HasBase = true
	return &componentInfo{
		PascalName:    "Counter",
		LowercaseName: "counter",
		PackageName:   "counter",
		ImportPath:    "example.com/app/counter",
		Imports:       map[string]string{"strconv": "strconv"},
		Schema:        s,
	}
}

func generate(t *testing.T, src string, comp *componentInfo, components map[string]componentInfo) string {
	t.Helper()
	prog := mustLower(t, src)
	code, err := Generate(prog, GenOptions{Package: "counter", Source: "counter.tsz", comp: comp, components: components})
	if err != nil {
		t.Fatalf("Expected code generation to succeed, got: %v\n%s", err, code)
	}
	return string(code)
}

func assertContains(t *testing.T, code string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(code, w) {
			t.Errorf("Expected generated code to contain %q, got:\n%s", w, code)
		}
	}
}

// TestGenerate_Counter verifies the initializer, element construction, text
// watching and event wiring.
func TestGenerate_Counter(t *testing.T) {
	// Arrange
	src := `declare Counter;
div(class: "box") {
    "Count is {$value} of {max}, {label}"
    button(click: @inc) { "+" }
    button(click: @pressed);
}`

	// Act
	code := generate(t, src, counterInfo(), nil)

	// Assert
	assertContains(t, code,
		"// Code generated by tsz-compiler from counter.tsz. DO NOT EDIT.",
		"package counter",
		`"github.com/vcrobe/tsz/dom"`,
		`"github.com/vcrobe/tsz/view"`,
		"func (c *Counter) Init(doc dom.Document, parent dom.Element) error {",
		"return c.mount(view.Mount{Doc: doc, Parent: parent, Scope: c.Scope()})",
		"func (c *Counter) mount(m view.Mount) error {",
		`e0, err := m.Doc.CreateElement("div")`,
		`if err := e0.SetAttribute("class", "box"); err != nil {`,
		`t1 := m.Doc.CreateTextNode(view.Sprintf("Count is %v of %v, %v", c.value.Get(), c.max, c.label()))`,
		"c.value.Observe(m.Scope, func() {",
		`t1.SetText(view.Sprintf("Count is %v of %v, %v", c.value.Get(), c.max, c.label()))`,
		`view.Listen(e2, "click", c.inc)`,
		`view.ListenEvent(e4, "click", c.Pressed)`,
		"if err := m.Parent.AppendChild(e0); err != nil {",
	)
	if strings.Contains(code, "tsz/signals") {
		t.Errorf("Expected no signals import without mutations, got:\n%s", code)
	}
}

// TestGenerate_Mutations verifies blocks go through the cell's mutator.
func TestGenerate_Mutations(t *testing.T) {
	// Arrange
	src := `declare Counter;
button(click: { $value += 2 });
button(click: { $value = max * 2 });
button(click: { $value <<= $value });
button(click: { inc() });
button(click: { $value = len(names) + strconv.IntSize });`

	// Act
	code := generate(t, src, counterInfo(), nil)

	// Assert
	assertContains(t, code,
		`"github.com/vcrobe/tsz/signals"`,
		"signals.Add(c.value.Mut(), 2)",
		"c.value.Mut().Set(c.max * 2)",
		"signals.Shl(c.value.Mut(), c.value.Get())",
		"c.inc()",
		"c.value.Mut().Set(len(c.names) + strconv.IntSize)",
		`"strconv"`,
	)
}

// TestGenerate_MembersShadowBuiltins verifies that component members named
// like predeclared identifiers resolve to the receiver, while unshadowed
// builtins stay as written.
func TestGenerate_MembersShadowBuiltins(t *testing.T) {
	// Arrange
	comp := counterInfo()
	comp.Schema.Fields["len"] = fieldDescriptor{Name: "len", GoType: "int"}
	src := `declare Counter;
button(click: { $value = max * 2 });
button(click: { $value = min(len, max) });
p { "{max}" }`

	// Act
	code := generate(t, src, comp, nil)

	// Assert
	assertContains(t, code,
		"c.value.Mut().Set(c.max * 2)",
		"c.value.Mut().Set(min(c.len, c.max))",
		`view.Sprintf("%v", c.max)`,
	)
}

// TestGenerate_BuiltinsWithoutSchema verifies that without a schema only
// names that are not predeclared become members.
func TestGenerate_BuiltinsWithoutSchema(t *testing.T) {
	// Arrange
	src := "declare Counter;\nbutton(click: { $value = max(limit, 2) });"

	// Act
	code, err := CompileFile("counter.tsz", []byte(src), "counter")

	// Assert
	if err != nil {
		t.Fatalf("Expected compilation to succeed, got: %v", err)
	}
	assertContains(t, string(code), "c.value.Mut().Set(max(c.limit, 2))")
}

func TestGenerate_BindAttribute(t *testing.T) {
	code := generate(t, "declare Counter;\ndiv(class: [box, $show]);", counterInfo(), nil)

	assertContains(t, code,
		`if err := e0.SetAttribute("class", view.Sprintf("box %v", c.show.Get())); err != nil {`,
		"c.show.Observe(m.Scope, func() {",
		`view.Check(e0.SetAttribute("class", view.Sprintf("box %v", c.show.Get())))`,
	)
}

// TestGenerate_Constructs verifies If and For become view constructs with
// fragment closures, typed when the schema knows the element type.
func TestGenerate_Constructs(t *testing.T) {
	// Arrange
	src := `declare Counter;
ul {
    If($show, replace: true) { li { "shown" } }
    For($rows, as: row) { li { "{index}: {row}" } }
    For(names) { li { "{item}" } }
}`

	// Act
	code := generate(t, src, counterInfo(), nil)

	// Assert
	assertContains(t, code,
		"v1 := view.NewIf(c.show.Bind(), view.Replace())",
		"if err := v1.Init(m.At(e0), func(m view.Mount) error {",
		"if err := m.Parent.AppendChild(e2); err != nil {",
		"v4 := view.NewFor(c.Rows.Bind())",
		"if err := v4.Init(m.At(e0), func(m view.Mount, index int, row string) error {",
		`view.Sprintf("%v: %v", index, row)`,
		"v7 := view.ForValues(c.names)",
		"func(m view.Mount, index int, item string) error {",
	)
}

// TestGenerate_Components verifies child construction through New<Name> in
// parameter order, the struct literal fallback and scope ownership.
func TestGenerate_Components(t *testing.T) {
	// Arrange
	withCtor := newSchema()
	withCtor.Constructor = &methodDescriptor{Name: "NewBadge", Params: []paramDescriptor{
		{Name: "label", Type: "string"},
		{Name: "count", Type: "signals.Binding[int]"},
	}}
	literal := newSchema()
	literal.State["Count"] = fieldDescriptor{Name: "Count", GoType: "signals.Binding[int]", Value: "int"}
	literal.Methods["OnTap"] = methodDescriptor{Name: "OnTap"}
	components := map[string]componentInfo{
		"badge": {PascalName: "Badge", PackageName: "widgets", ImportPath: "example.com/app/widgets", Schema: withCtor},
		"pill":  {PascalName: "Pill", PackageName: "counter", Schema: literal},
	}
	src := `declare Counter;
div {
    Badge(count: $value, label: "hits");
    Pill(count: $value);
}`

	// Act
	code := generate(t, src, counterInfo(), components)

	// Assert
	assertContains(t, code,
		`v1 := widgets.NewBadge("hits", c.value.Bind())`,
		`"example.com/app/widgets"`,
		"view.Own(m.Scope, v1)",
		"if err := v1.Init(m.Doc, e0); err != nil {",
		"v2 := &Pill{Count: c.value.Bind()}",
	)
}

func TestGenerate_ComponentErrors(t *testing.T) {
	ctor := newSchema()
	ctor.Constructor = &methodDescriptor{Name: "NewBadge", Params: []paramDescriptor{{Name: "label", Type: "string"}}}
	components := map[string]componentInfo{
		"badge": {PascalName: "Badge", PackageName: "counter", Schema: ctor},
		"pill":  {PascalName: "Pill", PackageName: "counter", Schema: newSchema()},
	}
	tests := []struct {
		src  string
		want string
	}{
		{"declare Counter;\nBadge();", "missing argument label"},
		{"declare Counter;\nBadge(size: 1);", "has no parameter size"},
		{"declare Counter;\nBadge(\"a\", \"b\");", "too many arguments"},
		{"declare Counter;\nPill(1);", "every argument needs a key"},
		{"declare Counter;\nPill(size: 1);", "has no field size"},
	}
	for _, tt := range tests {
		prog := mustLower(t, tt.src)
		_, err := Generate(prog, GenOptions{Package: "counter", comp: counterInfo(), components: components})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: expected error containing %q, got %v", tt.src, tt.want, err)
		}
	}
}

// TestGenerate_WithoutSchema verifies the generic path used when the Go
// side of the component is unknown.
func TestGenerate_WithoutSchema(t *testing.T) {
	// Arrange
	src := `declare Panel;
For($items) { "{item}" }
Card(title: "x", $on);`

	// Act
	code, err := CompileFile("panel.tsz", []byte(src), "panel")

	// Assert
	if err != nil {
		t.Fatalf("Expected compilation to succeed, got: %v", err)
	}
	assertContains(t, string(code),
		"// Code generated by tsz-compiler from panel.tsz. DO NOT EDIT.",
		"func (c *Panel) Init(doc dom.Document, parent dom.Element) error {",
		"Scope: c.Scope()",
		"v0 := view.ForRef(c.items.Ref())",
		"func(m view.Mount, index int, item any) error {",
		`v2 := NewCard("x", c.on.Bind())`,
	)
}

func TestGenerate_RequiresPackage(t *testing.T) {
	prog := mustLower(t, "declare X;\n\"hi\"")
	if _, err := Generate(prog, GenOptions{}); err == nil {
		t.Error("Expected an error without a package name")
	}
}

func TestCompileFile_ReportsContext(t *testing.T) {
	// Arrange
	src := "declare Bad;\ndiv {\n  p(click: $x);\n}\n"

	// Act
	_, err := CompileFile("bad.tsz", []byte(src), "bad")

	// Assert
	if err == nil {
		t.Fatal("Expected a compile error")
	}
	msg := err.Error()
	for _, want := range []string{"bad.tsz:3:", "needs a handler", ">    3 |   p(click: $x);"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error to contain %q, got:\n%s", want, msg)
		}
	}
}
