//go:build js || wasm
// +build js wasm

package main

import (
	"strings"

	"github.com/vcrobe/tsz/compiler"
	"github.com/vcrobe/tsz/console"
	"github.com/vcrobe/tsz/dialogs"
	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/testcomponents/databinding"
	"github.com/vcrobe/tsz/testcomponents/trackby"
	"github.com/vcrobe/tsz/view"
	"github.com/vcrobe/tsz/vm"
)

// greeterTemplate is interpreted at startup instead of being compiled.
const greeterTemplate = `declare Greeter;

section(id: "greeter") {
    p { "Hello, {$name}! ({$visits} visits)" }
    button(click: @rename) { "Rename" }
    button(click: { $visits += 1 }) { "Visit" }
    button(click: @reset) { "Reset" }
}
`

// Greeter is the state of the interpreted view.
type Greeter struct {
	Name   signals.Cell[string]
	Visits signals.Cell[int]
}

// Rename asks for a new name.
func (g *Greeter) Rename() {
	name, ok := dialogs.Prompt("Who should be greeted?", g.Name.Get())
	if !ok {
		return
	}
	if name = strings.TrimSpace(name); name == "" {
		dialogs.Alert("A name is required.")
		return
	}
	g.Name.Mut().Set(name)
}

// Reset clears the visit count after confirmation.
func (g *Greeter) Reset() {
	if dialogs.Confirm("Reset visits?") {
		g.Visits.Mut().Set(0)
	}
}

func main() {
	// 1. Bind to the browser document
	doc, err := dom.Browser()
	if err != nil {
		panic("Error opening document: " + err.Error())
	}
	body, err := doc.Body()
	if err != nil {
		panic("Error finding body: " + err.Error())
	}

	// 2. Mount the compiled views
	views := []view.Component{
		databinding.NewCounter(0, "clicks"),
		trackby.NewTagList("golang", "wasm"),
	}
	for _, v := range views {
		if err := v.Init(doc, body); err != nil {
			console.Error("Error mounting view:", err.Error())
		}
	}

	// 3. Interpret a template at runtime
	parsed, err := compiler.ParseView("greeter.tsz", []byte(greeterTemplate))
	if err != nil {
		panic(err.Error())
	}
	prog, err := compiler.Lower(parsed)
	if err != nil {
		panic(err.Error())
	}
	greeter := &Greeter{Name: signals.New("World"), Visits: signals.New(0)}
	if err := vm.New().Instantiate(prog, greeter).Init(doc, body); err != nil {
		console.Error("Error mounting greeter:", err.Error())
	}

	// Keep the Go program running
	select {}
}
