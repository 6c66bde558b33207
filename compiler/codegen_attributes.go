package compiler

import (
	"fmt"
	"strconv"

	"github.com/vcrobe/tsz/signals"
)

func (g *generator) genSetAttribute(op Op) {
	g.checked("%s.SetAttribute(%s, %s)", elemVar(op.Node), strconv.Quote(op.Key), strconv.Quote(op.Value))
}

// genBindAttribute sets the attribute now and again on every publish of a
// referenced cell. Failures inside the subscriber go to view.Check.
func (g *generator) genBindAttribute(op Op) {
	el := elemVar(op.Node)
	value := g.format(op.Text)
	g.checked("%s.SetAttribute(%s, %s)", el, strconv.Quote(op.Key), value)
	for _, name := range op.Text.StateNames() {
		g.printf("%s.Observe(m.Scope, func() {", g.stateExpr(name))
		g.printf("view.Check(%s.SetAttribute(%s, %s))", el, strconv.Quote(op.Key), value)
		g.printf("})")
	}
}

// genListen wires a method value or an inline statement to an event.
// Methods taking the dom.Event are registered with view.ListenEvent.
func (g *generator) genListen(op Op) {
	el := elemVar(op.Node)
	event := strconv.Quote(op.Key)
	if op.Handler.Method != "" {
		fn := g.methodExpr(op.Handler.Method)
		if g.opts.comp != nil {
			if m, ok := g.opts.comp.Schema.method(op.Handler.Method); ok && len(m.Params) == 1 {
				g.checked("view.ListenEvent(%s, %s, %s)", el, event, fn)
				return
			}
		}
		g.checked("view.Listen(%s, %s, %s)", el, event, fn)
		return
	}
	g.checked("view.Listen(%s, %s, func() {\n%s\n})", el, event, g.stmt(op.Handler.Stmt))
}

// stmt renders the statement of a block: a mutation through the cell's
// Mutator, which publishes once, or a call.
func (g *generator) stmt(x Expr) string {
	switch x := x.(type) {
	case *Assignment:
		target, ok := x.Target.(*StateRef)
		if !ok {
			g.diags.errorf(x.Target.Pos(), "$name", "cannot assign to %s", x.Target)
			return ""
		}
		cell := g.stateExpr(target.Name)
		rhs := g.rhs(x.Value)
		if x.Op == signals.Assign {
			return fmt.Sprintf("%s.Mut().Set(%s)", cell, rhs)
		}
		g.use(signalsImport, "")
		return fmt.Sprintf("signals.%s(%s.Mut(), %s)", x.Op.Mutator(), cell, rhs)
	case *PlainExpr:
		return g.plain(x)
	}
	g.diags.errorf(x.Pos(), "assignment or call", "block cannot run %s", x)
	return ""
}

func (g *generator) rhs(x Expr) string {
	switch x := x.(type) {
	case *StateRef:
		return g.stateExpr(x.Name) + ".Get()"
	case *PlainExpr:
		return g.plain(x)
	}
	g.diags.errorf(x.Pos(), "$name or Go expression", "unsupported right-hand side %s", x)
	return "nil"
}
