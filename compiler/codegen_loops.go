package compiler

import (
	"go/ast"
	"strings"
)

// genFor emits a view.For over a cell or a fixed collection. The item
// variable is typed when the element type is known from the component
// schema, and any otherwise.
func (g *generator) genFor(op Op) {
	v := viewVar(op.Node)
	vars := op.Body.Loop

	var ctor, itemType string
	switch src := op.Source.(type) {
	case *StateRef:
		if elem, ok := g.elemType(src.Name, true); ok {
			ctor, itemType = "view.NewFor("+g.stateExpr(src.Name)+".Bind())", elem
		} else {
			ctor, itemType = "view.ForRef("+g.stateExpr(src.Name)+".Ref())", "any"
		}
	case *PlainExpr:
		expr := g.plain(src)
		ctor, itemType = "view.ForEach("+expr+")", "any"
		if id, ok := src.X.(*ast.Ident); ok {
			if elem, ok := g.elemType(id.Name, false); ok {
				ctor, itemType = "view.ForValues("+expr+")", elem
			}
		}
	}

	g.printf("%s := %s", v, ctor)
	g.printf("if err := %s.Init(m.At(%s), func(m view.Mount, %s int, %s %s) error {",
		v, parentExpr(op.Parent), vars.Index, vars.Item, itemType)
	g.pushLoop(vars)
	g.genMount(op.Body)
	g.popLoop()
	g.printf("return nil")
	g.printf("}); err != nil {")
	g.printf("return err")
	g.printf("}")
}

// elemType returns the element type of a slice-valued cell or field, when
// it can be written in the generated file.
func (g *generator) elemType(name string, wantState bool) (string, bool) {
	if g.opts.comp == nil {
		return "", false
	}
	f, isState, ok := g.opts.comp.Schema.field(name)
	if !ok || isState != wantState {
		return "", false
	}
	typ := f.GoType
	if isState {
		typ = f.Value
	}
	elem, ok := strings.CutPrefix(typ, "[]")
	if !ok || elem == "" || elem == "unknown" {
		return "", false
	}
	if pkg, _, qualified := strings.Cut(strings.TrimPrefix(elem, "*"), "."); qualified {
		path, ok := g.opts.comp.Imports[pkg]
		if !ok {
			return "", false
		}
		g.use(path, importAlias(pkg, path))
	}
	return elem, true
}
