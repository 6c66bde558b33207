package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

func (g *generator) genCreateElement(op Op) {
	g.printf("%s, err := m.Doc.CreateElement(%s)", elemVar(op.Node), strconv.Quote(op.Tag))
	g.printf("if err != nil {")
	g.printf("return err")
	g.printf("}")
}

func (g *generator) genAppend(op Op) {
	child := elemVar(op.Node)
	if g.isText(op.Node) {
		child = textVar(op.Node)
	}
	g.checked("%s.AppendChild(%s)", parentExpr(op.Parent), child)
}

// genComponent constructs a child view, ties its scope to ours and runs its
// initializer under the parent.
func (g *generator) genComponent(op Op) {
	v := viewVar(op.Node)
	ctor, err := g.constructor(op)
	if err != nil {
		g.diags.errorf(op.Pos, "", "%v", err)
		return
	}
	g.printf("%s := %s", v, ctor)
	g.printf("view.Own(m.Scope, %s)", v)
	g.checked("%s.Init(m.Doc, %s)", v, parentExpr(op.Parent))
}

// constructor renders the expression creating the child component. With the
// child's schema it calls New<Name> with arguments in parameter order, or
// falls back to a struct literal; without it, arguments are passed to
// New<Name> in the order written.
func (g *generator) constructor(op Op) (string, error) {
	qual := ""
	child, known := g.opts.components[strings.ToLower(op.Component)]
	if known && g.opts.comp != nil && child.PackageName != g.opts.comp.PackageName {
		qual = child.PackageName + "."
		g.use(child.ImportPath, "")
	}

	if !known || child.Schema.Constructor != nil {
		var args []string
		if known {
			ordered, err := g.orderArgs(op, child.Schema.Constructor)
			if err != nil {
				return "", err
			}
			args = ordered
		} else {
			for _, a := range op.Args {
				args = append(args, g.argValue(a.Value))
			}
		}
		return fmt.Sprintf("%sNew%s(%s)", qual, op.Component, strings.Join(args, ", ")), nil
	}

	var fields []string
	for _, a := range op.Args {
		if a.Key == "" {
			return "", fmt.Errorf("%s has no New%s constructor, so every argument needs a key", op.Component, op.Component)
		}
		f, _, ok := child.Schema.field(a.Key)
		if !ok {
			return "", fmt.Errorf("%s has no field %s", op.Component, a.Key)
		}
		fields = append(fields, fmt.Sprintf("%s: %s", f.Name, g.argValue(a.Value)))
	}
	return fmt.Sprintf("&%s%s{%s}", qual, op.Component, strings.Join(fields, ", ")), nil
}

// orderArgs matches keyed arguments to constructor parameters by name and
// positional arguments by position.
func (g *generator) orderArgs(op Op, ctor *methodDescriptor) ([]string, error) {
	out := make([]string, len(ctor.Params))
	set := make([]bool, len(ctor.Params))
	pos := 0
	for _, a := range op.Args {
		idx := -1
		if a.Key == "" {
			for pos < len(set) && set[pos] {
				pos++
			}
			idx = pos
		} else {
			for i, p := range ctor.Params {
				if p.Name == a.Key {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("New%s has no parameter %s", op.Component, a.Key)
			}
		}
		if idx >= len(out) {
			return nil, fmt.Errorf("too many arguments for New%s", op.Component)
		}
		if set[idx] {
			return nil, fmt.Errorf("parameter %s of New%s is given twice", ctor.Params[idx].Name, op.Component)
		}
		out[idx] = g.argValue(a.Value)
		set[idx] = true
	}
	for i, ok := range set {
		if !ok {
			return nil, fmt.Errorf("missing argument %s for New%s", ctor.Params[i].Name, op.Component)
		}
	}
	return out, nil
}

// argValue renders a component argument: state becomes a Binding, methods
// become method values and blocks become closures.
func (g *generator) argValue(x Expr) string {
	switch x := x.(type) {
	case *StateRef:
		return g.stateExpr(x.Name) + ".Bind()"
	case *MethodRef:
		return g.methodExpr(x.Name)
	case *Block:
		return "func() { " + g.stmt(x.Inner) + " }"
	case *List:
		elems := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = g.argValue(e)
		}
		return "[]any{" + strings.Join(elems, ", ") + "}"
	case *PlainExpr:
		return g.plain(x)
	}
	return "nil"
}

// isText reports whether the node was created by a text operation. Text and
// element IDs share one sequence, so the generator remembers which is which.
func (g *generator) isText(id NodeID) bool {
	return g.texts[id]
}
