package compiler

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/vcrobe/tsz/events"
)

type lowerer struct {
	next  NodeID
	diags Diagnostics
}

// Lower turns a parsed view into its construction program in a single
// depth-first pass. Node IDs are allocated in traversal order, so lowering
// the same view twice gives identical programs.
func Lower(v *View) (*Program, error) {
	l := &lowerer{}
	prog := &Program{Name: v.Name}
	l.lowerNodes(prog, v.Nodes, Root)
	prog.Nodes = int(l.next)
	prog.Warnings = append(append(Diagnostics(nil), v.Warnings...), l.diags.Warnings()...)
	if err := l.diags.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

func (l *lowerer) alloc() NodeID {
	id := l.next
	l.next++
	return id
}

func (l *lowerer) lowerNodes(prog *Program, nodes []Node, parent NodeID) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			l.lowerText(prog, n, parent)
		case *Element:
			if n.Kind == ComponentTag {
				l.lowerComponent(prog, n, parent)
			} else {
				l.lowerHost(prog, n, parent)
			}
		}
	}
}

func (l *lowerer) lowerText(prog *Program, t *Text, parent NodeID) {
	in, err := Interpolate(t.Value)
	if err != nil {
		l.diags.errorf(t.Position, "{name} or {name:format}", "%v", err)
		return
	}
	id := l.alloc()
	prog.Ops = append(prog.Ops,
		Op{Kind: OpCreateText, Pos: t.Position, Node: id, Text: in},
		Op{Kind: OpAppend, Pos: t.Position, Node: id, Parent: parent},
	)
	for _, name := range in.StateNames() {
		prog.Ops = append(prog.Ops, Op{Kind: OpWatchText, Pos: t.Position, Node: id, State: name, Text: in})
	}
}

func (l *lowerer) lowerHost(prog *Program, el *Element, parent NodeID) {
	id := l.alloc()
	prog.Ops = append(prog.Ops, Op{Kind: OpCreateElement, Pos: el.Position, Node: id, Tag: el.Name})

	for _, a := range el.Args {
		if a.Key == "" {
			l.diags.errorf(a.Position, "key: value", "attribute of <%s> has no name", el.Name)
			continue
		}
		if events.IsEvent(a.Key) {
			h, ok := l.handler(a)
			if !ok {
				continue
			}
			if !events.IsSupported(a.Key, el.Name) {
				l.diags.warnf(a.Position, "event %s is not fired by <%s>", a.Key, el.Name)
			}
			prog.Ops = append(prog.Ops, Op{Kind: OpListen, Pos: a.Position, Node: id, Key: a.Key, Handler: h})
			continue
		}

		switch v := a.Value.(type) {
		case *MethodRef, *Block:
			l.diags.errorf(a.Position, "one of "+strings.Join(events.Names(), ", "),
				"%s is not a recognized event", a.Key)
		case *Assignment:
			l.diags.errorf(a.Position, "literal, name, list or $state", "assignment cannot be the value of attribute %s", a.Key)
		case *StateRef:
			in := &Interpolation{Format: "%v", Refs: []TextRef{{Name: v.Name, Kind: RefState}}}
			prog.Ops = append(prog.Ops, Op{Kind: OpBindAttribute, Pos: a.Position, Node: id, Key: a.Key, Text: in})
		case *List:
			in, ok := l.attrList(v)
			if !ok {
				continue
			}
			if in.Static() {
				prog.Ops = append(prog.Ops, Op{Kind: OpSetAttribute, Pos: a.Position, Node: id, Key: a.Key, Value: in.Literal()})
			} else {
				prog.Ops = append(prog.Ops, Op{Kind: OpBindAttribute, Pos: a.Position, Node: id, Key: a.Key, Text: in})
			}
		case *PlainExpr:
			s, ok := attrString(v.X)
			if !ok {
				l.diags.warnf(a.Position, "value of attribute %s is not a literal, name or list and renders empty", a.Key)
			}
			prog.Ops = append(prog.Ops, Op{Kind: OpSetAttribute, Pos: a.Position, Node: id, Key: a.Key, Value: s})
		}
	}

	l.lowerNodes(prog, el.Body, id)
	prog.Ops = append(prog.Ops, Op{Kind: OpAppend, Pos: el.Position, Node: id, Parent: parent})
}

// attrList flattens a list into a space-separated format. State references
// become %v verbs.
func (l *lowerer) attrList(list *List) (*Interpolation, bool) {
	var parts []string
	var refs []TextRef
	ok := true
	var visit func(*List)
	visit = func(list *List) {
		for _, e := range list.Elems {
			switch e := e.(type) {
			case *List:
				visit(e)
			case *StateRef:
				parts = append(parts, "%v")
				refs = append(refs, TextRef{Name: e.Name, Kind: RefState})
			case *PlainExpr:
				s, lit := attrString(e.X)
				if !lit {
					l.diags.warnf(e.Position, "list element %s is not a literal or name and renders empty", e.Src)
				}
				if s != "" {
					parts = append(parts, strings.ReplaceAll(s, "%", "%%"))
				}
			default:
				l.diags.errorf(e.Pos(), "literal, name or $state", "unsupported list element %s", e)
				ok = false
			}
		}
	}
	visit(list)
	return &Interpolation{Format: strings.Join(parts, " "), Refs: refs}, ok
}

// attrString stringifies literal and bare-name expressions.
func attrString(x ast.Expr) (string, bool) {
	switch x := x.(type) {
	case *ast.BasicLit:
		switch x.Kind {
		case token.STRING, token.CHAR:
			s, err := strconv.Unquote(x.Value)
			if err != nil {
				return "", false
			}
			return s, true
		}
		return x.Value, true
	case *ast.Ident:
		return x.Name, true
	case *ast.SelectorExpr:
		base, ok := attrString(x.X)
		if !ok {
			return "", false
		}
		if _, isIdent := x.X.(*ast.Ident); !isIdent {
			if _, isSel := x.X.(*ast.SelectorExpr); !isSel {
				return "", false
			}
		}
		return base + "." + x.Sel.Name, true
	case *ast.UnaryExpr:
		if lit, ok := x.X.(*ast.BasicLit); ok && x.Op == token.SUB && (lit.Kind == token.INT || lit.Kind == token.FLOAT) {
			return "-" + lit.Value, true
		}
	case *ast.ParenExpr:
		return attrString(x.X)
	}
	return "", false
}

// handler validates the value of an event argument.
func (l *lowerer) handler(a *Argument) (*Handler, bool) {
	switch v := a.Value.(type) {
	case *MethodRef:
		return &Handler{Method: v.Name}, true
	case *Block:
		if !l.checkStmt(v.Inner) {
			return nil, false
		}
		return &Handler{Stmt: v.Inner}, true
	}
	l.diags.errorf(a.Position, "@method or { statement }", "event %s needs a handler, found %s", a.Key, a.Value)
	return nil, false
}

// checkStmt accepts the statements a block may run: an assignment to a
// state cell or a call.
func (l *lowerer) checkStmt(x Expr) bool {
	switch x := x.(type) {
	case *Assignment:
		return l.checkAssignment(x)
	case *PlainExpr:
		if _, ok := ast.Unparen(x.X).(*ast.CallExpr); ok {
			return true
		}
	}
	l.diags.errorf(x.Pos(), "assignment to $state or a call", "block cannot run %s", x)
	return false
}

func (l *lowerer) checkAssignment(a *Assignment) bool {
	ok := true
	if _, isState := a.Target.(*StateRef); !isState {
		l.diags.errorf(a.Target.Pos(), "$name", "cannot assign to %s, only state references are assignable", a.Target)
		ok = false
	}
	switch a.Value.(type) {
	case *StateRef, *PlainExpr:
	default:
		l.diags.errorf(a.Value.Pos(), "$name or Go expression", "unsupported right-hand side %s", a.Value)
		ok = false
	}
	return ok
}

func (l *lowerer) lowerComponent(prog *Program, el *Element, parent NodeID) {
	if IsBuiltin(el.Name) {
		l.lowerBuiltin(prog, el, parent)
		return
	}
	id := l.alloc()
	if len(el.Body) > 0 {
		l.diags.errorf(el.Position, `";"`, "component %s does not take a body", el.Name)
	}
	for _, a := range el.Args {
		switch v := a.Value.(type) {
		case *Assignment:
			l.diags.errorf(a.Position, "$state, @method, { statement } or Go expression", "assignment cannot be passed to %s", el.Name)
		case *Block:
			l.checkStmt(v.Inner)
		}
	}
	prog.Ops = append(prog.Ops, Op{Kind: OpInvoke, Pos: el.Position, Node: id, Parent: parent, Component: el.Name, Args: el.Args})
}

func (l *lowerer) lowerBuiltin(prog *Program, el *Element, parent NodeID) {
	id := l.alloc()
	op := Op{Kind: OpInvoke, Pos: el.Position, Node: id, Parent: parent, Component: el.Name, Args: el.Args}
	body := &Program{Name: el.Name}

	switch el.Name {
	case BuiltinIf:
		var cond *StateRef
		for _, a := range el.Args {
			switch a.Key {
			case "", "when":
				ref, ok := a.Value.(*StateRef)
				if !ok || cond != nil {
					l.diags.errorf(a.Position, "$name of a bool cell", "If takes one state condition, found %s", a.Value)
					continue
				}
				cond = ref
			case "replace":
				b, ok := boolLiteral(a.Value)
				if !ok {
					l.diags.errorf(a.Position, "true or false", "replace must be a bool literal")
				}
				op.Replace = b
			default:
				l.diags.errorf(a.Position, "when or replace", "If has no argument %s", a.Key)
			}
		}
		if cond == nil {
			l.diags.errorf(el.Position, "If($name)", "If needs a state condition")
			return
		}
		op.State = cond.Name
	case BuiltinFor:
		vars := &LoopVars{Item: "item", Index: "index"}
		for _, a := range el.Args {
			switch a.Key {
			case "", "each":
				switch a.Value.(type) {
				case *StateRef, *PlainExpr:
					if op.Source != nil {
						l.diags.errorf(a.Position, "one collection", "For takes one collection")
					}
					op.Source = a.Value
				default:
					l.diags.errorf(a.Position, "$name or Go expression", "For cannot iterate %s", a.Value)
				}
			case "as", "index":
				name, ok := identName(a.Value)
				if !ok {
					l.diags.errorf(a.Position, "identifier", "%s must name a variable", a.Key)
					continue
				}
				if a.Key == "as" {
					vars.Item = name
				} else {
					vars.Index = name
				}
			default:
				l.diags.errorf(a.Position, "each, as or index", "For has no argument %s", a.Key)
			}
		}
		if op.Source == nil {
			l.diags.errorf(el.Position, "For($items)", "For needs a collection")
			return
		}
		body.Loop = vars
	}

	l.lowerNodes(body, el.Body, Root)
	op.Body = body
	prog.Ops = append(prog.Ops, op)
}

func boolLiteral(x Expr) (bool, bool) {
	if p, ok := x.(*PlainExpr); ok {
		if id, ok := p.X.(*ast.Ident); ok && (id.Name == "true" || id.Name == "false") {
			return id.Name == "true", true
		}
	}
	return false, false
}

func identName(x Expr) (string, bool) {
	if p, ok := x.(*PlainExpr); ok {
		if id, ok := p.X.(*ast.Ident); ok {
			return id.Name, true
		}
	}
	return "", false
}
