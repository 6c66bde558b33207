package vm

import (
	"fmt"
	"maps"

	"github.com/vcrobe/tsz/compiler"
	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/view"
)

// env holds the loop variables visible to a body.
type env map[string]any

func (e env) bind(loop *compiler.LoopVars, index int, item any) env {
	out := make(env, len(e)+2)
	maps.Copy(out, e)
	out[loop.Item] = item
	out[loop.Index] = index
	return out
}

// frame holds the nodes created by one run of a program.
type frame struct {
	elems map[compiler.NodeID]dom.Element
	texts map[compiler.NodeID]dom.Text
}

func (f *frame) parent(m view.Mount, id compiler.NodeID) (dom.Element, error) {
	if id == compiler.Root {
		return m.Parent, nil
	}
	el, ok := f.elems[id]
	if !ok {
		return nil, fmt.Errorf("node %s is not an element", id)
	}
	return el, nil
}

func (f *frame) node(id compiler.NodeID) (dom.Node, error) {
	if el, ok := f.elems[id]; ok {
		return el, nil
	}
	if t, ok := f.texts[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("node %s was not created", id)
}

// run executes prog against m.
func (in *Instance) run(m view.Mount, prog *compiler.Program, vars env) error {
	f := &frame{
		elems: make(map[compiler.NodeID]dom.Element),
		texts: make(map[compiler.NodeID]dom.Text),
	}
	for _, op := range prog.Ops {
		if err := in.step(m, f, op, vars); err != nil {
			return fmt.Errorf("%s: %s: %w", op.Pos, op.Kind, err)
		}
	}
	return nil
}

func (in *Instance) step(m view.Mount, f *frame, op compiler.Op, vars env) error {
	switch op.Kind {
	case compiler.OpCreateElement:
		el, err := m.Doc.CreateElement(op.Tag)
		if err != nil {
			return err
		}
		f.elems[op.Node] = el
	case compiler.OpSetAttribute:
		return f.elems[op.Node].SetAttribute(op.Key, op.Value)
	case compiler.OpBindAttribute:
		return in.bindAttribute(m, f.elems[op.Node], op, vars)
	case compiler.OpListen:
		return in.listen(f.elems[op.Node], op, vars)
	case compiler.OpCreateText:
		s, err := in.format(op.Text, vars)
		if err != nil {
			return err
		}
		f.texts[op.Node] = m.Doc.CreateTextNode(s)
	case compiler.OpWatchText:
		ref, err := in.cell(op.State)
		if err != nil {
			return err
		}
		t := f.texts[op.Node]
		ref.Observe(m.Scope, func() {
			s, err := in.format(op.Text, vars)
			if err != nil {
				view.Check(err)
				return
			}
			t.SetText(s)
		})
	case compiler.OpAppend:
		parent, err := f.parent(m, op.Parent)
		if err != nil {
			return err
		}
		child, err := f.node(op.Node)
		if err != nil {
			return err
		}
		return parent.AppendChild(child)
	case compiler.OpInvoke:
		parent, err := f.parent(m, op.Parent)
		if err != nil {
			return err
		}
		switch op.Component {
		case compiler.BuiltinIf:
			return in.runIf(m.At(parent), op, vars)
		case compiler.BuiltinFor:
			return in.runFor(m.At(parent), op, vars)
		}
		return in.invoke(m, parent, op, vars)
	default:
		return fmt.Errorf("unknown operation %v", op.Kind)
	}
	return nil
}

func (in *Instance) bindAttribute(m view.Mount, el dom.Element, op compiler.Op, vars env) error {
	value, err := in.format(op.Text, vars)
	if err != nil {
		return err
	}
	if err := el.SetAttribute(op.Key, value); err != nil {
		return err
	}
	for _, name := range op.Text.StateNames() {
		ref, err := in.cell(name)
		if err != nil {
			return err
		}
		ref.Observe(m.Scope, func() {
			value, err := in.format(op.Text, vars)
			if err != nil {
				view.Check(err)
				return
			}
			view.Check(el.SetAttribute(op.Key, value))
		})
	}
	return nil
}

func (in *Instance) listen(el dom.Element, op compiler.Op, vars env) error {
	if op.Handler.Method == "" {
		stmt := op.Handler.Stmt
		return view.Listen(el, op.Key, func() {
			view.Check(in.exec(stmt, vars))
		})
	}
	fn, err := in.method(op.Handler.Method)
	if err != nil {
		return err
	}
	switch fn := fn.(type) {
	case func():
		return view.Listen(el, op.Key, fn)
	case func(dom.Event):
		return view.ListenEvent(el, op.Key, fn)
	}
	return fmt.Errorf("handler %s has type %T, expected func() or func(dom.Event)", op.Handler.Method, fn)
}

// exec runs the statement of a block.
func (in *Instance) exec(x compiler.Expr, vars env) error {
	switch x := x.(type) {
	case *compiler.Assignment:
		target, ok := x.Target.(*compiler.StateRef)
		if !ok {
			return fmt.Errorf("cannot assign to %s", x.Target)
		}
		ref, err := in.cell(target.Name)
		if err != nil {
			return err
		}
		value, err := in.value(x.Value, vars)
		if err != nil {
			return err
		}
		return ref.Apply(x.Op, value)
	case *compiler.PlainExpr:
		_, err := in.eval(x.X, vars)
		return err
	}
	return fmt.Errorf("block cannot run %s", x)
}

// value evaluates a template expression to a Go value.
func (in *Instance) value(x compiler.Expr, vars env) (any, error) {
	switch x := x.(type) {
	case *compiler.StateRef:
		ref, err := in.cell(x.Name)
		if err != nil {
			return nil, err
		}
		return ref.Value(), nil
	case *compiler.PlainExpr:
		return in.eval(x.X, vars)
	}
	return nil, fmt.Errorf("cannot evaluate %s", x)
}

func (in *Instance) runIf(m view.Mount, op compiler.Op, vars env) error {
	ref, err := in.cell(op.State)
	if err != nil {
		return err
	}
	cond, err := signals.BindingOf[bool](ref)
	if err != nil {
		return err
	}
	var opts []view.IfOption
	if op.Replace {
		opts = append(opts, view.Replace())
	}
	return view.NewIf(cond, opts...).Init(m, func(m view.Mount) error {
		return in.run(m, op.Body, vars)
	})
}

func (in *Instance) runFor(m view.Mount, op compiler.Op, vars env) error {
	var f *view.For[any]
	switch src := op.Source.(type) {
	case *compiler.StateRef:
		ref, err := in.cell(src.Name)
		if err != nil {
			return err
		}
		f = view.ForRef(ref)
	case *compiler.PlainExpr:
		items, err := in.eval(src.X, vars)
		if err != nil {
			return err
		}
		f = view.ForEach(items)
	default:
		return fmt.Errorf("cannot iterate %s", op.Source)
	}
	loop := op.Body.Loop
	return f.Init(m, func(m view.Mount, index int, item any) error {
		return in.run(m, op.Body, vars.bind(loop, index, item))
	})
}

func (in *Instance) invoke(m view.Mount, parent dom.Element, op compiler.Op, vars env) error {
	factory, ok := in.vm.components[op.Component]
	if !ok {
		return fmt.Errorf("component %s is not registered", op.Component)
	}
	args := make(Args, 0, len(op.Args))
	for _, a := range op.Args {
		v, err := in.arg(a.Value, vars)
		if err != nil {
			return fmt.Errorf("argument %s: %w", a.Value, err)
		}
		args = append(args, Arg{Key: a.Key, Value: v})
	}
	child, err := factory(args)
	if err != nil {
		return err
	}
	view.Own(m.Scope, child)
	return child.Init(m.Doc, parent)
}

// arg evaluates a component argument the way generated code passes it.
func (in *Instance) arg(x compiler.Expr, vars env) (any, error) {
	switch x := x.(type) {
	case *compiler.StateRef:
		return in.cell(x.Name)
	case *compiler.MethodRef:
		return in.method(x.Name)
	case *compiler.Block:
		stmt := x.Inner
		return func() { view.Check(in.exec(stmt, vars)) }, nil
	case *compiler.List:
		out := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			v, err := in.arg(e, vars)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *compiler.PlainExpr:
		return in.eval(x.X, vars)
	}
	return nil, fmt.Errorf("unsupported argument %s", x)
}

// format renders an interpolation with the current values of its references.
func (in *Instance) format(t *compiler.Interpolation, vars env) (string, error) {
	if t.Static() {
		return t.Literal(), nil
	}
	args := make([]any, len(t.Refs))
	for i, r := range t.Refs {
		if r.Kind == compiler.RefState {
			ref, err := in.cell(r.Name)
			if err != nil {
				return "", err
			}
			args[i] = ref.Value()
			continue
		}
		v, err := in.textRef(r.Name, vars)
		if err != nil {
			return "", err
		}
		args[i] = v
	}
	return view.Sprintf(t.Format, args...), nil
}
