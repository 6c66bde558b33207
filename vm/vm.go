// Package vm runs a lowered view program against a component value at
// construction time, without generating Go code. It follows the semantics of
// the generated initializers: the same operations, in the same order, over
// the same view runtime.
package vm

import (
	"fmt"
	"reflect"

	"github.com/vcrobe/tsz/compiler"
	"github.com/vcrobe/tsz/dom"
	"github.com/vcrobe/tsz/signals"
	"github.com/vcrobe/tsz/view"
)

// Arg is one evaluated component argument. State references are passed as
// signals.Ref, method references as method values, blocks as func().
type Arg struct {
	Key   string
	Value any
}

// Args is the argument list of a component invocation.
type Args []Arg

// Get returns the argument with key, or the positional argument at index pos
// when no argument has that key. Pass a negative pos to match by key only.
func (a Args) Get(key string, pos int) (any, bool) {
	for _, arg := range a {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	n := 0
	for _, arg := range a {
		if arg.Key != "" {
			continue
		}
		if n == pos {
			return arg.Value, true
		}
		n++
	}
	return nil, false
}

// Factory creates a component for an invocation.
type Factory func(args Args) (view.Component, error)

// Constructor creates the state value of a registered view. The state should
// be a pointer to a struct so that pointer methods can be bound.
type Constructor func(args Args) (any, error)

// Machine holds the components templates may invoke.
type Machine struct {
	components map[string]Factory
}

// New returns a Machine with no components.
func New() *Machine {
	return &Machine{components: make(map[string]Factory)}
}

// Register makes name invocable from templates run by the machine.
func (vm *Machine) Register(name string, f Factory) {
	vm.components[name] = f
}

// RegisterView registers a template program whose state is created by ctor.
func (vm *Machine) RegisterView(name string, prog *compiler.Program, ctor Constructor) {
	vm.Register(name, func(args Args) (view.Component, error) {
		state, err := ctor(args)
		if err != nil {
			return nil, fmt.Errorf("construct %s: %w", name, err)
		}
		return vm.Instantiate(prog, state), nil
	})
}

// Instantiate binds prog to state. The returned Instance builds the view
// when its Init is called.
func (vm *Machine) Instantiate(prog *compiler.Program, state any) *Instance {
	return &Instance{
		vm:    vm,
		prog:  prog,
		state: state,
		rv:    reflect.ValueOf(state),
		cells: make(map[string]signals.Ref),
	}
}

// Instance is a program bound to a state value. It implements
// view.Component.
type Instance struct {
	view.Base
	vm    *Machine
	prog  *compiler.Program
	state any
	rv    reflect.Value
	cells map[string]signals.Ref
}

var _ view.Component = (*Instance)(nil)

// State returns the value the instance was created with.
func (in *Instance) State() any {
	return in.state
}

type scoped interface {
	Scope() *signals.Scope
}

// Scope returns the scope of the state when it embeds view.Base, and the
// instance's own otherwise.
func (in *Instance) Scope() *signals.Scope {
	if s, ok := in.state.(scoped); ok {
		return s.Scope()
	}
	return in.Base.Scope()
}

// Teardown removes every subscription made by the view.
func (in *Instance) Teardown() {
	if t, ok := in.state.(interface{ Teardown() }); ok {
		t.Teardown()
		return
	}
	in.Base.Teardown()
}

// Init builds the view under parent.
func (in *Instance) Init(doc dom.Document, parent dom.Element) error {
	m := view.Mount{Doc: doc, Parent: parent, Scope: in.Scope()}
	if err := in.run(m, in.prog, nil); err != nil {
		return fmt.Errorf("%s: %w", in.prog.Name, err)
	}
	return nil
}
