package signals

import (
	"fmt"
	"reflect"
)

// Cell is the owning handle of a reactive value. It notifies its subscribers
// on every mutation made through Mut.
type Cell[T any] struct {
	ref[T]
}

// Binding is a non-owning handle to another component's cell. It reads,
// subscribes and mutates exactly like the Cell it was bound from.
type Binding[T any] struct {
	ref[T]
}

// New allocates a cell in the default arena.
func New[T any](initial T) Cell[T] {
	return NewIn(defaultArena, initial)
}

// NewIn allocates a cell in a.
func NewIn[T any](a *Arena, initial T) Cell[T] {
	id := a.alloc(initial, reflect.TypeFor[T]())
	return Cell[T]{ref[T]{arena: a, id: id}}
}

// BindingOf recovers a typed binding from an untyped reference. It fails when
// the cell does not hold a T.
func BindingOf[T any](r Ref) (Binding[T], error) {
	if !r.Valid() {
		return Binding[T]{}, fmt.Errorf("signals: invalid reference")
	}
	want := reflect.TypeFor[T]()
	if got := r.Type(); got != want {
		return Binding[T]{}, fmt.Errorf("signals: cell %d holds %s, not %s", r.id, got, want)
	}
	return Binding[T]{ref[T]{arena: r.arena, id: r.id}}, nil
}

type ref[T any] struct {
	arena *Arena
	id    CellID
}

func (r ref[T]) slot() *slot {
	if r.arena == nil {
		panic("signals: use of an unallocated cell")
	}
	return r.arena.slot(r.id)
}

// Get returns the current value.
func (r ref[T]) Get() T {
	v, _ := r.slot().value.(T)
	return v
}

// Subscribe appends fn to the subscriber list. There is no way to remove it
// other than through a Scope; see SubscribeIn.
func (r ref[T]) Subscribe(fn func(T)) {
	r.SubscribeIn(nil, fn)
}

// SubscribeIn appends fn and records it in s so that closing s removes it.
// A nil scope behaves like Subscribe.
func (r ref[T]) SubscribeIn(s *Scope, fn func(T)) {
	r.slot()
	r.arena.subscribe(r.id, s, func(v any) {
		t, _ := v.(T)
		fn(t)
	})
}

// Observe is SubscribeIn for callbacks that re-read state themselves.
func (r ref[T]) Observe(s *Scope, fn func()) {
	r.slot()
	r.arena.subscribe(r.id, s, func(any) { fn() })
}

// Publish invokes every subscriber with the current value.
func (r ref[T]) Publish() {
	r.slot()
	r.arena.publish(r.id)
}

// Bind returns a Binding sharing the cell. Binding a Binding returns an
// equal handle.
func (r ref[T]) Bind() Binding[T] {
	return Binding[T]{r}
}

// Mut returns the mutator through which the value is changed.
func (r ref[T]) Mut() Mutator[T] {
	return Mutator[T]{r}
}

// Ref returns the untyped reference to the cell.
func (r ref[T]) Ref() Ref {
	return Ref{arena: r.arena, id: r.id}
}

// Referrer is implemented by Cell and Binding.
type Referrer interface {
	Ref() Ref
}

// Ref is an untyped reference to a cell, used where the value type is only
// known at run time.
type Ref struct {
	arena *Arena
	id    CellID
}

// Valid reports whether r points at an allocated cell.
func (r Ref) Valid() bool {
	return r.arena != nil && int(r.id) < len(r.arena.slots)
}

// ID returns the cell index.
func (r Ref) ID() CellID {
	return r.id
}

// Arena returns the arena holding the cell.
func (r Ref) Arena() *Arena {
	return r.arena
}

// Type returns the static type the cell was created with.
func (r Ref) Type() reflect.Type {
	return r.arena.slot(r.id).typ
}

// Value returns the current value.
func (r Ref) Value() any {
	return r.arena.slot(r.id).value
}

// SubscribeIn registers fn in scope s (nil for no scope).
func (r Ref) SubscribeIn(s *Scope, fn func(any)) {
	r.arena.subscribe(r.id, s, fn)
}

// Observe registers fn in scope s (nil for no scope).
func (r Ref) Observe(s *Scope, fn func()) {
	r.arena.subscribe(r.id, s, func(any) { fn() })
}

// Publish invokes every subscriber with the current value.
func (r Ref) Publish() {
	r.arena.publish(r.id)
}
