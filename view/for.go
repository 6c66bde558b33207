package view

import (
	"fmt"
	"reflect"

	"github.com/vcrobe/tsz/signals"
)

// For builds one fragment per item of a collection. When the collection is
// a cell, every publish removes all previously built items, closes their
// subscriptions and builds the list again.
type For[T any] struct {
	items   func() ([]T, error)
	observe func(s *signals.Scope, fn func())
	rec     *recorder
	scope   *signals.Scope
	n       int
}

// NewFor iterates the slice held by a cell.
func NewFor[T any](items signals.Binding[[]T]) *For[T] {
	return &For[T]{
		items:   func() ([]T, error) { return items.Get(), nil },
		observe: items.Observe,
	}
}

// ForValues iterates a fixed slice.
func ForValues[T any](items []T) *For[T] {
	return &For[T]{items: func() ([]T, error) { return items, nil }}
}

// ForRef iterates the slice or array held by an untyped cell.
func ForRef(r signals.Ref) *For[any] {
	return &For[any]{
		items:   func() ([]any, error) { return anySlice(r.Value()) },
		observe: r.Observe,
	}
}

// ForEach iterates a slice or array of any type, or the cell behind a
// signals.Referrer.
func ForEach(items any) *For[any] {
	if r, ok := items.(signals.Referrer); ok {
		return ForRef(r.Ref())
	}
	return &For[any]{items: func() ([]any, error) { return anySlice(items) }}
}

// Init builds every item and, for cells, rebuilds on each publish.
func (f *For[T]) Init(m Mount, body func(m Mount, index int, item T) error) error {
	if err := f.build(m, body); err != nil {
		return err
	}
	if f.observe != nil {
		f.observe(m.Scope, func() {
			Check(f.rebuild(m, body))
		})
	}
	return nil
}

// Len reports how many items the last build produced fragments for.
func (f *For[T]) Len() int {
	return f.n
}

func (f *For[T]) build(m Mount, body func(Mount, int, T) error) error {
	items, err := f.items()
	if err != nil {
		return err
	}
	cm := m.child()
	f.rec = &recorder{Element: m.Parent}
	f.scope = cm.Scope
	cm.Parent = f.rec
	f.n = len(items)
	for i, item := range items {
		if err := body(cm, i, item); err != nil {
			return fmt.Errorf("for item %d: %w", i, err)
		}
	}
	return nil
}

func (f *For[T]) rebuild(m Mount, body func(Mount, int, T) error) error {
	if f.scope != nil {
		f.scope.Close()
	}
	if f.rec != nil {
		if err := f.rec.detach(); err != nil {
			return err
		}
	}
	return f.build(m, body)
}

func anySlice(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot iterate %T", v)
}
