package signals

import (
	"fmt"
	"reflect"
)

// CellID addresses a cell slot inside an Arena. IDs are stable for the
// lifetime of the arena.
type CellID uint32

// Arena stores cell values and their subscriber lists. Cells and bindings are
// indices into an arena, so any number of holders can share and mutate one
// cell without owning each other.
//
// An Arena is not safe for concurrent use. Publication runs synchronously on
// the caller's stack.
type Arena struct {
	slots []*slot
}

type slot struct {
	value any
	typ   reflect.Type
	subs  []*subscription
}

type subscription struct {
	fn    func(any)
	scope *Scope
	dead  bool
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

var defaultArena = NewArena()

// Default returns the arena used by New.
func Default() *Arena {
	return defaultArena
}

// Len reports the number of cells allocated in the arena.
func (a *Arena) Len() int {
	return len(a.slots)
}

// Subscribers reports the number of live subscribers of a cell.
func (a *Arena) Subscribers(id CellID) int {
	n := 0
	for _, sub := range a.slot(id).subs {
		if !sub.dead {
			n++
		}
	}
	return n
}

func (a *Arena) alloc(v any, typ reflect.Type) CellID {
	a.slots = append(a.slots, &slot{value: v, typ: typ})
	return CellID(len(a.slots) - 1)
}

func (a *Arena) slot(id CellID) *slot {
	if int(id) >= len(a.slots) {
		panic(fmt.Sprintf("signals: cell %d is not allocated in this arena", id))
	}
	return a.slots[id]
}

func (a *Arena) subscribe(id CellID, s *Scope, fn func(any)) {
	sl := a.slot(id)
	if s != nil && s.closed {
		return
	}
	sub := &subscription{fn: fn, scope: s}
	sl.subs = append(sl.subs, sub)
	if s != nil {
		s.track(a, id, sub)
	}
}

func (a *Arena) unsubscribe(id CellID, sub *subscription) {
	sub.dead = true
	sl := a.slot(id)
	// Publish may be iterating the old slice, so build a new one.
	kept := make([]*subscription, 0, len(sl.subs))
	for _, s := range sl.subs {
		if s != sub {
			kept = append(kept, s)
		}
	}
	sl.subs = kept
}

// publish invokes the subscribers registered before the call, in
// registration order. Each receives the value current at its invocation.
func (a *Arena) publish(id CellID) {
	sl := a.slot(id)
	subs := sl.subs
	for _, sub := range subs {
		if sub.dead {
			continue
		}
		sub.fn(sl.value)
	}
}
