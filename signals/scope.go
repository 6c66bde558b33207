package signals

import "sync/atomic"

// ScopeID identifies a Scope. IDs are assigned in creation order and never
// reused.
type ScopeID uint64

var lastScopeID atomic.Uint64

// Scope records the subscriptions made on behalf of one component instance
// (or one conditional/loop body) so they can be removed together.
type Scope struct {
	id       ScopeID
	parent   *Scope
	children []*Scope
	entries  []scopeEntry
	closed   bool
}

type scopeEntry struct {
	arena *Arena
	id    CellID
	sub   *subscription
}

// NewScope returns an open root scope.
func NewScope() *Scope {
	return &Scope{id: ScopeID(lastScopeID.Add(1))}
}

// ID returns the scope's identifier.
func (s *Scope) ID() ScopeID {
	return s.id
}

// Child returns a new scope closed together with s.
func (s *Scope) Child() *Scope {
	c := NewScope()
	s.Adopt(c)
	return c
}

// Adopt makes c a child of s, detaching it from any previous parent. A child
// adopted by a closed scope is closed immediately.
func (s *Scope) Adopt(c *Scope) {
	if c == nil || c == s {
		return
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = s
	s.children = append(s.children, c)
	if s.closed {
		c.Close()
	}
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	return s.closed
}

// Len reports the number of subscriptions held by s, excluding children.
func (s *Scope) Len() int {
	return len(s.entries)
}

// Close removes every subscription made through s and its children from the
// cells they observe. Subscriptions attempted after Close are dropped.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	children := s.children
	s.children = nil
	for _, c := range children {
		c.parent = nil
		c.Close()
	}
	for _, e := range s.entries {
		e.arena.unsubscribe(e.id, e.sub)
	}
	s.entries = nil
	if s.parent != nil {
		s.parent.detach(s)
		s.parent = nil
	}
}

func (s *Scope) track(a *Arena, id CellID, sub *subscription) {
	s.entries = append(s.entries, scopeEntry{arena: a, id: id, sub: sub})
}

func (s *Scope) detach(c *Scope) {
	for i, x := range s.children {
		if x == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}
