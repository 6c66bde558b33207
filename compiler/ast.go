package compiler

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/vcrobe/tsz/signals"
)

// Kind classifies an element name.
type Kind int

const (
	// HostTag maps to a concrete document element.
	HostTag Kind = iota
	// ComponentTag instantiates another compiled view.
	ComponentTag
)

func (k Kind) String() string {
	if k == ComponentTag {
		return "component"
	}
	return "host tag"
}

// View is the parsed form of one template: the declared component name and
// its ordered forest of elements and text.
type View struct {
	Name     string
	NamePos  token.Position
	Nodes    []Node
	Warnings Diagnostics
}

// Node is an Element or a Text.
type Node interface {
	Pos() token.Position
	node()
}

// Element is a tag with an optional argument list and an optional body.
type Element struct {
	Name string
	Kind Kind
	// Marked is set when the element was written with the explicit "view"
	// component marker.
	Marked   bool
	Args     []*Argument
	HasArgs  bool
	Body     []Node
	HasBody  bool
	Position token.Position
}

// Text is a string literal, with any interpolation slots still unresolved.
type Text struct {
	Value    string
	Position token.Position
}

// Argument is one "key: expr" or bare "expr" entry of an argument list.
type Argument struct {
	Key      string
	Value    Expr
	Position token.Position
}

func (e *Element) Pos() token.Position { return e.Position }
func (t *Text) Pos() token.Position    { return t.Position }
func (*Element) node()                 {}
func (*Text) node()                    {}

// Arg returns the argument with the given key.
func (e *Element) Arg(key string) (*Argument, bool) {
	for _, a := range e.Args {
		if a.Key == key {
			return a, true
		}
	}
	return nil, false
}

// Expr is a node of the expression language used in arguments.
type Expr interface {
	Pos() token.Position
	String() string
	expr()
}

// StateRef reads the named cell: $name.
type StateRef struct {
	Name     string
	Position token.Position
}

// MethodRef binds an event to a method: @name.
type MethodRef struct {
	Name     string
	Position token.Position
}

// Block is an inline statement run when an event fires: { expr }.
type Block struct {
	Inner    Expr
	Position token.Position
}

// Assignment is target op value. The parser accepts any target shape;
// lowering rejects targets that are not state references.
type Assignment struct {
	Target   Expr
	Op       signals.Op
	Value    Expr
	Position token.Position
}

// List is a bracketed list literal: [a, b].
type List struct {
	Elems    []Expr
	Position token.Position
}

// PlainExpr is a Go expression.
type PlainExpr struct {
	Src      string
	X        ast.Expr
	Position token.Position
}

func (x *StateRef) Pos() token.Position   { return x.Position }
func (x *MethodRef) Pos() token.Position  { return x.Position }
func (x *Block) Pos() token.Position      { return x.Position }
func (x *Assignment) Pos() token.Position { return x.Position }
func (x *List) Pos() token.Position       { return x.Position }
func (x *PlainExpr) Pos() token.Position  { return x.Position }

func (x *StateRef) String() string  { return "$" + x.Name }
func (x *MethodRef) String() string { return "@" + x.Name }
func (x *Block) String() string     { return "{ " + x.Inner.String() + " }" }
func (x *Assignment) String() string {
	return x.Target.String() + " " + x.Op.String() + " " + x.Value.String()
}
func (x *PlainExpr) String() string { return x.Src }
func (x *List) String() string {
	parts := make([]string, len(x.Elems))
	for i, e := range x.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (*StateRef) expr()   {}
func (*MethodRef) expr()  {}
func (*Block) expr()      {}
func (*Assignment) expr() {}
func (*List) expr()       {}
func (*PlainExpr) expr()  {}

// Walk calls fn for every element of nodes in depth-first order.
func Walk(nodes []Node, fn func(*Element)) {
	for _, n := range nodes {
		if el, ok := n.(*Element); ok {
			fn(el)
			Walk(el.Body, fn)
		}
	}
}
