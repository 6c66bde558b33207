package compiler

import (
	"fmt"
	"go/token"
	"strings"
)

// NodeID names a node created by a Program. IDs are assigned sequentially
// in depth-first order, across nested bodies, so they are unique per view.
type NodeID int

// Root is the parent a Program builds into: the element handed to the
// view's initializer, or the mount of a control construct body.
const Root NodeID = -1

func (id NodeID) String() string {
	if id == Root {
		return "root"
	}
	return fmt.Sprintf("n%d", int(id))
}

// OpKind enumerates the construction operations.
type OpKind int

const (
	// OpCreateElement creates host element Node with Tag.
	OpCreateElement OpKind = iota
	// OpSetAttribute sets Key to the constant Value on Node.
	OpSetAttribute
	// OpBindAttribute sets Key from Text and re-sets it whenever a state
	// cell referenced by Text publishes.
	OpBindAttribute
	// OpListen registers Handler for event Key on Node.
	OpListen
	// OpCreateText creates text node Node with the formatted Text.
	OpCreateText
	// OpWatchText subscribes to State and re-formats Text into Node.
	OpWatchText
	// OpAppend appends Node to Parent.
	OpAppend
	// OpInvoke constructs Component with Args and initializes it under
	// Parent. Built-in constructs carry their lowered Body.
	OpInvoke
)

var opKindNames = [...]string{
	OpCreateElement: "create-element",
	OpSetAttribute:  "set-attribute",
	OpBindAttribute: "bind-attribute",
	OpListen:        "listen",
	OpCreateText:    "create-text",
	OpWatchText:     "watch-text",
	OpAppend:        "append",
	OpInvoke:        "invoke",
}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opKindNames) {
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
	return opKindNames[k]
}

// Op is one construction operation.
type Op struct {
	Kind      OpKind
	Pos       token.Position
	Node      NodeID
	Parent    NodeID
	Tag       string
	Key       string
	Value     string
	State     string
	Text      *Interpolation
	Handler   *Handler
	Component string
	Args      []*Argument
	Body      *Program
	// Source is the collection of a For, Replace the option of an If.
	Source  Expr
	Replace bool
}

// Handler is the action of an event listener: either a method bound by
// name or an inline statement.
type Handler struct {
	Method string
	Stmt   Expr
}

// LoopVars names the variables a For body can refer to.
type LoopVars struct {
	Item  string
	Index string
}

// Program is the lowered form of a view, or of a control construct body.
type Program struct {
	Name string
	Ops  []Op
	// Nodes is the number of node IDs allocated, including nested bodies.
	Nodes int
	// Loop is set on For bodies.
	Loop     *LoopVars
	Warnings Diagnostics
}

func (op Op) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", op.Kind, op.Node)
	switch op.Kind {
	case OpCreateElement:
		fmt.Fprintf(&sb, " <%s>", op.Tag)
	case OpSetAttribute:
		fmt.Fprintf(&sb, " %s=%q", op.Key, op.Value)
	case OpBindAttribute:
		fmt.Fprintf(&sb, " %s=%q%s", op.Key, op.Text.Format, refList(op.Text))
	case OpListen:
		if op.Handler.Method != "" {
			fmt.Fprintf(&sb, " %s @%s", op.Key, op.Handler.Method)
		} else {
			fmt.Fprintf(&sb, " %s {%s}", op.Key, op.Handler.Stmt)
		}
	case OpCreateText:
		fmt.Fprintf(&sb, " %q%s", op.Text.Format, refList(op.Text))
	case OpWatchText:
		fmt.Fprintf(&sb, " $%s", op.State)
	case OpAppend:
		fmt.Fprintf(&sb, " -> %s", op.Parent)
	case OpInvoke:
		args := make([]string, len(op.Args))
		for i, a := range op.Args {
			if a.Key != "" {
				args[i] = a.Key + ": " + a.Value.String()
			} else {
				args[i] = a.Value.String()
			}
		}
		fmt.Fprintf(&sb, " %s(%s) -> %s", op.Component, strings.Join(args, ", "), op.Parent)
	}
	return sb.String()
}

func refList(in *Interpolation) string {
	if in.Static() {
		return ""
	}
	names := make([]string, len(in.Refs))
	for i, r := range in.Refs {
		if r.Kind == RefState {
			names[i] = "$" + r.Name
		} else {
			names[i] = r.Name
		}
	}
	return " [" + strings.Join(names, " ") + "]"
}

// Dump renders the program one operation per line, nested bodies indented.
func (p *Program) Dump() string {
	var sb strings.Builder
	p.dump(&sb, "")
	return sb.String()
}

func (p *Program) dump(sb *strings.Builder, indent string) {
	for _, op := range p.Ops {
		sb.WriteString(indent)
		sb.WriteString(op.String())
		sb.WriteByte('\n')
		if op.Body != nil {
			op.Body.dump(sb, indent+"  ")
		}
	}
}
