package compiler

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// Built-in control constructs. They are invoked like components but are
// implemented by the view runtime.
const (
	BuiltinIf  = "If"
	BuiltinFor = "For"
)

// Classify decides whether an element name denotes a host tag or a
// component from its text alone: a leading upper-case letter means
// component. Names that contain '_' are still components; they are flagged
// by the parser because earlier template editions disagreed on them.
func Classify(name string) Kind {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return ComponentTag
	}
	return HostTag
}

// IsBuiltin reports whether name is one of the control constructs.
func IsBuiltin(name string) bool {
	return name == BuiltinIf || name == BuiltinFor
}

// IsKnownHostTag reports whether tag is a standard HTML element name or a
// custom element name (containing '-').
func IsKnownHostTag(tag string) bool {
	return atom.Lookup([]byte(tag)) != 0 || strings.Contains(tag, "-")
}

func (p *parser) classify(el *Element) Kind {
	if el.Marked {
		return ComponentTag
	}
	kind := Classify(el.Name)
	switch {
	case kind == ComponentTag && strings.Contains(el.Name, "_"):
		p.diags.warnf(el.Position, "%s is treated as a component; names with '_' are ambiguous, prefer \"view %s\"", el.Name, el.Name)
	case kind == HostTag && !IsKnownHostTag(el.Name):
		p.diags.warnf(el.Position, "unknown host tag <%s>", el.Name)
	}
	return kind
}
