package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

// RefKind tags a name referenced from text.
type RefKind int

const (
	// RefPlain resolves to a value in the enclosing scope.
	RefPlain RefKind = iota
	// RefState reads a cell and makes the text reactive.
	RefState
)

func (k RefKind) String() string {
	if k == RefState {
		return "state"
	}
	return "plain"
}

// TextRef is one placeholder of an interpolated string.
type TextRef struct {
	Name string
	Kind RefKind
}

// Interpolation is a text literal resolved into a fmt format string and the
// ordered names that fill its verbs. len(Refs) always equals the number of
// verbs in Format.
type Interpolation struct {
	Format string
	Refs   []TextRef
}

// Static reports whether the text has no placeholders.
func (in *Interpolation) Static() bool {
	return len(in.Refs) == 0
}

// Literal returns the text of a static interpolation.
func (in *Interpolation) Literal() string {
	return strings.ReplaceAll(in.Format, "%%", "%")
}

// StateNames returns the distinct state names in first-use order.
func (in *Interpolation) StateNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range in.Refs {
		if r.Kind == RefState && !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	return names
}

var placeholderName = regexp.MustCompile(`^\$?[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Interpolate resolves the placeholders of a text literal:
//
//	{name}       value of name, %v
//	{name:spec}  value formatted by spec (e.g. 03, .2f, <8, x, ?)
//	{$name}      value of the cell name
//
// "{{" and "}}" produce literal braces, as does a "{" followed by a space,
// a "}" or the end of the text.
func Interpolate(text string) (*Interpolation, error) {
	var format strings.Builder
	var refs []TextRef

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '%':
			format.WriteString("%%")
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				i++
			}
			format.WriteByte('}')
		case '{':
			if i+1 >= len(text) {
				format.WriteByte('{')
				continue
			}
			switch text[i+1] {
			case '{':
				format.WriteByte('{')
				i++
				continue
			case ' ', '\t', '\n', '}':
				format.WriteByte('{')
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("placeholder at offset %d is not closed", i)
			}
			slot := text[i+1 : i+1+end]
			name, spec, _ := strings.Cut(slot, ":")
			if !placeholderName.MatchString(name) {
				return nil, fmt.Errorf("invalid placeholder {%s}", slot)
			}
			verb, err := translateSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("placeholder {%s}: %w", slot, err)
			}
			ref := TextRef{Name: name, Kind: RefPlain}
			if strings.HasPrefix(name, "$") {
				ref = TextRef{Name: name[1:], Kind: RefState}
				if strings.Contains(ref.Name, ".") {
					return nil, fmt.Errorf("placeholder {%s}: state references cannot select fields", slot)
				}
			}
			refs = append(refs, ref)
			format.WriteString(verb)
			i += end + 1
		default:
			format.WriteByte(c)
		}
	}
	return &Interpolation{Format: format.String(), Refs: refs}, nil
}

// translateSpec turns a format spec of the form
//
//	[align][+][#][0][width][.precision][type]
//
// into a fmt verb. align is "<" (left) or ">" (right, the default).
func translateSpec(spec string) (string, error) {
	var flags strings.Builder
	i := 0
	if i < len(spec) {
		switch spec[i] {
		case '<':
			flags.WriteByte('-')
			i++
		case '>':
			i++
		case '^':
			return "", fmt.Errorf("centered alignment is not supported")
		}
	}
	if i < len(spec) && spec[i] == '+' {
		flags.WriteByte('+')
		i++
	}
	if i < len(spec) && spec[i] == '#' {
		flags.WriteByte('#')
		i++
	}
	if i < len(spec) && spec[i] == '0' {
		flags.WriteByte('0')
		i++
	}
	start := i
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	width := spec[start:i]
	prec := ""
	if i < len(spec) && spec[i] == '.' {
		j := i + 1
		for j < len(spec) && spec[j] >= '0' && spec[j] <= '9' {
			j++
		}
		if j == i+1 {
			return "", fmt.Errorf("missing precision after '.'")
		}
		prec = spec[i:j]
		i = j
	}

	verb := "v"
	switch rest := spec[i:]; rest {
	case "":
	case "?":
		if !strings.Contains(flags.String(), "#") {
			flags.WriteByte('#')
		}
	case "x", "X", "o", "b", "e", "E", "d", "f", "g", "s", "q", "t", "c", "U":
		verb = rest
	default:
		return "", fmt.Errorf("unknown format type %q", rest)
	}
	return "%" + flags.String() + width + prec + verb, nil
}
