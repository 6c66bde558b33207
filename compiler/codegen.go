package compiler

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/tools/imports"
)

const (
	domImport     = "github.com/vcrobe/tsz/dom"
	signalsImport = "github.com/vcrobe/tsz/signals"
	viewImport    = "github.com/vcrobe/tsz/view"
)

// GenOptions configures Generate.
type GenOptions struct {
	// Package is the package clause of the generated file.
	Package string
	// Source is the template file name quoted in the header.
	Source string
	// Receiver is the receiver name of the generated methods, "c" by default.
	Receiver string

	comp       *componentInfo
	components map[string]componentInfo
}

// generator emits Go source for one Program.
type generator struct {
	buf     bytes.Buffer
	opts    GenOptions
	recv    string
	loops   []*LoopVars
	imports map[string]string // import path -> explicit name ("" for default)
	texts   map[NodeID]bool
	diags   Diagnostics
}

// Generate renders prog as a Go file adding Init to the component type
// prog.Name. The output is formatted and its imports are resolved with
// golang.org/x/tools/imports.
func Generate(prog *Program, opts GenOptions) ([]byte, error) {
	if opts.Receiver == "" {
		opts.Receiver = "c"
	}
	if opts.Package == "" {
		return nil, fmt.Errorf("generate %s: package name is required", prog.Name)
	}
	g := &generator{
		opts:    opts,
		recv:    opts.Receiver,
		imports: map[string]string{domImport: "", viewImport: ""},
		texts:   make(map[NodeID]bool),
	}

	g.genMount(prog)
	if err := g.diags.Err(); err != nil {
		return nil, err
	}
	mount := g.buf.Bytes()

	var out bytes.Buffer
	source := opts.Source
	if source == "" {
		source = "template"
	}
	fmt.Fprintf(&out, "// Code generated by tsz-compiler from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	g.writeImports(&out)

	scope := ""
	if g.hasBase() {
		scope = fmt.Sprintf(", Scope: %s.Scope()", g.recv)
	}
	fmt.Fprintf(&out, "// Init builds the %s view under parent. It must be called at most once per instance.\n", prog.Name)
	fmt.Fprintf(&out, "func (%s *%s) Init(doc dom.Document, parent dom.Element) error {\n", g.recv, prog.Name)
	fmt.Fprintf(&out, "return %s.mount(view.Mount{Doc: doc, Parent: parent%s})\n}\n\n", g.recv, scope)
	fmt.Fprintf(&out, "func (%s *%s) mount(m view.Mount) error {\n", g.recv, prog.Name)
	out.Write(mount)
	out.WriteString("return nil\n}\n")

	filename := opts.Source + ".go"
	formatted, err := imports.Process(filename, out.Bytes(), nil)
	if err != nil {
		return out.Bytes(), fmt.Errorf("format generated code for %s: %w", prog.Name, err)
	}
	return formatted, nil
}

func (g *generator) hasBase() bool {
	return g.opts.comp == nil || g.opts.comp.Schema.HasBase
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

func (g *generator) use(path, name string) {
	if _, ok := g.imports[path]; !ok {
		g.imports[path] = name
	}
}

func (g *generator) writeImports(out *bytes.Buffer) {
	paths := make([]string, 0, len(g.imports))
	for p := range g.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out.WriteString("import (\n")
	for _, p := range paths {
		if name := g.imports[p]; name != "" {
			fmt.Fprintf(out, "%s %s\n", name, strconv.Quote(p))
		} else {
			fmt.Fprintf(out, "%s\n", strconv.Quote(p))
		}
	}
	out.WriteString(")\n\n")
}

// genMount emits the statements of prog against the mount variable m.
func (g *generator) genMount(prog *Program) {
	for _, op := range prog.Ops {
		switch op.Kind {
		case OpCreateElement:
			g.genCreateElement(op)
		case OpSetAttribute:
			g.genSetAttribute(op)
		case OpBindAttribute:
			g.genBindAttribute(op)
		case OpListen:
			g.genListen(op)
		case OpCreateText:
			g.genCreateText(op)
		case OpWatchText:
			g.genWatchText(op)
		case OpAppend:
			g.genAppend(op)
		case OpInvoke:
			switch op.Component {
			case BuiltinIf:
				g.genIf(op)
			case BuiltinFor:
				g.genFor(op)
			default:
				g.genComponent(op)
			}
		}
	}
}

// checked emits stmt, which must evaluate to an error, returning it on failure.
func (g *generator) checked(format string, args ...any) {
	g.printf("if err := "+format+"; err != nil {", args...)
	g.printf("return err")
	g.printf("}")
}

func elemVar(id NodeID) string { return fmt.Sprintf("e%d", int(id)) }
func textVar(id NodeID) string { return fmt.Sprintf("t%d", int(id)) }
func viewVar(id NodeID) string { return fmt.Sprintf("v%d", int(id)) }

func parentExpr(id NodeID) string {
	if id == Root {
		return "m.Parent"
	}
	return elemVar(id)
}

func (g *generator) pushLoop(v *LoopVars) { g.loops = append(g.loops, v) }
func (g *generator) popLoop()             { g.loops = g.loops[:len(g.loops)-1] }

// bound reports whether name is a loop variable in scope.
func (g *generator) bound(name string) bool {
	for _, l := range g.loops {
		if l.Item == name || l.Index == name {
			return true
		}
	}
	return false
}
