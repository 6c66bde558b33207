package compiler

import (
	"bytes"
	"go/ast"
	goparser "go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

func (g *generator) genCreateText(op Op) {
	g.texts[op.Node] = true
	g.printf("%s := m.Doc.CreateTextNode(%s)", textVar(op.Node), g.format(op.Text))
}

// genWatchText re-formats the whole text, reading every reference fresh,
// whenever the watched cell publishes.
func (g *generator) genWatchText(op Op) {
	g.printf("%s.Observe(m.Scope, func() {", g.stateExpr(op.State))
	g.printf("%s.SetText(%s)", textVar(op.Node), g.format(op.Text))
	g.printf("})")
}

// format renders the expression producing the current text of in.
func (g *generator) format(in *Interpolation) string {
	if in.Static() {
		return strconv.Quote(in.Literal())
	}
	args := make([]string, len(in.Refs))
	for i, r := range in.Refs {
		if r.Kind == RefState {
			args[i] = g.stateExpr(r.Name) + ".Get()"
		} else {
			args[i] = g.textRef(r.Name)
		}
	}
	return "view.Sprintf(" + strconv.Quote(in.Format) + ", " + strings.Join(args, ", ") + ")"
}

// stateExpr names the cell field for a state reference.
func (g *generator) stateExpr(name string) string {
	if g.opts.comp != nil {
		if f, isState, ok := g.opts.comp.Schema.field(name); ok && isState {
			return g.recv + "." + f.Name
		}
	}
	return g.recv + "." + name
}

// methodExpr names a method value for a method reference.
func (g *generator) methodExpr(name string) string {
	if g.opts.comp != nil {
		if m, ok := g.opts.comp.Schema.method(name); ok {
			return g.recv + "." + m.Name
		}
	}
	return g.recv + "." + name
}

// textRef resolves a plain placeholder name such as "max" or "item.Name".
// Loop variables are used as is; other names are component members, and a
// member that is a method without parameters is called.
func (g *generator) textRef(name string) string {
	head, rest, _ := strings.Cut(name, ".")
	if rest != "" {
		rest = "." + rest
	}
	if g.bound(head) {
		return head + rest
	}
	if g.opts.comp != nil {
		s := g.opts.comp.Schema
		if f, _, ok := s.field(head); ok {
			return g.recv + "." + f.Name + rest
		}
		if m, ok := s.method(head); ok && len(m.Params) == 0 && len(m.Returns) == 1 {
			return g.recv + "." + m.Name + "()" + rest
		}
	}
	return g.recv + "." + head + rest
}

// plain renders a Go expression with its free identifiers resolved against
// the component. With a schema, members become fields or methods of the
// receiver even when they shadow a predeclared name, and every other name
// stays as written. Without one, only loop variables and predeclared names
// stay. Function literals are left untouched.
func (g *generator) plain(p *PlainExpr) string {
	// Re-parse so the shared AST is never mutated.
	x, err := goparser.ParseExpr(p.Src)
	if err != nil {
		g.diags.errorf(p.Position, "Go expression", "invalid expression %q: %v", p.Src, err)
		return "nil"
	}
	rewritten := astutil.Apply(x, func(cur *astutil.Cursor) bool {
		switch n := cur.Node().(type) {
		case *ast.FuncLit:
			return false
		case *ast.Ident:
			if cur.Name() == "Sel" {
				return false
			}
			if _, ok := cur.Parent().(*ast.KeyValueExpr); ok && cur.Name() == "Key" {
				return false
			}
			if _, ok := cur.Parent().(*ast.CompositeLit); ok && cur.Name() == "Type" {
				return false
			}
			if n.Name == "_" || g.bound(n.Name) {
				return false
			}
			if g.opts.comp != nil && !g.isMember(n.Name) {
				if path, ok := g.opts.comp.Imports[n.Name]; ok {
					g.use(path, importAlias(n.Name, path))
				}
				// Predeclared and package-level names of the component's package.
				return false
			}
			if g.opts.comp == nil && types.Universe.Lookup(n.Name) != nil {
				return false
			}
			cur.Replace(&ast.SelectorExpr{X: ast.NewIdent(g.recv), Sel: ast.NewIdent(g.memberName(n.Name))})
			return false
		}
		return true
	}, nil)

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), rewritten); err != nil {
		g.diags.errorf(p.Position, "Go expression", "cannot print %q: %v", p.Src, err)
		return "nil"
	}
	return buf.String()
}

func (g *generator) isMember(name string) bool {
	if _, _, ok := g.opts.comp.Schema.field(name); ok {
		return true
	}
	_, ok := g.opts.comp.Schema.method(name)
	return ok
}

// memberName maps a template name to the declared member, which may be the
// capitalized spelling.
func (g *generator) memberName(name string) string {
	if g.opts.comp == nil {
		return name
	}
	if f, _, ok := g.opts.comp.Schema.field(name); ok {
		return f.Name
	}
	if m, ok := g.opts.comp.Schema.method(name); ok {
		return m.Name
	}
	return name
}

// importAlias returns name when it differs from the last element of path,
// which is the name the import would get without an alias.
func importAlias(name, path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if path == name {
		return ""
	}
	return name
}
