package compiler

import (
	"go/token"
	"strconv"
)

// parser is a recursive-descent parser over the token slice produced by
// tokenize. Errors are collected rather than returned so that one pass
// reports every problem in a template.
type parser struct {
	src   []byte
	items []item
	p     int
	diags Diagnostics
}

// ParseView parses a template: "declare Name;" followed by elements.
// The returned error, if any, is a Diagnostics value. Warnings are attached
// to the View.
func ParseView(filename string, src []byte) (*View, error) {
	fset := token.NewFileSet()
	items, diags := tokenize(fset, filename, src)
	p := &parser{src: src, items: items, diags: diags}

	v := p.parseView()
	v.Warnings = p.diags.Warnings()
	if err := p.diags.Err(); err != nil {
		return v, err
	}
	return v, nil
}

func (p *parser) cur() item {
	return p.items[p.p]
}

func (p *parser) peek() item {
	if p.p+1 < len(p.items) {
		return p.items[p.p+1]
	}
	return p.items[len(p.items)-1]
}

func (p *parser) next() {
	if p.p < len(p.items)-1 {
		p.p++
	}
}

func (p *parser) at(tok token.Token) bool {
	return p.cur().tok == tok
}

func (p *parser) errorf(expected, format string, args ...any) {
	p.diags.errorf(p.cur().pos, expected, format, args...)
}

// found describes the current token for error messages.
func (p *parser) found() string {
	it := p.cur()
	switch {
	case it.tok == token.EOF:
		return "end of template"
	case it.sigil != 0:
		return strconv.Quote(string(it.sigil))
	}
	return strconv.Quote(it.text())
}

func (p *parser) parseView() *View {
	v := &View{}
	if !(p.at(token.IDENT) && p.cur().lit == "declare") {
		p.errorf(`"declare Name;"`, "template must start with a declaration, found %s", p.found())
	} else {
		p.next()
	}
	if p.at(token.IDENT) {
		v.Name = p.cur().lit
		v.NamePos = p.cur().pos
		p.next()
	} else {
		p.errorf("component name", "missing view name, found %s", p.found())
	}
	if p.at(token.SEMICOLON) {
		p.next()
	} else {
		p.errorf(`";"`, "declaration is not terminated, found %s", p.found())
	}

	for !p.at(token.EOF) {
		if p.at(token.RBRACE) {
			p.errorf("element", "unmatched '}'")
			p.next()
			continue
		}
		if n := p.parseNode(); n != nil {
			v.Nodes = append(v.Nodes, n)
		}
	}
	return v
}

// parseNode parses one element or text literal. It returns nil after
// reporting an error and resynchronizing.
func (p *parser) parseNode() Node {
	it := p.cur()
	switch {
	case it.tok == token.STRING:
		p.next()
		s, err := strconv.Unquote(it.lit)
		if err != nil {
			p.diags.errorf(it.pos, "", "invalid string literal %s", it.lit)
			return nil
		}
		if p.at(token.SEMICOLON) {
			p.next()
		}
		return &Text{Value: s, Position: it.pos}
	case it.isName():
		return p.parseElement()
	}
	p.errorf("element or string literal", "unexpected %s", p.found())
	p.sync()
	return nil
}

func (p *parser) parseElement() Node {
	el := &Element{Position: p.cur().pos}
	if p.cur().lit == "view" && p.peek().isName() {
		el.Marked = true
		p.next()
	}
	el.Name = p.cur().text()
	p.next()
	el.Kind = p.classify(el)

	if p.at(token.LPAREN) {
		el.HasArgs = true
		args, ok := p.parseArgs()
		el.Args = args
		if !ok {
			p.sync()
			return el
		}
	}

	switch {
	case p.at(token.SEMICOLON):
		p.next()
	case p.at(token.LBRACE):
		el.HasBody = true
		p.next()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			if n := p.parseNode(); n != nil {
				el.Body = append(el.Body, n)
			}
		}
		if p.at(token.EOF) {
			p.diags.errorf(el.Position, `"}"`, "body of %s is not closed", el.Name)
			return el
		}
		p.next()
	default:
		p.errorf(`";" or "{"`, "element %s is not terminated, found %s", el.Name, p.found())
		p.sync()
	}
	return el
}

// parseArgs parses a parenthesized argument list. A trailing comma is
// accepted.
func (p *parser) parseArgs() ([]*Argument, bool) {
	p.next() // (
	var args []*Argument
	for !p.at(token.RPAREN) {
		arg, ok := p.parseArg()
		if !ok {
			return args, false
		}
		args = append(args, arg)
		if p.at(token.COMMA) {
			p.next()
			continue
		}
		if !p.at(token.RPAREN) {
			p.errorf(`"," or ")"`, "unexpected %s in argument list", p.found())
			return args, false
		}
	}
	p.next() // )
	return args, true
}

func (p *parser) parseArg() (*Argument, bool) {
	arg := &Argument{Position: p.cur().pos}
	if p.cur().isName() && p.peek().tok == token.COLON {
		arg.Key = p.cur().text()
		p.next()
		p.next()
	}
	x, ok := p.parseExpr()
	arg.Value = x
	return arg, ok
}

// sync skips to the end of the broken construct: past the next ";" or up to
// a "}" that closes an enclosing body.
func (p *parser) sync() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK:
			if depth > 0 {
				depth--
			}
		case token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				return
			}
		case token.SEMICOLON:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}
