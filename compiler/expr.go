package compiler

import (
	goparser "go/parser"
	"go/token"
	"strings"

	"github.com/vcrobe/tsz/signals"
)

// parseExpr parses one argument expression:
//
//	$name | @name | { expr } | [ expr, ... ] | <Go expression>
//
// optionally followed by an assignment operator and a right-hand side that
// goes through the same grammar.
func (p *parser) parseExpr() (Expr, bool) {
	start := p.cur()
	var lhs Expr

	switch {
	case start.sigil == '$' || start.sigil == '@':
		p.next()
		if !p.at(token.IDENT) {
			p.errorf("identifier", "%q must be followed by a name, found %s", string(start.sigil), p.found())
			return nil, false
		}
		name := p.cur().lit
		p.next()
		if start.sigil == '$' {
			lhs = &StateRef{Name: name, Position: start.pos}
		} else {
			lhs = &MethodRef{Name: name, Position: start.pos}
		}
	case start.tok == token.LBRACE:
		p.next()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.at(token.RBRACE) {
			p.errorf(`"}"`, "block is not closed, found %s", p.found())
			return nil, false
		}
		p.next()
		lhs = &Block{Inner: inner, Position: start.pos}
	case start.tok == token.LBRACK && p.peek().tok != token.RBRACK:
		list, ok := p.parseList()
		if !ok {
			return nil, false
		}
		lhs = list
	default:
		plain, ok := p.parsePlain()
		if !ok {
			return nil, false
		}
		lhs = plain
	}

	if op, ok := assignOps[p.cur().tok]; ok {
		opPos := p.cur().pos
		p.next()
		rhs, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		sop, _ := signals.ParseOp(op)
		return &Assignment{Target: lhs, Op: sop, Value: rhs, Position: opPos}, true
	}
	return lhs, true
}

func (p *parser) parseList() (*List, bool) {
	list := &List{Position: p.cur().pos}
	p.next() // [
	for !p.at(token.RBRACK) {
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list.Elems = append(list.Elems, x)
		if p.at(token.COMMA) {
			p.next()
			continue
		}
		if !p.at(token.RBRACK) {
			p.errorf(`"," or "]"`, "unexpected %s in list", p.found())
			return nil, false
		}
	}
	p.next() // ]
	return list, true
}

// parsePlain takes tokens up to the first delimiter at nesting depth zero
// and hands their source text to the Go expression parser.
func (p *parser) parsePlain() (*PlainExpr, bool) {
	first := p.cur()
	last := first
	depth := 0
	n := 0
loop:
	for !p.at(token.EOF) {
		it := p.cur()
		if depth == 0 {
			switch it.tok {
			case token.COMMA, token.RPAREN, token.RBRACK, token.RBRACE, token.SEMICOLON:
				break loop
			}
			if _, ok := assignOps[it.tok]; ok {
				break loop
			}
		}
		switch it.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		}
		if it.sigil != 0 {
			p.errorf("plain Go expression", "%s%s may only start an argument", string(it.sigil), p.peek().text())
			return nil, false
		}
		last = it
		n++
		p.next()
	}
	if n == 0 {
		p.errorf("expression", "missing expression before %s", p.found())
		return nil, false
	}

	src := string(p.src[first.off:last.end])
	x, err := goparser.ParseExpr(src)
	if err != nil {
		msg := err.Error()
		// go/parser prefixes positions relative to the fragment.
		if i := strings.Index(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
		p.diags.errorf(first.pos, "Go expression", "invalid expression %q: %s", src, msg)
		return nil, false
	}
	return &PlainExpr{Src: src, X: x, Position: first.pos}, true
}
