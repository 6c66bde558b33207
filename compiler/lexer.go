package compiler

import (
	"go/scanner"
	"go/token"
)

// item is one template token. Sigils ($ and @) are not Go tokens; the Go
// scanner reports them as ILLEGAL and the lexer tags them here.
type item struct {
	tok   token.Token
	lit   string
	pos   token.Position
	off   int
	end   int
	sigil byte
}

func (it item) text() string {
	if it.lit != "" {
		return it.lit
	}
	return it.tok.String()
}

// isName reports whether the token can serve as a tag name or argument key.
// Go keywords are accepted because names such as select or type are valid
// HTML.
func (it item) isName() bool {
	return it.tok == token.IDENT || it.tok.IsKeyword()
}

// tokenize scans src with the Go scanner. Automatic semicolons are dropped
// so that line breaks carry no meaning in templates.
func tokenize(fset *token.FileSet, filename string, src []byte) ([]item, Diagnostics) {
	var diags Diagnostics
	file := fset.AddFile(filename, -1, len(src))

	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		if pos.Offset < len(src) && isSigil(src[pos.Offset]) {
			return
		}
		diags.errorf(pos, "", "%s", msg)
	}, 0)

	var items []item
	for {
		pos, tok, lit := s.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		p := fset.Position(pos)
		it := item{tok: tok, lit: lit, pos: p, off: p.Offset}
		if tok == token.EOF {
			it.end = it.off
			items = append(items, it)
			return items, diags
		}
		it.end = it.off + len(it.text())
		if tok == token.ILLEGAL && len(lit) == 1 && isSigil(lit[0]) {
			it.sigil = lit[0]
		}
		items = append(items, it)
	}
}

func isSigil(b byte) bool {
	return b == '$' || b == '@'
}

var assignOps = map[token.Token]string{
	token.ASSIGN:     "=",
	token.ADD_ASSIGN: "+=",
	token.SUB_ASSIGN: "-=",
	token.MUL_ASSIGN: "*=",
	token.QUO_ASSIGN: "/=",
	token.REM_ASSIGN: "%=",
	token.AND_ASSIGN: "&=",
	token.OR_ASSIGN:  "|=",
	token.XOR_ASSIGN: "^=",
	token.SHL_ASSIGN: "<<=",
	token.SHR_ASSIGN: ">>=",
}
