package envfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/genwalk/genwalk/internal/ast"
	"github.com/genwalk/genwalk/internal/token"
)

// ParseTypeExpr reads a bracketed type reference like "Moo[List[C]]" into
// its unresolved tree form. All nodes share the site's position.
func ParseTypeExpr(src string, at token.Position) (*ast.TypeExpr, error) {
	p := &exprParser{src: src}
	expr, err := p.parse(at)
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected %q in type expression %q", p.src[p.pos:p.pos+1], src)
	}
	return expr, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) parse(at token.Position) (*ast.TypeExpr, error) {
	p.skipSpaces()
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected type name in %q at offset %d", p.src, p.pos)
	}
	expr := &ast.TypeExpr{Name: name, Pos: at}
	p.skipSpaces()
	if p.peek() != '[' {
		return expr, nil
	}
	p.pos++ // '['
	for {
		arg, err := p.parse(at)
		if err != nil {
			return nil, err
		}
		expr.Args = append(expr.Args, arg)
		p.skipSpaces()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return expr, nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' in type expression %q", p.src)
		}
	}
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9', c == '.':
		return !first
	}
	return false
}

// isValidName reports whether a declared name fits the identifier grammar
// ParseTypeExpr reads. Declarations and site references share one grammar,
// so every declared type is reachable from sites and rendered names are
// unambiguous in intern keys.
func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i], i == 0) {
			return false
		}
	}
	return true
}

// parsePos reads "file:line:col" or "file:line" position strings.
func parsePos(s string) (token.Position, bool) {
	parts := strings.Split(s, ":")
	if len(parts) >= 3 {
		line, err1 := strconv.Atoi(parts[len(parts)-2])
		col, err2 := strconv.Atoi(parts[len(parts)-1])
		if err1 == nil && err2 == nil {
			return token.Position{
				File:   strings.Join(parts[:len(parts)-2], ":"),
				Line:   line,
				Column: col,
			}, true
		}
	}
	if len(parts) == 2 {
		if line, err := strconv.Atoi(parts[1]); err == nil {
			return token.Position{File: parts[0], Line: line, Column: 1}, true
		}
	}
	return token.Position{}, false
}
