package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/scanner"
)

const maxNesting = 256

// parser evaluates the arithmetic grammar
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := number | '(' expr ')'
//
// while reading it. Nothing outside this grammar is accepted.
type parser struct {
	s     scanner.Scanner
	tok   rune
	depth int
	err   error
}

func parse(expr string) (float64, error) {
	p := &parser{}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(s.Pos().Offset, msg)
	}
	p.next()

	if p.tok == scanner.EOF {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	v := p.expr()
	if p.err == nil && p.tok != scanner.EOF {
		p.unexpected()
	}
	if p.err != nil {
		return 0, p.err
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result is not a finite number", ErrInvalidExpression)
	}
	return v, nil
}

func (p *parser) next() {
	p.tok = p.s.Scan()
}

func (p *parser) fail(offset int, msg string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s at offset %d", ErrInvalidExpression, msg, offset)
	}
}

func (p *parser) unexpected() {
	if p.tok == scanner.EOF {
		p.fail(p.s.Position.Offset, "unexpected end of input")
		return
	}
	p.fail(p.s.Position.Offset, fmt.Sprintf("unexpected %q", p.s.TokenText()))
}

func (p *parser) expr() float64 {
	v := p.term()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		rhs := p.term()
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v
}

func (p *parser) term() float64 {
	v := p.unary()
	for p.err == nil && (p.tok == '*' || p.tok == '/') {
		op := p.tok
		p.next()
		rhs := p.unary()
		if op == '*' {
			v *= rhs
		} else {
			v /= rhs
		}
	}
	return v
}

func (p *parser) unary() float64 {
	if p.err != nil {
		return 0
	}
	switch p.tok {
	case '+', '-':
		op := p.tok
		if !p.enter() {
			return 0
		}
		defer p.leave()
		p.next()
		v := p.unary()
		if op == '-' {
			return -v
		}
		return v
	default:
		return p.primary()
	}
}

func (p *parser) primary() float64 {
	if p.err != nil {
		return 0
	}
	switch p.tok {
	case scanner.Int, scanner.Float:
		v, err := parseNumber(p.s.TokenText())
		if err != nil {
			p.fail(p.s.Position.Offset, err.Error())
			return 0
		}
		p.next()
		return v
	case '(':
		if !p.enter() {
			return 0
		}
		defer p.leave()
		p.next()
		v := p.expr()
		if p.err != nil {
			return 0
		}
		if p.tok != ')' {
			p.unexpected()
			return 0
		}
		p.next()
		return v
	default:
		p.unexpected()
		return 0
	}
}

func (p *parser) enter() bool {
	p.depth++
	if p.depth > maxNesting {
		p.fail(p.s.Position.Offset, "expression nested too deeply")
		return false
	}
	return true
}

func (p *parser) leave() {
	p.depth--
}

func parseNumber(text string) (float64, error) {
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, nil
	}
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", text)
	}
	return float64(n), nil
}
