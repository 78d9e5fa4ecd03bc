// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parse

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

type parser struct {
	tokens []token
	pos    int
}

func newParser(src string) (*parser, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if t.kind != tEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, fmt.Errorf("parse: expected %s at position %d, got %q", what, t.pos, t.text)
	}
	return p.advance(), nil
}

func (p *parser) atEOF() bool { return p.peek().kind == tEOF }

// done verifies the whole input was consumed, for the single-item
// entry points below.
func (p *parser) done() error {
	if t := p.peek(); t.kind != tEOF {
		return fmt.Errorf("parse: unexpected trailing input %q at position %d", t.text, t.pos)
	}
	return nil
}

// Term parses a single term: a boolean, integer, real, quoted string,
// bare identifier, or variable.
func Term(src string) (term.Term, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if err := p.done(); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) term() (term.Term, error) {
	t := p.peek()
	switch t.kind {
	case tMinus:
		p.advance()
		num := p.peek()
		switch num.kind {
		case tInt:
			p.advance()
			i, err := strconv.ParseInt(num.text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse: bad integer %q at position %d", num.text, num.pos)
			}
			return term.NewInt(-i), nil
		case tFloat:
			p.advance()
			f, err := strconv.ParseFloat(num.text, 64)
			if err != nil {
				return nil, fmt.Errorf("parse: bad real %q at position %d", num.text, num.pos)
			}
			return term.NewFloat(-f), nil
		}
		return nil, fmt.Errorf("parse: expected a number after '-' at position %d", t.pos)
	case tInt:
		p.advance()
		i, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse: bad integer %q at position %d", t.text, t.pos)
		}
		return term.NewInt(i), nil
	case tFloat:
		p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("parse: bad real %q at position %d", t.text, t.pos)
		}
		return term.NewFloat(f), nil
	case tString:
		p.advance()
		return term.NewString(t.text), nil
	case tIdent:
		p.advance()
		if b, ok := boolean(t.text); ok {
			return term.NewBool(b), nil
		}
		return term.NewString(t.text), nil
	case tVariable:
		p.advance()
		if b, ok := boolean(t.text); ok {
			return term.NewBool(b), nil
		}
		v, err := term.NewVariable(t.text)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("parse: expected a term at position %d, got %q", t.pos, t.text)
}

// boolean recognizes the TRUE/FALSE constants, case-insensitively.
func boolean(text string) (bool, bool) {
	switch strings.ToUpper(text) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	}
	return false, false
}

// Atom parses `functor` or `functor(term, ...)`.
func Atom(src string) (model.Atom, error) {
	p, err := newParser(src)
	if err != nil {
		return model.Atom{}, err
	}
	a, err := p.atom()
	if err != nil {
		return model.Atom{}, err
	}
	if err := p.done(); err != nil {
		return model.Atom{}, err
	}
	return a, nil
}

func (p *parser) atom() (model.Atom, error) {
	t := p.peek()
	if t.kind != tIdent && t.kind != tString {
		return model.Atom{}, fmt.Errorf("parse: expected a functor at position %d, got %q", t.pos, t.text)
	}
	p.advance()
	a := model.Atom{Functor: t.text}
	if p.peek().kind != tLParen {
		return a, nil
	}
	p.advance()
	if p.peek().kind == tRParen {
		p.advance()
		return a, nil
	}
	for {
		arg, err := p.term()
		if err != nil {
			return model.Atom{}, err
		}
		a.Args = append(a.Args, arg)
		switch p.peek().kind {
		case tComma:
			p.advance()
		case tRParen:
			p.advance()
			return a, nil
		default:
			return model.Atom{}, fmt.Errorf("parse: expected ',' or ')' at position %d, got %q", p.peek().pos, p.peek().text)
		}
	}
}

// Literal parses an optionally negated atom. Double negation cancels:
// `~~p(X)` is `p(X)`.
func Literal(src string) (model.Literal, error) {
	p, err := newParser(src)
	if err != nil {
		return model.Literal{}, err
	}
	l, err := p.literal()
	if err != nil {
		return model.Literal{}, err
	}
	if err := p.done(); err != nil {
		return model.Literal{}, err
	}
	return l, nil
}

func (p *parser) literal() (model.Literal, error) {
	negated := false
	for p.peek().kind == tTilde {
		p.advance()
		negated = !negated
	}
	a, err := p.atom()
	if err != nil {
		return model.Literal{}, err
	}
	return model.Literal{Atom: a, Negated: negated}, nil
}

// Clause parses `head.` or `head :- lit1, ..., litk.`.
func Clause(src string) (model.Clause, error) {
	p, err := newParser(src)
	if err != nil {
		return model.Clause{}, err
	}
	c, err := p.clause()
	if err != nil {
		return model.Clause{}, err
	}
	if err := p.done(); err != nil {
		return model.Clause{}, err
	}
	return c, nil
}

func (p *parser) clause() (model.Clause, error) {
	head, err := p.literal()
	if err != nil {
		return model.Clause{}, err
	}
	c := model.Clause{Head: head}
	switch p.peek().kind {
	case tDot:
		p.advance()
		return c, nil
	case tColonDash:
		p.advance()
	default:
		return model.Clause{}, fmt.Errorf("parse: expected '.' or ':-' at position %d, got %q", p.peek().pos, p.peek().text)
	}
	for {
		lit, err := p.literal()
		if err != nil {
			return model.Clause{}, err
		}
		c.Body = append(c.Body, lit)
		switch p.peek().kind {
		case tComma:
			p.advance()
		case tDot:
			p.advance()
			return c, nil
		default:
			return model.Clause{}, fmt.Errorf("parse: expected ',' or '.' at position %d, got %q", p.peek().pos, p.peek().text)
		}
	}
}

// Program parses a whitespace-separated sequence of clauses. On a
// malformed clause the parser records the error, skips ahead to the next
// '.' and keeps going, so a single bad clause does not mask problems in
// the rest of the input; every error found is returned, combined.
func Program(src string) (model.Program, error) {
	p, err := newParser(src)
	if err != nil {
		return model.Program{}, err
	}
	var clauses []model.Clause
	var errs error
	for !p.atEOF() {
		c, err := p.clause()
		if err != nil {
			errs = multierr.Append(errs, err)
			p.recover()
			continue
		}
		clauses = append(clauses, c)
	}
	if errs != nil {
		return model.Program{}, errs
	}
	return model.NewProgram(clauses...), nil
}

// recover skips past the next '.' so parsing can resume at the following
// clause.
func (p *parser) recover() {
	for !p.atEOF() {
		if p.advance().kind == tDot {
			return
		}
	}
}

// Example parses `(+) {X: v1, Y: v2, ...}` or `(-) {...}`.
func Example(src string) (model.Example, error) {
	p, err := newParser(src)
	if err != nil {
		return model.Example{}, err
	}
	e, err := p.example()
	if err != nil {
		return model.Example{}, err
	}
	if err := p.done(); err != nil {
		return model.Example{}, err
	}
	return e, nil
}

func (p *parser) example() (model.Example, error) {
	if _, err := p.expect(tLParen, "'('"); err != nil {
		return model.Example{}, err
	}
	var label model.Label
	switch t := p.peek(); t.kind {
	case tPlus:
		label = model.Positive
	case tMinus:
		label = model.Negative
	default:
		return model.Example{}, fmt.Errorf("parse: expected '+' or '-' at position %d, got %q", t.pos, t.text)
	}
	p.advance()
	if _, err := p.expect(tRParen, "')'"); err != nil {
		return model.Example{}, err
	}
	if _, err := p.expect(tLBrace, "'{'"); err != nil {
		return model.Example{}, err
	}

	assignment := model.Assignment{}
	if p.peek().kind == tRBrace {
		p.advance()
		return model.NewExample(assignment, label), nil
	}
	for {
		vt, err := p.expect(tVariable, "a variable")
		if err != nil {
			return model.Example{}, err
		}
		v, err := term.NewVariable(vt.text)
		if err != nil {
			return model.Example{}, err
		}
		if _, err := p.expect(tColon, "':'"); err != nil {
			return model.Example{}, err
		}
		t, err := p.term()
		if err != nil {
			return model.Example{}, err
		}
		value, ok := t.(term.Value)
		if !ok {
			return model.Example{}, fmt.Errorf("parse: example bindings must be ground, got %s for %s", t, v)
		}
		assignment[v] = value
		switch p.peek().kind {
		case tComma:
			p.advance()
		case tRBrace:
			p.advance()
			return model.NewExample(assignment, label), nil
		default:
			return model.Example{}, fmt.Errorf("parse: expected ',' or '}' at position %d, got %q", p.peek().pos, p.peek().text)
		}
	}
}
