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

package model

import (
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/foil-induction/foil/term"
)

// Clause is a definite Horn clause: a head literal plus a (possibly empty)
// ordered conjunction of body literals.
type Clause struct {
	Head Literal
	Body []Literal
}

// NewClause constructs a clause. A nil or empty body makes a fact.
func NewClause(head Literal, body ...Literal) Clause {
	return Clause{Head: head, Body: body}
}

// IsFact reports whether c has an empty body and a ground head.
func (c Clause) IsFact() bool {
	return len(c.Body) == 0 && c.Head.IsGround()
}

// IsRule reports whether c has a non-empty body.
func (c Clause) IsRule() bool { return len(c.Body) > 0 }

// Equals reports whether heads are equal and bodies are equal as ordered
// sequences.
func (c Clause) Equals(o Clause) bool {
	if !c.Head.Equals(o.Head) || len(c.Body) != len(o.Body) {
		return false
	}
	for i, l := range c.Body {
		if !l.Equals(o.Body[i]) {
			return false
		}
	}
	return true
}

// String returns a canonical textual representation, e.g.
// "path(X,Y) :- edge(X,Y)." or "edge(0,1)." for a fact.
func (c Clause) String() string {
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	parts := make([]string, len(c.Body))
	for i, l := range c.Body {
		parts[i] = l.String()
	}
	return c.Head.String() + " :- " + strings.Join(parts, ", ") + "."
}

// Substitute applies s to the head and every body literal.
func (c Clause) Substitute(s term.Subst) Clause {
	body := make([]Literal, len(c.Body))
	for i, l := range c.Body {
		body[i] = l.Substitute(s)
	}
	return Clause{Head: c.Head.Substitute(s), Body: body}
}

// Literals returns the head followed by the body literals.
func (c Clause) Literals() []Literal {
	return append([]Literal{c.Head}, c.Body...)
}

// Variables returns every distinct variable across head and body, in
// first-seen order.
func (c Clause) Variables() []term.Variable {
	var vars []term.Variable
	seen := stringset.New()
	for _, l := range c.Literals() {
		for _, v := range l.Variables() {
			if !seen.Contains(v.Name) {
				seen.Add(v.Name)
				vars = append(vars, v)
			}
		}
	}
	return vars
}
