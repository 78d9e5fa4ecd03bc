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

import "github.com/foil-induction/foil/term"

// Mask is the (functor, arity, negation) signature that the candidate
// enumerator generates literals from.
type Mask struct {
	Functor string
	Arity   int
	Negated bool
}

// Literal is an Atom plus a negation flag.
type Literal struct {
	Atom    Atom
	Negated bool
}

// NewLiteral is a convenience constructor for a positive literal.
func NewLiteral(functor string, args ...term.Term) Literal {
	return Literal{Atom: NewAtom(functor, args...)}
}

// Mask returns this literal's (functor, arity, negation) signature.
func (l Literal) Mask() Mask {
	return Mask{Functor: l.Atom.Functor, Arity: l.Atom.Arity(), Negated: l.Negated}
}

// Complement returns the literal with its negation flag flipped.
func (l Literal) Complement() Literal {
	return Literal{Atom: l.Atom, Negated: !l.Negated}
}

// IsGround reports whether the underlying atom is ground.
func (l Literal) IsGround() bool { return l.Atom.IsGround() }

// Equals reports structural equality, including the negation flag.
func (l Literal) Equals(o Literal) bool {
	return l.Negated == o.Negated && l.Atom.Equals(o.Atom)
}

// String returns a canonical textual representation, e.g. "~edge(X,Y)".
func (l Literal) String() string {
	if l.Negated {
		return "~" + l.Atom.String()
	}
	return l.Atom.String()
}

// Substitute applies s to the underlying atom.
func (l Literal) Substitute(s term.Subst) Literal {
	return Literal{Atom: l.Atom.Substitute(s), Negated: l.Negated}
}

// Unify unifies two literals: it fails immediately if their negation flags
// differ, otherwise it delegates to Atom.Unify.
func (l Literal) Unify(o Literal) (term.Subst, bool) {
	if l.Negated != o.Negated {
		return nil, false
	}
	return l.Atom.Unify(o.Atom)
}

// Variables returns every distinct variable in the underlying atom.
func (l Literal) Variables() []term.Variable { return l.Atom.Variables() }
