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

// Package model contains the knowledge-representation layer that the
// induction engine reasons over: atoms, literals, clauses, programs, and
// the examples a target relation is described by.
//
// Atom and Literal are not comparable with == (they embed slices), and are
// not map-hashable; String() gives a canonical textual form for use as a
// map key.
package model

import (
	"regexp"
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/foil-induction/foil/term"
)

// bareFunctor matches a functor that reads back as a plain identifier.
var bareFunctor = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*$`)

// Atom is a predicate symbol applied to an ordered sequence of terms.
type Atom struct {
	Functor string
	Args    []term.Term
}

// NewAtom is a convenience constructor.
func NewAtom(functor string, args ...term.Term) Atom {
	return Atom{Functor: functor, Args: args}
}

// Arity returns the number of arguments.
func (a Atom) Arity() int { return len(a.Args) }

// IsGround reports whether every argument is a ground value.
func (a Atom) IsGround() bool {
	for _, t := range a.Args {
		if !term.IsGround(t) {
			return false
		}
	}
	return true
}

// Equals reports structural equality: same functor, same arity, pairwise
// equal arguments.
func (a Atom) Equals(o Atom) bool {
	if a.Functor != o.Functor || len(a.Args) != len(o.Args) {
		return false
	}
	for i, t := range a.Args {
		if !t.Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// String returns a canonical textual representation, e.g. "edge(0,1)".
// A functor that is not a plain lower-case identifier is printed quoted.
func (a Atom) String() string {
	var sb strings.Builder
	if bareFunctor.MatchString(a.Functor) {
		sb.WriteString(a.Functor)
	} else {
		sb.WriteString(strconv.Quote(a.Functor))
	}
	sb.WriteByte('(')
	for i, t := range a.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Substitute applies s to every argument.
func (a Atom) Substitute(s term.Subst) Atom {
	args := make([]term.Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = term.ApplySubst(t, s)
	}
	return Atom{Functor: a.Functor, Args: args}
}

// Unify computes the most general substitution under which a and o become
// equal, folding term.Unify over the paired argument sequences and then
// simplifying. It fails on functor or arity mismatch.
func (a Atom) Unify(o Atom) (term.Subst, bool) {
	if a.Functor != o.Functor || len(a.Args) != len(o.Args) {
		return nil, false
	}
	s := term.Subst{}
	var ok bool
	for i, t := range a.Args {
		s, ok = term.Unify(t, o.Args[i], s)
		if !ok {
			return nil, false
		}
	}
	return term.Simplify(s), true
}

// Variables returns every distinct variable appearing in a, in first-seen
// order.
func (a Atom) Variables() []term.Variable {
	var vars []term.Variable
	seen := stringset.New()
	for _, t := range a.Args {
		if v, ok := t.(term.Variable); ok && !seen.Contains(v.Name) {
			seen.Add(v.Name)
			vars = append(vars, v)
		}
	}
	return vars
}
