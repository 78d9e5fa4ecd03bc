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
	"sort"
	"strings"

	"github.com/foil-induction/foil/term"
)

// Label classifies an Example as describing a relation that should, or
// should not, be entailed by the induced hypothesis.
type Label int

const (
	// Positive marks an example the hypothesis must cover.
	Positive Label = iota
	// Negative marks an example the hypothesis must exclude.
	Negative
)

func (l Label) String() string {
	if l == Positive {
		return "(+)"
	}
	return "(-)"
}

// Assignment maps a target relation's variables to ground values.
type Assignment map[term.Variable]term.Value

// Equals reports whether a and o bind exactly the same variables to
// exactly the same values.
func (a Assignment) Equals(o Assignment) bool {
	if len(a) != len(o) {
		return false
	}
	for k, v := range a {
		ov, ok := o[k]
		if !ok || !v.Equals(ov) {
			return false
		}
	}
	return true
}

// String returns a canonical textual representation, with variables in
// sorted order, e.g. "{X: 0, Y: 1}".
func (a Assignment) String() string {
	names := make([]string, 0, len(a))
	for v := range a {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + a[term.Variable{Name: n}].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Substitution returns a's bindings as a term.Subst, suitable for use with
// Literal.Substitute.
func (a Assignment) Substitution() term.Subst {
	s := make(term.Subst, len(a))
	for v, val := range a {
		s[v] = val
	}
	return s
}

// Example is an assignment of a target relation's variables together with
// a label saying whether that instance should, or should not, be entailed.
// Distinct labels over the same assignment are distinct examples.
type Example struct {
	Assignment Assignment
	Label      Label
}

// NewExample is a convenience constructor.
func NewExample(a Assignment, l Label) Example {
	return Example{Assignment: a, Label: l}
}

// Equals reports whether two examples have the same label and assignment.
func (e Example) Equals(o Example) bool {
	return e.Label == o.Label && e.Assignment.Equals(o.Assignment)
}

// String returns a canonical textual representation, e.g. "(+) {X: 0, Y: 1}".
func (e Example) String() string {
	return e.Label.String() + " " + e.Assignment.String()
}

// Fact substitutes e's assignment into target, producing the ground atom
// this example makes a claim about.
func (e Example) Fact(target Literal) Literal {
	return target.Substitute(e.Assignment.Substitution())
}

// ContainsExample reports whether examples contains an example structurally
// equal to e.
func ContainsExample(examples []Example, e Example) bool {
	for _, o := range examples {
		if o.Equals(e) {
			return true
		}
	}
	return false
}
