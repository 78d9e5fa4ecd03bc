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

// Package term implements the first-order term substrate that the rest of
// the induction engine is built on: ground values, variables, and the
// substitutions that unify them.
package term

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// variablePattern matches FOIL's variable names: an underscore or capital
// letter followed by any run of letters, digits, or underscores.
var variablePattern = regexp.MustCompile(`^[_A-Z][A-Za-z0-9_]*$`)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	// Bool is the type of boolean constants.
	Bool Kind = iota
	// Int is the type of integer constants.
	Int
	// Float is the type of real (floating point) constants.
	Float
	// String is the type of string constants, including bare identifiers.
	String
)

// Term is either a Value or a Variable.
type Term interface {
	fmt.Stringer

	// Equals reports structural, case-sensitive equality.
	Equals(Term) bool

	isTerm()
}

// Value is a ground term: a boolean, integer, real, or string atom.
type Value struct {
	Kind   Kind
	BoolV  bool
	IntV   int64
	FloatV float64
	StrV   string
}

func (Value) isTerm() {}

// NewBool constructs a boolean value.
func NewBool(b bool) Value { return Value{Kind: Bool, BoolV: b} }

// NewInt constructs an integer value.
func NewInt(i int64) Value { return Value{Kind: Int, IntV: i} }

// NewFloat constructs a real value.
func NewFloat(f float64) Value { return Value{Kind: Float, FloatV: f} }

// NewString constructs a string value.
func NewString(s string) Value { return Value{Kind: String, StrV: s} }

// String returns a canonical textual representation of the value.
func (v Value) String() string {
	switch v.Kind {
	case Bool:
		if v.BoolV {
			return "TRUE"
		}
		return "FALSE"
	case Int:
		return strconv.FormatInt(v.IntV, 10)
	case Float:
		s := strconv.FormatFloat(v.FloatV, 'g', -1, 64)
		// Keep reals distinguishable from integers when re-read.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case String:
		return strconv.Quote(v.StrV)
	default:
		return "?"
	}
}

// Equals reports whether u is a Value equal to v.
func (v Value) Equals(u Term) bool {
	o, ok := u.(Value)
	if !ok || o.Kind != v.Kind {
		return false
	}
	switch v.Kind {
	case Bool:
		return v.BoolV == o.BoolV
	case Int:
		return v.IntV == o.IntV
	case Float:
		return v.FloatV == o.FloatV
	case String:
		return v.StrV == o.StrV
	default:
		return false
	}
}

// Variable is a first-order variable name.
type Variable struct {
	Name string
}

func (Variable) isTerm() {}

// NewVariable validates name against the variable grammar and constructs a
// Variable. An invalid name is a programmer error, not a runtime condition
// callers are expected to recover from.
func NewVariable(name string) (Variable, error) {
	if !variablePattern.MatchString(name) {
		return Variable{}, fmt.Errorf("term: %q is not a valid variable name", name)
	}
	return Variable{Name: name}, nil
}

// String returns the variable's name.
func (v Variable) String() string { return v.Name }

// Equals reports whether u is the same variable.
func (v Variable) Equals(u Term) bool {
	o, ok := u.(Variable)
	return ok && v.Name == o.Name
}

// IsVariable reports whether t is a Variable.
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// IsGround reports whether t is a Value.
func IsGround(t Term) bool {
	_, ok := t.(Value)
	return ok
}
