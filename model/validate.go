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
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks p for malformed input at the program level: an atom
// whose functor is used with inconsistent arity across occurrences.
// Every violation found is reported, not just the first.
func Validate(p Program) error {
	arities := map[string]int{}
	var err error
	for _, c := range p.Clauses() {
		for _, lit := range c.Literals() {
			if want, seen := arities[lit.Atom.Functor]; seen {
				if want != lit.Atom.Arity() {
					err = multierr.Append(err, fmt.Errorf(
						"model: %q used with arity %d and arity %d", lit.Atom.Functor, want, lit.Atom.Arity()))
				}
				continue
			}
			arities[lit.Atom.Functor] = lit.Atom.Arity()
		}
	}
	return err
}

// ValidateExample checks that example's assignment domain is exactly the
// set of variables appearing in target.
func ValidateExample(target Literal, example Example) error {
	want := map[string]bool{}
	for _, v := range target.Variables() {
		want[v.Name] = true
	}
	got := map[string]bool{}
	for v := range example.Assignment {
		got[v.Name] = true
	}

	var err error
	for name := range want {
		if !got[name] {
			err = multierr.Append(err, fmt.Errorf("model: example %s missing binding for target variable %s", example, name))
		}
	}
	for name := range got {
		if !want[name] {
			err = multierr.Append(err, fmt.Errorf("model: example %s binds %s, not a target variable", example, name))
		}
	}
	return err
}

// ValidateExamples validates every example against target, aggregating
// every failure found via multierr.Append.
func ValidateExamples(target Literal, examples []Example) error {
	var err error
	for _, e := range examples {
		err = multierr.Append(err, ValidateExample(target, e))
	}
	return err
}
