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
	"strings"

	"github.com/foil-induction/foil/term"
)

// Program is a multiset of clauses, with duplicates (by structural
// equality) collapsed.
type Program struct {
	clauses []Clause
}

// NewProgram builds a Program from clauses, dropping duplicates.
func NewProgram(clauses ...Clause) Program {
	var p Program
	for _, c := range clauses {
		p.add(c)
	}
	return p
}

func (p *Program) add(c Clause) {
	for _, existing := range p.clauses {
		if existing.Equals(c) {
			return
		}
	}
	p.clauses = append(p.clauses, c)
}

// Clauses returns every clause in the program, in insertion order.
func (p Program) Clauses() []Clause {
	out := make([]Clause, len(p.clauses))
	copy(out, p.clauses)
	return out
}

// Facts returns every ground-headed, empty-bodied clause.
func (p Program) Facts() []Clause {
	var out []Clause
	for _, c := range p.clauses {
		if c.IsFact() {
			out = append(out, c)
		}
	}
	return out
}

// Rules returns every clause with a non-empty body.
func (p Program) Rules() []Clause {
	var out []Clause
	for _, c := range p.clauses {
		if c.IsRule() {
			out = append(out, c)
		}
	}
	return out
}

// String renders one clause per line.
func (p Program) String() string {
	parts := make([]string, len(p.clauses))
	for i, c := range p.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\n")
}

// Step records one resolution step: which clause (by index) matched, the
// query literal it resolved, and the substitution that made them unify.
type Step struct {
	ClauseIndex int
	Query       Literal
	Subst       term.Subst
}

// Derivation is the sequence of Steps an SLD resolution produced.
type Derivation []Step

// Resolve performs depth-first, first-match SLD resolution of a ground
// query against p. It returns the derivation on success, or ok=false if no
// clause resolves the query. Resolve requires query to be ground; a
// non-ground query is a MalformedInput precondition violation. Subgoals
// are resolved only when the matching head's substitution grounds them:
// a rule whose body has a variable not bound by its head makes Resolve
// return an error rather than search for a binding.
func (p Program) Resolve(query Literal) (Derivation, bool, error) {
	if !query.IsGround() {
		return nil, false, fmt.Errorf("model: Resolve requires a ground query, got %s", query)
	}
	return p.resolve(query)
}

func (p Program) resolve(query Literal) (Derivation, bool, error) {
	for i, clause := range p.clauses {
		subst, ok := clause.Head.Unify(query)
		if !ok {
			continue
		}
		derivation := Derivation{{ClauseIndex: i, Query: query, Subst: subst}}
		if len(clause.Body) == 0 {
			return derivation, true, nil
		}
		ok = true
		for _, bodyLit := range clause.Body {
			substituted := bodyLit.Substitute(subst)
			if !substituted.IsGround() {
				return nil, false, fmt.Errorf("model: Resolve requires a ground query, got %s", substituted)
			}
			sub, found, err := p.resolve(substituted)
			if err != nil {
				return nil, false, err
			}
			if !found {
				ok = false
				break
			}
			derivation = append(derivation, sub...)
		}
		if ok {
			return derivation, true, nil
		}
	}
	return nil, false, nil
}
