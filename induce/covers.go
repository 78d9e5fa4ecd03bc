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

package induce

import (
	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/rete"
)

// world is a materialized consequence set. Ground atoms are indexed by
// their canonical string; partially bound atoms, which a tentative clause
// body derives when it leaves head variables free, are kept aside and
// matched by unification.
type world struct {
	ground    map[string]model.Literal
	nonGround []model.Literal
}

// Entails reports whether fact is matched by the world: either the ground
// atom itself is present, or some partially bound derived atom unifies
// with it. A positive example counts as covered exactly when its
// substituted target unifies with some derivation, so partial clause
// bodies get credit for the examples they could still specialize into.
func (w *world) Entails(fact model.Literal) bool {
	if _, ok := w.ground[fact.String()]; ok {
		return true
	}
	for _, atom := range w.nonGround {
		if _, ok := atom.Unify(fact); ok {
			return true
		}
	}
	return false
}

// covers returns the uncovered subset of examples with respect to the
// tentative clause target :- body, evaluated against background ∪
// hypothesis ∪ {target :- body}. An example is uncovered when it is
// POSITIVE and no derivation matches the substituted target, or when it
// is NEGATIVE and one does — a witness that the clause over-generalizes.
// covers is idempotent: the uncovered subset of an uncovered subset is
// itself.
func covers(background, hypothesis []model.Clause, target model.Literal, body []model.Literal, examples []model.Example) ([]model.Example, error) {
	if len(examples) == 0 {
		return nil, nil
	}
	w, err := worldOf(background, hypothesis, model.NewClause(target, body...))
	if err != nil {
		return nil, err
	}
	var uncovered []model.Example
	for _, e := range examples {
		entailed := w.Entails(e.Fact(target))
		switch {
		case e.Label == model.Positive && !entailed:
			uncovered = append(uncovered, e)
		case e.Label == model.Negative && entailed:
			uncovered = append(uncovered, e)
		}
	}
	return uncovered, nil
}

// subtract returns the examples not structurally present in remove.
func subtract(examples, remove []model.Example) []model.Example {
	var out []model.Example
	for _, e := range examples {
		if !model.ContainsExample(remove, e) {
			out = append(out, e)
		}
	}
	return out
}

// worldOf materializes the consequence set of background ∪ hypothesis
// plus any extra clauses.
func worldOf(background, hypothesis []model.Clause, extra ...model.Clause) (*world, error) {
	clauses := make([]model.Clause, 0, len(background)+len(hypothesis)+len(extra))
	clauses = append(clauses, background...)
	clauses = append(clauses, hypothesis...)
	clauses = append(clauses, extra...)
	prog := model.NewProgram(clauses...)

	atoms, err := rete.World(prog)
	if err != nil {
		return nil, err
	}
	w := &world{ground: make(map[string]model.Literal, len(atoms))}
	for _, a := range atoms {
		if a.IsGround() {
			w.ground[a.String()] = a
			continue
		}
		w.nonGround = append(w.nonGround, a)
	}
	return w, nil
}
