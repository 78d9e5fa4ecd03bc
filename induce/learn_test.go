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
	"testing"

	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

func mustVar(t *testing.T, name string) term.Variable {
	t.Helper()
	v, err := term.NewVariable(name)
	if err != nil {
		t.Fatalf("NewVariable(%q): %v", name, err)
	}
	return v
}

// TestCoversUncoveredSemantics: a positive example whose substituted
// target is in the world is covered (dropped from the uncovered set); a
// negative example whose substituted target is in the world is retained,
// since it witnesses over-generalization.
func TestCoversUncoveredSemantics(t *testing.T) {
	x, y := mustVar(t, "X"), mustVar(t, "Y")
	target := model.NewLiteral("path", x, y)
	background := []model.Clause{
		model.NewClause(model.NewLiteral("edge", term.NewInt(0), term.NewInt(1))),
	}
	body := []model.Literal{model.NewLiteral("edge", x, y)}

	posCovered := model.NewExample(model.Assignment{x: term.NewInt(0), y: term.NewInt(1)}, model.Positive)
	negOverGeneralized := model.NewExample(model.Assignment{x: term.NewInt(0), y: term.NewInt(1)}, model.Negative)
	posUncovered := model.NewExample(model.Assignment{x: term.NewInt(5), y: term.NewInt(6)}, model.Positive)

	uncovered, err := covers(background, nil, target, body, []model.Example{posCovered, negOverGeneralized, posUncovered})
	if err != nil {
		t.Fatalf("covers: %v", err)
	}

	var gotPosCovered, gotNeg, gotPosUncovered bool
	for _, e := range uncovered {
		switch {
		case e.Equals(posCovered):
			gotPosCovered = true
		case e.Equals(negOverGeneralized):
			gotNeg = true
		case e.Equals(posUncovered):
			gotPosUncovered = true
		}
	}
	if gotPosCovered {
		t.Errorf("positive example matching a derivable fact must be covered (dropped), uncovered = %v", uncovered)
	}
	if !gotNeg {
		t.Errorf("negative example matching a derivable fact must remain uncovered, uncovered = %v", uncovered)
	}
	if !gotPosUncovered {
		t.Errorf("positive example with no derivation must remain uncovered, uncovered = %v", uncovered)
	}
}

// TestLearnDeterministic: two invocations on structurally equal inputs
// must return structurally equal hypotheses.
func TestLearnDeterministic(t *testing.T) {
	x, y := mustVar(t, "X"), mustVar(t, "Y")
	target := model.NewLiteral("path", x, y)
	masks := []model.Mask{{Functor: "edge", Arity: 2}}
	background := []model.Clause{
		model.NewClause(model.NewLiteral("edge", term.NewInt(0), term.NewInt(1))),
		model.NewClause(model.NewLiteral("edge", term.NewInt(1), term.NewInt(2))),
	}
	positives := []model.Example{
		model.NewExample(model.Assignment{x: term.NewInt(0), y: term.NewInt(1)}, model.Positive),
		model.NewExample(model.Assignment{x: term.NewInt(1), y: term.NewInt(2)}, model.Positive),
	}
	negatives := []model.Example{
		model.NewExample(model.Assignment{x: term.NewInt(1), y: term.NewInt(0)}, model.Negative),
		model.NewExample(model.Assignment{x: term.NewInt(2), y: term.NewInt(2)}, model.Negative),
	}

	first, err := Learn(background, target, masks, positives, negatives)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	second, err := Learn(background, target, masks, positives, negatives)
	if err != nil {
		t.Fatalf("Learn (second run): %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("runs disagree: %v vs %v", first, second)
	}
	for i := range first {
		if !first[i].Equals(second[i]) {
			t.Errorf("clause %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestLearnRejectsMalformedExample(t *testing.T) {
	x, y := mustVar(t, "X"), mustVar(t, "Y")
	z := mustVar(t, "Z")
	target := model.NewLiteral("path", x, y)
	bad := []model.Example{
		model.NewExample(model.Assignment{x: term.NewInt(0), z: term.NewInt(1)}, model.Positive),
	}
	if _, err := Learn(nil, target, nil, bad, nil); err == nil {
		t.Error("Learn accepted an example whose assignment domain does not match the target variables")
	}
}

type graphEdge struct{ from, to int64 }

// TestLearnTransitiveClosure runs the engine end to end: from the
// 10-edge graph, it must induce exactly two clauses — the base case
// path(X,Y) :- edge(X,Y), whose gain strictly dominates on an empty
// hypothesis and so is chosen first, and the recursive case
// path(X,Y) :- edge(X,V0), path(V0,Y).
func TestLearnTransitiveClosure(t *testing.T) {
	edges := []graphEdge{
		{0, 1}, {0, 3}, {1, 2}, {3, 2}, {3, 4},
		{4, 5}, {4, 6}, {6, 8}, {7, 6}, {7, 8},
	}
	reachable := map[graphEdge]bool{}
	changed := true
	direct := map[int64][]int64{}
	for _, e := range edges {
		direct[e.from] = append(direct[e.from], e.to)
		reachable[e] = true
	}
	for changed {
		changed = false
		for e := range reachable {
			for _, next := range direct[e.to] {
				candidateEdge := graphEdge{e.from, next}
				if !reachable[candidateEdge] {
					reachable[candidateEdge] = true
					changed = true
				}
			}
		}
	}

	x, y := mustVar(t, "X"), mustVar(t, "Y")
	target := model.NewLiteral("path", x, y)
	masks := []model.Mask{
		{Functor: "edge", Arity: 2},
		{Functor: "path", Arity: 2},
	}

	var background []model.Clause
	for _, e := range edges {
		background = append(background, model.NewClause(
			model.NewLiteral("edge", term.NewInt(e.from), term.NewInt(e.to))))
	}

	var positives, negatives []model.Example
	for i := int64(0); i < 9; i++ {
		for j := int64(0); j < 9; j++ {
			a := model.Assignment{x: term.NewInt(i), y: term.NewInt(j)}
			if reachable[graphEdge{i, j}] {
				positives = append(positives, model.NewExample(a, model.Positive))
			} else {
				negatives = append(negatives, model.NewExample(a, model.Negative))
			}
		}
	}
	if len(positives) != 19 {
		t.Fatalf("test setup: got %d reachable pairs, want 19", len(positives))
	}

	hypothesis, err := Learn(background, target, masks, positives, negatives)
	if err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if len(hypothesis) != 2 {
		t.Fatalf("Learn returned %d clauses, want 2: %v", len(hypothesis), hypothesis)
	}

	base := hypothesis[0]
	if base.Head.Atom.Functor != "path" || len(base.Body) != 1 || base.Body[0].Atom.Functor != "edge" {
		t.Errorf("first clause = %s, want the base case path(X,Y) :- edge(X,Y).", base)
	}

	recursive := hypothesis[1]
	if recursive.Head.Atom.Functor != "path" || len(recursive.Body) != 2 {
		t.Fatalf("second clause = %s, want a 2-literal recursive case", recursive)
	}
	functors := map[string]bool{recursive.Body[0].Atom.Functor: true, recursive.Body[1].Atom.Functor: true}
	if !functors["edge"] || !functors["path"] {
		t.Errorf("second clause = %s, want literals over edge/2 and path/2", recursive)
	}
}
