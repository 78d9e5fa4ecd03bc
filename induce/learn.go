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
	"fmt"

	"github.com/golang/glog"

	"github.com/foil-induction/foil/candidate"
	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

// Learn is the induction engine's one operation: given a background
// theory, the relation to learn (target), the literal masks candidate
// bodies may be built from, and labeled examples of target, it returns
// an ordered hypothesis — a sequence of clauses whose head is target —
// built by sequential covering.
//
// Learn validates its example inputs up front but otherwise treats
// unification and coverage failures as routine, non-error outcomes.
func Learn(background []model.Clause, target model.Literal, masks []model.Mask, positives, negatives []model.Example) ([]model.Clause, error) {
	all := make([]model.Example, 0, len(positives)+len(negatives))
	all = append(all, positives...)
	all = append(all, negatives...)
	if err := model.ValidateExamples(target, all); err != nil {
		return nil, fmt.Errorf("induce: %w", err)
	}

	cache := candidate.NewCache()
	var hypothesis []model.Clause
	pos := append([]model.Example{}, positives...)

	for len(pos) > 0 {
		clause, err := buildClause(background, hypothesis, target, masks, pos, negatives, cache)
		if err != nil {
			return nil, err
		}
		if len(clause.Body) == 0 {
			glog.V(1).Infof("induce: no literal gains on %s, stopping", target)
			break
		}
		hypothesis = append(hypothesis, clause)
		glog.V(1).Infof("induce: accepted clause %s", clause)

		w, err := worldOf(background, hypothesis)
		if err != nil {
			return nil, err
		}
		var remaining []model.Example
		removed := 0
		for _, e := range pos {
			if w.Entails(e.Fact(target)) {
				removed++
				continue
			}
			remaining = append(remaining, e)
		}
		if removed == 0 {
			glog.V(1).Info("induce: outer loop made no progress, stopping")
			break
		}
		pos = remaining
	}
	return hypothesis, nil
}

// buildClause is the inner loop: it specializes a clause body literal by
// literal, greedily keeping the highest-gain candidate at
// each step, until no negative example remains or no candidate improves
// on the current best. The example pools it threads between iterations
// are the examples still alive for this clause: the positives its body
// still derives, and the negatives its body still wrongly derives.
func buildClause(background, hypothesis []model.Clause, target model.Literal, masks []model.Mask, positives, negatives []model.Example, cache *candidate.Cache) (model.Clause, error) {
	var body []model.Literal
	pos, neg := positives, negatives

	for len(neg) > 0 {
		bound := model.NewClause(target, body...).Variables()

		bestScore := 0.0
		var bestLit model.Literal
		var bestPos, bestNeg []model.Example
		found := false

		for _, mask := range masks {
			for _, tuple := range cache.Enumerate(bound, mask.Arity) {
				args := make([]term.Term, len(tuple))
				for i, v := range tuple {
					args[i] = v
				}
				lit := model.Literal{Atom: model.NewAtom(mask.Functor, args...), Negated: mask.Negated}
				if lit.Equals(target) || containsLiteral(body, lit) {
					continue
				}

				uncoveredPos, err := covers(background, hypothesis, target, append(body, lit), pos)
				if err != nil {
					return model.Clause{}, err
				}
				posPrime := subtract(pos, uncoveredPos)
				if MaxGain(pos, neg, posPrime) < bestScore {
					continue
				}

				negPrime, err := covers(background, hypothesis, target, append(body, lit), neg)
				if err != nil {
					return model.Clause{}, err
				}
				score := Gain(pos, neg, posPrime, negPrime)
				if score > bestScore {
					bestScore = score
					bestLit = lit
					bestPos = posPrime
					bestNeg = negPrime
					found = true
				}
			}
		}

		if !found {
			glog.V(1).Infof("induce: no literal improves %s :- %v, stopping specialization", target, body)
			break
		}
		glog.V(2).Infof("induce: choosing literal %s (gain %.4f, %d pos / %d neg remain)",
			bestLit, bestScore, len(bestPos), len(bestNeg))
		body = append(body, bestLit)
		pos, neg = bestPos, bestNeg
	}
	return model.NewClause(target, body...), nil
}

func containsLiteral(body []model.Literal, lit model.Literal) bool {
	for _, l := range body {
		if l.Equals(lit) {
			return true
		}
	}
	return false
}
