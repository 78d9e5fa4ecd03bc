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

// Package induce implements the FOIL sequential-covering induction
// engine: given a background theory, a target relation, the masks it is
// allowed to build literals from, and labeled examples of the target, it
// returns an ordered list of clauses defining the target.
package induce

import (
	"math"

	"github.com/foil-induction/foil/model"
)

// Entropy measures the impurity of a pool of p positive and n negative
// examples as -log2(p / (p+n)). Boundary cases: an empty pool has
// entropy 0, a pool with no positives has entropy +Inf, and an
// all-positive pool has entropy 0.
func Entropy(p, n int) float64 {
	if p+n == 0 {
		return 0
	}
	if p == 0 {
		return math.Inf(1)
	}
	return -math.Log2(float64(p) / float64(p+n))
}

// common counts |{e ∈ pPrime : e ∈ p}|, per the GLOSSARY definition.
func common(p, pPrime []model.Example) int {
	count := 0
	for _, e := range pPrime {
		if model.ContainsExample(p, e) {
			count++
		}
	}
	return count
}

// Gain is the FOIL information-gain score a candidate literal earns by
// narrowing (p, n) down to (pPrime, nPrime).
func Gain(p, n, pPrime, nPrime []model.Example) float64 {
	c := float64(common(p, pPrime))
	return c * (Entropy(len(p), len(n)) - Entropy(len(pPrime), len(nPrime)))
}

// MaxGain is the tightest upper bound Gain can reach for a refinement of p
// into pPrime — the value Gain would take if nPrime made entropy zero. It
// is cheap relative to Gain because it does not require computing the
// refined negative pool.
func MaxGain(p, n, pPrime []model.Example) float64 {
	c := float64(common(p, pPrime))
	return c * Entropy(len(p), len(n))
}
