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
	"math"
	"testing"

	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

// examplesOfSize builds n distinct examples over a single variable X, all
// carrying label, for use where only pool sizes matter.
func examplesOfSize(t *testing.T, n int, label model.Label) []model.Example {
	t.Helper()
	x, err := term.NewVariable("X")
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	out := make([]model.Example, n)
	for i := 0; i < n; i++ {
		out[i] = model.NewExample(model.Assignment{x: term.NewInt(int64(i))}, label)
	}
	return out
}

// TestEntropyBoundaries pins the boundary behavior plus a few concrete
// values.
func TestEntropyBoundaries(t *testing.T) {
	cases := []struct {
		p, n int
		want float64
	}{
		{18, 54, 2.0},
		{6, 6, 1.0},
		{5, 0, 0},
	}
	for _, c := range cases {
		got := Entropy(c.p, c.n)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Entropy(%d, %d) = %v, want %v", c.p, c.n, got, c.want)
		}
	}
	if got := Entropy(0, 3); !math.IsInf(got, 1) {
		t.Errorf("Entropy(0, 3) = %v, want +Inf", got)
	}
	if got := Entropy(0, 0); got != 0 {
		t.Errorf("Entropy(0, 0) = %v, want 0", got)
	}
}

// TestMaxGainWhenRefinementIsIdentity: when positivesPrime is the same
// set as positives, common equals |positives| and MaxGain reduces to
// |P| * Entropy(P, N).
func TestMaxGainWhenRefinementIsIdentity(t *testing.T) {
	p := examplesOfSize(t, 18, model.Positive)
	n := examplesOfSize(t, 54, model.Negative)
	got := MaxGain(p, n, p)
	if math.Abs(got-36.0) > 1e-9 {
		t.Errorf("MaxGain(P, N, P) = %v, want 36.0", got)
	}
}

// TestGainArithmetic: a refinement pPrime that is a strict subset of p,
// shrinking to 10 examples with 0 residual negatives, gains
// 10 * Entropy(18, 54) = 20.
func TestGainArithmetic(t *testing.T) {
	p := examplesOfSize(t, 18, model.Positive)
	pPrime := p[:10]
	var nPrime []model.Example
	n := examplesOfSize(t, 54, model.Negative)

	got := Gain(p, n, pPrime, nPrime)
	if math.Abs(got-20.0) > 1e-9 {
		t.Errorf("Gain(P, N, P', N') = %v, want 20.0", got)
	}
}
