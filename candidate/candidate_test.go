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

package candidate

import (
	"sort"
	"testing"

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

func tupleStrings(t *testing.T, tuples [][]term.Variable) []string {
	t.Helper()
	out := make([]string, len(tuples))
	for i, tuple := range tuples {
		names := make([]string, len(tuple))
		for j, v := range tuple {
			names[j] = v.Name
		}
		out[i] = "(" + join(names) + ")"
	}
	sort.Strings(out)
	return out
}

func join(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}

// TestEnumerateArity1: a single bound variable at arity 1 yields exactly
// the identity tuple.
func TestEnumerateArity1(t *testing.T) {
	x := mustVar(t, "X")
	got := tupleStrings(t, Enumerate([]term.Variable{x}, 1))
	want := []string{"(X)"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Enumerate([X], 1) = %v, want %v", got, want)
	}
}

// TestEnumerateArity2OneBound: one bound variable at arity 2 yields the
// self-pair plus the two tuples linking a fresh slot to X.
func TestEnumerateArity2OneBound(t *testing.T) {
	x := mustVar(t, "X")
	got := tupleStrings(t, Enumerate([]term.Variable{x}, 2))
	want := []string{"(X,V0)", "(X,X)", "(V0,X)"}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("Enumerate([X], 2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Enumerate([X], 2)[%d] = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

// TestEnumerateArity2TwoBound: two bound variables at arity 2 yield 8
// tuples, excluding the all-fresh (V0,V0).
func TestEnumerateArity2TwoBound(t *testing.T) {
	x, y := mustVar(t, "X"), mustVar(t, "Y")
	got := Enumerate([]term.Variable{x, y}, 2)
	if len(got) != 8 {
		t.Fatalf("len(Enumerate([X,Y], 2)) = %d, want 8 (got %v)", len(got), tupleStrings(t, got))
	}
	for _, tuple := range got {
		if tuple[0].Name == "V0" && tuple[1].Name == "V0" {
			t.Errorf("Enumerate([X,Y], 2) must not include the all-fresh tuple (V0,V0)")
		}
	}
}

func TestEnumerateNoDuplicates(t *testing.T) {
	x, y := mustVar(t, "X"), mustVar(t, "Y")
	got := tupleStrings(t, Enumerate([]term.Variable{x, y}, 3))
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Errorf("Enumerate produced duplicate tuple %s", s)
		}
		seen[s] = true
	}
}

func TestEnumerateSkipsNameCollisionWithBound(t *testing.T) {
	v0 := mustVar(t, "V0")
	got := tupleStrings(t, Enumerate([]term.Variable{v0}, 2))
	// The fresh slots must skip "V0" since it's already bound, and mint
	// "V1" instead.
	found := false
	for _, s := range got {
		if s == "(V0,V1)" || s == "(V1,V0)" {
			found = true
		}
	}
	if !found {
		t.Errorf("Enumerate([V0], 2) = %v, want a fresh slot named V1 (V0 already bound)", got)
	}
}

func TestCacheMatchesEnumerate(t *testing.T) {
	x := mustVar(t, "X")
	c := NewCache()
	first := tupleStrings(t, c.Enumerate([]term.Variable{x}, 2))
	second := tupleStrings(t, c.Enumerate([]term.Variable{x}, 2))
	if len(first) != len(second) {
		t.Fatalf("cached result differs in length: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cached result differs: %v vs %v", first, second)
		}
	}
	direct := tupleStrings(t, Enumerate([]term.Variable{x}, 2))
	for i := range direct {
		if direct[i] != first[i] {
			t.Errorf("Cache.Enumerate = %v, want same as Enumerate = %v", first, direct)
		}
	}
}
