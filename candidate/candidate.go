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

// Package candidate enumerates the variable tuples a new body literal
// can be built from.
package candidate

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"bitbucket.org/creachadair/stringset"

	"github.com/foil-induction/foil/term"
)

// Enumerate returns every tuple of length arity drawn from bound plus
// freshly minted variables, keeping only tuples that use at least one
// bound variable in some position — a literal built entirely from new
// variables has no link back into the clause body. Fresh positions within
// one tuple are assigned distinct names in left-to-right order, so the
// construction never produces two tuples that are the same up to
// renaming of the fresh variables; the result contains no duplicates.
//
// Enumerate is a pure function of (bound, arity); see Cache for a
// memoizing wrapper.
func Enumerate(bound []term.Variable, arity int) [][]term.Variable {
	if arity <= 0 {
		return nil
	}
	fresh := freshNames(bound, arity)

	var out [][]term.Variable
	for pattern := 0; pattern < (1 << uint(arity)); pattern++ {
		if pattern == (1<<uint(arity))-1 {
			continue // all positions new: no link back into the body
		}
		boundCount := 0
		for pos := 0; pos < arity; pos++ {
			if pattern&(1<<uint(pos)) == 0 {
				boundCount++
			}
		}
		for _, choice := range cartesian(bound, boundCount) {
			tuple := make([]term.Variable, arity)
			freshIdx, boundIdx := 0, 0
			for pos := 0; pos < arity; pos++ {
				if pattern&(1<<uint(pos)) != 0 {
					tuple[pos] = fresh[freshIdx]
					freshIdx++
				} else {
					tuple[pos] = choice[boundIdx]
					boundIdx++
				}
			}
			out = append(out, tuple)
		}
	}
	return out
}

// freshNames mints arity variable names of the form V0, V1, …, skipping
// any name already appearing in bound.
func freshNames(bound []term.Variable, arity int) []term.Variable {
	used := stringset.New()
	for _, v := range bound {
		used.Add(v.Name)
	}
	names := make([]term.Variable, 0, arity)
	next := 0
	for len(names) < arity {
		name := "V" + strconv.Itoa(next)
		next++
		if used.Contains(name) {
			continue
		}
		v, err := term.NewVariable(name)
		if err != nil {
			// V<digits> is always a valid variable name; a failure here
			// would mean the grammar changed underneath this package.
			panic(fmt.Sprintf("candidate: minted fresh name %q rejected: %v", name, err))
		}
		names = append(names, v)
	}
	return names
}

// cartesian returns every k-length tuple drawn from alphabet, with
// repetition, in left-to-right lexicographic order of alphabet's indices.
func cartesian(alphabet []term.Variable, k int) [][]term.Variable {
	if k == 0 {
		return [][]term.Variable{{}}
	}
	if len(alphabet) == 0 {
		return nil
	}
	rest := cartesian(alphabet, k-1)
	out := make([][]term.Variable, 0, len(alphabet)*len(rest))
	for _, v := range alphabet {
		for _, r := range rest {
			tuple := make([]term.Variable, 0, k)
			tuple = append(tuple, v)
			tuple = append(tuple, r...)
			out = append(out, tuple)
		}
	}
	return out
}

// Cache memoizes Enumerate across the lifetime of a single induction
// run. A Cache is created at the start of an engine invocation and
// discarded at the end; it is never a package-level variable.
type Cache struct {
	mu   sync.Mutex
	memo map[cacheKey][][]term.Variable
}

type cacheKey struct {
	vars  string
	arity int
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{memo: map[cacheKey][][]term.Variable{}}
}

// Enumerate returns Enumerate(bound, arity), serving a previous result for
// the same (bound, arity) pair without recomputing it.
func (c *Cache) Enumerate(bound []term.Variable, arity int) [][]term.Variable {
	key := cacheKey{vars: varsKey(bound), arity: arity}

	c.mu.Lock()
	if cached, ok := c.memo[key]; ok {
		c.mu.Unlock()
		return cloneTuples(cached)
	}
	c.mu.Unlock()

	result := Enumerate(bound, arity)

	c.mu.Lock()
	c.memo[key] = result
	c.mu.Unlock()
	return cloneTuples(result)
}

func varsKey(bound []term.Variable) string {
	names := make([]string, len(bound))
	for i, v := range bound {
		names[i] = v.Name
	}
	return strings.Join(names, ",")
}

func cloneTuples(tuples [][]term.Variable) [][]term.Variable {
	out := make([][]term.Variable, len(tuples))
	for i, t := range tuples {
		out[i] = append([]term.Variable{}, t...)
	}
	return out
}
