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

package term

import "sort"

// Subst is a finite mapping from Variable to Term. The zero value is the
// empty substitution. Subst values are treated as immutable: every
// operation below returns a new Subst rather than mutating its receiver.
type Subst map[Variable]Term

// Get returns the term v maps to, or nil if v is unbound.
func (s Subst) Get(v Variable) Term {
	return s[v]
}

// clone returns a shallow copy of s.
func (s Subst) clone() Subst {
	out := make(Subst, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Unify extends s so that a and b become equal: identical terms succeed
// trivially, a ground/variable pair is oriented so the variable comes
// first, two non-variables fail, two variables are equated (aliased),
// and a variable paired with a ground value is assigned. The second
// return value is false when no such extension exists.
func Unify(a, b Term, s Subst) (Subst, bool) {
	if a.Equals(b) {
		return s, true
	}
	if IsGround(a) && IsVariable(b) {
		a, b = b, a
	}
	va, aIsVar := a.(Variable)
	if !aIsVar {
		return nil, false
	}
	if vb, bIsVar := b.(Variable); bIsVar {
		return equate(va, vb, s)
	}
	return assign(va, b.(Value), s)
}

// assign binds var to value, propagating through any existing alias label.
func assign(v Variable, value Value, s Subst) (Subst, bool) {
	cur, bound := s[v]
	if !bound {
		out := s.clone()
		out[v] = value
		return out, true
	}
	if alias, ok := cur.(Variable); ok {
		out := s.clone()
		out[v] = value
		for k, t := range s {
			if av, ok := t.(Variable); ok && av.Equals(alias) {
				out[k] = value
			}
		}
		return out, true
	}
	if cur.Equals(value) {
		return s, true
	}
	return nil, false
}

// equate aliases v1 and v2 to each other, choosing a ground value over a
// synthetic label when one side already resolves to one, and otherwise
// minting the canonical shared label: the concatenation of the sorted
// names of every variable currently aliased to either side.
func equate(v1, v2 Variable, s Subst) (Subst, bool) {
	t1, t2 := s[v1], s[v2]
	g1, isG1 := groundOf(t1)
	g2, isG2 := groundOf(t2)
	if isG1 && isG2 {
		if g1.Equals(g2) {
			return s, true
		}
		return nil, false
	}

	mentions := map[string]bool{v1.Name: true, v2.Name: true}
	for k, t := range s {
		if (t1 != nil && t.Equals(t1)) || (t2 != nil && t.Equals(t2)) {
			mentions[k.Name] = true
		}
	}

	var label Term
	switch {
	case isG1:
		label = g1
	case isG2:
		label = g2
	default:
		names := make([]string, 0, len(mentions))
		for name := range mentions {
			names = append(names, name)
		}
		sort.Strings(names)
		joined := ""
		for _, n := range names {
			joined += n
		}
		label = Variable{Name: joined}
	}

	out := s.clone()
	for name := range mentions {
		out[Variable{Name: name}] = label
	}
	out[v1] = label
	out[v2] = label
	return out, true
}

func groundOf(t Term) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.(Value)
	return v, ok
}

// Simplify canonicalizes s: every equivalence class of variables aliased
// to one another collapses to a single representative (the
// lexicographically smallest name), ground bindings take precedence over
// variable aliases, and no variable appears as both key and value.
func Simplify(s Subst) Subst {
	keys := make([]Variable, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })

	result := make(Subst, len(s))
	for _, v := range keys {
		if _, done := result[v]; done {
			continue
		}
		t := s[v]
		alias, ok := t.(Variable)
		if !ok {
			result[v] = t
			continue
		}
		// The equivalence class is every key aliased to the same label,
		// plus the label itself; the class representative is its
		// lexicographically smallest member. Including the label keeps
		// Simplify idempotent: a substitution already in canonical form
		// (non-roots mapped to their root) maps to itself.
		members := map[string]bool{alias.Name: true}
		for k, kt := range s {
			if kv, ok := kt.(Variable); ok && kv.Equals(alias) {
				members[k.Name] = true
			}
		}
		class := make([]string, 0, len(members))
		for name := range members {
			class = append(class, name)
		}
		sort.Strings(class)
		canonical := Variable{Name: class[0]}
		for _, name := range class[1:] {
			member := Variable{Name: name}
			if _, isKey := s[member]; isKey {
				result[member] = canonical
			}
		}
	}
	return result
}

// ApplySubst replaces each variable in t by its binding in s, if bound;
// ground terms and unbound variables are returned unchanged.
func ApplySubst(t Term, s Subst) Term {
	v, ok := t.(Variable)
	if !ok {
		return t
	}
	if bound := s.Get(v); bound != nil {
		return bound
	}
	return v
}
