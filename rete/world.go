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

package rete

import (
	"github.com/golang/glog"

	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

// World materializes the set of atoms entailed by p: every fact p states
// outright, plus every head derivable by repeatedly firing p's rules
// against what is already known. A rule whose body leaves head variables
// unbound derives a partially bound head; such atoms are kept in the
// world so callers can match them by unification. Negated body literals
// are resolved as negation-as-failure against the world known once the
// positive portion has stabilized.
func World(p model.Program) ([]model.Literal, error) {
	n := newNetwork()
	if err := n.load(p); err != nil {
		return nil, err
	}
	n.run()
	out := make([]model.Literal, len(n.worldSeq))
	copy(out, n.worldSeq)
	return out, nil
}

// load builds the discrimination network for p's rules and seeds the
// queue with p's facts.
func (n *network) load(p model.Program) error {
	for _, rule := range p.Rules() {
		var positive []model.Literal
		var negated []model.Literal
		for _, lit := range rule.Body {
			if lit.Negated {
				negated = append(negated, lit)
				continue
			}
			positive = append(positive, lit)
		}
		parent := -1
		for _, lit := range positive {
			alpha := n.alphaFor(lit)
			if parent == -1 {
				parent = alpha
				continue
			}
			parent = n.betaFor(parent, alpha)
		}
		leaf := n.newLeaf(rule, parent, negated)
		if parent == -1 {
			// A rule whose body is entirely negated literals fires once,
			// unconditionally, when those literals are absent — treat it
			// as a degenerate leaf fed directly by an empty match.
			n.enqueue(func() {
				n.deliverLeaf(leaf, payload{subst: term.Subst{}})
			})
		}
	}
	for _, fact := range p.Facts() {
		head := fact.Head
		n.enqueue(func() { n.fire(head) })
	}
	return nil
}

func (n *network) run() {
	n.drain()
	n.resolveGuards()
}

// fire pushes a newly known ground atom through every Alpha node attached
// to root.
func (n *network) fire(fact model.Literal) {
	if !n.addToWorld(fact) {
		return
	}
	glog.V(2).Infof("rete: world += %s", fact)
	root := n.nodes[n.root]
	for _, child := range root.children {
		idx := child
		n.enqueue(func() { n.deliverAlpha(idx, fact) })
	}
}

func (n *network) deliverAlpha(idx int, fact model.Literal) {
	nd := n.nodes[idx]
	subst, ok := nd.pattern.Unify(fact)
	if !ok {
		return
	}
	p := payload{matched: []model.Literal{fact}, subst: term.Simplify(subst)}
	key := p.key()
	if _, seen := nd.memory[key]; seen {
		return
	}
	nd.memory[key] = p
	for _, child := range nd.children {
		c, pp := child, p
		n.enqueue(func() { n.deliverJoin(c, pp, idx) })
	}
}

func (n *network) deliverJoin(idx int, p payload, from int) {
	nd := n.nodes[idx]
	switch nd.kind {
	case betaKind:
		n.deliverBeta(idx, p, from)
	case leafKind:
		n.deliverLeaf(idx, p)
	}
}

// deliverBeta joins an incoming payload against the opposite parent's
// memory, merging substitutions that agree on shared variables.
func (n *network) deliverBeta(idx int, p payload, from int) {
	nd := n.nodes[idx]
	other := nd.parent2
	if from == nd.parent2 {
		other = nd.parent1
	}
	for _, op := range n.nodes[other].memory {
		var left, right payload
		if from == nd.parent1 {
			left, right = p, op
		} else {
			left, right = op, p
		}
		merged, ok := mergeSubst(left.subst, right.subst)
		if !ok {
			continue
		}
		matched := append(append([]model.Literal{}, left.matched...), right.matched...)
		out := payload{matched: matched, subst: merged}
		key := out.key()
		if _, seen := nd.memory[key]; seen {
			continue
		}
		nd.memory[key] = out
		for _, child := range nd.children {
			c, pp := child, out
			n.enqueue(func() { n.deliverJoin(c, pp, idx) })
		}
	}
}

// mergeSubst combines two substitutions into one consistent with both, by
// replaying each binding as a unification constraint against the other —
// the same term.Unify this package uses everywhere else a subst is built.
func mergeSubst(a, b term.Subst) (term.Subst, bool) {
	out := term.Subst{}
	var ok bool
	for v, t := range a {
		if out, ok = term.Unify(v, t, out); !ok {
			return nil, false
		}
	}
	for v, t := range b {
		if out, ok = term.Unify(v, t, out); !ok {
			return nil, false
		}
	}
	return term.Simplify(out), true
}

func (n *network) deliverLeaf(idx int, p payload) {
	nd := n.nodes[idx]
	key := p.key()
	if _, seen := nd.memory[key]; seen {
		return
	}
	nd.memory[key] = p
	if len(nd.negated) == 0 {
		head := nd.clause.Head.Substitute(p.subst)
		glog.V(2).Infof("rete: %s fires, derives %s", nd.clause, head)
		n.fire(head)
	}
	// Leaves with negated literals are resolved separately, once the
	// positive portion of the network has stabilized: see resolveGuards.
}

// resolveGuards sweeps leaves with negated body literals against the
// world known once the positive fixpoint has stabilized, repeating until
// no new facts are derived — new facts from a guarded leaf can feed back
// into other rules, including other guarded leaves.
func (n *network) resolveGuards() {
	resolved := map[string]map[string]bool{}
	for {
		changed := false
		for _, nd := range n.nodes {
			if nd.kind != leafKind || len(nd.negated) == 0 {
				continue
			}
			seen := resolved[nd.name]
			if seen == nil {
				seen = map[string]bool{}
				resolved[nd.name] = seen
			}
			for key, p := range nd.memory {
				if seen[key] {
					continue
				}
				seen[key] = true
				ok, complete := n.negatedLiteralsAbsent(nd.negated, p.subst)
				if !complete {
					glog.V(1).Infof("rete: %s: negated literal not ground under %v, skipping", nd.clause, p.subst)
					continue
				}
				if !ok {
					continue
				}
				head := nd.clause.Head.Substitute(p.subst)
				if n.addToWorld(head) {
					glog.V(2).Infof("rete: %s fires (negation resolved), derives %s", nd.clause, head)
					changed = true
					root := n.nodes[n.root]
					for _, child := range root.children {
						n.deliverAlpha(child, head)
					}
					n.drain()
				}
			}
		}
		if !changed {
			return
		}
	}
}

// negatedLiteralsAbsent reports whether every literal in negated is, once
// substituted via s, a ground atom not present in the world. The second
// return value is false if any literal remains non-ground after
// substitution, in which case the result is not meaningful.
func (n *network) negatedLiteralsAbsent(negated []model.Literal, s term.Subst) (absent bool, complete bool) {
	for _, lit := range negated {
		ground := lit.Substitute(s)
		if !ground.IsGround() {
			return false, false
		}
		if _, present := n.world[ground.Complement().String()]; present {
			return false, true
		}
	}
	return true, true
}
