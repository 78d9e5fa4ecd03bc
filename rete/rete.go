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

// Package rete implements a forward-chaining evaluator: a RETE-style
// discrimination network that materializes the world of a Program, the
// set of atoms its definite clauses entail. The network is rebuilt from
// scratch for every Program it evaluates and discarded afterwards; it is
// never shared across calls to World.
package rete

import (
	"sort"
	"strings"

	"github.com/foil-induction/foil/model"
	"github.com/foil-induction/foil/term"
)

type nodeKind int

const (
	rootKind nodeKind = iota
	alphaKind
	betaKind
	leafKind
)

// payload is what flows along an edge of the network: the ordered list of
// body literals a partial match has grounded, plus the substitution that
// grounds them.
type payload struct {
	matched []model.Literal
	subst   term.Subst
}

// key returns a canonical string for deduplicating payloads in a node's
// memory. Duplicate payloads must not re-fire their node.
func (p payload) key() string {
	var sb strings.Builder
	for _, l := range p.matched {
		sb.WriteString(l.String())
		sb.WriteByte('|')
	}
	names := make([]string, 0, len(p.subst))
	for v := range p.subst {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	for _, n := range names {
		sb.WriteString(n)
		sb.WriteString("=>")
		sb.WriteString(p.subst[term.Variable{Name: n}].String())
		sb.WriteByte(';')
	}
	return sb.String()
}

// node is one element of the arena-held, tagged-variant discrimination
// network: Root, Alpha, Beta, or Leaf, distinguished by kind. Parent and
// child links are indices into the owning network's node slice, which
// keeps the graph free of cyclic pointer ownership.
type node struct {
	kind    nodeKind
	name    string
	pattern model.Literal // alpha only
	clause  model.Clause  // leaf only
	negated []model.Literal

	parent1, parent2 int // -1 when unused
	children         []int

	memory map[string]payload
}

// network is the transient discrimination network built for one Program.
type network struct {
	nodes      []*node
	root       int
	alphaIndex map[string]int
	betaIndex  map[string]int

	world    map[string]model.Literal
	worldSeq []model.Literal
	queue    []func()
}

func newNetwork() *network {
	n := &network{
		alphaIndex: map[string]int{},
		betaIndex:  map[string]int{},
		world:      map[string]model.Literal{},
	}
	n.nodes = append(n.nodes, &node{kind: rootKind, parent1: -1, parent2: -1})
	n.root = 0
	return n
}

func (n *network) addNode(nd *node) int {
	idx := len(n.nodes)
	n.nodes = append(n.nodes, nd)
	return idx
}

func (n *network) link(parent, child int) {
	n.nodes[parent].children = append(n.nodes[parent].children, child)
}

// alphaFor returns the Alpha node for lit, creating and attaching it to
// root if this is the first rule body to mention it. Alpha nodes are
// shared across rules by literal structural equality.
func (n *network) alphaFor(lit model.Literal) int {
	key := lit.String()
	if idx, ok := n.alphaIndex[key]; ok {
		return idx
	}
	idx := n.addNode(&node{
		kind:    alphaKind,
		name:    key,
		pattern: lit,
		parent1: n.root,
		parent2: -1,
		memory:  map[string]payload{},
	})
	n.link(n.root, idx)
	n.alphaIndex[key] = idx
	return idx
}

func (n *network) betaFor(left, right int) int {
	key := n.nodes[left].name + ", " + n.nodes[right].name
	if idx, ok := n.betaIndex[key]; ok {
		return idx
	}
	idx := n.addNode(&node{
		kind:    betaKind,
		name:    key,
		parent1: left,
		parent2: right,
		memory:  map[string]payload{},
	})
	n.link(left, idx)
	n.link(right, idx)
	n.betaIndex[key] = idx
	return idx
}

func (n *network) newLeaf(clause model.Clause, parent int, negated []model.Literal) int {
	idx := n.addNode(&node{
		kind:    leafKind,
		name:    clause.String(),
		clause:  clause,
		negated: negated,
		parent1: parent,
		parent2: -1,
		memory:  map[string]payload{},
	})
	if parent >= 0 {
		n.link(parent, idx)
	}
	return idx
}

func (n *network) enqueue(f func()) { n.queue = append(n.queue, f) }

func (n *network) drain() {
	for len(n.queue) > 0 {
		next := n.queue[0]
		n.queue = n.queue[1:]
		next()
	}
}

func (n *network) addToWorld(head model.Literal) bool {
	key := head.String()
	if _, known := n.world[key]; known {
		return false
	}
	n.world[key] = head
	n.worldSeq = append(n.worldSeq, head)
	return true
}
