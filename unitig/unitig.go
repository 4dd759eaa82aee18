/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package unitig contracts the non-branching paths of a k-mer graph.

A unitig is a maximal chain of nodes where each node has exactly one
successor which in turn has exactly one predecessor. All nodes of a unitig
have the same coverage pattern: they are either all missing or all present
and have coverage in the same colors.
*/
package unitig

import (
	"bytes"
	"fmt"

	"github.com/krotik/kmergraph/graph"
	"github.com/krotik/kmergraph/traversal"
)

/*
Unitig is a non-branching chain of nodes.
*/
type Unitig struct {
	Left     string       // Key of the first node
	Right    string       // Key of the last node
	Members  []string     // Keys of all nodes from left to right
	Graph    *graph.Graph // Nodes and chain edges of the unitig
	Coverage [][]uint32   // Coverage of all nodes from left to right
}

/*
Sequence returns the DNA sequence which is spelled by the unitig.
*/
func (u *Unitig) Sequence() string {
	var buf bytes.Buffer

	for i, m := range u.Members {
		if i == 0 {
			buf.WriteString(m)
		} else if len(m) > 0 {
			buf.WriteByte(m[len(m)-1])
		}
	}

	return buf.String()
}

/*
String returns a string representation of this unitig.
*/
func (u *Unitig) String() string {
	return fmt.Sprintf("Unitig %v (%v - %v) coverage: %v", u.Sequence(), u.Left, u.Right, u.Coverage)
}

/*
IsUnitigEnd checks if a unitig which contains a given node ends at this node
in a given direction. In Original direction a node is an end if it does not
have exactly one successor or if its successor does not have exactly one
predecessor. Reverse is the same in the other direction. Both checks both
directions.
*/
func IsUnitigEnd(key string, g *graph.Graph, o traversal.Orientation) bool {

	switch o {
	case traversal.Original:
		succ := g.Successors(key)
		return len(succ) != 1 || g.InDegree(succ[0]) != 1

	case traversal.Reverse:
		pred := g.Predecessors(key)
		return len(pred) != 1 || g.OutDegree(pred[0]) != 1
	}

	return IsUnitigEnd(key, g, traversal.Original) || IsUnitigEnd(key, g, traversal.Reverse)
}

/*
coveragePattern returns the presence pattern of a node.
*/
func coveragePattern(n *graph.Node) string {
	var buf bytes.Buffer

	if n.IsMissing() {
		buf.WriteByte('m')
	}

	for _, c := range n.Coverage() {
		if c > 0 {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}

	return buf.String()
}

/*
FindUnitigFrom finds the unitig which contains a given node.
*/
func FindUnitigFrom(key string, g *graph.Graph) *Unitig {
	pattern := coveragePattern(g.Node(key))
	members := map[string]bool{key: true}

	// next returns the neighbour which continues the chain or false.

	next := func(current string, o traversal.Orientation) (string, bool) {
		if IsUnitigEnd(current, g, o) {
			return "", false
		}

		var n string

		if o == traversal.Original {
			n = g.Successors(current)[0]
		} else {
			n = g.Predecessors(current)[0]
		}

		if members[n] || coveragePattern(g.Node(n)) != pattern {
			return "", false
		}

		members[n] = true

		return n, true
	}

	right := []string{key}
	for n, ok := next(key, traversal.Original); ok; n, ok = next(n, traversal.Original) {
		right = append(right, n)
	}

	var left []string
	for n, ok := next(key, traversal.Reverse); ok; n, ok = next(n, traversal.Reverse) {
		left = append(left, n)
	}

	chain := make([]string, 0, len(left)+len(right))
	for i := len(left) - 1; i >= 0; i-- {
		chain = append(chain, left[i])
	}
	chain = append(chain, right...)

	links := make(map[[2]string]bool)
	for i := 1; i < len(chain); i++ {
		links[[2]string{chain[i-1], chain[i]}] = true
	}

	coverage := make([][]uint32, len(chain))
	for i, m := range chain {
		coverage[i] = g.Node(m).Coverage()
	}

	return &Unitig{
		Left:    chain[0],
		Right:   chain[len(chain)-1],
		Members: chain,
		Graph: g.SubgraphFunc(func(e graph.Edge) bool {
			return links[[2]string{e.From, e.To}]
		}, chain...),
		Coverage: coverage,
	}
}

/*
FindUnitigs contracts all unitigs of a graph. Each node of the returned
graph represents a unitig and is keyed by the left node of the unitig.
Edges of the given graph which are not part of a unitig connect the
unitigs of their nodes.
*/
func FindUnitigs(g *graph.Graph) *graph.Graph {
	ret := graph.New()

	unitigs := make(map[string]*Unitig)

	for _, n := range g.Nodes() {

		if _, ok := unitigs[n.Key()]; ok {
			continue
		}

		u := FindUnitigFrom(n.Key(), g)

		for _, m := range u.Members {
			unitigs[m] = u
		}

		un := ret.AddNode(u.Left)
		un.SetAttr(graph.AttrUnitig, u)
		un.SetAttr(graph.AttrRepr, u.Sequence())
		un.SetAttr(graph.AttrCoverage, u.Coverage)
		un.SetAttr(graph.AttrIsMissing, g.Node(u.Left).IsMissing())
	}

	for _, e := range g.Edges() {
		from, to := unitigs[e.From], unitigs[e.To]

		if from == to && from.Graph.HasEdge(e.From, e.To, e.Color) {
			continue
		}

		ret.AddEdge(from.Left, to.Left, e.Color)
	}

	return ret
}
