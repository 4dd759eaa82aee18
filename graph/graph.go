/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/stringutil"
)

/*
Graph is a directed multigraph.
*/
type Graph struct {
	nodes     map[string]*Node  // Nodes by key
	nodeOrder []string          // Node keys in insertion order
	edges     map[Edge]struct{} // Set of all edges
	edgeOrder []Edge            // Edges in insertion order
	out       map[string][]Edge // Outgoing edges of each node
	in        map[string][]Edge // Incoming edges of each node
}

/*
New creates a new empty graph.
*/
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[Edge]struct{}),
		out:   make(map[string][]Edge),
		in:    make(map[string][]Edge),
	}
}

/*
AddNode adds a node with a given key. Returns the existing node if the
graph already has a node with this key.
*/
func (g *Graph) AddNode(key string) *Node {
	if n, ok := g.nodes[key]; ok {
		return n
	}

	n := newNode(key)

	g.nodes[key] = n
	g.nodeOrder = append(g.nodeOrder, key)

	return n
}

/*
Node returns the node of a given key or nil.
*/
func (g *Graph) Node(key string) *Node {
	return g.nodes[key]
}

/*
HasNode checks if the graph has a node with a given key.
*/
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

/*
NumNodes returns the number of nodes.
*/
func (g *Graph) NumNodes() int {
	return len(g.nodeOrder)
}

/*
Nodes returns all nodes in insertion order.
*/
func (g *Graph) Nodes() []*Node {
	ret := make([]*Node, len(g.nodeOrder))

	for i, k := range g.nodeOrder {
		ret[i] = g.nodes[k]
	}

	return ret
}

/*
AddEdge adds an edge of a given color between two existing nodes. Returns
false if the edge already existed.
*/
func (g *Graph) AddEdge(from, to string, color int) bool {

	errorutil.AssertTrue(g.HasNode(from) && g.HasNode(to),
		fmt.Sprintf("Cannot add edge between unknown nodes %v and %v", from, to))

	e := Edge{from, to, color}

	if _, ok := g.edges[e]; ok {
		return false
	}

	g.edges[e] = struct{}{}
	g.edgeOrder = append(g.edgeOrder, e)
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)

	return true
}

/*
HasEdge checks if there is an edge of a given color between two nodes.
*/
func (g *Graph) HasEdge(from, to string, color int) bool {
	_, ok := g.edges[Edge{from, to, color}]
	return ok
}

/*
NumEdges returns the number of edges.
*/
func (g *Graph) NumEdges() int {
	return len(g.edgeOrder)
}

/*
Edges returns all edges in insertion order.
*/
func (g *Graph) Edges() []Edge {
	ret := make([]Edge, len(g.edgeOrder))
	copy(ret, g.edgeOrder)
	return ret
}

/*
OutEdges returns all edges which start at a given node.
*/
func (g *Graph) OutEdges(key string) []Edge {
	ret := make([]Edge, len(g.out[key]))
	copy(ret, g.out[key])
	return ret
}

/*
InEdges returns all edges which end at a given node.
*/
func (g *Graph) InEdges(key string) []Edge {
	ret := make([]Edge, len(g.in[key]))
	copy(ret, g.in[key])
	return ret
}

/*
Successors returns the distinct targets of all outgoing edges of a node.
*/
func (g *Graph) Successors(key string) []string {
	return distinct(g.out[key], func(e Edge) string { return e.To })
}

/*
Predecessors returns the distinct sources of all incoming edges of a node.
*/
func (g *Graph) Predecessors(key string) []string {
	return distinct(g.in[key], func(e Edge) string { return e.From })
}

/*
OutDegree returns the number of distinct successors of a node.
*/
func (g *Graph) OutDegree(key string) int {
	return len(g.Successors(key))
}

/*
InDegree returns the number of distinct predecessors of a node.
*/
func (g *Graph) InDegree(key string) int {
	return len(g.Predecessors(key))
}

/*
distinct returns the distinct node keys of a list of edges.
*/
func distinct(edges []Edge, key func(Edge) string) []string {
	var ret []string

	seen := make(map[string]bool)

	for _, e := range edges {
		if k := key(e); !seen[k] {
			seen[k] = true
			ret = append(ret, k)
		}
	}

	return ret
}

/*
Subgraph returns a new graph which contains copies of the given nodes and
all edges between them.
*/
func (g *Graph) Subgraph(keys ...string) *Graph {
	return g.SubgraphFunc(nil, keys...)
}

/*
SubgraphFunc returns a new graph which contains copies of the given nodes
and all edges between them which are accepted by a given filter function.
A nil filter accepts all edges.
*/
func (g *Graph) SubgraphFunc(filter func(Edge) bool, keys ...string) *Graph {
	ret := New()

	for _, k := range keys {
		if n, ok := g.nodes[k]; ok && !ret.HasNode(k) {
			c := n.copyNode()

			ret.nodes[k] = c
			ret.nodeOrder = append(ret.nodeOrder, k)
		}
	}

	for _, e := range g.edgeOrder {
		if ret.HasNode(e.From) && ret.HasNode(e.To) && (filter == nil || filter(e)) {
			ret.AddEdge(e.From, e.To, e.Color)
		}
	}

	return ret
}

/*
WeaklyConnectedComponents splits this graph into its weakly connected
components. Components are ordered by number of nodes, largest first. Equal
sized components keep the order of their first node.
*/
func (g *Graph) WeaklyConnectedComponents() []*Graph {
	var ret []*Graph

	component := make(map[string]int)
	var members [][]string

	for _, k := range g.nodeOrder {
		if _, ok := component[k]; ok {
			continue
		}

		id := len(members)
		members = append(members, nil)

		component[k] = id
		queue := []string{k}

		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]

			for _, e := range g.out[n] {
				if _, ok := component[e.To]; !ok {
					component[e.To] = id
					queue = append(queue, e.To)
				}
			}

			for _, e := range g.in[n] {
				if _, ok := component[e.From]; !ok {
					component[e.From] = id
					queue = append(queue, e.From)
				}
			}
		}
	}

	// Keep the insertion order of the nodes within each component

	for _, k := range g.nodeOrder {
		id := component[k]
		members[id] = append(members[id], k)
	}

	for _, keys := range members {
		ret = append(ret, g.Subgraph(keys...))
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].NumNodes() > ret[j].NumNodes()
	})

	return ret
}

/*
Copy returns a copy of this graph.
*/
func (g *Graph) Copy() *Graph {
	return g.Subgraph(g.nodeOrder...)
}

/*
String returns a string representation of this graph.
*/
func (g *Graph) String() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%v node%v, %v edge%v\n",
		g.NumNodes(), stringutil.Plural(g.NumNodes()),
		g.NumEdges(), stringutil.Plural(g.NumEdges())))

	for _, n := range g.Nodes() {
		buf.WriteString(n.String())
		buf.WriteString("\n")
	}

	for _, e := range g.edgeOrder {
		buf.WriteString(e.String())
		buf.WriteString("\n")
	}

	return buf.String()
}
