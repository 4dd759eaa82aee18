/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package traversal

import (
	"github.com/krotik/kmergraph/graph"
	"github.com/krotik/kmergraph/kmer"
)

/*
AnnotateEdges adds the neighbours of all k-mer nodes of a graph which are
not yet part of the graph. The added nodes have zero coverage and are not
expanded. Edges of all colors are added. The given graph is modified and
returned.
*/
func AnnotateEdges(g *graph.Graph) *graph.Graph {
	labels := make(map[string]string)

	for _, node := range g.Nodes() {
		labels[kmer.Canonical(node.Key())] = node.Key()
	}

	for _, node := range g.Nodes() {
		k := node.Kmer()

		if k == nil {
			continue
		}

		colors := make([]int, k.NumColors())
		for i := range colors {
			colors[i] = i
		}

		for _, l := range links(node.Key(), k, colors, Both) {
			canonical := kmer.Canonical(l.neighbour)

			label, ok := labels[canonical]
			if !ok {
				label = l.neighbour
				labels[canonical] = label

				boundary := g.AddNode(label)
				boundary.SetAttr(graph.AttrCoverage, make([]uint32, k.NumColors()))
				boundary.SetAttr(graph.AttrIsMissing, false)
				boundary.SetAttr(graph.AttrIsExpanded, false)
			}

			if l.incoming {
				g.AddEdge(label, node.Key(), l.color)
			} else {
				g.AddEdge(node.Key(), label, l.color)
			}
		}
	}

	return g
}
