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
link is an edge between a k-mer and one of its neighbours.
*/
type link struct {
	neighbour string // Neighbour k-mer as seen from the k-mer
	incoming  bool   // Flag if the edge points to the k-mer
	color     int    // Color of the edge
}

/*
links returns the edges of a k-mer in a given orientation of its string.
Neighbours are produced in color order and for each color in the order
A, C, G, T of the outgoing and then of the incoming edges.
*/
func links(kmerString string, k *kmer.Kmer, colors []int, o Orientation) []link {
	var ret []link

	suffix := kmerString[1:]
	prefix := kmerString[:len(kmerString)-1]

	for _, c := range colors {
		edges := k.EdgesFor(kmerString, c)

		if o.followsOutgoing() {
			for _, l := range edges.Outgoing() {
				ret = append(ret, link{suffix + string(l), false, c})
			}
		}

		if o.followsIncoming() {
			for _, l := range edges.Incoming() {
				ret = append(ret, link{string(l) + prefix, true, c})
			}
		}
	}

	return ret
}

/*
addLink adds the edge of a link to the result graph.
*/
func (e *Engine) addLink(label string, neighbourLabel string, l link) {
	if l.incoming {
		e.graph.AddEdge(neighbourLabel, label, l.color)
	} else {
		e.graph.AddEdge(label, neighbourLabel, l.color)
	}
}

/*
walkBranch expands the k-mer of a given node and keeps walking as long as
the expanded k-mer has exactly one neighbour which is neither expanded nor
missing. Returns the neighbours at which the walk stopped.
*/
func (e *Engine) walkBranch(label string) ([]string, error) {
	for {
		node := e.graph.Node(label)
		k := node.Kmer()

		node.SetAttr(graph.AttrIsExpanded, true)
		e.expanded[kmer.Canonical(label)] = true

		var candidates []string

		seen := make(map[string]bool)

		for _, l := range links(label, k, e.colors, e.orientation) {

			neighbourLabel, nk, err := e.neighbourNode(l.neighbour)
			if err != nil {
				return nil, err
			}

			e.addLink(label, neighbourLabel, l)

			if nk != nil && !seen[neighbourLabel] && !e.expanded[kmer.Canonical(neighbourLabel)] {
				seen[neighbourLabel] = true
				candidates = append(candidates, neighbourLabel)
			}
		}

		if len(candidates) != 1 {
			return candidates, nil
		}

		label = candidates[0]
	}
}
