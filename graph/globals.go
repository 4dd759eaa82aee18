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
Package graph contains an in-memory directed multigraph. Nodes are stored
under a key (usually a k-mer string) and carry attributes. Edges are
identified by their source node, their target node and a color. Several
edges with different colors may connect the same nodes.

Nodes and edges are kept in insertion order so that iterating a graph is
deterministic.

Node attributes

Nodes of a traversal result have the following attributes:

	kmer        - *kmer.Kmer of the node (nil for unitig nodes)
	coverage    - []uint32 coverage per color ([][]uint32 coverage per
	              member node for unitig nodes)
	is_missing  - bool flag if the k-mer does not exist in the graph file
	is_expanded - bool flag if the traversal looked at the neighbours of the node

Nodes of a unitig graph have the additional attributes:

	unitig - the unitig of the node
	repr   - DNA sequence of the unitig
*/
package graph

/*
Known node attributes
*/
const (
	AttrKmer       = "kmer"
	AttrCoverage   = "coverage"
	AttrIsMissing  = "is_missing"
	AttrIsExpanded = "is_expanded"
	AttrUnitig     = "unitig"
	AttrRepr       = "repr"
)
