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

	"github.com/krotik/kmergraph/kmer"
)

/*
Node is a node of a graph.
*/
type Node struct {
	key  string                 // Key of the node
	data map[string]interface{} // Attributes of the node
}

/*
newNode creates a new node without attributes.
*/
func newNode(key string) *Node {
	return &Node{key, make(map[string]interface{})}
}

/*
Key returns the key of this node.
*/
func (n *Node) Key() string {
	return n.key
}

/*
Data returns the attributes of this node.
*/
func (n *Node) Data() map[string]interface{} {
	return n.data
}

/*
Attr returns an attribute of this node.
*/
func (n *Node) Attr(attr string) interface{} {
	return n.data[attr]
}

/*
SetAttr sets an attribute of this node. Setting a nil value removes the
attribute.
*/
func (n *Node) SetAttr(attr string, val interface{}) {
	if val != nil {
		n.data[attr] = val
	} else {
		delete(n.data, attr)
	}
}

/*
Kmer returns the k-mer of this node or nil.
*/
func (n *Node) Kmer() *kmer.Kmer {
	k, _ := n.data[AttrKmer].(*kmer.Kmer)
	return k
}

/*
Coverage returns the coverage per color of this node.
*/
func (n *Node) Coverage() []uint32 {
	c, _ := n.data[AttrCoverage].([]uint32)
	return c
}

/*
IsMissing returns if the k-mer of this node does not exist in the graph
file.
*/
func (n *Node) IsMissing() bool {
	b, _ := n.data[AttrIsMissing].(bool)
	return b
}

/*
IsExpanded returns if the neighbours of this node were looked at.
*/
func (n *Node) IsExpanded() bool {
	b, _ := n.data[AttrIsExpanded].(bool)
	return b
}

/*
copyNode returns a copy of this node. Attribute values are shared.
*/
func (n *Node) copyNode() *Node {
	c := newNode(n.key)

	for k, v := range n.data {
		c.data[k] = v
	}

	return c
}

/*
String returns a string representation of this node.
*/
func (n *Node) String() string {
	var buf bytes.Buffer

	attrs := make([]string, 0, len(n.data))
	for k := range n.data {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)

	buf.WriteString(n.key)

	for _, k := range attrs {
		if k == AttrKmer || k == AttrUnitig {
			continue
		}
		buf.WriteString(fmt.Sprintf(" %v=%v", k, n.data[k]))
	}

	return buf.String()
}

/*
Edge is a directed edge of a given color.
*/
type Edge struct {
	From  string // Key of the source node
	To    string // Key of the target node
	Color int    // Color of the edge
}

/*
String returns a string representation of this edge.
*/
func (e Edge) String() string {
	return fmt.Sprintf("%v -> %v (%v)", e.From, e.To, e.Color)
}
