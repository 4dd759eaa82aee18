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
Package traversal contains the traversal engine which explores the de Bruijn
graph around a seed k-mer and collects the explored k-mers in an in-memory
graph.

Engine

The engine keeps a FIFO frontier of k-mers which still need to be expanded.
Each frontier entry is expanded by walking a linear branch: the walk
continues as long as there is exactly one neighbour which has not been
expanded yet. All neighbours which are met on the way are added to the
result graph. Neighbours which do not exist in the graph file are added as
missing nodes.

Nodes are labelled with the k-mer string in the orientation in which the
walk reached them. A k-mer is only ever added once to the result graph no
matter in which orientation it is reached again.

Orientation

The orientation of a traversal decides which edges are followed. Original
follows outgoing edges, Reverse follows incoming edges and Both follows
all edges.
*/
package traversal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/krotik/common/logutil"
)

/*
logger is the logger of this package.
*/
var logger = logutil.GetLogger("kmergraph.traversal")

/*
Orientation is the direction in which a traversal follows edges.
*/
type Orientation int

/*
Known orientations
*/
const (
	Original Orientation = iota
	Reverse
	Both
)

/*
orientationNames are the names of all orientations.
*/
var orientationNames = []string{"original", "reverse", "both"}

/*
ParseOrientation parses an orientation from its name.
*/
func ParseOrientation(name string) (Orientation, error) {
	for i, n := range orientationNames {
		if strings.ToLower(name) == n {
			return Orientation(i), nil
		}
	}

	return Original, &Error{ErrInvalidOrientation,
		fmt.Sprintf("%q (must be one of %v)", name, strings.Join(orientationNames, ", "))}
}

/*
String returns the name of an orientation.
*/
func (o Orientation) String() string {
	if o >= Original && o <= Both {
		return orientationNames[o]
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

/*
followsOutgoing returns if outgoing edges are followed.
*/
func (o Orientation) followsOutgoing() bool {
	return o != Reverse
}

/*
followsIncoming returns if incoming edges are followed.
*/
func (o Orientation) followsIncoming() bool {
	return o != Original
}

/*
Traversal related errors.
*/
var (
	ErrStartString        = errors.New("Start string does not match the kmer size")
	ErrInvalidOrientation = errors.New("Invalid orientation")
	ErrInvalidColor       = errors.New("Invalid traversal color")
	ErrInvalidMaxNodes    = errors.New("Invalid maximum number of nodes")
)

/*
Error is a traversal related error.
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *Error) Error() string {
	return fmt.Sprintf("TraversalError: %v (%v)", e.Type, e.Detail)
}

/*
Unwrap returns the error type of this error.
*/
func (e *Error) Unwrap() error {
	return e.Type
}
