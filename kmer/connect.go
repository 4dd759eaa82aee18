/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package kmer

import "fmt"

/*
adjacency describes how a k-mer a relates to an orientation bs of a k-mer b.
*/
type adjacency struct {
	bs        string // Orientation of b in which the overlap was found
	canonical bool   // Flag if bs is the canonical orientation of b
}

/*
precedes finds an orientation of b which is the right extension of a.
*/
func precedes(as string, b *Kmer) (adjacency, bool) {
	for _, bs := range [2]string{b.Kmer, ReverseComplement(b.Kmer)} {
		if len(as) == len(bs) && as[1:] == bs[:len(bs)-1] {
			return adjacency{bs, bs == b.Kmer}, true
		}
	}
	return adjacency{}, false
}

/*
follows finds an orientation of b which is the left extension of a.
*/
func follows(as string, b *Kmer) (adjacency, bool) {
	for _, bs := range [2]string{b.Kmer, ReverseComplement(b.Kmer)} {
		if len(as) == len(bs) && as[:len(as)-1] == bs[1:] {
			return adjacency{bs, bs == b.Kmer}, true
		}
	}
	return adjacency{}, false
}

/*
lower returns the incoming edge letter of a base.
*/
func lower(b byte) byte {
	return b + 'a' - 'A'
}

/*
outgoingBits returns for a preceding a the edge letter on a and the edge
letter on b which describe the connection a -> b.
*/
func outgoingBits(as string, adj adjacency) (byte, byte) {
	if adj.canonical {
		return adj.bs[len(adj.bs)-1], lower(as[0])
	}
	return adj.bs[len(adj.bs)-1], Complement(as[0])
}

/*
incomingBits returns for a following a the edge letter on a and the edge
letter on b which describe the connection b -> a.
*/
func incomingBits(as string, adj adjacency) (byte, byte) {
	if adj.canonical {
		return lower(adj.bs[0]), as[len(as)-1]
	}
	return lower(adj.bs[0]), lower(Complement(as[len(as)-1]))
}

/*
checkColor checks that a given color exists in both k-mers.
*/
func checkColor(a, b *Kmer, color int) error {
	if color < 0 || color >= a.NumColors() || color >= b.NumColors() {
		return newError(ErrInvalidValue, fmt.Sprintf("Color %v does not exist", color))
	}
	return nil
}

/*
Connect sets the edges between two adjacent k-mers in a given color. If the
first k-mer can be extended to the right into the second k-mer then an
outgoing edge is set on the first k-mer, otherwise the second k-mer must
extend the first k-mer to the left. The edges are always recorded relative
to the canonical orientation of each k-mer.
*/
func Connect(a, b *Kmer, color int) error {

	if a.Kmer == b.Kmer && !a.Same(b) {
		return newError(ErrIdentity, a.Kmer)
	}

	if err := checkColor(a, b, color); err != nil {
		return err
	}

	if adj, ok := precedes(a.Kmer, b); ok {
		la, lb := outgoingBits(a.Kmer, adj)
		a.Edges[color] = a.Edges[color].Add(la)
		b.Edges[color] = b.Edges[color].Add(lb)

		return nil
	}

	if adj, ok := follows(a.Kmer, b); ok {
		la, lb := incomingBits(a.Kmer, adj)
		a.Edges[color] = a.Edges[color].Add(la)
		b.Edges[color] = b.Edges[color].Add(lb)

		return nil
	}

	return newError(ErrNotAdjacent, fmt.Sprintf("%v and %v", a.Kmer, b.Kmer))
}

/*
ConnectOriented sets the edges for a connection as -> bs in a given color.
The strings as and bs are orientations of the k-mers a and b. Unlike Connect
the direction of the connection is never guessed, so k-mers which overlap in
both directions are connected as given.
*/
func ConnectOriented(as, bs string, a, b *Kmer, color int) error {

	if a.Kmer == b.Kmer && !a.Same(b) {
		return newError(ErrIdentity, a.Kmer)
	}

	if Canonical(as) != a.Kmer || Canonical(bs) != b.Kmer {
		return newError(ErrInvalidValue,
			fmt.Sprintf("%v and %v are not orientations of %v and %v", as, bs, a.Kmer, b.Kmer))
	}

	if err := checkColor(a, b, color); err != nil {
		return err
	}

	if as[1:] != bs[:len(bs)-1] {
		return newError(ErrNotAdjacent, fmt.Sprintf("%v and %v", as, bs))
	}

	la := bs[len(bs)-1]
	if as != a.Kmer {
		la = lower(Complement(la))
	}

	lb := Complement(as[0])
	if bs == b.Kmer {
		lb = lower(as[0])
	}

	a.Edges[color] = a.Edges[color].Add(la)
	b.Edges[color] = b.Edges[color].Add(lb)

	return nil
}

/*
HasOutgoingEdgeTo checks if there is an edge a -> b in a given color. Both
k-mers must agree on the state of the edge.
*/
func HasOutgoingEdgeTo(a, b *Kmer, color int) (bool, error) {

	if err := checkColor(a, b, color); err != nil {
		return false, err
	}

	if adj, ok := precedes(a.Kmer, b); ok {
		la, lb := outgoingBits(a.Kmer, adj)
		return agree(a, b, la, lb, color)
	}

	if _, ok := follows(a.Kmer, b); ok {
		return false, nil
	}

	return false, newError(ErrNotAdjacent, fmt.Sprintf("%v and %v", a.Kmer, b.Kmer))
}

/*
HasIncomingEdgeFrom checks if there is an edge b -> a in a given color. Both
k-mers must agree on the state of the edge.
*/
func HasIncomingEdgeFrom(a, b *Kmer, color int) (bool, error) {

	if err := checkColor(a, b, color); err != nil {
		return false, err
	}

	if adj, ok := follows(a.Kmer, b); ok {
		la, lb := incomingBits(a.Kmer, adj)
		return agree(a, b, la, lb, color)
	}

	if _, ok := precedes(a.Kmer, b); ok {
		return false, nil
	}

	return false, newError(ErrNotAdjacent, fmt.Sprintf("%v and %v", a.Kmer, b.Kmer))
}

/*
agree checks that the edge letter la on a and the edge letter lb on b are
either both set or both unset.
*/
func agree(a, b *Kmer, la, lb byte, color int) (bool, error) {
	hasA := a.Edges[color].Has(la)
	hasB := b.Edges[color].Has(lb)

	if hasA != hasB {
		return false, newError(ErrInconsistentEdges,
			fmt.Sprintf("%v %v and %v %v", a.Kmer, a.Edges[color], b.Kmer, b.Edges[color]))
	}

	return hasA, nil
}
