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

import (
	"fmt"
	"math/bits"
	"strings"
)

/*
EdgeSet models the edges of a k-mer in one color. Bits 0-3 are the outgoing
edges A, C, G, T and bits 4-7 are the incoming edges T, G, C, A.
*/
type EdgeSet uint8

/*
edgeLetters is the textual layout of an edge set.
*/
const edgeLetters = "acgtACGT"

/*
ParseEdgeSet parses the textual form of an edge set (e.g. "a......T").
*/
func ParseEdgeSet(s string) (EdgeSet, error) {
	var e EdgeSet

	if len(s) != len(edgeLetters) {
		return 0, newError(ErrInvalidValue,
			fmt.Sprintf("Edge set %q must have %v characters", s, len(edgeLetters)))
	}

	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			continue
		}

		if s[i] != edgeLetters[i] {
			return 0, newError(ErrInvalidValue,
				fmt.Sprintf("Unexpected character %q at position %v of edge set %q",
					s[i], i, s))
		}

		e = e.Add(s[i])
	}

	return e, nil
}

/*
edgeBit returns the bit of a given edge letter. Upper case letters are
outgoing and lower case letters are incoming edges.
*/
func edgeBit(letter byte) (EdgeSet, bool) {
	var idx int

	switch letter {
	case 'A', 'a':
		idx = 0
	case 'C', 'c':
		idx = 1
	case 'G', 'g':
		idx = 2
	case 'T', 't':
		idx = 3
	default:
		return 0, false
	}

	if letter >= 'a' {
		return 1 << uint(7-idx), true
	}

	return 1 << uint(idx), true
}

/*
Has checks if the edge of a given letter is set.
*/
func (e EdgeSet) Has(letter byte) bool {
	bit, ok := edgeBit(letter)
	return ok && e&bit != 0
}

/*
Add returns a new edge set with the edge of a given letter set. Unknown
letters are ignored.
*/
func (e EdgeSet) Add(letter byte) EdgeSet {
	bit, _ := edgeBit(letter)
	return e | bit
}

/*
Remove returns a new edge set with the edge of a given letter unset.
*/
func (e EdgeSet) Remove(letter byte) EdgeSet {
	bit, _ := edgeBit(letter)
	return e &^ bit
}

/*
Outgoing returns the (upper case) letters of all outgoing edges in
A, C, G, T order.
*/
func (e EdgeSet) Outgoing() string {
	var buf strings.Builder

	for i := 0; i < len(Letters); i++ {
		if e.Has(Letters[i]) {
			buf.WriteByte(Letters[i])
		}
	}

	return buf.String()
}

/*
Incoming returns the (upper case) letters of all incoming edges in
A, C, G, T order.
*/
func (e EdgeSet) Incoming() string {
	var buf strings.Builder

	for i := 0; i < len(edgeLetters)/2; i++ {
		if e.Has(edgeLetters[i]) {
			buf.WriteByte(Letters[i])
		}
	}

	return buf.String()
}

/*
OutDegree returns the number of outgoing edges.
*/
func (e EdgeSet) OutDegree() int {
	return bits.OnesCount8(uint8(e) & 0x0f)
}

/*
InDegree returns the number of incoming edges.
*/
func (e EdgeSet) InDegree() int {
	return bits.OnesCount8(uint8(e) & 0xf0)
}

/*
Flip returns the edge set as seen from the reverse complement of the k-mer.
An outgoing edge x becomes an incoming edge complement(x) and vice versa.
*/
func (e EdgeSet) Flip() EdgeSet {
	var ret EdgeSet

	for i := 0; i < len(Letters); i++ {
		l := Letters[i]

		if e.Has(l) {
			ret = ret.Add(Complement(l) + 'a' - 'A')
		}
		if e.Has(l + 'a' - 'A') {
			ret = ret.Add(Complement(l))
		}
	}

	return ret
}

/*
String returns the textual form of this edge set.
*/
func (e EdgeSet) String() string {
	buf := []byte(edgeLetters)

	for i := 0; i < len(buf); i++ {
		if !e.Has(buf[i]) {
			buf[i] = '.'
		}
	}

	return string(buf)
}
