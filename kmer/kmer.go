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
	"bytes"
	"fmt"
)

/*
Kmer models a canonical k-mer with its per-color coverage and edges.
*/
type Kmer struct {
	Kmer     string    // Canonical k-mer string
	Coverage []uint32  // Coverage per color
	Edges    []EdgeSet // Edges per color
	arena    *Builder  // Owning arena (nil if the k-mer was not built by a Builder)
	slot     int       // Slot in the owning arena
}

/*
New creates a new k-mer which is not owned by any arena. The given string
is expected to be canonical.
*/
func New(kmerString string, coverage []uint32, edges []EdgeSet) *Kmer {
	return &Kmer{kmerString, coverage, edges, nil, -1}
}

/*
Size returns the length of the k-mer string.
*/
func (k *Kmer) Size() int {
	return len(k.Kmer)
}

/*
NumColors returns the number of colors of this k-mer.
*/
func (k *Kmer) NumColors() int {
	return len(k.Coverage)
}

/*
AppendColor adds a new color with zero coverage and no edges.
*/
func (k *Kmer) AppendColor() {
	k.Coverage = append(k.Coverage, 0)
	k.Edges = append(k.Edges, 0)
}

/*
Copy returns a deep copy of this k-mer which is not owned by any arena.
*/
func (k *Kmer) Copy() *Kmer {
	cov := make([]uint32, len(k.Coverage))
	copy(cov, k.Coverage)

	edges := make([]EdgeSet, len(k.Edges))
	copy(edges, k.Edges)

	return New(k.Kmer, cov, edges)
}

/*
Same checks if two k-mers are the same instance. K-mers of the same arena
are compared by their slot.
*/
func (k *Kmer) Same(other *Kmer) bool {
	if k.arena != nil && k.arena == other.arena {
		return k.slot == other.slot
	}
	return k == other
}

/*
EdgesFor returns the edges of a given color as seen from a given orientation
of this k-mer. The orientation must be either the k-mer string or its
reverse complement.
*/
func (k *Kmer) EdgesFor(orientation string, color int) EdgeSet {
	if orientation == k.Kmer {
		return k.Edges[color]
	}
	return k.Edges[color].Flip()
}

/*
String returns a string representation of this k-mer: the k-mer string
followed by the coverage and edges of each color.
*/
func (k *Kmer) String() string {
	return k.OrientedString(k.Kmer)
}

/*
OrientedString returns a string representation of this k-mer as seen from a
given orientation.
*/
func (k *Kmer) OrientedString(orientation string) string {
	var buf bytes.Buffer

	buf.WriteString(orientation)

	for _, c := range k.Coverage {
		buf.WriteString(fmt.Sprintf(" %v", c))
	}

	for i := range k.Edges {
		buf.WriteString(" ")
		buf.WriteString(k.EdgesFor(orientation, i).String())
	}

	return buf.String()
}

/*
Builder is an arena of k-mers. It guarantees a single instance per
canonical k-mer string.
*/
type Builder struct {
	numColors int            // Number of colors of new k-mers
	slots     []*Kmer        // Arena slots
	index     map[string]int // Mapping from canonical string to slot
}

/*
NewBuilder creates a new k-mer arena whose k-mers have a given number of
colors.
*/
func NewBuilder(numColors int) (*Builder, error) {

	if numColors < 0 {
		return nil, newError(ErrInvalidValue,
			fmt.Sprintf("Number of colors must not be negative: %v", numColors))
	}

	return &Builder{numColors, nil, make(map[string]int)}, nil
}

/*
NumColors returns the number of colors of new k-mers.
*/
func (b *Builder) NumColors() int {
	return b.numColors
}

/*
Len returns the number of k-mers in this arena.
*/
func (b *Builder) Len() int {
	return len(b.slots)
}

/*
Kmers returns all k-mers of this arena in creation order.
*/
func (b *Builder) Kmers() []*Kmer {
	ret := make([]*Kmer, len(b.slots))
	copy(ret, b.slots)
	return ret
}

/*
Get returns the k-mer for a given string (in either orientation) if it
exists in this arena.
*/
func (b *Builder) Get(kmerString string) (*Kmer, bool) {
	if slot, ok := b.index[Canonical(kmerString)]; ok {
		return b.slots[slot], true
	}
	return nil, false
}

/*
BuildOrGet returns the k-mer for a given string. A new k-mer with zero
coverage and no edges is created if the arena does not have one yet.
*/
func (b *Builder) BuildOrGet(kmerString string) (*Kmer, error) {

	if err := Validate(kmerString); err != nil {
		return nil, err
	}

	if k, ok := b.Get(kmerString); ok {
		return k, nil
	}

	return b.register(New(Canonical(kmerString),
		make([]uint32, b.numColors), make([]EdgeSet, b.numColors))), nil
}

/*
Adopt registers a copy of a given k-mer in this arena. If the arena already
holds a k-mer with the same string then the existing instance is returned.
*/
func (b *Builder) Adopt(k *Kmer) *Kmer {
	if existing, ok := b.Get(k.Kmer); ok {
		return existing
	}
	return b.register(k.Copy())
}

/*
register places a k-mer in a new slot.
*/
func (b *Builder) register(k *Kmer) *Kmer {
	k.arena = b
	k.slot = len(b.slots)

	b.slots = append(b.slots, k)
	b.index[k.Kmer] = k.slot

	return k
}
