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
Package builder writes graph files. K-mers can be given as text or derived
from DNA sequences:

	data, err := builder.New().
		WithKmerSize(3).
		WithKmer("AAA 1 .......T").
		WithKmer("AAT 1 a....C..").
		Build()

The textual form of a k-mer is the k-mer string followed by the coverage of
each color and the edge set of each color. The records of a graph file are
sorted by their k-mer string unless the builder is told otherwise.
*/
package builder

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"sort"
	"strconv"
	"strings"

	"github.com/krotik/common/pools"
	"github.com/krotik/kmergraph/kmer"
	"github.com/krotik/kmergraph/storage"
)

/*
bufferPool is a pool of byte buffers for graph data.
*/
var bufferPool = pools.NewByteBufferPool()

/*
Builder builds graph files.
*/
type Builder struct {
	kmerSize    int           // K-mer size of all records (0 if not known yet)
	numColors   int           // Number of colors
	sampleNames []string      // Sample names of the colors
	sorted      bool          // Flag if records should be sorted
	arena       *kmer.Builder // Arena of all k-mers
	err         error         // First encountered error
}

/*
New creates a new builder for a graph file with a single color.
*/
func New() *Builder {
	return &Builder{numColors: 1, sorted: true}
}

/*
WithKmerSize sets the k-mer size of the graph.
*/
func (b *Builder) WithKmerSize(kmerSize int) *Builder {
	if b.kmerSize != 0 && b.kmerSize != kmerSize {
		b.fail(fmt.Errorf("K-mer size was already set to %v", b.kmerSize))
	}

	b.kmerSize = kmerSize

	return b
}

/*
WithNumColors sets the number of colors. Must be called before any k-mer
is added.
*/
func (b *Builder) WithNumColors(numColors int) *Builder {
	if b.arena != nil {
		b.fail(fmt.Errorf("Number of colors must be set before adding k-mers"))
	}

	b.numColors = numColors

	return b
}

/*
WithSampleNames sets the sample names of the colors.
*/
func (b *Builder) WithSampleNames(names ...string) *Builder {
	b.sampleNames = names
	return b
}

/*
WithUnsortedRecords keeps the records in the order they were added.
*/
func (b *Builder) WithUnsortedRecords() *Builder {
	b.sorted = false
	return b
}

/*
WithKmer adds a k-mer in textual form (e.g. "AAA 1 2 .......T ........").
*/
func (b *Builder) WithKmer(desc string) *Builder {
	fields := strings.Fields(desc)

	if len(fields) != 1+2*b.numColors {
		b.fail(fmt.Errorf("K-mer %q needs coverage and edges for %v colors", desc, b.numColors))
		return b
	}

	coverage := make([]uint32, b.numColors)
	edges := make([]kmer.EdgeSet, b.numColors)

	for i := 0; i < b.numColors; i++ {
		c, err := strconv.ParseUint(fields[1+i], 10, 32)
		if err != nil {
			b.fail(fmt.Errorf("Invalid coverage in %q: %v", desc, err))
			return b
		}

		e, err := kmer.ParseEdgeSet(fields[1+b.numColors+i])
		if err != nil {
			b.fail(err)
			return b
		}

		coverage[i] = uint32(c)
		edges[i] = e
	}

	return b.WithRecord(fields[0], coverage, edges)
}

/*
WithRecord adds a k-mer with given coverage and edges. The k-mer is stored
in its canonical form, the edges are stored as given.
*/
func (b *Builder) WithRecord(kmerString string, coverage []uint32, edges []kmer.EdgeSet) *Builder {
	k := b.kmer(kmerString)

	if k != nil {
		if len(coverage) != b.numColors || len(edges) != b.numColors {
			b.fail(fmt.Errorf("K-mer %v needs coverage and edges for %v colors",
				kmerString, b.numColors))
			return b
		}

		copy(k.Coverage, coverage)
		copy(k.Edges, edges)
	}

	return b
}

/*
WithDNASequence adds all k-mers of a given DNA sequence to a color. The
coverage of each k-mer is increased for every occurrence and consecutive
k-mers are connected.
*/
func (b *Builder) WithDNASequence(color int, seq string) *Builder {

	if b.kmerSize == 0 {
		b.fail(fmt.Errorf("K-mer size must be set before adding sequences"))
		return b
	}

	if color < 0 || color >= b.numColors {
		b.fail(fmt.Errorf("Color %v does not exist", color))
		return b
	}

	var prev *kmer.Kmer
	var prevString string

	for _, s := range kmer.Kmers(strings.ToUpper(seq), b.kmerSize) {
		k := b.kmer(s)
		if k == nil {
			return b
		}

		k.Coverage[color]++

		if prev != nil {
			if err := kmer.ConnectOriented(prevString, s, prev, k, color); err != nil {
				b.fail(err)
				return b
			}
		}

		prev, prevString = k, s
	}

	return b
}

/*
kmer returns the arena k-mer of a given string.
*/
func (b *Builder) kmer(kmerString string) *kmer.Kmer {

	if b.err != nil {
		return nil
	}

	if b.kmerSize == 0 {
		b.kmerSize = len(kmerString)
	} else if len(kmerString) != b.kmerSize {
		b.fail(fmt.Errorf("K-mer %v does not have k-mer size %v", kmerString, b.kmerSize))
		return nil
	}

	if b.arena == nil {
		var err error

		if b.arena, err = kmer.NewBuilder(b.numColors); err != nil {
			b.fail(err)
			return nil
		}
	}

	k, err := b.arena.BuildOrGet(kmerString)
	if err != nil {
		b.fail(err)
		return nil
	}

	return k
}

/*
fail records the first error.
*/
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

/*
Kmers returns all k-mers in the order they would be written.
*/
func (b *Builder) Kmers() []*kmer.Kmer {
	if b.arena == nil {
		return nil
	}

	kmers := b.arena.Kmers()

	if b.sorted {
		sort.SliceStable(kmers, func(i, j int) bool {
			return kmers[i].Kmer < kmers[j].Kmer
		})
	}

	return kmers
}

/*
Build returns the graph data.
*/
func (b *Builder) Build() ([]byte, error) {

	if b.err != nil {
		return nil, b.err
	}

	if b.kmerSize == 0 {
		return nil, fmt.Errorf("K-mer size is not known")
	}

	h := storage.NewHeader(b.kmerSize, b.numColors)

	for i := range h.Colors {
		if i < len(b.sampleNames) {
			h.Colors[i].SampleName = b.sampleNames[i]
		}
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := h.WriteTo(buf); err != nil {
		return nil, err
	}

	layout := h.Layout()

	for _, k := range b.Kmers() {
		data, err := layout.Encode(k.Kmer, k.Coverage, k.Edges)
		if err != nil {
			return nil, err
		}

		buf.Write(data)
	}

	ret := make([]byte, buf.Len())
	copy(ret, buf.Bytes())

	return ret, nil
}

/*
BuildIndex builds the graph data and opens an index over it.
*/
func (b *Builder) BuildIndex(opts storage.Options) (*storage.RandomAccess, error) {
	data, err := b.Build()
	if err != nil {
		return nil, err
	}

	return storage.Open(bytes.NewReader(data), int64(len(data)), opts)
}

/*
WriteFile writes the graph data to a file.
*/
func (b *Builder) WriteFile(path string) error {
	data, err := b.Build()
	if err == nil {
		err = ioutil.WriteFile(path, data, 0644)
	}
	return err
}
