/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/kmergraph/kmer"
)

/*
Collection joins several indexes with the same k-mer size.
*/
type Collection struct {
	indexes   []Index // Joined indexes
	kmerSize  int     // K-mer size of all indexes
	numColors int     // Sum of the colors of all indexes
}

/*
NewCollection creates a new collection of given indexes.
*/
func NewCollection(indexes ...Index) (*Collection, error) {

	if len(indexes) == 0 {
		return nil, NewIndexError(ErrIncompatibleGraphs, "No graphs given", "collection")
	}

	c := &Collection{indexes, indexes[0].KmerSize(), 0}

	for _, idx := range indexes {

		if idx.KmerSize() != c.kmerSize {
			return nil, NewIndexError(ErrIncompatibleGraphs, fmt.Sprintf(
				"K-mer size %v of %v does not match k-mer size %v",
				idx.KmerSize(), idx.Name(), c.kmerSize), "collection")
		}

		c.numColors += idx.NumColors()
	}

	return c, nil
}

/*
Name returns the names of all joined indexes.
*/
func (c *Collection) Name() string {
	names := make([]string, len(c.indexes))

	for i, idx := range c.indexes {
		names[i] = idx.Name()
	}

	return strings.Join(names, ",")
}

/*
KmerSize returns the k-mer size of all records.
*/
func (c *Collection) KmerSize() int {
	return c.kmerSize
}

/*
NumColors returns the sum of the colors of all joined indexes.
*/
func (c *Collection) NumColors() int {
	return c.numColors
}

/*
Lookup returns a k-mer which holds the colors of all joined indexes. Returns
an ErrKmerNotFound error only if none of the indexes has the k-mer.
*/
func (c *Collection) Lookup(kmerString string) (*kmer.Kmer, error) {
	found := false

	ret := kmer.New(kmer.Canonical(kmerString),
		make([]uint32, 0, c.numColors), make([]kmer.EdgeSet, 0, c.numColors))

	for _, idx := range c.indexes {
		k, err := idx.Lookup(kmerString)

		if errors.Is(err, ErrKmerNotFound) {
			ret.Coverage = append(ret.Coverage, make([]uint32, idx.NumColors())...)
			ret.Edges = append(ret.Edges, make([]kmer.EdgeSet, idx.NumColors())...)
			continue

		} else if err != nil {
			return nil, err
		}

		found = true
		ret.Coverage = append(ret.Coverage, k.Coverage...)
		ret.Edges = append(ret.Edges, k.Edges...)
	}

	if !found {
		return nil, NewIndexError(ErrKmerNotFound, ret.Kmer, c.Name())
	}

	return ret, nil
}

/*
Iterator returns an iterator which merges the sorted records of all joined
indexes.
*/
func (c *Collection) Iterator() Iterator {
	its := make([]Iterator, len(c.indexes))
	heads := make([]*kmer.Kmer, len(c.indexes))

	for i, idx := range c.indexes {
		its[i] = idx.Iterator()
		heads[i] = its[i].Next()
	}

	it := &CollectionIterator{c, its, heads, nil}
	it.checkErrors()

	return it
}

/*
Close closes all joined indexes.
*/
func (c *Collection) Close() error {
	errs := errorutil.NewCompositeError()

	for _, idx := range c.indexes {
		if err := idx.Close(); err != nil {
			errs.Add(err)
		}
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

/*
CollectionIterator iterates over the records of a collection in sorted
order. Records which are present in several indexes are merged.
*/
type CollectionIterator struct {
	c         *Collection  // Iterated collection
	its       []Iterator   // Iterators of all joined indexes
	heads     []*kmer.Kmer // Current record of each iterator (nil if exhausted)
	LastError error        // Last encountered error
}

/*
checkErrors checks the joined iterators for errors.
*/
func (it *CollectionIterator) checkErrors() {
	for _, i := range it.its {
		if err := i.Error(); err != nil && it.LastError == nil {
			it.LastError = err
		}
	}
}

/*
HasNext returns if there is a next k-mer.
*/
func (it *CollectionIterator) HasNext() bool {
	if it.LastError != nil {
		return false
	}

	for _, h := range it.heads {
		if h != nil {
			return true
		}
	}

	return false
}

/*
Next returns the next k-mer. Sets the LastError attribute if an error occurs.
*/
func (it *CollectionIterator) Next() *kmer.Kmer {

	if !it.HasNext() {
		return nil
	}

	// Find the smallest k-mer string of all heads

	next := ""

	for _, h := range it.heads {
		if h != nil && (next == "" || h.Kmer < next) {
			next = h.Kmer
		}
	}

	ret := kmer.New(next,
		make([]uint32, 0, it.c.numColors), make([]kmer.EdgeSet, 0, it.c.numColors))

	// Merge all heads with this k-mer string and advance their iterators

	for i, h := range it.heads {
		numColors := it.c.indexes[i].NumColors()

		if h == nil || h.Kmer != next {
			ret.Coverage = append(ret.Coverage, make([]uint32, numColors)...)
			ret.Edges = append(ret.Edges, make([]kmer.EdgeSet, numColors)...)
			continue
		}

		ret.Coverage = append(ret.Coverage, h.Coverage...)
		ret.Edges = append(ret.Edges, h.Edges...)

		it.heads[i] = it.its[i].Next()
	}

	it.checkErrors()

	return ret
}

/*
Error returns the last encountered error.
*/
func (it *CollectionIterator) Error() error {
	return it.LastError
}
