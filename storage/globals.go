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
Package storage contains the read-only access layer for graph files. A graph
file consists of a header followed by fixed-size k-mer records which are
sorted by their k-mer string. There are 2 main implementations of the Index
interface:

RandomAccess

A RandomAccess index looks up k-mer records with a binary search. The index
keeps a sparse table of the k-mer strings at the start of each search block
in memory. A lookup finds the block of a k-mer in this table and then
searches the block which is read with a single read operation. Only the
packed k-mer part of probed records is decoded. Two caches (decoded records
and probe results) can be enabled. Both caches are limited in size by the
number of entries they reference. Once a cache is full it will forget the
entries which have been requested the least.

Collection

A Collection joins several indexes with the same k-mer size. The colors of
all indexes are concatenated. A k-mer which is missing in some of the
indexes has zero coverage and no edges in the colors of those indexes.
*/
package storage

import (
	"errors"
	"fmt"

	"github.com/krotik/common/logutil"
	"github.com/krotik/kmergraph/kmer"
)

/*
DefaultSearchBlockSize is the default number of records in a search block.
*/
const DefaultSearchBlockSize = 128

/*
logger is the logger of this package.
*/
var logger = logutil.GetLogger("kmergraph.storage")

/*
Common storage related errors.
*/
var (
	ErrKmerNotFound       = errors.New("K-mer not found")
	ErrInvalidHeader      = errors.New("Invalid graph header")
	ErrIncompatibleGraphs = errors.New("Incompatible graphs")
	ErrReading            = errors.New("Could not read graph data")
	ErrNoMoreItems        = errors.New("No more items to iterate")
)

/*
IndexError is a storage related error.
*/
type IndexError struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
	Source string // Name of the graph source
}

/*
NewIndexError returns a new storage specific error.
*/
func NewIndexError(ieType error, ieDetail string, ieSource string) *IndexError {
	return &IndexError{ieType, ieDetail, ieSource}
}

/*
Error returns a string representation of the error.
*/
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s (%s - %s)", e.Type.Error(), e.Source, e.Detail)
}

/*
Unwrap returns the error type.
*/
func (e *IndexError) Unwrap() error {
	return e.Type
}

/*
Options are the options of a RandomAccess index.
*/
type Options struct {
	KmerCacheSize         int // Max number of decoded records in the record cache (0 disables the cache)
	BinarySearchCacheSize int // Max number of probe results in the probe cache (0 disables the cache)
	SearchBlockSize       int // Number of records per search block (0 for the default)
}

/*
Index is a source of k-mer records.
*/
type Index interface {

	/*
		Name returns the name of the graph source.
	*/
	Name() string

	/*
		KmerSize returns the k-mer size of all records.
	*/
	KmerSize() int

	/*
		NumColors returns the number of colors of all records.
	*/
	NumColors() int

	/*
		Lookup returns the k-mer for a given string in either orientation.
		Returns an ErrKmerNotFound error if the k-mer does not exist.
	*/
	Lookup(kmerString string) (*kmer.Kmer, error)

	/*
		Iterator returns an iterator over all records.
	*/
	Iterator() Iterator

	/*
		Close closes the underlying graph source.
	*/
	Close() error
}

/*
Iterator iterates over k-mer records.
*/
type Iterator interface {

	/*
		HasNext returns if there is a next k-mer.
	*/
	HasNext() bool

	/*
		Next returns the next k-mer. Returns nil if there are no more k-mers or
		an error occurred.
	*/
	Next() *kmer.Kmer

	/*
		Error returns the last encountered error.
	*/
	Error() error
}
