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
	"github.com/krotik/kmergraph/kmer"
)

/*
KmerIterator iterates over all records of a RandomAccess index in file
order. The records are read one search block at a time. The iterator does
not use the caches of the index. To restart an iteration create a new
iterator.
*/
type KmerIterator struct {
	ra        *RandomAccess // Index to iterate
	next      int64         // Index of the next record
	buf       []byte        // Buffer of read records
	bufStart  int64         // First record in the buffer
	bufEnd    int64         // Record after the last record in the buffer
	LastError error         // Last encountered error
}

/*
NewKmerIterator creates a new iterator over all records of a given index.
*/
func NewKmerIterator(ra *RandomAccess) *KmerIterator {
	return &KmerIterator{ra, 0, make([]byte, ra.blockSize*ra.recordSize), 0, 0, nil}
}

/*
HasNext returns if there is a next k-mer.
*/
func (it *KmerIterator) HasNext() bool {
	return it.LastError == nil && it.next < it.ra.numRecords
}

/*
Next returns the next k-mer. Sets the LastError attribute if an error occurs.
*/
func (it *KmerIterator) Next() *kmer.Kmer {

	if !it.HasNext() {
		return nil
	}

	if it.next >= it.bufEnd {

		// Fill the buffer with the next block of records

		end := it.next + it.ra.blockSize
		if end > it.ra.numRecords {
			end = it.ra.numRecords
		}

		buf := it.buf[:(end-it.next)*it.ra.recordSize]

		if err := it.ra.readAt(buf, it.next); err != nil {
			it.LastError = err
			return nil
		}

		it.bufStart = it.next
		it.bufEnd = end
	}

	off := (it.next - it.bufStart) * it.ra.recordSize

	rec, err := it.ra.layout.Decode(it.buf[off : off+it.ra.recordSize])
	if err != nil {
		it.LastError = NewIndexError(ErrReading, err.Error(), it.ra.name)
		return nil
	}

	it.next++

	return rec.ToKmer()
}

/*
Error returns the last encountered error.
*/
func (it *KmerIterator) Error() error {
	return it.LastError
}
