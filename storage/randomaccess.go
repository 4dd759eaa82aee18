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
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/krotik/common/pools"
	"github.com/krotik/common/stringutil"
	"github.com/krotik/kmergraph/kmer"
)

/*
RandomAccess is an index over the sorted records of a graph file.
*/
type RandomAccess struct {
	name       string            // Name of the graph source
	reader     io.ReaderAt       // Reader of the graph data
	closer     io.Closer         // Closer of the graph data (may be nil)
	header     *Header           // Graph header
	layout     kmer.RecordLayout // Record layout
	recordSize int64             // Size of a single record
	bodyOffset int64             // Offset of the first record
	numRecords int64             // Number of records
	blockSize  int64             // Number of records in a search block
	fences     []string          // K-mer strings of the first record of each search block
	records    *recordCache      // Cache of decoded records
	probes     *recordCache      // Cache of decoded probe k-mer strings
	blockPool  *sync.Pool        // Pool of search block buffers
}

/*
OpenFile opens a graph file.
*/
func OpenFile(path string, opts Options) (*RandomAccess, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewIndexError(ErrReading, err.Error(), path)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, NewIndexError(ErrReading, err.Error(), path)
	}

	ra, err := Open(f, fi.Size(), opts)
	if err != nil {
		f.Close()
		return nil, err
	}

	ra.name = path
	ra.closer = f

	return ra, nil
}

/*
Open opens graph data of a given size. The data must start with a header.
*/
func Open(r io.ReaderAt, size int64, opts Options) (*RandomAccess, error) {

	h, offset, err := ReadHeader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, err
	}

	recordSize := int64(h.Layout().Size())
	bodySize := size - offset

	if bodySize%recordSize != 0 {
		return nil, NewIndexError(ErrInvalidHeader, fmt.Sprintf(
			"Body size %v is not a multiple of the record size %v", bodySize, recordSize),
			"header")
	}

	return NewRandomAccess(r, h, offset, bodySize/recordSize, opts)
}

/*
NewRandomAccess creates a new index over records which start at a given
offset. The header describes the records.
*/
func NewRandomAccess(r io.ReaderAt, h *Header, bodyOffset int64, numRecords int64,
	opts Options) (*RandomAccess, error) {

	blockSize := int64(opts.SearchBlockSize)
	if blockSize <= 0 {
		blockSize = DefaultSearchBlockSize
	}

	layout := h.Layout()
	recordSize := int64(layout.Size())

	ra := &RandomAccess{
		name:       "graph",
		reader:     r,
		header:     h,
		layout:     layout,
		recordSize: recordSize,
		bodyOffset: bodyOffset,
		numRecords: numRecords,
		blockSize:  blockSize,
		records:    newRecordCache(opts.KmerCacheSize),
		probes:     newRecordCache(opts.BinarySearchCacheSize),
		blockPool:  pools.NewByteSlicePool(int(blockSize * recordSize)),
	}

	if err := ra.loadFences(); err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("Opened %v with %v record%v in %v search block%v",
		ra.name, numRecords, stringutil.Plural(int(numRecords)),
		len(ra.fences), stringutil.Plural(len(ra.fences))))

	return ra, nil
}

/*
loadFences reads the k-mer string of the first record of each search block.
*/
func (ra *RandomAccess) loadFences() error {
	numBlocks := (ra.numRecords + ra.blockSize - 1) / ra.blockSize

	ra.fences = make([]string, numBlocks)
	buf := make([]byte, ra.layout.KmerBytes())

	for i := range ra.fences {
		if err := ra.readAt(buf, int64(i)*ra.blockSize); err != nil {
			return err
		}
		ra.fences[i] = ra.layout.DecodeKmerString(buf)
	}

	return nil
}

/*
readAt fills a given buffer with data starting at a given record.
*/
func (ra *RandomAccess) readAt(buf []byte, idx int64) error {
	n, err := ra.reader.ReadAt(buf, ra.bodyOffset+idx*ra.recordSize)

	if n == len(buf) {
		return nil
	}

	if err == nil {
		err = io.ErrUnexpectedEOF
	}

	return NewIndexError(ErrReading, fmt.Sprintf("Record %v: %v", idx, err), ra.name)
}

/*
Name returns the name of the graph source.
*/
func (ra *RandomAccess) Name() string {
	return ra.name
}

/*
Header returns the graph header.
*/
func (ra *RandomAccess) Header() *Header {
	return ra.header
}

/*
KmerSize returns the k-mer size of all records.
*/
func (ra *RandomAccess) KmerSize() int {
	return int(ra.header.KmerSize)
}

/*
NumColors returns the number of colors of all records.
*/
func (ra *RandomAccess) NumColors() int {
	return ra.header.NumColors()
}

/*
NumRecords returns the number of records.
*/
func (ra *RandomAccess) NumRecords() int64 {
	return ra.numRecords
}

/*
Lookup returns the k-mer for a given string in either orientation. Repeated
lookups return the same object while the record is held in the record cache.
*/
func (ra *RandomAccess) Lookup(kmerString string) (*kmer.Kmer, error) {

	if len(kmerString) != ra.KmerSize() {
		return nil, NewIndexError(ErrKmerNotFound, fmt.Sprintf(
			"%v does not have the k-mer size %v", kmerString, ra.KmerSize()), ra.name)
	}

	canonical := kmer.Canonical(kmerString)

	s := &blockSearch{ra: ra}
	defer s.release()

	idx, err := s.find(canonical)
	if err != nil {
		return nil, err
	}

	if idx < 0 {
		return nil, NewIndexError(ErrKmerNotFound, canonical, ra.name)
	}

	return ra.record(idx, s)
}

/*
KmerForString returns the k-mer for a given string. The record is addressed
by the canonical form of the string.
*/
func (ra *RandomAccess) KmerForString(kmerString string) (*kmer.Kmer, error) {
	return ra.Lookup(kmerString)
}

/*
record returns the decoded record at a given index. The data of a given
search is used if its block has been read.
*/
func (ra *RandomAccess) record(idx int64, s *blockSearch) (*kmer.Kmer, error) {

	if o, ok := ra.records.get(idx); ok {
		return o.(*kmer.Kmer), nil
	}

	var data []byte

	if s != nil && s.buf != nil {
		off := (idx - s.start) * ra.recordSize
		data = s.buf[off : off+ra.recordSize]
	} else {
		data = make([]byte, ra.recordSize)

		if err := ra.readAt(data, idx); err != nil {
			return nil, err
		}
	}

	rec, err := ra.layout.Decode(data)
	if err != nil {
		return nil, NewIndexError(ErrReading, err.Error(), ra.name)
	}

	k := rec.ToKmer()
	ra.records.put(idx, k)

	return k, nil
}

/*
Iterator returns an iterator over all records in file order.
*/
func (ra *RandomAccess) Iterator() Iterator {
	return NewKmerIterator(ra)
}

/*
Close closes the underlying graph source and clears the caches.
*/
func (ra *RandomAccess) Close() error {
	ra.records.clear()
	ra.probes.clear()

	if ra.closer != nil {
		if err := ra.closer.Close(); err != nil {
			return NewIndexError(ErrReading, err.Error(), ra.name)
		}
		ra.closer = nil
	}

	return nil
}

/*
blockSearch is a binary search within a single search block. The block is
read on the first probe which is not found in the probe cache.
*/
type blockSearch struct {
	ra     *RandomAccess // Searched index
	start  int64         // First record of the block
	end    int64         // Record after the last record of the block
	buf    []byte        // Block data (nil if the block was not read)
	pooled []byte        // Pooled buffer of the block data
}

/*
find returns the index of the record of a given canonical k-mer string or
-1 if there is no such record.
*/
func (s *blockSearch) find(key string) (int64, error) {
	ra := s.ra

	j := sort.Search(len(ra.fences), func(i int) bool {
		return ra.fences[i] > key
	}) - 1

	if j < 0 {
		return -1, nil
	}

	s.start = int64(j) * ra.blockSize
	s.end = s.start + ra.blockSize

	if s.end > ra.numRecords {
		s.end = ra.numRecords
	}

	if ra.fences[j] == key {
		return s.start, nil
	}

	lo, hi := s.start+1, s.end

	for lo < hi {
		mid := lo + (hi-lo)/2

		probe, err := s.probe(mid)
		if err != nil {
			return -1, err
		}

		if probe == key {
			return mid, nil
		} else if probe < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return -1, nil
}

/*
probe returns the k-mer string of a given record in the searched block.
*/
func (s *blockSearch) probe(idx int64) (string, error) {
	ra := s.ra

	if o, ok := ra.probes.get(idx); ok {
		return o.(string), nil
	}

	if s.buf == nil {
		s.pooled = ra.blockPool.Get().([]byte)
		buf := s.pooled[:(s.end-s.start)*ra.recordSize]

		if err := ra.readAt(buf, s.start); err != nil {
			return "", err
		}

		s.buf = buf
	}

	off := (idx - s.start) * ra.recordSize
	probe := ra.layout.DecodeKmerString(s.buf[off : off+ra.recordSize])

	ra.probes.put(idx, probe)

	return probe, nil
}

/*
release returns the block buffer to the pool.
*/
func (s *blockSearch) release() {
	if s.pooled != nil {
		s.ra.blockPool.Put(s.pooled)
		s.pooled = nil
		s.buf = nil
	}
}
