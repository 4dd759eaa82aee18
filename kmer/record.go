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
	"encoding/binary"
	"fmt"

	"github.com/krotik/common/bitutil"
)

/*
Size constants for the binary record layout
*/
const (
	SizeWord     = 8  // Size of a packed k-mer word
	SizeCoverage = 4  // Size of a coverage value
	SizeEdges    = 1  // Size of an edge set
	BasesPerWord = 32 // Number of bases in a packed k-mer word
)

/*
baseCode maps a base to its 2 bit code (A=00, C=01, G=10, T=11).
*/
var baseCode = map[byte]uint64{'A': 0, 'C': 1, 'G': 2, 'T': 3}

/*
RecordLayout describes the binary layout of records for a given k-mer size
and number of colors.
*/
type RecordLayout struct {
	KmerSize       int // Number of bases of each k-mer
	ContainerWords int // Number of 64 bit words of a packed k-mer
	NumColors      int // Number of colors
}

/*
NewRecordLayout creates a record layout for a given k-mer size and number
of colors.
*/
func NewRecordLayout(kmerSize int, numColors int) RecordLayout {
	words := (kmerSize + BasesPerWord - 1) / BasesPerWord
	if words < 1 {
		words = 1
	}
	return RecordLayout{kmerSize, words, numColors}
}

/*
KmerBytes returns the number of bytes of the packed k-mer.
*/
func (l RecordLayout) KmerBytes() int {
	return l.ContainerWords * SizeWord
}

/*
Size returns the number of bytes of a record.
*/
func (l RecordLayout) Size() int {
	return l.KmerBytes() + l.NumColors*SizeCoverage + l.NumColors*SizeEdges
}

/*
Record is a decoded binary k-mer record.
*/
type Record struct {
	Kmer     string    // K-mer string as stored
	Coverage []uint32  // Coverage per color
	Edges    []EdgeSet // Edges per color
	Data     []byte    // Raw record data
}

/*
ToKmer converts this record into a k-mer which is not owned by any arena.
*/
func (r *Record) ToKmer() *Kmer {
	return New(r.Kmer, r.Coverage, r.Edges)
}

/*
String returns a hex dump of this record.
*/
func (r *Record) String() string {
	return fmt.Sprintf("Record %v %v %v\n%v", r.Kmer, r.Coverage, r.Edges,
		bitutil.HexDump(r.Data))
}

/*
EncodeRecord encodes a k-mer string with its coverage and edges into a
binary record.
*/
func EncodeRecord(kmerString string, coverage []uint32, edges []EdgeSet) ([]byte, error) {
	return NewRecordLayout(len(kmerString), len(coverage)).Encode(kmerString, coverage, edges)
}

/*
Encode encodes a k-mer string with its coverage and edges into a binary
record of this layout.
*/
func (l RecordLayout) Encode(kmerString string, coverage []uint32, edges []EdgeSet) ([]byte, error) {

	if len(coverage) != len(edges) {
		return nil, newError(ErrEncoding, fmt.Sprintf(
			"Got %v coverage values but %v edge sets", len(coverage), len(edges)))
	}

	if len(coverage) != l.NumColors || len(kmerString) != l.KmerSize {
		return nil, newError(ErrEncoding, fmt.Sprintf(
			"Record %v with %v colors does not fit layout (kmer size: %v colors: %v)",
			kmerString, len(coverage), l.KmerSize, l.NumColors))
	}

	data := make([]byte, l.Size())

	if err := l.packKmer(kmerString, data[:l.KmerBytes()]); err != nil {
		return nil, err
	}

	pos := l.KmerBytes()

	for _, c := range coverage {
		binary.LittleEndian.PutUint32(data[pos:], c)
		pos += SizeCoverage
	}

	for _, e := range edges {
		data[pos] = byte(e)
		pos += SizeEdges
	}

	return data, nil
}

/*
packKmer packs a k-mer string into 64 bit words. The bases are packed
starting from the last base of the string. The word holding the first bases
of the string is written first.
*/
func (l RecordLayout) packKmer(kmerString string, data []byte) error {
	words := make([]uint64, l.ContainerWords)

	for i := 0; i < len(kmerString); i++ {
		code, ok := baseCode[kmerString[i]]

		if !ok {
			return newError(ErrEncoding, fmt.Sprintf(
				"Invalid base %q in k-mer %v", kmerString[i], kmerString))
		}

		r := len(kmerString) - 1 - i
		w := l.ContainerWords - 1 - r/BasesPerWord

		words[w] |= code << uint((r%BasesPerWord)*2)
	}

	for i, w := range words {
		binary.LittleEndian.PutUint64(data[i*SizeWord:], w)
	}

	return nil
}

/*
DecodeRecord decodes a binary record for a given k-mer size and number of
colors.
*/
func DecodeRecord(data []byte, kmerSize int, numColors int) (*Record, error) {
	return NewRecordLayout(kmerSize, numColors).Decode(data)
}

/*
Decode decodes a binary record of this layout.
*/
func (l RecordLayout) Decode(data []byte) (*Record, error) {

	if len(data) != l.Size() {
		return nil, newError(ErrCorruptRecord, fmt.Sprintf(
			"Expected %v bytes but got %v\n%v", l.Size(), len(data), bitutil.HexDump(data)))
	}

	if !l.hasZeroPadding(data) {
		return nil, newError(ErrCorruptRecord, fmt.Sprintf(
			"Unused k-mer bits are set\n%v", bitutil.HexDump(data)))
	}

	rec := &Record{
		Kmer:     l.DecodeKmerString(data),
		Coverage: make([]uint32, l.NumColors),
		Edges:    make([]EdgeSet, l.NumColors),
		Data:     data,
	}

	pos := l.KmerBytes()

	for i := range rec.Coverage {
		rec.Coverage[i] = binary.LittleEndian.Uint32(data[pos:])
		pos += SizeCoverage
	}

	for i := range rec.Edges {
		rec.Edges[i] = EdgeSet(data[pos])
		pos += SizeEdges
	}

	return rec, nil
}

/*
hasZeroPadding checks that the bits of the packed k-mer words which hold no
base are all zero.
*/
func (l RecordLayout) hasZeroPadding(data []byte) bool {
	top := l.ContainerWords - 1 - (l.KmerSize-1)/BasesPerWord
	used := uint(((l.KmerSize-1)%BasesPerWord + 1) * 2)

	for w := 0; w <= top; w++ {
		word := binary.LittleEndian.Uint64(data[w*SizeWord:])

		if w < top && word != 0 {
			return false
		} else if w == top && used < 64 && word>>used != 0 {
			return false
		}
	}

	return true
}

/*
DecodeKmerString decodes only the packed k-mer at the beginning of a given
record.
*/
func (l RecordLayout) DecodeKmerString(data []byte) string {
	words := make([]uint64, l.ContainerWords)

	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[i*SizeWord:])
	}

	buf := make([]byte, l.KmerSize)

	for i := range buf {
		r := l.KmerSize - 1 - i
		w := l.ContainerWords - 1 - r/BasesPerWord

		buf[i] = Letters[(words[w]>>uint((r%BasesPerWord)*2))&3]
	}

	return string(buf)
}
