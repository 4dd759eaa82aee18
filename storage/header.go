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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/krotik/kmergraph/kmer"
)

/*
Header constants
*/
const (
	MagicWord     = "CORTEX" // Magic word at the start and end of a header
	Version       = 6        // Supported file format version
	SizeErrorRate = 16       // Size of the error rate field of a color
	MaxNameLength = 1 << 16  // Max length of sample and graph names
	MaxColors     = 1 << 16  // Max number of colors
)

/*
CleaningInfo describes the cleaning steps applied to a color.
*/
type CleaningInfo struct {
	TipClipping              bool   // Tips were clipped
	RemovedLowCovSupernodes  bool   // Low coverage supernodes were removed
	RemovedLowCovKmers       bool   // Low coverage k-mers were removed
	CleanedAgainstGraph      bool   // Color was cleaned against another graph
	LowCovSupernodeThreshold uint32 // Threshold for low coverage supernodes
	LowCovKmerThreshold      uint32 // Threshold for low coverage k-mers
	GraphName                string // Name of the graph used for cleaning
}

/*
ColorInfo holds the header information of a single color.
*/
type ColorInfo struct {
	MeanReadLength uint32              // Mean read length
	TotalSequence  uint64              // Total sequence length
	SampleName     string              // Name of the sample
	ErrorRate      [SizeErrorRate]byte // Sequencing error rate (extended precision float)
	Cleaning       CleaningInfo        // Cleaning information
}

/*
Header is the header of a graph file.
*/
type Header struct {
	Version        uint32      // File format version
	KmerSize       uint32      // Number of bases of each k-mer
	ContainerWords uint32      // Number of 64 bit words of each packed k-mer
	Colors         []ColorInfo // Color information
}

/*
NewHeader creates a new header for a given k-mer size and number of colors.
*/
func NewHeader(kmerSize int, numColors int) *Header {
	l := kmer.NewRecordLayout(kmerSize, numColors)

	return &Header{Version, uint32(kmerSize), uint32(l.ContainerWords),
		make([]ColorInfo, numColors)}
}

/*
NumColors returns the number of colors.
*/
func (h *Header) NumColors() int {
	return len(h.Colors)
}

/*
Layout returns the record layout described by this header.
*/
func (h *Header) Layout() kmer.RecordLayout {
	return kmer.RecordLayout{
		KmerSize:       int(h.KmerSize),
		ContainerWords: int(h.ContainerWords),
		NumColors:      len(h.Colors),
	}
}

/*
String returns a string representation of this header.
*/
func (h *Header) String() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("version: %v\nkmer size: %v\ncontainer words: %v\ncolors: %v\n",
		h.Version, h.KmerSize, h.ContainerWords, len(h.Colors)))

	for i, c := range h.Colors {
		buf.WriteString(fmt.Sprintf("color %v: %q mean read length: %v total sequence: %v\n",
			i, c.SampleName, c.MeanReadLength, c.TotalSequence))
	}

	return buf.String()
}

/*
headerReader reads header fields. The first error stops all further reads.
*/
type headerReader struct {
	r   io.Reader // Underlying reader
	n   int64     // Number of consumed bytes
	err error     // First encountered error
}

/*
read fills a given buffer.
*/
func (hr *headerReader) read(buf []byte) {
	if hr.err == nil {
		var n int
		n, hr.err = io.ReadFull(hr.r, buf)
		hr.n += int64(n)
	}
}

/*
uint32 reads an unsigned 32 bit value.
*/
func (hr *headerReader) uint32() uint32 {
	var buf [4]byte
	hr.read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

/*
uint64 reads an unsigned 64 bit value.
*/
func (hr *headerReader) uint64() uint64 {
	var buf [8]byte
	hr.read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

/*
bool reads a boolean byte.
*/
func (hr *headerReader) bool() bool {
	var buf [1]byte
	hr.read(buf[:])
	return buf[0] != 0
}

/*
string reads a string which is prefixed by its length.
*/
func (hr *headerReader) string() string {
	l := hr.uint32()

	if hr.err == nil && l > MaxNameLength {
		hr.err = fmt.Errorf("Name length %v exceeds limit", l)
	}

	if hr.err != nil {
		return ""
	}

	buf := make([]byte, l)
	hr.read(buf)

	return string(buf)
}

/*
magic reads and checks the magic word.
*/
func (hr *headerReader) magic() {
	buf := make([]byte, len(MagicWord))
	hr.read(buf)

	if hr.err == nil && string(buf) != MagicWord {
		hr.err = fmt.Errorf("Unexpected magic word: %q", buf)
	}
}

/*
ReadHeader reads a graph file header. Returns the header and the number of
consumed bytes which is the offset of the first record.
*/
func ReadHeader(r io.Reader) (*Header, int64, error) {
	hr := &headerReader{r: r}
	h := &Header{}

	hr.magic()

	h.Version = hr.uint32()
	if hr.err == nil && h.Version != Version {
		hr.err = fmt.Errorf("Unsupported version: %v", h.Version)
	}

	h.KmerSize = hr.uint32()
	if hr.err == nil && h.KmerSize == 0 {
		hr.err = fmt.Errorf("Invalid kmer size: %v", h.KmerSize)
	}

	h.ContainerWords = hr.uint32()
	if hr.err == nil && (h.ContainerWords == 0 ||
		uint64(h.ContainerWords)*kmer.BasesPerWord < uint64(h.KmerSize)) {
		hr.err = fmt.Errorf("Invalid number of container words %v for kmer size %v",
			h.ContainerWords, h.KmerSize)
	}

	numColors := hr.uint32()
	if hr.err == nil && numColors > MaxColors {
		hr.err = fmt.Errorf("Invalid number of colors: %v", numColors)
	}

	if hr.err == nil {
		h.Colors = make([]ColorInfo, numColors)
	}

	for i := range h.Colors {
		h.Colors[i].MeanReadLength = hr.uint32()
	}

	for i := range h.Colors {
		h.Colors[i].TotalSequence = hr.uint64()
	}

	for i := range h.Colors {
		h.Colors[i].SampleName = hr.string()
	}

	for i := range h.Colors {
		hr.read(h.Colors[i].ErrorRate[:])
	}

	for i := range h.Colors {
		c := &h.Colors[i].Cleaning

		c.TipClipping = hr.bool()
		c.RemovedLowCovSupernodes = hr.bool()
		c.RemovedLowCovKmers = hr.bool()
		c.CleanedAgainstGraph = hr.bool()
		c.LowCovSupernodeThreshold = hr.uint32()
		c.LowCovKmerThreshold = hr.uint32()
		c.GraphName = hr.string()
	}

	hr.magic()

	if hr.err != nil {
		return nil, hr.n, NewIndexError(ErrInvalidHeader, hr.err.Error(), "header")
	}

	return h, hr.n, nil
}

/*
WriteTo writes this header to a given writer.
*/
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	buf := new(bytes.Buffer)

	le := func(v interface{}) {
		binary.Write(buf, binary.LittleEndian, v)
	}

	str := func(s string) {
		le(uint32(len(s)))
		buf.WriteString(s)
	}

	bl := func(b bool) {
		if b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}

	buf.WriteString(MagicWord)
	le(h.Version)
	le(h.KmerSize)
	le(h.ContainerWords)
	le(uint32(len(h.Colors)))

	for _, c := range h.Colors {
		le(c.MeanReadLength)
	}

	for _, c := range h.Colors {
		le(c.TotalSequence)
	}

	for _, c := range h.Colors {
		str(c.SampleName)
	}

	for _, c := range h.Colors {
		buf.Write(c.ErrorRate[:])
	}

	for _, c := range h.Colors {
		bl(c.Cleaning.TipClipping)
		bl(c.Cleaning.RemovedLowCovSupernodes)
		bl(c.Cleaning.RemovedLowCovKmers)
		bl(c.Cleaning.CleanedAgainstGraph)
		le(c.Cleaning.LowCovSupernodeThreshold)
		le(c.Cleaning.LowCovKmerThreshold)
		str(c.Cleaning.GraphName)
	}

	buf.WriteString(MagicWord)

	n, err := w.Write(buf.Bytes())

	return int64(n), err
}
