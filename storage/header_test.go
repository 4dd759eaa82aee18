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
	"errors"
	"strings"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {

	h := NewHeader(33, 2)

	h.Colors[0].SampleName = "sample0"
	h.Colors[0].MeanReadLength = 100
	h.Colors[0].TotalSequence = 12345678901
	h.Colors[0].ErrorRate[15] = 0x3f
	h.Colors[1].Cleaning.TipClipping = true
	h.Colors[1].Cleaning.LowCovKmerThreshold = 7
	h.Colors[1].Cleaning.GraphName = "cleaned"

	var buf bytes.Buffer

	n, err := h.WriteTo(&buf)
	if err != nil {
		t.Error(err)
		return
	}

	// 6 magic + 16 fixed + per color 4 + 8 + (4 + name) + 16 + (4 + 8 + 4 + name) + 6 magic

	expected := int64(6 + 16 + 2*(4+8+4+16+4+8+4) + len("sample0") + len("cleaned") + 6)

	if n != expected || int64(buf.Len()) != expected {
		t.Error("Unexpected header size:", n, buf.Len(), expected)
		return
	}

	buf.WriteString("body")

	h2, offset, err := ReadHeader(&buf)
	if err != nil {
		t.Error(err)
		return
	}

	if offset != expected {
		t.Error("Unexpected offset:", offset)
		return
	}

	if h2.String() != h.String() || h2.Colors[1].Cleaning != h.Colors[1].Cleaning ||
		h2.Colors[0].ErrorRate != h.Colors[0].ErrorRate || h2.ContainerWords != 2 {
		t.Error("Unexpected result:", h2)
		return
	}

	if res := h2.String(); !strings.Contains(res, `color 0: "sample0" mean read length: 100 total sequence: 12345678901`) {
		t.Error("Unexpected result:", res)
		return
	}

	if l := h2.Layout(); l.KmerSize != 33 || l.ContainerWords != 2 || l.NumColors != 2 {
		t.Error("Unexpected layout:", l)
		return
	}
}

func TestHeaderErrors(t *testing.T) {

	writeHeader := func(modify func(h *Header)) []byte {
		h := NewHeader(3, 1)
		if modify != nil {
			modify(h)
		}
		var buf bytes.Buffer
		h.WriteTo(&buf)
		return buf.Bytes()
	}

	checkError := func(data []byte, msg string) bool {
		_, _, err := ReadHeader(bytes.NewReader(data))

		if !errors.Is(err, ErrInvalidHeader) || !strings.Contains(err.Error(), msg) {
			t.Error("Unexpected result:", err)
			return false
		}

		return true
	}

	data := writeHeader(nil)

	if !checkError(data[:len(data)-1], "unexpected EOF") {
		return
	}

	if !checkError(append([]byte("XORTEX"), data[6:]...), `Unexpected magic word: "XORTEX"`) {
		return
	}

	if !checkError(writeHeader(func(h *Header) { h.Version = 7 }), "Unsupported version: 7") {
		return
	}

	if !checkError(writeHeader(func(h *Header) { h.KmerSize = 0 }), "Invalid kmer size: 0") {
		return
	}

	if !checkError(writeHeader(func(h *Header) { h.KmerSize = 33 }),
		"Invalid number of container words 1 for kmer size 33") {
		return
	}

	data = writeHeader(nil)
	binary.LittleEndian.PutUint32(data[18:], 1<<20)

	if !checkError(data, "Invalid number of colors") {
		return
	}

	data = writeHeader(func(h *Header) { h.Colors[0].SampleName = "x" })

	// Sample name length is after magic, 4 fixed fields, mean read length and total sequence

	binary.LittleEndian.PutUint32(data[6+16+4+8:], MaxNameLength+1)

	if !checkError(data, "Name length 65537 exceeds limit") {
		return
	}

	data = writeHeader(nil)
	copy(data[len(data)-6:], "CORTEZ")

	if !checkError(data, "Unexpected magic word") {
		return
	}

	if _, err := Open(bytes.NewReader(data), int64(len(data)), Options{}); !errors.Is(err, ErrInvalidHeader) {
		t.Error("Unexpected result:", err)
		return
	}
}
