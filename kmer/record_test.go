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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/krotik/common/bitutil"
	"github.com/krotik/common/stringutil"
)

func TestRecordLayout(t *testing.T) {

	if l := NewRecordLayout(3, 1); l.ContainerWords != 1 || l.Size() != 13 {
		t.Error("Unexpected result:", l, l.Size())
		return
	}

	if l := NewRecordLayout(32, 2); l.ContainerWords != 1 || l.Size() != 18 {
		t.Error("Unexpected result:", l, l.Size())
		return
	}

	if l := NewRecordLayout(33, 2); l.ContainerWords != 2 || l.Size() != 26 {
		t.Error("Unexpected result:", l, l.Size())
		return
	}

	if l := NewRecordLayout(0, 0); l.ContainerWords != 1 || l.Size() != 8 {
		t.Error("Unexpected result:", l, l.Size())
		return
	}
}

func TestEncodeRecord(t *testing.T) {

	edges, _ := ParseEdgeSet("a......T")

	data, err := EncodeRecord("ACG", []uint32{1}, []EdgeSet{edges})
	if err != nil {
		t.Error(err)
		return
	}

	expected := []byte{0x06, 0, 0, 0, 0, 0, 0, 0, 0x01, 0, 0, 0, 0x88}

	if !bitutil.CompareByteArray(data, expected) {
		t.Error("Unexpected result:", bitutil.HexDump(data))
		return
	}

	if _, err := EncodeRecord("ACG", []uint32{1, 2}, []EdgeSet{edges}); !errors.Is(err, ErrEncoding) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := EncodeRecord("ANG", []uint32{1}, []EdgeSet{edges}); !errors.Is(err, ErrEncoding) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := NewRecordLayout(5, 1).Encode("ACG", []uint32{1}, []EdgeSet{edges}); !errors.Is(err, ErrEncoding) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestDecodeRecord(t *testing.T) {

	data := []byte{0x06, 0, 0, 0, 0, 0, 0, 0, 0x01, 0, 0, 0, 0x88}

	rec, err := DecodeRecord(data, 3, 1)
	if err != nil {
		t.Error(err)
		return
	}

	if res := fmt.Sprint(rec.Kmer, rec.Coverage, rec.Edges); res != "ACG [1] [a......T]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := rec.ToKmer().String(); res != "ACG 1 a......T" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := rec.String(); !strings.HasPrefix(res, "Record ACG [1] [a......T]\n====") {
		t.Error("Unexpected result:", res)
		return
	}

	if _, err := DecodeRecord(data[1:], 3, 1); !errors.Is(err, ErrCorruptRecord) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := DecodeRecord(data, 3, 2); !errors.Is(err, ErrCorruptRecord) ||
		!strings.Contains(err.Error(), "Expected 18 bytes but got 13\n====") {
		t.Error("Unexpected result:", err)
		return
	}

	// Bits above the last base must not be set

	corrupt := make([]byte, len(data))
	copy(corrupt, data)
	corrupt[0] |= 0x40

	if _, err := DecodeRecord(corrupt, 3, 1); !errors.Is(err, ErrCorruptRecord) ||
		!strings.Contains(err.Error(), "Unused k-mer bits are set\n====") {
		t.Error("Unexpected result:", err)
		return
	}

	// 32 bases fill a whole word

	full, _ := EncodeRecord(stringutil.GenerateRollingString("T", 32), []uint32{1}, []EdgeSet{0})

	if rec, err := DecodeRecord(full, 32, 1); err != nil || rec.Kmer != stringutil.GenerateRollingString("T", 32) {
		t.Error("Unexpected result:", rec, err)
		return
	}
}

func TestRecordRoundTrip(t *testing.T) {

	for _, k := range []int{3, 31, 32, 33, 63, 65, 101} {
		for _, seq := range []string{"ACGT", "TTGCA", "G", "AC"} {
			kmerString := stringutil.GenerateRollingString(seq, k)

			coverage := []uint32{0, 1, 4294967295}
			edges := []EdgeSet{0, 0xff, 0x81}

			data, err := EncodeRecord(kmerString, coverage, edges)
			if err != nil {
				t.Error(err)
				return
			}

			if len(data) != NewRecordLayout(k, 3).Size() {
				t.Error("Unexpected record size:", len(data))
				return
			}

			rec, err := DecodeRecord(data, k, 3)
			if err != nil {
				t.Error(err)
				return
			}

			if rec.Kmer != kmerString ||
				fmt.Sprint(rec.Coverage) != fmt.Sprint(coverage) ||
				fmt.Sprint(rec.Edges) != fmt.Sprint(edges) {
				t.Error("Unexpected result:", rec)
				return
			}

			l := NewRecordLayout(k, 3)
			if res := l.DecodeKmerString(data[:l.KmerBytes()]); res != kmerString {
				t.Error("Unexpected result:", res)
				return
			}
		}
	}
}

func TestPackedKmerOrdering(t *testing.T) {

	// The first bases of a long k-mer end up in the first word

	l := NewRecordLayout(33, 0)

	data, err := l.Encode("C"+stringutil.GenerateRollingString("A", 32), nil, nil)
	if err != nil {
		t.Error(err)
		return
	}

	expected := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	if !bitutil.CompareByteArray(data, expected) {
		t.Error("Unexpected result:", bitutil.HexDump(data))
		return
	}
}
