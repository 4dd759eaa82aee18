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
	"fmt"
	"strings"
)

/*
complement maps a base (upper or lower case) to its complement. Unknown
characters map to 0.
*/
var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['a'] = 't'
	complement['c'] = 'g'
	complement['g'] = 'c'
	complement['t'] = 'a'
}

/*
Complement returns the complement of a given base. The case of the base is
kept. Characters which are not bases are returned unchanged.
*/
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return b
}

/*
ReverseComplement returns the reverse complement of a given sequence.
*/
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)

	for i := 0; i < n; i++ {
		out[i] = Complement(seq[n-1-i])
	}

	return string(out)
}

/*
Canonical returns the canonical form of a k-mer string which is the
lexicographically smaller of the string and its reverse complement.
*/
func Canonical(kmerString string) string {
	if rc := ReverseComplement(kmerString); rc < kmerString {
		return rc
	}
	return kmerString
}

/*
IsCanonical checks if a given k-mer string is in its canonical form.
*/
func IsCanonical(kmerString string) bool {
	return kmerString <= ReverseComplement(kmerString)
}

/*
Validate checks that a given string can be used as a k-mer. A k-mer must
have an odd length of at least 3 and may only contain the letters A, C, G
and T.
*/
func Validate(kmerString string) error {
	l := len(kmerString)

	if l < 3 {
		return newError(ErrInvalidKmer,
			fmt.Sprintf("K-mer %q must be at least 3 bases long", kmerString))
	}

	if l%2 == 0 {
		return newError(ErrInvalidKmer,
			fmt.Sprintf("K-mer %q must have an odd length", kmerString))
	}

	if i := strings.IndexFunc(kmerString, func(r rune) bool {
		return !strings.ContainsRune(Letters, r)
	}); i != -1 {
		return newError(ErrInvalidKmer,
			fmt.Sprintf("K-mer %q contains invalid base at position %v", kmerString, i))
	}

	return nil
}

/*
Kmers returns all overlapping k-mer strings of a given sequence in sequence
order. Returns nil if the sequence is shorter than k.
*/
func Kmers(seq string, k int) []string {
	if k <= 0 || len(seq) < k {
		return nil
	}

	ret := make([]string, 0, len(seq)-k+1)

	for i := 0; i+k <= len(seq); i++ {
		ret = append(ret, seq[i:i+k])
	}

	return ret
}
