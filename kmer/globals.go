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
Package kmer contains the in-memory model of a de Bruijn graph node.

Kmer

A Kmer holds a canonical k-mer string (the lexicographically smaller of a
string and its reverse complement) together with per-color coverage counts
and per-color edge sets.

EdgeSet

An EdgeSet stores 8 flags per color. Outgoing flags (written upper case in
textual form) name the base which extends the k-mer to the right, incoming
flags (written lower case) name the base which extends it to the left. The
flags are relative to the canonical orientation of the k-mer. The textual
form is the 8 character string "acgtACGT" where unset flags are written as
a dot.

Builder

A Builder is an arena of Kmer objects which guarantees that there is exactly
one object per canonical string. Connecting two k-mers checks this identity.

Record

A Record is the binary on-disk representation of a k-mer: the packed base
sequence (2 bits per base in 64 bit little endian words), one 32 bit coverage
value per color and one edge byte per color.
*/
package kmer

import (
	"errors"
	"fmt"
)

/*
Letters is the alphabet of k-mer strings in edge order.
*/
const Letters = "ACGT"

/*
Error is a k-mer related error.
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
newError returns a new k-mer related error.
*/
func newError(errType error, detail string) *Error {
	return &Error{errType, detail}
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("KmerError: %v (%v)", e.Type, e.Detail)
	}

	return fmt.Sprintf("KmerError: %v", e.Type)
}

/*
Unwrap returns the error type.
*/
func (e *Error) Unwrap() error {
	return e.Type
}

/*
K-mer related error types
*/
var (
	ErrInvalidKmer       = errors.New("Invalid k-mer string")
	ErrInvalidValue      = errors.New("Invalid value")
	ErrNotAdjacent       = errors.New("K-mers are not adjacent")
	ErrInconsistentEdges = errors.New("Inconsistent edge state")
	ErrIdentity          = errors.New("Different objects for the same k-mer")
	ErrEncoding          = errors.New("Could not encode record")
	ErrCorruptRecord     = errors.New("Corrupt record")
)
