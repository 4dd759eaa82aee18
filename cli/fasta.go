/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

/*
fastaRecord is a single sequence of a FASTA file.
*/
type fastaRecord struct {
	ID  string // First word of the header line
	Seq string // Upper case sequence
}

/*
readFasta reads all records of a FASTA file. Files ending in .gz are
decompressed.
*/
func readFasta(path string) ([]fastaRecord, error) {
	var r io.Reader

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	r = fh

	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			return nil, err
		}
		defer gr.Close()

		r = gr
	}

	return parseFasta(r)
}

/*
parseFasta parses FASTA records from a reader.
*/
func parseFasta(r io.Reader) ([]fastaRecord, error) {
	var ret []fastaRecord
	var buf bytes.Buffer

	id := ""

	flush := func() {
		if id != "" {
			ret = append(ret, fastaRecord{id, buf.String()})
		}
		buf.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())

		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}

		if text[0] == '>' {
			flush()

			fields := strings.Fields(text[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("Empty FASTA header in line %v", line)
			}

			id = fields[0]
			continue
		}

		if id == "" {
			return nil, fmt.Errorf("Sequence data before the first FASTA header in line %v", line)
		}

		buf.WriteString(strings.ToUpper(text))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flush()

	return ret, nil
}
