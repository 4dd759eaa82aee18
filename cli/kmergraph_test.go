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
	"bytes"
	"compress/gzip"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krotik/common/fileutil"
	"github.com/krotik/kmergraph/config"
	"github.com/krotik/kmergraph/storage"
	"github.com/krotik/kmergraph/storage/builder"
	"github.com/krotik/kmergraph/traversal"
)

const testdir = "testgraphs"

var outBuf bytes.Buffer
var errorLog = []string{}

func TestMain(m *testing.M) {
	flag.Parse()

	out = &outBuf
	fatal = func(v ...interface{}) {
		errorLog = append(errorLog, fmt.Sprint(v...))
	}

	config.DefaultConfigFile = filepath.Join(testdir, "kmergraph.config.json")

	if res, _ := fileutil.PathExists(testdir); res {
		if err := os.RemoveAll(testdir); err != nil {
			fmt.Print("Could not remove test directory:", err.Error())
		}
	}

	if err := os.Mkdir(testdir, 0755); err != nil {
		fmt.Print("Could not create test directory:", err.Error())
		os.Exit(1)
	}

	// Run the tests

	res := m.Run()

	// Teardown

	out = os.Stdout
	fatal = log.Fatal

	if err := os.RemoveAll(testdir); err != nil {
		fmt.Print("Could not remove test directory:", err.Error())
	}

	os.Exit(res)
}

/*
writeGraph writes a graph file into the test directory.
*/
func writeGraph(t *testing.T, name string, b *builder.Builder) string {
	path := filepath.Join(testdir, name)

	if err := b.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	return path
}

/*
runTool runs a tool with the default configuration and returns its output.
*/
func runTool(tool func([]string) error, args ...string) (string, error) {
	config.LoadDefaultConfig()
	outBuf.Reset()

	err := tool(args)

	return outBuf.String(), err
}

func TestView(t *testing.T) {

	path := writeGraph(t, "view.ctx", builder.New().WithKmerSize(3).WithDNASequence(0, "ACCTT"))

	res, err := runTool(runView, path)
	if err != nil {
		t.Error(err)
		return
	}

	if res != `AAG 1 ......G.
ACC 1 .......T
AGG 1 a......T
` {
		t.Error("Unexpected result:", res)
		return
	}

	res, err = runTool(runView, "-record", "accTT", path)
	if err != nil {
		t.Error(err)
		return
	}

	if res != `ACC: ACC 1 .......T
AGG: CCT 1 a......T
AAG: CTT 1 .c......
` {
		t.Error("Unexpected result:", res)
		return
	}

	res, err = runTool(runView, "-record", "ACTT", path)
	if err != nil {
		t.Error(err)
		return
	}

	if res != `ACT: ACT missing
AAG: CTT 1 .c......
` {
		t.Error("Unexpected result:", res)
		return
	}

	res, err = runTool(runView, "-record", "GGG", path)
	if err != nil || res != "CCC: GGG missing\n" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err = runTool(runView); err != nil || !strings.Contains(res, "view [options] <graph file>") {
		t.Error("Unexpected result:", res, err)
		return
	}

	if _, err = runTool(runView, "-foo"); err == nil {
		t.Error("Unknown flag should fail")
		return
	}

	if _, err = runTool(runView, filepath.Join(testdir, "missing.ctx")); !errors.Is(err, storage.ErrReading) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestViewCollection(t *testing.T) {

	path1 := writeGraph(t, "view1.ctx", builder.New().WithKmerSize(3).WithDNASequence(0, "AAAT"))
	path2 := writeGraph(t, "view2.ctx", builder.New().WithKmerSize(3).WithDNASequence(0, "AATC"))

	res, err := runTool(runView, path1, path2)
	if err != nil {
		t.Error(err)
		return
	}

	if res != `AAA 1 0 .......T ........
AAT 1 1 a....... .....C..
ATC 0 1 ........ a.......
` {
		t.Error("Unexpected result:", res)
		return
	}

	path3 := writeGraph(t, "view3.ctx", builder.New().WithKmerSize(5).WithDNASequence(0, "AAAAT"))

	if _, err = runTool(runView, path1, path3); !errors.Is(err, storage.ErrIncompatibleGraphs) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestTraverse(t *testing.T) {

	path := writeGraph(t, "traverse.ctx", builder.New().WithKmerSize(3).
		WithKmer("AAA 1 .......T").
		WithKmer("AAT 1 a....C..").
		WithKmer("ATC 1 a......."))

	expected := `3 nodes, 2 edges
AAA coverage=[1] is_expanded=true is_missing=false
AAT coverage=[1] is_expanded=true is_missing=false
ATC coverage=[1] is_expanded=true is_missing=false
AAA -> AAT (0)
AAT -> ATC (0)
`

	res, err := runTool(runTraverse, "-orientation", "both", "aaatc", path)
	if err != nil || res != expected {
		t.Error("Unexpected result:", res, err)
		return
	}

	if config.Str(config.Orientation) != "both" {
		t.Error("Flags should be stored in the config")
		return
	}

	res, err = runTool(runTraverse, "-unitigs", "AAA", path)
	if err != nil || res != `1 node, 0 edges
AAA coverage=[[1] [1] [1]] is_missing=false repr=AAATC
` {
		t.Error("Unexpected result:", res, err)
		return
	}

	// Read the initial contig from a FASTA file

	fasta := filepath.Join(testdir, "contig.fa")

	ioutil.WriteFile(fasta, []byte(`>contig1 test contig
AAA
tc
`), 0644)

	res, err = runTool(runTraverse, "-fasta", fasta, path)
	if err != nil || res != expected {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err = runTool(runTraverse, "AAA"); err != nil || !strings.Contains(res, "traverse [options]") {
		t.Error("Unexpected result:", res, err)
		return
	}

	if _, err = runTool(runTraverse, "-orientation", "sideways", "AAA", path); !errors.Is(err, traversal.ErrInvalidOrientation) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err = runTool(runTraverse, "-colors", "1", "AAA", path); !errors.Is(err, traversal.ErrInvalidColor) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err = runTool(runTraverse, "-fasta", filepath.Join(testdir, "missing.fa"), path); err == nil {
		t.Error("Missing FASTA file should fail")
		return
	}
}

func TestTraverseAnnotate(t *testing.T) {

	path := writeGraph(t, "annotate.ctx", builder.New().WithKmerSize(3).WithNumColors(2).
		WithKmer("AAA 1 1 .......T ......G.").
		WithKmer("AAT 1 0 a....... ........"))

	res, err := runTool(runTraverse, "-colors", "0", "-annotate", "AAA", path)
	if err != nil {
		t.Error(err)
		return
	}

	if res != `3 nodes, 2 edges
AAA coverage=[1 1] is_expanded=true is_missing=false
AAT coverage=[1 0] is_expanded=true is_missing=false
AAG coverage=[0 0] is_expanded=false is_missing=false
AAA -> AAT (0)
AAA -> AAG (1)
` {
		t.Error("Unexpected result:", res)
		return
	}

	// Without annotation the edge of the second color is dropped

	res, err = runTool(runTraverse, "-colors", "0", "AAA", path)
	if err != nil || !strings.HasPrefix(res, "2 nodes, 1 edge\n") {
		t.Error("Unexpected result:", res, err)
		return
	}
}

func TestTraverseSubgraphs(t *testing.T) {

	path := writeGraph(t, "subgraphs.ctx", builder.New().WithKmerSize(3).
		WithKmer("AAA 1 .......T").
		WithKmer("AAT 1 a.......").
		WithKmer("CCC 1 ........"))

	res, err := runTool(runTraverse, "-subgraphs", "CCCGAAAT", path)
	if err != nil {
		t.Error(err)
		return
	}

	if res != `2 nodes, 1 edge
AAA coverage=[1] is_expanded=true is_missing=false
AAT coverage=[1] is_expanded=true is_missing=false
AAA -> AAT (0)
1 node, 0 edges
CCC coverage=[1] is_expanded=true is_missing=false
` {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestParseFasta(t *testing.T) {

	records, err := parseFasta(strings.NewReader(`; comment
>seq1 first sequence
ACGT
acgt

>seq2
TTT
`))
	if err != nil {
		t.Error(err)
		return
	}

	if res := fmt.Sprint(records); res != "[{seq1 ACGTACGT} {seq2 TTT}]" {
		t.Error("Unexpected result:", res)
		return
	}

	if _, err := parseFasta(strings.NewReader("ACGT\n")); err == nil ||
		err.Error() != "Sequence data before the first FASTA header in line 1" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := parseFasta(strings.NewReader(">seq1\nA\n> \n")); err == nil ||
		err.Error() != "Empty FASTA header in line 3" {
		t.Error("Unexpected result:", err)
		return
	}

	// Compressed files

	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	w.Write([]byte(">gz\nAAATC\n"))
	w.Close()

	path := filepath.Join(testdir, "contig.fa.gz")
	ioutil.WriteFile(path, buf.Bytes(), 0644)

	records, err = readFasta(path)
	if err != nil || fmt.Sprint(records) != "[{gz AAATC}]" {
		t.Error("Unexpected result:", records, err)
		return
	}
}

func TestMainTools(t *testing.T) {

	path := writeGraph(t, "main.ctx", builder.New().WithKmerSize(3).WithDNASequence(0, "ACC"))

	args := os.Args
	defer func() {
		os.Args = args
	}()

	outBuf.Reset()
	os.Args = []string{"kmergraph"}
	main()

	if res := outBuf.String(); !strings.Contains(res, "Available commands:") {
		t.Error("Unexpected result:", res)
		return
	}

	outBuf.Reset()
	os.Args = []string{"kmergraph", "foo"}
	main()

	if res := outBuf.String(); !strings.Contains(res, "Available commands:") {
		t.Error("Unexpected result:", res)
		return
	}

	outBuf.Reset()
	os.Args = []string{"kmergraph", "view", path}
	main()

	if res := outBuf.String(); res != "ACC 1 ........\n" {
		t.Error("Unexpected result:", res)
		return
	}

	if ok, _ := fileutil.PathExists(config.DefaultConfigFile); !ok {
		t.Error("Config file should have been created")
		return
	}

	outBuf.Reset()
	os.Args = []string{"kmergraph", "traverse", "ACC", path}
	main()

	if res := outBuf.String(); res != `1 node, 0 edges
ACC coverage=[1] is_expanded=true is_missing=false
` {
		t.Error("Unexpected result:", res)
		return
	}

	errorLog = nil
	os.Args = []string{"kmergraph", "view", filepath.Join(testdir, "missing.ctx")}
	main()

	if len(errorLog) != 1 || !strings.Contains(errorLog[0], "Could not read graph data") {
		t.Error("Unexpected result:", errorLog)
		return
	}
}
