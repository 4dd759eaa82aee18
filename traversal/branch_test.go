/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package traversal

import (
	"fmt"
	"testing"

	"github.com/krotik/kmergraph/kmer"
	"github.com/krotik/kmergraph/storage/builder"
)

func TestLinks(t *testing.T) {

	k := kmer.New("AAA", []uint32{1, 1}, []kmer.EdgeSet{0, 0})

	k.Edges[0], _ = kmer.ParseEdgeSet(".c...C.T")
	k.Edges[1], _ = kmer.ParseEdgeSet("a.......")

	format := func(ls []link) string {
		var res []string
		for _, l := range ls {
			res = append(res, fmt.Sprintf("%v:%v:%v", l.neighbour, l.incoming, l.color))
		}
		return fmt.Sprint(res)
	}

	if res := format(links("AAA", k, []int{0, 1}, Both)); res !=
		"[AAC:false:0 AAT:false:0 CAA:true:0 AAA:true:1]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := format(links("AAA", k, []int{0}, Original)); res != "[AAC:false:0 AAT:false:0]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := format(links("AAA", k, []int{1}, Reverse)); res != "[AAA:true:1]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Reverse complement orientation

	if res := format(links("TTT", k, []int{0}, Both)); res != "[TTG:false:0 ATT:true:0 GTT:true:0]" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestWalkBranch(t *testing.T) {

	e := newTestEngine(t, builder.New().WithKmerSize(3).
		WithKmer("AAA 1 .......T").
		WithKmer("AAT 1 a....CG.").
		WithKmer("ATC 1 a.......").
		WithKmer("ATG 1 a.......").
		WithKmer("CCC 1 ........"), Options{Orientation: Both})

	k, err := e.lookup("AAA")
	if err != nil {
		t.Error(err)
		return
	}

	candidates, err := e.walkBranch(e.addKmerNode("AAA", k))
	if err != nil {
		t.Error(err)
		return
	}

	if res := fmt.Sprint(candidates); res != "[ATC ATG]" {
		t.Error("Unexpected result:", res)
		return
	}

	if err := checkGraph(e.Graph(), "AAA AAT ATC ATG", "AAA AAT 0, AAT ATC 0, AAT ATG 0"); err != nil {
		t.Error(err)
		return
	}

	for key, expanded := range map[string]bool{"AAA": true, "AAT": true, "ATC": false, "ATG": false} {
		if e.Graph().Node(key).IsExpanded() != expanded || e.expanded[key] != expanded {
			t.Error("Unexpected expanded state of", key)
			return
		}
	}

	// A walk from an unconnected k-mer stops immediately

	k, err = e.lookup("GGG")
	if err != nil {
		t.Error(err)
		return
	}

	label := e.addKmerNode("GGG", k)

	if label != "GGG" || k.Kmer != "CCC" {
		t.Error("Unexpected result:", label, k)
		return
	}

	if candidates, err = e.walkBranch(label); err != nil || len(candidates) != 0 {
		t.Error("Unexpected result:", candidates, err)
		return
	}

	// A k-mer which was reached before keeps its label

	if label = e.addKmerNode("CCC", k); label != "GGG" {
		t.Error("Unexpected result:", label)
		return
	}
}
