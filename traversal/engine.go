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
	"errors"
	"fmt"
	"time"

	"github.com/krotik/common/stringutil"
	"github.com/krotik/kmergraph/graph"
	"github.com/krotik/kmergraph/kmer"
	"github.com/krotik/kmergraph/storage"
)

/*
DefaultLoggingInterval is the default interval between progress messages.
*/
const DefaultLoggingInterval = 90 * time.Second

/*
Options are the options of a traversal.
*/
type Options struct {
	Orientation Orientation // Edges which should be followed
	Colors      []int       // Colors whose edges are followed (nil for all colors)
	MaxNodes    int         // Soft limit for the number of nodes (0 for no limit)
}

/*
Engine explores the graph of an index. All traversals of an engine
accumulate into the same result graph.
*/
type Engine struct {
	LoggingInterval time.Duration // Interval between progress messages

	index       storage.Index     // Index which is traversed
	orientation Orientation       // Followed edges
	colors      []int             // Followed colors
	maxNodes    int               // Soft limit for the number of nodes
	arena       *kmer.Builder     // K-mers of this session
	graph       *graph.Graph      // Result graph
	labels      map[string]string // Node label for each canonical k-mer string
	expanded    map[string]bool   // Canonical strings of expanded k-mers
	missing     map[string]bool   // Canonical strings of missing k-mers
	frontier    []string          // Labels of k-mers which should be expanded
	lastLog     time.Time         // Time of the last progress message
}

/*
NewEngine creates a new traversal engine for a given index.
*/
func NewEngine(index storage.Index, opts Options) (*Engine, error) {
	numColors := index.NumColors()

	colors := opts.Colors
	if colors == nil {
		colors = make([]int, numColors)
		for i := range colors {
			colors[i] = i
		}
	}

	for _, c := range colors {
		if c < 0 || c >= numColors {
			return nil, &Error{ErrInvalidColor,
				fmt.Sprintf("Color %v does not exist in %v (%v color%v)",
					c, index.Name(), numColors, stringutil.Plural(numColors))}
		}
	}

	if opts.MaxNodes < 0 {
		return nil, &Error{ErrInvalidMaxNodes,
			fmt.Sprintf("Maximum number of nodes must not be negative: %v", opts.MaxNodes)}
	}

	if opts.Orientation < Original || opts.Orientation > Both {
		return nil, &Error{ErrInvalidOrientation, opts.Orientation.String()}
	}

	arena, err := kmer.NewBuilder(numColors)
	if err != nil {
		return nil, err
	}

	return &Engine{
		LoggingInterval: DefaultLoggingInterval,
		index:           index,
		orientation:     opts.Orientation,
		colors:          colors,
		maxNodes:        opts.MaxNodes,
		arena:           arena,
		graph:           graph.New(),
		labels:          make(map[string]string),
		expanded:        make(map[string]bool),
		missing:         make(map[string]bool),
		lastLog:         time.Now(),
	}, nil
}

/*
Graph returns the result graph of this engine.
*/
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

/*
Colors returns the colors whose edges are followed.
*/
func (e *Engine) Colors() []int {
	return e.colors
}

/*
TraverseFrom explores the graph starting from a given seed k-mer. The
result graph is not changed if the seed does not exist.
*/
func (e *Engine) TraverseFrom(seed string) error {

	if len(seed) != e.index.KmerSize() {
		return &Error{ErrStartString,
			fmt.Sprintf("Start string %q has length %v but kmer size is %v",
				seed, len(seed), e.index.KmerSize())}
	}

	if err := e.traverse(seed); err != nil {
		return err
	}

	e.connectAllColors()

	return nil
}

/*
TraverseFromEachKmerIn explores the graph starting from each k-mer of a
given sequence. Seeds which do not exist in the graph file are skipped.
*/
func (e *Engine) TraverseFromEachKmerIn(sequence string) error {
	seeds := kmer.Kmers(sequence, e.index.KmerSize())

	for _, seed := range seeds {

		if e.limitReached() {
			break
		}

		if err := e.traverse(seed); err != nil && !errors.Is(err, storage.ErrKmerNotFound) {
			return err
		}
	}

	e.connectAllColors()

	logger.Debug(fmt.Sprintf("Traversed from %v seed%v: %v node%v, %v edge%v",
		len(seeds), stringutil.Plural(len(seeds)),
		e.graph.NumNodes(), stringutil.Plural(e.graph.NumNodes()),
		e.graph.NumEdges(), stringutil.Plural(e.graph.NumEdges())))

	return nil
}

/*
traverse runs a traversal from a seed k-mer.
*/
func (e *Engine) traverse(seed string) error {
	canonical := kmer.Canonical(seed)

	if e.expanded[canonical] || e.limitReached() {
		return nil
	}

	k, err := e.lookup(seed)
	if err != nil {
		return err
	}

	e.frontier = append(e.frontier, e.addKmerNode(seed, k))

	for len(e.frontier) > 0 {

		if e.limitReached() {
			logger.Info(fmt.Sprintf("Stopping traversal at %v nodes (limit is %v)",
				e.graph.NumNodes(), e.maxNodes))
			e.frontier = nil
			break
		}

		label := e.frontier[0]
		e.frontier = e.frontier[1:]

		if e.expanded[kmer.Canonical(label)] {
			continue
		}

		candidates, err := e.walkBranch(label)
		if err != nil {
			e.frontier = nil
			return err
		}

		e.frontier = append(e.frontier, candidates...)

		e.logProgress()
	}

	return nil
}

/*
limitReached checks if the graph has grown beyond the maximum number of nodes.
*/
func (e *Engine) limitReached() bool {
	return e.maxNodes > 0 && e.graph.NumNodes() > e.maxNodes
}

/*
lookup returns the session k-mer of a given k-mer string.
*/
func (e *Engine) lookup(kmerString string) (*kmer.Kmer, error) {
	if k, ok := e.arena.Get(kmerString); ok {
		return k, nil
	}

	k, err := e.index.Lookup(kmerString)
	if err != nil {
		return nil, err
	}

	return e.arena.Adopt(k), nil
}

/*
addKmerNode adds a node for a k-mer. Returns the label of the node which
might differ from the given string if the k-mer was already added in its
other orientation.
*/
func (e *Engine) addKmerNode(kmerString string, k *kmer.Kmer) string {
	canonical := kmer.Canonical(kmerString)

	if label, ok := e.labels[canonical]; ok {
		return label
	}

	node := e.graph.AddNode(kmerString)

	if k != nil {
		node.SetAttr(graph.AttrKmer, k)
		node.SetAttr(graph.AttrCoverage, append([]uint32(nil), k.Coverage...))
		node.SetAttr(graph.AttrIsMissing, false)
	} else {
		node.SetAttr(graph.AttrCoverage, make([]uint32, e.index.NumColors()))
		node.SetAttr(graph.AttrIsMissing, true)
	}

	node.SetAttr(graph.AttrIsExpanded, false)

	e.labels[canonical] = kmerString

	return kmerString
}

/*
neighbourNode returns the label and the k-mer of a neighbour. The neighbour
is added as a node if necessary. The returned k-mer is nil if the neighbour
does not exist in the graph file.
*/
func (e *Engine) neighbourNode(kmerString string) (string, *kmer.Kmer, error) {
	canonical := kmer.Canonical(kmerString)

	if label, ok := e.labels[canonical]; ok {
		return label, e.graph.Node(label).Kmer(), nil
	}

	var k *kmer.Kmer

	if !e.missing[canonical] {
		var err error

		if k, err = e.lookup(kmerString); err != nil {
			if !errors.Is(err, storage.ErrKmerNotFound) {
				return "", nil, err
			}

			e.missing[canonical] = true
		}
	}

	return e.addKmerNode(kmerString, k), k, nil
}

/*
connectAllColors adds the edges of all colors of the index between nodes
of the result graph.
*/
func (e *Engine) connectAllColors() {
	allColors := make([]int, e.index.NumColors())
	for i := range allColors {
		allColors[i] = i
	}

	for _, node := range e.graph.Nodes() {
		k := node.Kmer()

		if k == nil {
			continue
		}

		for _, l := range links(node.Key(), k, allColors, Both) {
			if neighbourLabel, ok := e.labels[kmer.Canonical(l.neighbour)]; ok {
				e.addLink(node.Key(), neighbourLabel, l)
			}
		}
	}
}

/*
logProgress logs the size of the result graph once the logging interval
has passed.
*/
func (e *Engine) logProgress() {
	if e.LoggingInterval <= 0 || time.Since(e.lastLog) < e.LoggingInterval {
		return
	}

	e.lastLog = time.Now()

	logger.Info(fmt.Sprintf("Traversed %v node%v and %v edge%v (%v in frontier)",
		e.graph.NumNodes(), stringutil.Plural(e.graph.NumNodes()),
		e.graph.NumEdges(), stringutil.Plural(e.graph.NumEdges()),
		len(e.frontier)))
}
