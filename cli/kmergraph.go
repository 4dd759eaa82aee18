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
KmerGraph reads and explores de Bruijn graphs which are stored in Cortex graph
files.

Features:

- Random access to the k-mer records of sorted graph files.

- Several graph files can be joined on the fly. The colors of all files are
concatenated.

- Traversal of the graph around a contig or the sequences of a FASTA file.

- Contraction of the traversed graph into unitigs.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/logutil"
	"github.com/krotik/common/stringutil"
	"github.com/krotik/kmergraph/config"
	"github.com/krotik/kmergraph/kmer"
	"github.com/krotik/kmergraph/storage"
	"github.com/krotik/kmergraph/traversal"
	"github.com/krotik/kmergraph/unitig"
)

/*
consolelogger is a function which writes to the console.
*/
type consolelogger func(v ...interface{})

/*
fatal is the function which is called on fatal errors.
*/
var fatal consolelogger = log.Fatal

/*
out is the writer which receives all tool output.
*/
var out io.Writer = os.Stdout

/*
logger is the logger of the command line tools.
*/
var logger = logutil.GetLogger("kmergraph")

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {

		// Print usage for tool selection

		fmt.Fprintln(out, fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "KmerGraph de Bruijn graph tools")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Available commands:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "    traverse  Traverse a graph starting from a contig")
		fmt.Fprintln(out, "    view      Print the records of a graph")
		fmt.Fprintln(out)
		fmt.Fprintln(out, fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Fprintln(out)
	}

	// Parse the command bit

	err := flag.CommandLine.Parse(os.Args[1:])

	if len(flag.Args()) > 0 {

		arg := flag.Args()[0]

		if arg == "view" || arg == "traverse" {

			if err = config.LoadConfigFile(config.DefaultConfigFile); err == nil {

				setupLogging()

				if arg == "view" {
					err = runView(flag.Args()[1:])
				} else {
					err = runTraverse(flag.Args()[1:])
				}
			}

			if err != nil {
				fatal(err)
			}

		} else {
			flag.Usage()
		}

	} else if err == nil {

		flag.Usage()
	}
}

/*
setupLogging sends all log messages of the configured level to stderr.
*/
func setupLogging() {
	level := logutil.StringToLoglevel(config.Str(config.LogLevel))
	if level == "" {
		level = logutil.Info
	}

	logutil.ClearLogSinks()
	logger.AddLogSink(level, logutil.SimpleFormatter(), os.Stderr)
}

/*
openGraphs opens one or more graph files. Several graph files are joined
into a collection.
*/
func openGraphs(paths []string, opts storage.Options) (storage.Index, error) {
	var indexes []storage.Index

	closeAll := func() {
		for _, i := range indexes {
			i.Close()
		}
	}

	for _, p := range paths {
		ra, err := storage.OpenFile(p, opts)
		if err != nil {
			closeAll()
			return nil, err
		}

		logger.Debug(ra.Header())

		indexes = append(indexes, ra)
	}

	errorutil.AssertTrue(len(indexes) > 0, "No graph files given")

	if len(indexes) == 1 {
		return indexes[0], nil
	}

	c, err := storage.NewCollection(indexes...)
	if err != nil {
		closeAll()
		return nil, err
	}

	return c, nil
}

/*
runView prints the records of graph files.
*/
func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(out)

	record := fs.String("record", "", "Only print the records of the k-mers of a given sequence")
	showHelp := fs.Bool("help", false, "Show this help message")

	fs.Usage = func() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, fmt.Sprintf("Usage of %s view [options] <graph file>...", os.Args[0]))
		fmt.Fprintln(out)
		fs.PrintDefaults()
		fmt.Fprintln(out)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showHelp || fs.NArg() == 0 {
		fs.Usage()
		return nil
	}

	index, err := openGraphs(fs.Args(), config.StorageOptions())
	if err != nil {
		return err
	}
	defer index.Close()

	if *record == "" {
		it := index.Iterator()

		for it.HasNext() {
			if k := it.Next(); k != nil {
				fmt.Fprintln(out, k)
			}
		}

		return it.Error()
	}

	for _, q := range kmer.Kmers(strings.ToUpper(*record), index.KmerSize()) {
		k, err := index.Lookup(q)

		if errors.Is(err, storage.ErrKmerNotFound) {
			fmt.Fprintln(out, fmt.Sprintf("%v: %v missing", kmer.Canonical(q), q))
			continue
		} else if err != nil {
			return err
		}

		fmt.Fprintln(out, fmt.Sprintf("%v: %v", k.Kmer, k.OrientedString(q)))
	}

	return nil
}

/*
runTraverse traverses graph files and prints the resulting graph.
*/
func runTraverse(args []string) error {
	fs := flag.NewFlagSet("traverse", flag.ContinueOnError)
	fs.SetOutput(out)

	orientation := fs.String("orientation", config.Str(config.Orientation),
		"Traversal orientation (original, reverse or both)")
	colors := fs.String("colors", "", "Comma separated list of colors to traverse (default all colors)")
	maxNodes := fs.Int("max-nodes", int(config.Int(config.MaxNodes)),
		"Stop traversing after this number of nodes (0 for no limit)")
	loggingInterval := fs.Int("logging-interval", int(config.Int(config.LoggingInterval)),
		"Interval in seconds between progress messages")
	cacheSize := fs.Int("cache-size", int(config.Int(config.KmerCacheSize)),
		"Number of k-mers to cache")
	searchCacheSize := fs.Int("binary-search-cache-size", int(config.Int(config.BinarySearchCacheSize)),
		"Number of k-mers to cache for binary search")
	fasta := fs.Bool("fasta", false, "Treat the initial contig as a FASTA file")
	annotate := fs.Bool("annotate", false, "Add the neighbours at the border of the traversed graph")
	unitigs := fs.Bool("unitigs", false, "Contract the traversed graph into unitigs")
	subgraphs := fs.Bool("subgraphs", false, "Print each weakly connected component separately (largest first)")
	showHelp := fs.Bool("help", false, "Show this help message")

	fs.Usage = func() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, fmt.Sprintf("Usage of %s traverse [options] <initial contig> <graph file>...", os.Args[0]))
		fmt.Fprintln(out)
		fs.PrintDefaults()
		fmt.Fprintln(out)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showHelp || fs.NArg() < 2 {
		fs.Usage()
		return nil
	}

	config.Config[config.Orientation] = *orientation
	config.Config[config.MaxNodes] = *maxNodes
	config.Config[config.LoggingInterval] = *loggingInterval
	config.Config[config.KmerCacheSize] = *cacheSize
	config.Config[config.BinarySearchCacheSize] = *searchCacheSize

	if *colors != "" {
		config.Config[config.TraversalColors] = *colors
	}

	opts, err := config.TraversalOptions()
	if err != nil {
		return err
	}

	index, err := openGraphs(fs.Args()[1:], config.StorageOptions())
	if err != nil {
		return err
	}
	defer index.Close()

	engine, err := traversal.NewEngine(index, opts)
	if err != nil {
		return err
	}

	engine.LoggingInterval = config.LoggingIntervalDuration()

	logger.Info(fmt.Sprintf("Traversing colors %v of %v in %v orientation",
		engine.Colors(), index.Name(), opts.Orientation))

	contig := fs.Args()[0]

	if *fasta {
		records, err := readFasta(contig)
		if err != nil {
			return err
		}

		for _, r := range records {
			logger.Debug(fmt.Sprintf("Traversing from %v", r.ID))

			if err := engine.TraverseFromEachKmerIn(r.Seq); err != nil {
				return err
			}
		}

	} else if err := engine.TraverseFromEachKmerIn(strings.ToUpper(contig)); err != nil {
		return err
	}

	g := engine.Graph()

	if *annotate {
		traversal.AnnotateEdges(g)
	}

	if *unitigs {
		g = unitig.FindUnitigs(g)
	}

	if *subgraphs {
		comps := g.WeaklyConnectedComponents()

		logger.Info(fmt.Sprintf("Found %v subgraph%v", len(comps), stringutil.Plural(len(comps))))

		for _, c := range comps {
			fmt.Fprint(out, c.String())
		}

		return nil
	}

	fmt.Fprint(out, g.String())

	return nil
}
