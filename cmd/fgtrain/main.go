// fgtrain is the main feature-generation driver: for every training
// query, it looks up the query's first-stage-run candidates and emits
// one labeled feature row per candidate. Per spec.md §6:
//
//	fgtrain <queries> <trec-run> <repo> <forward-index> <lexicon> <out-csv>
//
// <repo> is accepted for CLI-signature fidelity with spec.md §6 but
// unused by feature generation itself (the on-disk indexes carry
// everything docfeat needs); only the loader that originally built the
// forward index and lexicon reads the raw repository.
//
// Per SPEC_FULL.md §5, candidates are sharded across a bounded worker
// pool: each worker owns a query end-to-end (so a query's rows stay in
// candidate-file order without cross-goroutine coordination) and writes
// are serialized through a mutex around the shared featurewriter.Writer.
package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/kittclouds/rankgen/internal/config"
	"github.com/kittclouds/rankgen/internal/docfeat"
	"github.com/kittclouds/rankgen/internal/featurewriter"
	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/lexicon"
	"github.com/kittclouds/rankgen/internal/queryfile"
	"github.com/kittclouds/rankgen/internal/trecrun"
)

func main() {
	if len(os.Args) != 7 {
		fmt.Fprintf(os.Stderr, "usage: fgtrain <queries> <trec-run> <repo> <forward-index> <lexicon> <out-csv>\n")
		os.Exit(1)
	}
	queriesPath, runPath, _, fwdPath, lexPath, outPath := os.Args[1], os.Args[2], os.Args[3], os.Args[4], os.Args[5], os.Args[6]

	lex, err := lexicon.Load(lexPath)
	if err != nil {
		fatal("fgtrain", err)
	}
	fwd, err := fwdindex.Load(fwdPath)
	if err != nil {
		fatal("fgtrain", err)
	}

	qf, err := os.Open(queriesPath)
	if err != nil {
		fatal("fgtrain", err)
	}
	queries, err := queryfile.Parse(qf)
	qf.Close()
	if err != nil {
		fatal("fgtrain", err)
	}
	for i := range queries {
		queries[i].ResolveTermIds(lex.TermIDOf)
	}

	rf, err := os.Open(runPath)
	if err != nil {
		fatal("fgtrain", err)
	}
	runsByQID, err := trecrun.Parse(rf)
	rf.Close()
	if err != nil {
		fatal("fgtrain", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fatal("fgtrain", err)
	}
	defer out.Close()
	fw := featurewriter.New(out)

	extractor := docfeat.NewExtractor(lex, fwd, config.Default())

	jobs := make(chan queryfile.QueryTrain)
	var wg sync.WaitGroup
	var writeMu sync.Mutex
	var headerOnce sync.Once
	var failErr error
	var failMu sync.Mutex

	setFail := func(err error) {
		failMu.Lock()
		if failErr == nil {
			failErr = err
		}
		failMu.Unlock()
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range jobs {
				rows := runsByQID[q.ID]
				for _, row := range rows {
					docID := fwd.DocIDOf(row.Docno)
					if docID == 0 {
						continue
					}
					cols, err := extractor.Extract(&q, docID, row.Score)
					if err != nil {
						setFail(err)
						return
					}
					fr := featurewriter.Row{Label: row.Label, QID: q.ID, Docno: row.Docno, Columns: cols}
					writeMu.Lock()
					headerOnce.Do(func() {
						if herr := fw.WriteHeader(fr); herr != nil {
							setFail(herr)
						}
					})
					werr := fw.WriteRow(fr)
					writeMu.Unlock()
					if werr != nil {
						setFail(werr)
						return
					}
				}
			}
		}()
	}

	for _, q := range queries {
		jobs <- q
	}
	close(jobs)
	wg.Wait()

	if failErr != nil {
		fatal("fgtrain", failErr)
	}
	if err := fw.Flush(); err != nil {
		fatal("fgtrain", err)
	}
}

func fatal(tool string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", tool, err)
	os.Exit(1)
}
