// fgen_term computes per-term statistical summaries (internal/termstats)
// over every posting list with at least termstats.MinPostingsForStats
// entries, for every scorer in scoring.AllKinds. Per spec.md §6:
//
//	fgen_term -i <inv-idx> -f <fwd-idx> -o <out>
//
// Per SPEC_FULL.md §5, the per-term loop runs on a bounded worker pool
// that takes term ids one at a time from a channel; results are
// collected and written sorted by term id, then scorer name, so output
// is reproducible regardless of worker scheduling.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/kittclouds/rankgen/internal/config"
	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/invidx"
	"github.com/kittclouds/rankgen/internal/scoring"
	"github.com/kittclouds/rankgen/internal/termstats"
)

func main() {
	inPath := flag.String("i", "", "inverted index path")
	fwdPath := flag.String("f", "", "forward index path")
	outPath := flag.String("o", "", "output path")
	flag.Parse()
	if *inPath == "" || *fwdPath == "" || *outPath == "" {
		fmt.Fprintf(os.Stderr, "usage: fgen_term -i <inv-idx> -f <fwd-idx> -o <out>\n")
		os.Exit(1)
	}

	inv, err := invidx.Load(*inPath)
	if err != nil {
		fatal(err)
	}
	fwd, err := fwdindex.Load(*fwdPath)
	if err != nil {
		fatal(err)
	}
	ndocs := float64(fwd.NumDocs)
	avgDLen := fwd.AvgDLen
	docLen := func(d ids.DocId) float64 {
		e := fwd.Lookup(d)
		if e == nil {
			return 0
		}
		return float64(e.DocLength)
	}

	bm25 := func(k scoring.Kind) (float64, float64) {
		cfg := config.Default().BM25
		switch k {
		case scoring.Bm25Trec3:
			return cfg.Trec3.K1, cfg.Trec3.B
		case scoring.Bm25Trec3Kmax:
			return cfg.Trec3Kmax.K1, cfg.Trec3Kmax.B
		}
		return cfg.Atire.K1, cfg.Atire.B
	}
	mu := func(k scoring.Kind) float64 {
		cfg := config.Default().LMDir
		switch k {
		case scoring.LmDir1000:
			return cfg.Mu1000
		case scoring.LmDir1500:
			return cfg.Mu1500
		}
		return cfg.Mu2500
	}
	kernels := make(map[scoring.Kind]scoring.Kernel, len(scoring.AllKinds))
	for _, k := range scoring.AllKinds {
		kernels[k] = scoring.KernelFor(k, bm25, mu)
	}

	terms := make([]ids.TermId, 0, len(inv.Lists))
	for t := range inv.Lists {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })

	type row struct {
		term   ids.TermId
		scorer scoring.Kind
		s      termstats.Summary
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan ids.TermId)
	results := make(chan []row, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local []row
			for t := range jobs {
				pl := inv.Lists[t]
				for _, k := range scoring.AllKinds {
					s, ok := termstats.Summarize(pl, kernels[k], ndocs, avgDLen, docLen)
					if !ok {
						continue
					}
					local = append(local, row{term: t, scorer: k, s: s})
				}
			}
			results <- local
		}()
	}
	go func() {
		for _, t := range terms {
			jobs <- t
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []row
	for local := range results {
		all = append(all, local...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].term != all[j].term {
			return all[i].term < all[j].term
		}
		return all[i].scorer < all[j].scorer
	})

	f, err := os.Create(*outPath)
	if err != nil {
		fatal(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "term_id,scorer,max,min,median,first,third,avg,variance,std_dev,confidence,hmean,geo_mean")
	for _, r := range all {
		s := r.s
		fmt.Fprintf(w, "%d,%s,%s\n", r.term, r.scorer, formatSummary(s))
	}
	if err := w.Flush(); err != nil {
		fatal(err)
	}
}

func formatSummary(s termstats.Summary) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 5, 64) }
	return f(s.Max) + "," + f(s.Min) + "," + f(s.Median) + "," + f(s.First) + "," + f(s.Third) + "," +
		f(s.Avg) + "," + f(s.Variance) + "," + f(s.StdDev) + "," + f(s.Confidence) + "," + f(s.HMean) + "," + f(s.GeoMean)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "fgen_term: %v\n", err)
	os.Exit(1)
}
