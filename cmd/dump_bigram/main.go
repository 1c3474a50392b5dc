// dump_bigram scans every document in the forward index for each
// query's unique term pairs, recording a window-scanner bigram count
// per (query, term pair, document) that actually co-occurs. Its output
// is the "window file" cmd/fgen_bigram summarizes. Per spec.md §6:
//
//	dump_bigram -i <repo> -q <queries> -l <lexicon> -w <W> -o <out>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/lexicon"
	"github.com/kittclouds/rankgen/internal/queryfile"
	"github.com/kittclouds/rankgen/internal/window"
)

func main() {
	repoPath := flag.String("i", "", "forward index path")
	queriesPath := flag.String("q", "", "queries path")
	lexPath := flag.String("l", "", "lexicon path")
	w := flag.Int("w", 8, "bigram window size")
	outPath := flag.String("o", "", "output path")
	flag.Parse()
	if *repoPath == "" || *queriesPath == "" || *lexPath == "" || *outPath == "" {
		fmt.Fprintf(os.Stderr, "usage: dump_bigram -i <repo> -q <queries> -l <lexicon> -w <W> -o <out>\n")
		os.Exit(1)
	}

	fwd, err := fwdindex.Load(*repoPath)
	if err != nil {
		fatal(err)
	}
	lex, err := lexicon.Load(*lexPath)
	if err != nil {
		fatal(err)
	}

	qf, err := os.Open(*queriesPath)
	if err != nil {
		fatal(err)
	}
	queries, err := queryfile.Parse(qf)
	qf.Close()
	if err != nil {
		fatal(err)
	}
	for i := range queries {
		queries[i].ResolveTermIds(lex.TermIDOf)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fatal(err)
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	fmt.Fprintln(bw, "qid,term_i,term_j,docno,count")

	for _, q := range queries {
		unique := q.UniqueTermIds()
		for i := 0; i < len(unique); i++ {
			for j := i + 1; j < len(unique); j++ {
				ti, tj := unique[i], unique[j]
				scanPair(bw, fwd, q.ID, ti, tj, uint32(*w))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		fatal(err)
	}
}

func scanPair(bw *bufio.Writer, fwd *fwdindex.ForwardIndex, qid string, ti, tj ids.TermId, w uint32) {
	for d := ids.DocId(1); int(d) < len(fwd.Entries); d++ {
		fe := &fwd.Entries[d]
		pi := fe.Positions[ti]
		pj := fe.Positions[tj]
		if len(pi) == 0 || len(pj) == 0 {
			continue
		}
		count := window.Count([][]uint32{pi, pj}, w, false, true)
		if count == 0 {
			continue
		}
		fmt.Fprintf(bw, "%s,%d,%d,%s,%d\n", qid, ti, tj, fe.Docno, count)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "dump_bigram: %v\n", err)
	os.Exit(1)
}
