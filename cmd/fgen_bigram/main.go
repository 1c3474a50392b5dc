// fgen_bigram computes distribution statistics (internal/termstats) of
// bigram window counts over the documents recorded in a window file
// produced by cmd/dump_bigram, one summary per (qid, term_i, term_j)
// group with at least termstats.MinPostingsForStats documents. Per
// spec.md §6's `fgen_bigram` entry point:
//
//	fgen_bigram -i <window-file> -o <out>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kittclouds/rankgen/internal/termstats"
)

type groupKey struct {
	qid   string
	termI string
	termJ string
}

func main() {
	inPath := flag.String("i", "", "window file path (cmd/dump_bigram output)")
	outPath := flag.String("o", "", "output path")
	flag.Parse()
	if *inPath == "" || *outPath == "" {
		fmt.Fprintf(os.Stderr, "usage: fgen_bigram -i <window-file> -o <out>\n")
		os.Exit(1)
	}

	f, err := os.Open(*inPath)
	if err != nil {
		fatal(err)
	}
	groups := make(map[groupKey][]float64)
	var order []groupKey

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo == 1 && strings.HasPrefix(line, "qid,") {
			continue // header
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			fatal(fmt.Errorf("fgen_bigram: line %d: expected 5 fields, got %d", lineNo, len(fields)))
		}
		count, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			fatal(fmt.Errorf("fgen_bigram: line %d: bad count %q: %w", lineNo, fields[4], err))
		}
		key := groupKey{qid: fields[0], termI: fields[1], termJ: fields[2]}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], count)
	}
	f.Close()
	if err := sc.Err(); err != nil {
		fatal(err)
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.qid != b.qid {
			return a.qid < b.qid
		}
		if a.termI != b.termI {
			return a.termI < b.termI
		}
		return a.termJ < b.termJ
	})

	out, err := os.Create(*outPath)
	if err != nil {
		fatal(err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "qid,term_i,term_j,max,min,median,first,third,avg,variance,std_dev,confidence,hmean,geo_mean")
	for _, key := range order {
		values := groups[key]
		var sum float64
		for _, v := range values {
			sum += v
		}
		s, ok := termstats.SummarizeValues(values, sum)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s,%s,%s,%s\n", key.qid, key.termI, key.termJ, formatSummary(s))
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
	fmt.Fprintf(os.Stderr, "fgen_bigram: %v\n", err)
	os.Exit(1)
}
