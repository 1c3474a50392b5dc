// preret_csv merges a unigram feature file (cmd/fgtrain's output) with
// a bigram statistics file (cmd/fgen_bigram's output), appending each
// query's bigram-statistic averages (across all its term pairs) as
// extra trailing columns on every row belonging to that query. Per
// spec.md §6:
//
//	preret_csv <queries> <unigram-feats> <bigram-feats> <lexicon>
//
// The queries file and lexicon are accepted for CLI-signature fidelity
// with spec.md §6 (they bound the original tool's join keys); the merge
// itself only needs the qid column the two feature files already carry.
// Output goes to stdout, per spec.md §6's exit-code/stream contract.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var bigramStatNames = []string{"max", "min", "median", "first", "third", "avg", "variance", "std_dev", "confidence", "hmean", "geo_mean"}

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintf(os.Stderr, "usage: preret_csv <queries> <unigram-feats> <bigram-feats> <lexicon>\n")
		os.Exit(1)
	}
	unigramPath, bigramPath := os.Args[2], os.Args[3]

	averages, err := loadBigramAverages(bigramPath)
	if err != nil {
		fatal(err)
	}

	uf, err := os.Open(unigramPath)
	if err != nil {
		fatal(err)
	}
	defer uf.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	sc := bufio.NewScanner(uf)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo == 1 {
			extra := make([]string, len(bigramStatNames))
			for i, n := range bigramStatNames {
				extra[i] = "bigram_" + n
			}
			fmt.Fprintln(out, line+","+strings.Join(extra, ","))
			continue
		}
		fields := strings.SplitN(line, ",", 3)
		if len(fields) < 2 {
			fatal(fmt.Errorf("preret_csv: line %d: malformed row %q", lineNo, line))
		}
		qid := fields[1]
		avg, ok := averages[qid]
		if !ok {
			avg = make([]float64, len(bigramStatNames))
		}
		parts := make([]string, len(avg))
		for i, v := range avg {
			parts[i] = strconv.FormatFloat(v, 'f', 5, 64)
		}
		fmt.Fprintln(out, line+","+strings.Join(parts, ","))
	}
	if err := sc.Err(); err != nil {
		fatal(err)
	}
}

// loadBigramAverages reads cmd/fgen_bigram's output and averages each
// numeric stat column across a query's term pairs.
func loadBigramAverages(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sums := make(map[string][]float64)
	counts := make(map[string]int)

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo == 1 && strings.HasPrefix(line, "qid,") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3+len(bigramStatNames) {
			return nil, fmt.Errorf("preret_csv: bigram file line %d: expected %d fields, got %d", lineNo, 3+len(bigramStatNames), len(fields))
		}
		qid := fields[0]
		vals := fields[3:]
		sum, ok := sums[qid]
		if !ok {
			sum = make([]float64, len(bigramStatNames))
			sums[qid] = sum
		}
		for i, s := range vals {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("preret_csv: bigram file line %d: bad value %q: %w", lineNo, s, err)
			}
			sum[i] += v
		}
		counts[qid]++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	averages := make(map[string][]float64, len(sums))
	for qid, sum := range sums {
		n := float64(counts[qid])
		avg := make([]float64, len(sum))
		for i, v := range sum {
			avg[i] = v / n
		}
		averages[qid] = avg
	}
	return averages, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "preret_csv: %v\n", err)
	os.Exit(1)
}
