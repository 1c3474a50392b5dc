// Package queryfile reads the query-train text format: one query per
// line, `<qid>;<tokens>`, tokens whitespace-separated. Stemming and
// deduplication are external-collaborator concerns; this package only
// performs the line-oriented split spec.md §6 describes.
//
// Grounded on pkg/qgram/query.go's clause-parsing style (small,
// hand-rolled scanner over a query string rather than a parser
// generator).
package queryfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kittclouds/rankgen/internal/ids"
)

// QueryTrain is one training query (spec.md §3).
type QueryTrain struct {
	ID        string
	Terms     []string
	Stems     []string
	TIds      []ids.TermId
	Positions []uint32
	QFt       map[ids.TermId]uint32 // within-query frequency
}

// Parse reads lines of `<qid>;<tokens>` from r. Stems default to the raw
// terms (the external stemmer, if any, is expected to have already
// normalized tokens upstream); TIds/QFt are left empty for the caller to
// fill in once the terms are resolved against a Lexicon.
func Parse(r io.Reader) ([]QueryTrain, error) {
	var out []QueryTrain
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ";", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("queryfile: line %d: expected '<qid>;<tokens>', got %q", lineNo, line)
		}
		qid := strings.TrimSpace(parts[0])
		tokens := strings.Fields(parts[1])
		if qid == "" || len(tokens) == 0 {
			return nil, fmt.Errorf("queryfile: line %d: empty qid or token list", lineNo)
		}
		q := QueryTrain{ID: qid, Terms: tokens, Stems: tokens, QFt: make(map[ids.TermId]uint32)}
		out = append(out, q)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("queryfile: scan: %w", err)
	}
	return out, nil
}

// ResolveTermIds fills TIds/QFt/Positions from the query's stems using
// lookup, a function mapping a stemmed term string to its TermId (0 if
// unknown). Duplicate stems are retained in Positions but counted once
// each in QFt, matching spec.md §6's "duplicates retained for q_ft, but
// deduplicated by stem for the window scanner" rule (dedup for the
// window scanner happens at the call site via UniqueTermIds).
func (q *QueryTrain) ResolveTermIds(lookup func(stem string) ids.TermId) {
	q.TIds = make([]ids.TermId, len(q.Stems))
	q.Positions = make([]uint32, len(q.Stems))
	q.QFt = make(map[ids.TermId]uint32)
	for i, stem := range q.Stems {
		t := lookup(stem)
		q.TIds[i] = t
		q.Positions[i] = uint32(i)
		if t != 0 {
			q.QFt[t]++
		}
	}
}

// UniqueTermIds returns the query's distinct, nonzero TermIds in first-
// occurrence order, for the window scanner's deduplicated term set.
func (q *QueryTrain) UniqueTermIds() []ids.TermId {
	seen := make(map[ids.TermId]bool)
	var out []ids.TermId
	for _, t := range q.TIds {
		if t == 0 || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
