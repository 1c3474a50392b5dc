// Package corpus builds the three offline artifacts (lexicon, forward
// index, inverted index) from a minimal intermediate per-field-line
// text format: one line per field occurrence,
// `docid<TAB>field<TAB>tokens...`, plus two pseudo-field lines, `url`
// and `pagerank`, carrying a document's URL string and PageRank value.
//
// spec.md §1 marks the text-analysis pipeline that produces the
// underlying tokenized, field-annotated collection an external
// collaborator; this package is not that pipeline. It exists only so
// the cmd/create_lexicon, cmd/create_forward_index, and
// cmd/create_inverted_index entry points in spec.md §6 are buildable
// and testable without reimplementing text analysis (SPEC_FULL.md
// "SUPPLEMENTED FEATURES").
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/invidx"
	"github.com/kittclouds/rankgen/internal/lexicon"
)

// Built holds every artifact one corpus pass derives. The three create_*
// CLI tools each build the same Built from the same corpus file and
// persist only the piece they own; because DocId/TermId assignment is
// entirely determined by first-occurrence order in the corpus file, two
// independent passes over the same file yield identical numbering.
type Built struct {
	Lexicon  *lexicon.Lexicon
	Forward  *fwdindex.ForwardIndex
	Inverted *invidx.InvertedIndex
}

func fieldByName(name string) (ids.FieldId, bool) {
	switch name {
	case "body":
		return ids.FieldBody, true
	case "title":
		return ids.FieldTitle, true
	case "heading":
		return ids.FieldHeading, true
	case "inlink":
		return ids.FieldInlink, true
	case "a":
		return ids.FieldA, true
	case "mainbody":
		return ids.FieldMainBody, true
	case "applet":
		return ids.FieldApplet, true
	case "object":
		return ids.FieldObject, true
	case "embed":
		return ids.FieldEmbed, true
	}
	return ids.FieldNone, false
}

// Build reads the per-field-line corpus format from r.
func Build(r io.Reader) (*Built, error) {
	lex := lexicon.New()
	termIDs := make(map[string]ids.TermId)
	entries := make(map[string]*fwdindex.FreqsEntry)
	var docOrder []string

	termID := func(term string) ids.TermId {
		if id, ok := termIDs[term]; ok {
			return id
		}
		id := lex.Add(lexicon.Term{String: term, FieldCounts: make(map[ids.FieldId]lexicon.Counts)})
		termIDs[term] = id
		return id
	}
	docEntry := func(docno string) *fwdindex.FreqsEntry {
		if e, ok := entries[docno]; ok {
			return e
		}
		e := fwdindex.NewFreqsEntry()
		entries[docno] = e
		docOrder = append(docOrder, docno)
		return e
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("corpus: line %d: expected 'docid<TAB>field<TAB>tokens', got %q", lineNo, line)
		}
		docno, fieldName := parts[0], parts[1]
		e := docEntry(docno)

		switch fieldName {
		case "url":
			if len(parts) < 3 {
				return nil, fmt.Errorf("corpus: line %d: url line missing value", lineNo)
			}
			e.URL = urlStats(parts[2])
			continue
		case "pagerank":
			if len(parts) < 3 {
				return nil, fmt.Errorf("corpus: line %d: pagerank line missing value", lineNo)
			}
			pr, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("corpus: line %d: bad pagerank %q: %w", lineNo, parts[2], err)
			}
			e.PageRank = pr
			continue
		}

		field, ok := fieldByName(fieldName)
		if !ok {
			return nil, fmt.Errorf("corpus: line %d: unknown field %q", lineNo, fieldName)
		}
		var tokens []string
		if len(parts) == 3 {
			tokens = strings.Fields(parts[2])
		}
		fieldLen := uint32(len(tokens))
		e.FieldsStats[field]++
		e.FieldLen[field] += fieldLen
		if cur, seen := e.FieldMinLen[field]; !seen || fieldLen < cur {
			e.FieldMinLen[field] = fieldLen
		}
		if fieldLen > e.FieldMaxLen[field] {
			e.FieldMaxLen[field] = fieldLen
		}
		e.FieldLenSumSqrs[field] += float64(fieldLen) * float64(fieldLen)

		for _, tok := range tokens {
			t := termID(tok)
			e.DFt[t]++
			e.FFt[fwdindex.FieldTerm{Field: field, Term: t}]++
			e.DocLength++
			e.TermList = append(e.TermList, t)
			e.Positions[t] = append(e.Positions[t], uint32(len(e.TermList)-1))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("corpus: scan: %w", err)
	}

	fwd := fwdindex.New()
	inv := invidx.New()
	for _, docno := range docOrder {
		e := entries[docno]
		e.Docno = docno
		docID := fwd.Add(*e)

		for t, f := range e.DFt {
			term := lex.Lookup(t)
			term.Counts.DocCount++
			term.Counts.TermCount += uint64(f)
			inv.ListFor(t, term.String).Add(docID, f)
		}
		for ft, f := range e.FFt {
			term := lex.Lookup(ft.Term)
			c := term.FieldCounts[ft.Field]
			c.DocCount++
			c.TermCount += uint64(f)
			term.FieldCounts[ft.Field] = c
		}
	}
	fwd.Finalize()

	lex.NumDocs = uint64(len(docOrder))
	var numTerms uint64
	for _, docno := range docOrder {
		numTerms += uint64(entries[docno].DocLength)
	}
	lex.NumTerms = numTerms

	return &Built{Lexicon: lex, Forward: fwd, Inverted: inv}, nil
}

// urlStats derives the URL slash count and byte length spec.md §4.2's
// URL features need: the scheme (`scheme://`) and host are excluded
// from the slash count, the query string (from the first `?`) is
// truncated before counting, and ByteLength is the full, untruncated
// string's length.
func urlStats(url string) fwdindex.URLStats {
	stats := fwdindex.URLStats{ByteLength: len(url)}

	s := url
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[i:]
	} else {
		s = ""
	}
	stats.SlashCount = strings.Count(s, "/")
	return stats
}
