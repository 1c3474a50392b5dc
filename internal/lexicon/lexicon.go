// Package lexicon holds the dense per-term collection statistics built by
// the external indexer and consulted read-only by every scorer.
//
// Grounded on pkg/resorank/types.go's ResoRankConfig/CorpusStatistics shape
// (dense struct of collection-level counts) and on the original
// include/lexicon.hpp's Term/Counts layout; serialized with encoding/gob
// following the pack's own precedent for this concern (see DESIGN.md).
package lexicon

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/kittclouds/rankgen/internal/ids"
)

// Counts is a (document_count, term_count) pair, used both at the
// collection level and per field.
type Counts struct {
	DocCount  uint64
	TermCount uint64
}

// Term is one lexicon entry, indexed by TermId.
type Term struct {
	String      string
	Counts      Counts
	FieldCounts map[ids.FieldId]Counts
}

// DocCount returns the term's per-field document count, 0 for an unknown
// or non-indexed field.
func (t *Term) DocCount(f ids.FieldId) uint64 {
	if t == nil {
		return 0
	}
	return t.FieldCounts[f].DocCount
}

// TermCount returns the term's per-field term count, 0 for an unknown or
// non-indexed field.
func (t *Term) TermCount(f ids.FieldId) uint64 {
	if t == nil {
		return 0
	}
	return t.FieldCounts[f].TermCount
}

// Lexicon is the dense array of Term entries, indexed by TermId. Entry 0
// is a placeholder: TermId 0 means "unknown term" and must never be
// scored.
type Lexicon struct {
	NumDocs  uint64
	NumTerms uint64
	Terms    []Term // Terms[0] is the unknown-term placeholder

	stringIndex map[string]ids.TermId // built lazily by TermIDOf
}

// TermIDOf resolves a term/stem string to its TermId, 0 if unknown. The
// reverse index is built on first use and cached.
func (l *Lexicon) TermIDOf(term string) ids.TermId {
	if l.stringIndex == nil {
		l.stringIndex = make(map[string]ids.TermId, len(l.Terms))
		for i := 1; i < len(l.Terms); i++ {
			l.stringIndex[l.Terms[i].String] = ids.TermId(i)
		}
	}
	return l.stringIndex[term]
}

// New creates an empty lexicon with the placeholder entry installed.
func New() *Lexicon {
	return &Lexicon{Terms: []Term{{}}}
}

// Lookup returns the Term for t, or nil if t is out of range (including
// TermId 0).
func (l *Lexicon) Lookup(t ids.TermId) *Term {
	if t == 0 || int(t) >= len(l.Terms) {
		return nil
	}
	return &l.Terms[t]
}

// Add appends a new term to the lexicon and returns its freshly assigned
// TermId.
func (l *Lexicon) Add(term Term) ids.TermId {
	l.Terms = append(l.Terms, term)
	return ids.TermId(len(l.Terms) - 1)
}

// Save writes the lexicon to path using gob encoding.
func (l *Lexicon) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lexicon: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(l); err != nil {
		return fmt.Errorf("lexicon: encode %s: %w", path, err)
	}
	return w.Flush()
}

// Load reads a lexicon previously written by Save.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", path, err)
	}
	defer f.Close()
	var l Lexicon
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&l); err != nil {
		return nil, fmt.Errorf("lexicon: decode %s: %w", path, err)
	}
	return &l, nil
}
