// Package fwdindex holds the forward index: for every DocId, a FreqsEntry
// carrying within-document term frequencies, per-field statistics, term
// positions, URL stats, and PageRank.
//
// Grounded on the original include/freqs_entry.hpp layout and on
// pkg/qgram/payload_store.go's dense-array-by-docID-ordinal idiom (entries
// stored in an array indexed directly by DocId rather than a map).
package fwdindex

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/kittclouds/rankgen/internal/ids"
)

// URLStats holds the two URL-derived document features.
type URLStats struct {
	SlashCount int
	ByteLength int
}

// FieldTerm is a (FieldId, TermId) pair used to key within-field
// frequencies.
type FieldTerm struct {
	Field ids.FieldId
	Term  ids.TermId
}

// FreqsEntry is one forward-index row.
type FreqsEntry struct {
	Docno     string // the external document identifier (TREC docno)
	DocLength uint32
	PageRank  float64
	URL       URLStats

	FieldsStats map[ids.FieldId]uint32 // tag-open counts

	DFt map[ids.TermId]uint32          // within-document term frequency
	FFt map[FieldTerm]uint32           // within-field term frequency

	FieldLen        map[ids.FieldId]uint32
	FieldMinLen     map[ids.FieldId]uint32
	FieldMaxLen     map[ids.FieldId]uint32
	FieldLenSumSqrs map[ids.FieldId]float64

	TermList  []ids.TermId            // document order, for proximity/windows
	Positions map[ids.TermId][]uint32 // sorted ascending
}

// NewFreqsEntry returns a zero-valued entry with its maps initialized.
func NewFreqsEntry() *FreqsEntry {
	return &FreqsEntry{
		FieldsStats:     make(map[ids.FieldId]uint32),
		DFt:             make(map[ids.TermId]uint32),
		FFt:             make(map[FieldTerm]uint32),
		FieldLen:        make(map[ids.FieldId]uint32),
		FieldMinLen:     make(map[ids.FieldId]uint32),
		FieldMaxLen:     make(map[ids.FieldId]uint32),
		FieldLenSumSqrs: make(map[ids.FieldId]float64),
		Positions:       make(map[ids.TermId][]uint32),
	}
}

// ForwardIndex is the ordered array of FreqsEntry, indexed by DocId.
// Entry 0 is a placeholder (DocId is 1-based).
type ForwardIndex struct {
	Entries []FreqsEntry
	AvgDLen float64 // average document length over the collection
	NumDocs uint64

	docnoIndex map[string]ids.DocId // built lazily by DocIDOf
}

// DocIDOf resolves a docno to its DocId, 0 if unknown. The reverse
// index is built on first use and cached.
func (fi *ForwardIndex) DocIDOf(docno string) ids.DocId {
	if fi.docnoIndex == nil {
		fi.docnoIndex = make(map[string]ids.DocId, len(fi.Entries))
		for i := 1; i < len(fi.Entries); i++ {
			fi.docnoIndex[fi.Entries[i].Docno] = ids.DocId(i)
		}
	}
	return fi.docnoIndex[docno]
}

// New creates an empty forward index with the placeholder entry installed.
func New() *ForwardIndex {
	return &ForwardIndex{Entries: []FreqsEntry{{}}}
}

// Lookup returns the FreqsEntry for d, or nil if d is out of range.
func (fi *ForwardIndex) Lookup(d ids.DocId) *FreqsEntry {
	if d == 0 || int(d) >= len(fi.Entries) {
		return nil
	}
	return &fi.Entries[d]
}

// Add appends a new entry and returns its freshly assigned DocId.
func (fi *ForwardIndex) Add(e FreqsEntry) ids.DocId {
	fi.Entries = append(fi.Entries, e)
	return ids.DocId(len(fi.Entries) - 1)
}

// Finalize computes AvgDLen/NumDocs over the entries added so far (entry 0
// excluded).
func (fi *ForwardIndex) Finalize() {
	fi.NumDocs = uint64(len(fi.Entries) - 1)
	if fi.NumDocs == 0 {
		fi.AvgDLen = 0
		return
	}
	var sum uint64
	for _, e := range fi.Entries[1:] {
		sum += uint64(e.DocLength)
	}
	fi.AvgDLen = float64(sum) / float64(fi.NumDocs)
}

// Save writes the forward index to path using gob encoding.
func (fi *ForwardIndex) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fwdindex: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(fi); err != nil {
		return fmt.Errorf("fwdindex: encode %s: %w", path, err)
	}
	return w.Flush()
}

// Load reads a forward index previously written by Save.
func Load(path string) (*ForwardIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fwdindex: open %s: %w", path, err)
	}
	defer f.Close()
	var fi ForwardIndex
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&fi); err != nil {
		return nil, fmt.Errorf("fwdindex: decode %s: %w", path, err)
	}
	return &fi, nil
}
