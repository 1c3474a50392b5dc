// Package invidx holds the inverted index: for every TermId, a posting
// list of (DocId, within-document frequency) pairs plus the term's
// collection total count. Used only by the term-statistics summarizer.
//
// Dual-mode representation grounded on pkg/qgram/posting_list.go's
// SlicePostings/BitmapPostings split: short posting lists stay as sorted
// slices, long ones promote to a roaring.Bitmap (document ids) paired
// with a docid-to-freq map.
package invidx

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kittclouds/rankgen/internal/ids"
)

// DefaultBitmapThreshold mirrors pkg/qgram's posting-list promotion point:
// below this document frequency, a sorted slice is more cache-friendly;
// above it, a roaring bitmap wins on space and intersection speed.
const DefaultBitmapThreshold = 2000

// Posting is one (docid, freq) pair.
type Posting struct {
	Doc  ids.DocId
	Freq uint32
}

// PostingList is a term's posting list: dual-mode, promoting from a
// sorted slice to a roaring-bitmap-backed representation once its
// document frequency crosses DefaultBitmapThreshold.
type PostingList struct {
	TermString string
	TotalCount uint64

	threshold int
	small     []Posting       // sorted by Doc, used while len(small) < threshold
	bm        *roaring.Bitmap // doc ids, used once promoted
	bmFreq    map[uint32]uint32
}

// NewPostingList creates an empty posting list using the default
// promotion threshold.
func NewPostingList(term string) *PostingList {
	return &PostingList{TermString: term, threshold: DefaultBitmapThreshold}
}

// Len reports the posting list's document frequency.
func (p *PostingList) Len() int {
	if p.bm != nil {
		return int(p.bm.GetCardinality())
	}
	return len(p.small)
}

// Add records one occurrence of the term's freq within doc d, merging
// with an existing entry for d if present.
func (p *PostingList) Add(d ids.DocId, freq uint32) {
	p.TotalCount += uint64(freq)
	if p.bm != nil {
		du := uint32(d)
		p.bmFreq[du] += freq
		p.bm.Add(du)
		return
	}
	idx := sort.Search(len(p.small), func(i int) bool { return p.small[i].Doc >= d })
	if idx < len(p.small) && p.small[idx].Doc == d {
		p.small[idx].Freq += freq
	} else {
		p.small = append(p.small, Posting{})
		copy(p.small[idx+1:], p.small[idx:])
		p.small[idx] = Posting{Doc: d, Freq: freq}
	}
	if len(p.small) >= p.threshold {
		p.promote()
	}
}

func (p *PostingList) promote() {
	p.bm = roaring.New()
	p.bmFreq = make(map[uint32]uint32, len(p.small))
	for _, post := range p.small {
		p.bm.Add(uint32(post.Doc))
		p.bmFreq[uint32(post.Doc)] = post.Freq
	}
	p.small = nil
}

// Freq returns the within-document frequency recorded for d, 0 if d has
// no posting.
func (p *PostingList) Freq(d ids.DocId) uint32 {
	if p.bm != nil {
		return p.bmFreq[uint32(d)]
	}
	idx := sort.Search(len(p.small), func(i int) bool { return p.small[i].Doc >= d })
	if idx < len(p.small) && p.small[idx].Doc == d {
		return p.small[idx].Freq
	}
	return 0
}

// Postings returns the list's (doc, freq) entries in ascending doc order.
func (p *PostingList) Postings() []Posting {
	if p.bm == nil {
		return p.small
	}
	out := make([]Posting, 0, p.bm.GetCardinality())
	it := p.bm.Iterator()
	for it.HasNext() {
		d := it.Next()
		out = append(out, Posting{Doc: ids.DocId(d), Freq: p.bmFreq[d]})
	}
	return out
}

// GobEncode/GobDecode let PostingList round-trip through gob despite its
// unexported fields, always encoding the slice form; GobDecode promotes
// the decoded list again when it reaches DefaultBitmapThreshold.
type postingListWire struct {
	TermString string
	TotalCount uint64
	Entries    []Posting
}

func (p *PostingList) GobEncode() ([]byte, error) {
	w := postingListWire{TermString: p.TermString, TotalCount: p.TotalCount, Entries: p.Postings()}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *PostingList) GobDecode(data []byte) error {
	var w postingListWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	p.TermString = w.TermString
	p.TotalCount = w.TotalCount
	p.threshold = DefaultBitmapThreshold
	p.small = w.Entries
	if len(p.small) >= p.threshold {
		p.promote()
	}
	return nil
}

// InvertedIndex maps TermId to PostingList. Sparse: terms never observed
// have no entry.
type InvertedIndex struct {
	Lists map[ids.TermId]*PostingList
}

// New creates an empty inverted index.
func New() *InvertedIndex {
	return &InvertedIndex{Lists: make(map[ids.TermId]*PostingList)}
}

// ListFor returns the posting list for t, creating one if absent.
func (ix *InvertedIndex) ListFor(t ids.TermId, term string) *PostingList {
	pl, ok := ix.Lists[t]
	if !ok {
		pl = NewPostingList(term)
		ix.Lists[t] = pl
	}
	return pl
}

// Save writes the inverted index to path using gob encoding.
func (ix *InvertedIndex) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("invidx: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(ix); err != nil {
		return fmt.Errorf("invidx: encode %s: %w", path, err)
	}
	return w.Flush()
}

// Load reads an inverted index previously written by Save.
func Load(path string) (*InvertedIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("invidx: open %s: %w", path, err)
	}
	defer f.Close()
	var ix InvertedIndex
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&ix); err != nil {
		return nil, fmt.Errorf("invidx: decode %s: %w", path, err)
	}
	return &ix, nil
}
