package docfeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rankgen/internal/config"
	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/lexicon"
	"github.com/kittclouds/rankgen/internal/queryfile"
)

func col(t *testing.T, cols []Column, name string) float64 {
	t.Helper()
	for _, c := range cols {
		if c.Name == name {
			return c.Value
		}
	}
	t.Fatalf("column %q not found", name)
	return 0
}

func newFixture(t *testing.T) (*lexicon.Lexicon, *fwdindex.ForwardIndex, ids.TermId, ids.DocId) {
	t.Helper()
	lex := lexicon.New()
	lex.NumTerms = 100000 // 1000 docs of average length 100
	termID := lex.Add(lexicon.Term{
		String:      "foo",
		Counts:      lexicon.Counts{DocCount: 50, TermCount: 999},
		FieldCounts: map[ids.FieldId]lexicon.Counts{},
	})

	fe := fwdindex.NewFreqsEntry()
	fe.DocLength = 120
	fe.DFt[termID] = 5

	fwd := fwdindex.New()
	docID := fwd.Add(*fe)
	fwd.NumDocs = 1000
	fwd.AvgDLen = 100

	return lex, fwd, termID, docID
}

func TestExtractBM25AtireMatchesScenario(t *testing.T) {
	lex, fwd, termID, docID := newFixture(t)
	q := &queryfile.QueryTrain{ID: "q1", QFt: map[ids.TermId]uint32{termID: 1}}

	ext := NewExtractor(lex, fwd, config.Default())
	cols, err := ext.Extract(q, docID, 0.42)
	require.NoError(t, err)

	assert.InDelta(t, 0.42, col(t, cols, "stage0_score"), 1e-9)
	assert.InDelta(t, 4.66890, col(t, cols, "bm25_atire"), 1e-4)
}

func TestExtractSkipsFieldsWithZeroLength(t *testing.T) {
	lex, fwd, termID, docID := newFixture(t)
	q := &queryfile.QueryTrain{ID: "q1", QFt: map[ids.TermId]uint32{termID: 1}}

	ext := NewExtractor(lex, fwd, config.Default())
	cols, err := ext.Extract(q, docID, 0)
	require.NoError(t, err)

	// no field-level data was populated in the fixture: every per-field
	// breakdown column must stay at 0, never a scored contribution.
	for _, field := range ids.ScoredFields {
		assert.Equal(t, 0.0, col(t, cols, "bm25_atire_"+field.String()))
	}
}

func TestExtractUnknownTermContributesNothing(t *testing.T) {
	lex, fwd, termID, docID := newFixture(t)
	q := &queryfile.QueryTrain{ID: "q1", QFt: map[ids.TermId]uint32{termID: 1, 0: 7}}

	ext := NewExtractor(lex, fwd, config.Default())
	cols1, err := ext.Extract(q, docID, 0)
	require.NoError(t, err)

	qNoUnknown := &queryfile.QueryTrain{ID: "q1", QFt: map[ids.TermId]uint32{termID: 1}}
	cols2, err := ext.Extract(qNoUnknown, docID, 0)
	require.NoError(t, err)

	assert.Equal(t, col(t, cols1, "bm25_atire"), col(t, cols2, "bm25_atire"))
}

func TestExtractUnknownDocumentErrors(t *testing.T) {
	lex, fwd, termID, _ := newFixture(t)
	q := &queryfile.QueryTrain{ID: "q1", QFt: map[ids.TermId]uint32{termID: 1}}
	ext := NewExtractor(lex, fwd, config.Default())

	_, err := ext.Extract(q, ids.DocId(99), 0)
	assert.Error(t, err)
}

func TestStreamFeaturesTitleDuplicateSignFlip(t *testing.T) {
	lex, fwd, termID, docID := newFixture(t)
	fe := fwd.Lookup(docID)
	fe.FieldLen[ids.FieldTitle] = 10
	fe.FieldsStats[ids.FieldTitle] = 2
	fe.FFt[fwdindex.FieldTerm{Field: ids.FieldTitle, Term: termID}] = 3

	q := &queryfile.QueryTrain{ID: "q1", QFt: map[ids.TermId]uint32{termID: 1}}
	ext := NewExtractor(lex, fwd, config.Default())
	cols, err := ext.Extract(q, docID, 0)
	require.NoError(t, err)

	assert.Less(t, col(t, cols, "stream_len_title"), 0.0)
	assert.Less(t, col(t, cols, "tag_count_title"), 0.0)
}
