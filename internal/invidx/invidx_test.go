package invidx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rankgen/internal/ids"
)

func TestAddMergesRepeatedDocFreqs(t *testing.T) {
	pl := NewPostingList("w")
	pl.Add(5, 2)
	pl.Add(5, 3)
	pl.Add(1, 1)

	assert.Equal(t, 2, pl.Len())
	assert.EqualValues(t, 5, pl.Freq(5))
	assert.EqualValues(t, 6, pl.TotalCount)
}

func TestPostingsAreDocSorted(t *testing.T) {
	pl := NewPostingList("w")
	pl.Add(9, 1)
	pl.Add(2, 1)
	pl.Add(5, 1)

	postings := pl.Postings()
	require.Len(t, postings, 3)
	assert.Equal(t, []ids.DocId{2, 5, 9}, []ids.DocId{postings[0].Doc, postings[1].Doc, postings[2].Doc})
}

func TestPromotionToBitmapPreservesContents(t *testing.T) {
	pl := NewPostingList("w")
	pl.threshold = 4
	for d := ids.DocId(1); d <= 10; d++ {
		pl.Add(d, uint32(d))
	}
	require.NotNil(t, pl.bm)
	assert.Equal(t, 10, pl.Len())
	assert.EqualValues(t, 7, pl.Freq(7))
	assert.EqualValues(t, 0, pl.Freq(999))
}

func TestGobRoundTripPreservesPromotedList(t *testing.T) {
	ix := New()
	pl := ix.ListFor(3, "w")
	pl.threshold = 4
	for d := ids.DocId(1); d <= 10; d++ {
		pl.Add(d, uint32(d))
	}

	path := filepath.Join(t.TempDir(), "inv.gob")
	require.NoError(t, ix.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	got := loaded.Lists[3]
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Len())
	assert.EqualValues(t, 7, got.Freq(7))
	assert.EqualValues(t, pl.TotalCount, got.TotalCount)
}

func TestListForCreatesOnFirstAccess(t *testing.T) {
	ix := New()
	pl1 := ix.ListFor(1, "a")
	pl2 := ix.ListFor(1, "a")
	assert.Same(t, pl1, pl2)
}
