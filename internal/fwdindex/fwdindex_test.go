package fwdindex

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rankgen/internal/ids"
)

func TestFinalizeComputesAvgDLenOverRealEntriesOnly(t *testing.T) {
	fi := New()
	e1 := NewFreqsEntry()
	e1.DocLength = 100
	e2 := NewFreqsEntry()
	e2.DocLength = 200
	fi.Add(*e1)
	fi.Add(*e2)

	fi.Finalize()
	assert.EqualValues(t, 2, fi.NumDocs)
	assert.InDelta(t, 150.0, fi.AvgDLen, 1e-9)
}

func TestFinalizeOnEmptyIndexIsZero(t *testing.T) {
	fi := New()
	fi.Finalize()
	assert.EqualValues(t, 0, fi.NumDocs)
	assert.Equal(t, 0.0, fi.AvgDLen)
}

func TestLookupOutOfRangeIsNil(t *testing.T) {
	fi := New()
	assert.Nil(t, fi.Lookup(0))
	assert.Nil(t, fi.Lookup(50))
}

func TestDocIDOfResolvesByDocnoAndMissesAsZero(t *testing.T) {
	fi := New()
	e := NewFreqsEntry()
	e.Docno = "DOC001"
	docID := fi.Add(*e)

	assert.Equal(t, docID, fi.DocIDOf("DOC001"))
	assert.Equal(t, ids.DocId(0), fi.DocIDOf("missing"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fi := New()
	e := NewFreqsEntry()
	e.Docno = "DOC001"
	e.DocLength = 42
	e.DFt[7] = 3
	fi.Add(*e)
	fi.Finalize()

	path := filepath.Join(t.TempDir(), "fwd.gob")
	require.NoError(t, fi.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 1, loaded.NumDocs)
	got := loaded.Lookup(1)
	require.NotNil(t, got)
	assert.EqualValues(t, 42, got.DocLength)
	assert.EqualValues(t, 3, got.DFt[7])
}
