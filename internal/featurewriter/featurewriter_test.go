package featurewriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rankgen/internal/docfeat"
)

func TestWriteRowFixedColumnOrderAndFormat(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	row := Row{
		Label: 1,
		QID:   "q1",
		Docno: "DOC001",
		Columns: []docfeat.Column{
			{Name: "pagerank", Value: 0.5},
			{Name: "bm25_atire", Value: 4.672456},
		},
	}
	require.NoError(t, w.WriteHeader(row))
	require.NoError(t, w.WriteRow(row))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "label,qid,docno,pagerank,bm25_atire", lines[0])
	assert.Equal(t, "1,q1,DOC001,0.50000,4.67246", lines[1])
}

func TestWriteHeaderOnlyOnce(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	row := Row{Label: 0, QID: "q1", Docno: "d1", Columns: []docfeat.Column{{Name: "x", Value: 1}}}

	require.NoError(t, w.WriteHeader(row))
	require.NoError(t, w.WriteHeader(row))
	require.NoError(t, w.Flush())

	assert.Equal(t, 1, strings.Count(buf.String(), "label,qid,docno"))
}
