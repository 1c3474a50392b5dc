package queryfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rankgen/internal/ids"
)

func TestParseSplitsQidAndTokens(t *testing.T) {
	qs, err := Parse(strings.NewReader("301;international organized crime"))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "301", qs[0].ID)
	assert.Equal(t, []string{"international", "organized", "crime"}, qs[0].Terms)
}

func TestParseSkipsBlankLines(t *testing.T) {
	qs, err := Parse(strings.NewReader("301;a b\n\n302;c d\n"))
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	_, err := Parse(strings.NewReader("not a valid line"))
	assert.Error(t, err)
}

func TestResolveTermIdsKeepsDuplicatesInQFtButDedupsUnique(t *testing.T) {
	qs, err := Parse(strings.NewReader("301;crime crime organized"))
	require.NoError(t, err)
	q := &qs[0]

	lookup := func(stem string) ids.TermId {
		switch stem {
		case "crime":
			return 1
		case "organized":
			return 2
		}
		return 0
	}
	q.ResolveTermIds(lookup)

	assert.EqualValues(t, 2, q.QFt[1])
	assert.EqualValues(t, 1, q.QFt[2])
	assert.ElementsMatch(t, []ids.TermId{1, 2}, q.UniqueTermIds())
}

func TestResolveTermIdsUnknownStemMapsToZeroAndIsExcludedFromUnique(t *testing.T) {
	qs, err := Parse(strings.NewReader("301;crime bogus"))
	require.NoError(t, err)
	q := &qs[0]

	lookup := func(stem string) ids.TermId {
		if stem == "crime" {
			return 1
		}
		return 0
	}
	q.ResolveTermIds(lookup)
	assert.Equal(t, []ids.TermId{1}, q.UniqueTermIds())
}
