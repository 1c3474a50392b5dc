package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAssignsDenseIdsAndCounts(t *testing.T) {
	text := strings.Join([]string{
		"d1\ttitle\tgolang ranking",
		"d1\tbody\tgolang ranking is fun and fast",
		"d1\turl\thttp://a/b/c?d/e/f",
		"d1\tpagerank\t0.75",
		"d2\tbody\tranking models and scoring",
		"d2\ttitle\tranking models",
	}, "\n")

	built, err := Build(strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, uint64(2), built.Lexicon.NumDocs)
	assert.EqualValues(t, 2, built.Forward.NumDocs)

	golangID := built.Lexicon.TermIDOf("golang")
	require.NotZero(t, golangID)
	term := built.Lexicon.Lookup(golangID)
	assert.EqualValues(t, 1, term.Counts.DocCount) // only d1 has "golang"

	d1 := built.Forward.Lookup(built.Forward.DocIDOf("d1"))
	require.NotNil(t, d1)
	assert.InDelta(t, 0.75, d1.PageRank, 1e-9)
	assert.Equal(t, 2, d1.URL.SlashCount)

	pl := built.Inverted.Lists[golangID]
	require.NotNil(t, pl)
	assert.Equal(t, 1, pl.Len())
}

func TestURLStatsSlashCountAndLength(t *testing.T) {
	u := "http://a/b/c?d/e/f"
	stats := urlStats(u)
	assert.Equal(t, 2, stats.SlashCount)
	assert.Equal(t, len(u), stats.ByteLength)
}

func TestBuildRejectsMalformedLine(t *testing.T) {
	_, err := Build(strings.NewReader("not-enough-fields"))
	assert.Error(t, err)
}

func TestBuildRejectsUnknownField(t *testing.T) {
	_, err := Build(strings.NewReader("d1\tbogus\tsome tokens"))
	assert.Error(t, err)
}
