package termstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/invidx"
	"github.com/kittclouds/rankgen/internal/scoring"
)

func TestSummarizeProbabilityScenario(t *testing.T) {
	pl := invidx.NewPostingList("w")
	pl.Add(1, 10)
	pl.Add(2, 20)
	pl.Add(3, 30)
	pl.Add(4, 40)

	docLen := func(d ids.DocId) float64 { return 100 }

	sum, ok := Summarize(pl, scoring.ProbabilityKernel, 1000, 100, docLen)
	require.True(t, ok)

	assert.InDelta(t, 0.4, sum.Max, 1e-9)
	assert.InDelta(t, 0.1, sum.Min, 1e-9)
	assert.InDelta(t, 0.25, sum.Median, 1e-9)
	assert.InDelta(t, 0.35, sum.First, 1e-9)
	assert.InDelta(t, 0.15, sum.Third, 1e-9)
	assert.InDelta(t, 0.25, sum.Avg, 1e-9)
	assert.InDelta(t, 0.0125, sum.Variance, 1e-9)
	assert.InDelta(t, 0.19200, sum.HMean, 1e-4)
}

func TestSummarizeSkipsShortLists(t *testing.T) {
	pl := invidx.NewPostingList("rare")
	pl.Add(1, 1)
	pl.Add(2, 1)

	_, ok := Summarize(pl, scoring.ProbabilityKernel, 1000, 100, func(ids.DocId) float64 { return 100 })
	assert.False(t, ok)
}

func TestSummarizeOrderingInvariant(t *testing.T) {
	pl := invidx.NewPostingList("w")
	pl.Add(1, 3)
	pl.Add(2, 9)
	pl.Add(3, 1)
	pl.Add(4, 7)
	pl.Add(5, 5)

	docLen := func(ids.DocId) float64 { return 50 }
	sum, ok := Summarize(pl, scoring.ProbabilityKernel, 1000, 50, docLen)
	require.True(t, ok)

	assert.LessOrEqual(t, sum.Min, sum.First)
	assert.LessOrEqual(t, sum.First, sum.Median)
	assert.LessOrEqual(t, sum.Median, sum.Third)
	assert.LessOrEqual(t, sum.Third, sum.Max)
	assert.GreaterOrEqual(t, sum.Avg, sum.Min)
	assert.LessOrEqual(t, sum.Avg, sum.Max)
	assert.LessOrEqual(t, sum.HMean, sum.Avg)
}
