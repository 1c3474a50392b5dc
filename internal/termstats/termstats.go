// Package termstats computes, for every posting list of length >= 4, the
// order statistics of a scoring kernel's values across that list.
//
// Grounded on the original include/term_feature.hpp's compute_*_stats
// family and on pkg/resorank/entropy.go's cache-and-aggregate-over-terms
// idiom. Per spec.md §9 Open Questions, geo_mean deliberately reproduces
// the reference "sum, not product" formula (Open Question 1) while
// std_dev is computed from the actually-derived variance rather than
// reproducing the source's uninitialized-variable bug (Open Question 3).
package termstats

import (
	"math"
	"sort"

	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/invidx"
	"github.com/kittclouds/rankgen/internal/scoring"
)

// MinPostingsForStats is the posting-list-length floor below which a
// term's summary is skipped entirely (spec §4.3).
const MinPostingsForStats = 4

// zeta is the confidence-interval constant used by spec §4.3's
// `confidence` feature (corresponds to a 95% normal-distribution bound).
const zeta = 1.960

// Summary holds one scorer's order statistics over a term's posting
// list, plus the frequency-only geo_mean (shared across scorers for a
// given term).
type Summary struct {
	Max        float64
	Min        float64
	Median     float64
	First      float64 // first quartile
	Third      float64 // third quartile
	Avg        float64
	Variance   float64
	StdDev     float64
	Confidence float64
	HMean      float64
	GeoMean    float64
}

// DocLenFunc resolves a document's length (or field length) for a given
// DocId; summarization is generic over whole-document or per-field
// scoring.
type DocLenFunc func(ids.DocId) float64

// Summarize computes Summary for kernel k applied across pl's postings.
// Returns (Summary{}, false) when pl has fewer than MinPostingsForStats
// entries.
func Summarize(pl *invidx.PostingList, k scoring.Kernel, ndocs, avgDLen float64, docLen DocLenFunc) (Summary, bool) {
	postings := pl.Postings()
	n := len(postings)
	if n < MinPostingsForStats {
		return Summary{}, false
	}

	values := make([]float64, n)
	var sumFreq float64
	for i, p := range postings {
		values[i] = k(scoring.Inputs{
			FDt:     float64(p.Freq),
			FT:      float64(n),
			CF:      float64(pl.TotalCount),
			WD:      docLen(p.Doc),
			NDocs:   ndocs,
			AvgDLen: avgDLen,
		})
		sumFreq += float64(p.Freq)
	}

	return SummarizeValues(values, sumFreq)
}

// SummarizeValues computes the same order statistics as Summarize
// directly over a slice of scored values, given the sum the geo_mean
// reference formula uses (spec.md §9 Open Question 1: pow(sum, 1/n),
// not pow(product, 1/n)). Shared by Summarize and by cmd/fgen_bigram,
// which distributes the same statistics over per-document bigram window
// counts rather than a posting list.
func SummarizeValues(values []float64, sum float64) (Summary, bool) {
	n := len(values)
	if n < MinPostingsForStats {
		return Summary{}, false
	}
	values = append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	quartile := func(idx int) float64 {
		lo := values[idx]
		if n%2 == 0 {
			return (lo + values[idx-1]) / 2
		}
		return lo
	}

	s := Summary{
		Max:    values[0],
		Min:    values[n-1],
		Median: quartile(n / 2),
		First:  quartile(n / 4),
		Third:  quartile(3 * n / 4),
	}

	var sumV, sumSq, sumInv float64
	for _, v := range values {
		sumV += v
		sumSq += v * v
		sumInv += 1 / v
	}
	nf := float64(n)
	s.Avg = sumV / nf
	s.Variance = sumSq/nf - s.Avg*s.Avg
	s.StdDev = math.Sqrt(s.Variance)
	s.Confidence = zeta * s.StdDev / math.Sqrt(nf)
	s.HMean = nf / sumInv
	s.GeoMean = math.Pow(sum, 1/nf)

	return s, true
}
