package docfeat

import (
	"math"

	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/queryfile"
	"github.com/kittclouds/rankgen/internal/scoring"
	"github.com/kittclouds/rankgen/internal/window"
)

// proximityFeatures computes bm25_bigram_u8, bm25_tp_dist_w100, and
// tpscore for the document, per spec.md §4.2.
//
// rw_idf_weight's "doc_count" parameter is resolved against the
// original include/features/tpscore/doc_tpscore_feature.hpp, which
// passes the within-document term frequency (freqs.d_ft[term]), not a
// lexicon-level collection document count — spec.md §4.2 is silent on
// which, this follows the original verbatim (see DESIGN.md).
func (e *Extractor) proximityFeatures(q *queryfile.QueryTrain, fe *fwdindex.FreqsEntry, ndocs, avgDLen float64) (bigram, tpDist, tpScore float64) {
	unique := q.UniqueTermIds()

	bigram = e.bigramU8(unique, fe)
	tpDist = e.tpDistW100(unique, fe)

	bm25AtireDoc := e.scoreScorer(scoring.Bm25Atire, q, fe, ndocs, avgDLen).Doc
	bctp := e.bctp(unique, fe, ndocs, avgDLen)
	tpScore = bm25AtireDoc + bctp
	return
}

func (e *Extractor) bigramU8(unique []ids.TermId, fe *fwdindex.FreqsEntry) float64 {
	w := uint32(e.Cfg.Window.BigramSize)
	total := 0
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			pair := [][]uint32{fe.Positions[unique[i]], fe.Positions[unique[j]]}
			total += window.Count(pair, w, false, true)
		}
	}
	return float64(total)
}

func (e *Extractor) tpDistW100(unique []ids.TermId, fe *fwdindex.FreqsEntry) float64 {
	w := uint32(e.Cfg.Window.TPSize)
	if len(unique) == 0 {
		return 0
	}
	positions := make([][]uint32, len(unique))
	for i, t := range unique {
		positions[i] = fe.Positions[t]
	}
	return float64(window.Count(positions, w, false, true))
}

// bctp implements the bigram-constrained-term-pair proximity
// accumulator described in spec.md §4.2's BCTP bullets.
func (e *Extractor) bctp(unique []ids.TermId, fe *fwdindex.FreqsEntry, ndocs, avgDLen float64) float64 {
	n := len(unique)
	if n < 3 || float64(fe.DocLength) < float64(n) {
		return 0
	}
	tpWindow := uint32(e.Cfg.Window.TPSize)
	k1 := e.Cfg.Window.ProximityK1
	b := e.Cfg.Window.ProximityB

	rwIDF := func(t ids.TermId) float64 {
		docCount := fe.DFt[t]
		if docCount == 0 {
			return 0
		}
		return math.Log(ndocs / float64(docCount))
	}

	acc := make(map[ids.TermId]float64, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ti, tj := unique[i], unique[j]
			for _, pi := range fe.Positions[ti] {
				for _, pj := range fe.Positions[tj] {
					lo, hi := pi, pj
					var a, c ids.TermId
					if pi < pj {
						a, c = ti, tj
					} else if pj < pi {
						lo, hi = pj, pi
						a, c = tj, ti
					} else {
						continue // identical position, no strict ordering
					}
					dist := hi - lo
					if dist == 0 || dist >= tpWindow {
						continue
					}
					invSq := 1.0 / (float64(dist) * float64(dist))
					acc[a] += rwIDF(c) * invSq
					acc[c] += rwIDF(a) * invSq
				}
			}
		}
	}

	kd := k1 * ((1 - b) + b*float64(fe.DocLength)/avgDLen)
	var total float64
	for _, w := range acc {
		weight := w
		if weight > 1 {
			weight = 1
		}
		x := w * (1 + k1)
		y := w + kd
		if y == 0 {
			continue
		}
		total += weight * (x / y)
	}
	return total
}
