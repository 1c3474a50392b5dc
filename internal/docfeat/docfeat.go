// Package docfeat is the per-document feature extractor: for a
// (QueryTrain, candidate document) pair it produces one aggregate score
// per scorer plus its per-field breakdown, stream-length statistics, tag
// counts, URL features, and the bigram/TP-score proximity features.
//
// Grounded on pkg/resorank/scorer.go's Score/scoreTermBM25F field loop
// (accumulate a per-field score by walking the query's terms against a
// per-field posting), generalized here to the fixed scorer family and
// field set of spec.md §4.1/§4.2, and on the original
// include/features/doc_feature.hpp field dispatch table
// (`_fields = {"body","title","heading","inlink","a"}`).
package docfeat

import (
	"fmt"

	"github.com/kittclouds/rankgen/internal/config"
	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/lexicon"
	"github.com/kittclouds/rankgen/internal/queryfile"
	"github.com/kittclouds/rankgen/internal/scoring"
)

// ScorerScores holds one scorer's whole-document score plus its
// per-field breakdown, in ids.ScoredFields order.
type ScorerScores struct {
	Doc    float64
	Fields [len(ids.ScoredFields)]float64
}

// Column is one named output value; docfeat builds these in the exact
// order spec.md §4.5 specifies, so featurewriter can write them without
// re-deriving the layout.
type Column struct {
	Name  string
	Value float64
}

// Extractor holds the collaborators a run needs repeatedly: the lexicon,
// the forward index (for avg doc length / ndocs), and the resolved
// scoring config. One Extractor is shared read-only across worker
// goroutines; Extract itself is reentrant (stack-allocated scratch
// only).
type Extractor struct {
	Lex *lexicon.Lexicon
	Fwd *fwdindex.ForwardIndex
	Cfg config.ScoringConfig

	kernels map[scoring.Kind]scoring.Kernel
}

// NewExtractor builds an Extractor with its kernel table resolved from
// cfg.
func NewExtractor(lex *lexicon.Lexicon, fwd *fwdindex.ForwardIndex, cfg config.ScoringConfig) *Extractor {
	e := &Extractor{Lex: lex, Fwd: fwd, Cfg: cfg}
	bm25 := func(k scoring.Kind) (float64, float64) {
		switch k {
		case scoring.Bm25Atire:
			return cfg.BM25.Atire.K1, cfg.BM25.Atire.B
		case scoring.Bm25Trec3:
			return cfg.BM25.Trec3.K1, cfg.BM25.Trec3.B
		case scoring.Bm25Trec3Kmax:
			return cfg.BM25.Trec3Kmax.K1, cfg.BM25.Trec3Kmax.B
		}
		return cfg.BM25.Atire.K1, cfg.BM25.Atire.B
	}
	mu := func(k scoring.Kind) float64 {
		switch k {
		case scoring.LmDir1000:
			return cfg.LMDir.Mu1000
		case scoring.LmDir1500:
			return cfg.LMDir.Mu1500
		case scoring.LmDir2500:
			return cfg.LMDir.Mu2500
		}
		return cfg.LMDir.Mu2500
	}
	e.kernels = make(map[scoring.Kind]scoring.Kernel, len(scoring.AllKinds))
	for _, k := range scoring.AllKinds {
		e.kernels[k] = scoring.KernelFor(k, bm25, mu)
	}
	return e
}

// scoreScorer evaluates one scorer over every query term present in the
// document, producing the whole-document score plus the per-field
// breakdown (spec.md §4.2 step 2).
func (e *Extractor) scoreScorer(k scoring.Kind, q *queryfile.QueryTrain, fe *fwdindex.FreqsEntry, ndocs, avgDLen float64) ScorerScores {
	kernel := e.kernels[k]
	var out ScorerScores

	for t, fqt := range q.QFt {
		if t == 0 {
			continue
		}
		fdt := fe.DFt[t]
		if fdt == 0 {
			continue
		}
		term := e.Lex.Lookup(t)
		if term == nil || term.Counts.DocCount == 0 || term.Counts.TermCount == 0 {
			continue
		}
		out.Doc += kernel(scoring.Inputs{
			FQt: float64(fqt), FDt: float64(fdt),
			FT: float64(term.Counts.DocCount), CF: float64(term.Counts.TermCount),
			WD: float64(fe.DocLength), WC: float64(e.Lex.NumTerms), NDocs: ndocs, AvgDLen: avgDLen,
		})

		for fi, field := range ids.ScoredFields {
			fieldLen := fe.FieldLen[field]
			fft := fe.FFt[fwdindex.FieldTerm{Field: field, Term: t}]
			fieldDocCount := term.DocCount(field)
			fieldTermCount := term.TermCount(field)
			if fieldLen == 0 || fft == 0 || fieldDocCount == 0 || fieldTermCount == 0 {
				continue
			}
			out.Fields[fi] += kernel(scoring.Inputs{
				FQt: float64(fqt), FDt: float64(fft),
				FT: float64(fieldDocCount), CF: float64(fieldTermCount),
				WD: float64(fieldLen), NDocs: ndocs, AvgDLen: avgDLen,
			})
		}
	}
	return out
}

// Extract produces the full ordered Column list for one (query,
// candidate) pair, checking every scorer result for the NaN/Inf fatal
// condition spec.md §7 requires. stage0Score is the first-stage TREC-run
// score for this (query, document) pair, carried through unscored as the
// second output column (spec.md §4.5).
func (e *Extractor) Extract(q *queryfile.QueryTrain, docID ids.DocId, stage0Score float64) ([]Column, error) {
	fe := e.Fwd.Lookup(docID)
	if fe == nil {
		return nil, fmt.Errorf("docfeat: unknown document id %d", docID)
	}
	ndocs := float64(e.Fwd.NumDocs)
	avgDLen := e.Fwd.AvgDLen

	var cols []Column
	cols = append(cols, Column{"pagerank", fe.PageRank}, Column{"stage0_score", stage0Score})

	emit := func(kinds []scoring.Kind) error {
		for _, k := range kinds {
			s := e.scoreScorer(k, q, fe, ndocs, avgDLen)
			if err := checkFinite(k, q.ID, docID, s.Doc); err != nil {
				return err
			}
			cols = append(cols, Column{string(k), s.Doc})
			for fi, field := range ids.ScoredFields {
				name := string(k) + "_" + field.String()
				if err := checkFinite(k, q.ID, docID, s.Fields[fi]); err != nil {
					return err
				}
				cols = append(cols, Column{name, s.Fields[fi]})
			}
		}
		return nil
	}

	if err := emit(scoring.Bm25Kinds); err != nil {
		return nil, err
	}

	bigram, tpDist, tpScore := e.proximityFeatures(q, fe, ndocs, avgDLen)
	cols = append(cols, Column{"bm25_bigram_u8", bigram})
	cols = append(cols, Column{"bm25_tp_dist_w100", tpDist})
	cols = append(cols, Column{"tpscore", tpScore})

	if err := emit(scoring.RestKinds); err != nil {
		return nil, err
	}

	cols = append(cols, e.streamFeatures(q, fe)...)
	cols = append(cols, e.tagQueryCounts(q, fe)...)
	cols = append(cols, e.tagCounts(fe)...)
	cols = append(cols, Column{"url_slashes", float64(fe.URL.SlashCount)}, Column{"url_length", float64(fe.URL.ByteLength)})

	return cols, nil
}

func checkFinite(k scoring.Kind, qid string, docID ids.DocId, v float64) error {
	if err := scoring.Check(k, qid, uint32(docID), v); err != nil {
		return err
	}
	return nil
}
