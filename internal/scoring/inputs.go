// Package scoring implements the stateless scoring kernels: BM25, LM-Dir,
// TF·IDF, Probability, Bose-Einstein, DPH, and DFR/BB2.
//
// Grounded on pkg/resorank/math.go's CalculateIDF/NormalizedTermFrequency/
// Saturate (the same saturating-TF-over-length-norm shape, generalized
// here to the full scorer family the original C++ term_feature.hpp
// implements), dispatched through a tagged-variant Kernel per REDESIGN
// FLAGS (spec.md §9) rather than the original's per-scorer class
// hierarchy.
package scoring

import "math"

// Inputs bundles the subset of (f_dt, f_t, c_f, W_d, W_c, ndocs,
// avg_dlen, f_qt, µ) a given kernel reads. Kernels ignore fields they
// don't need.
type Inputs struct {
	FDt     float64 // within-document/within-field term frequency
	FT      float64 // document_count(t): documents containing t
	CF      float64 // term_count(t): collection occurrences of t
	WD      float64 // document (or field) length
	WC      float64 // collection (or field) length
	NDocs   float64 // number of documents in the collection
	AvgDLen float64 // average document length
	FQt     float64 // within-query frequency of t
	Mu      float64 // LM-Dirichlet smoothing constant
	K1      float64 // BM25 k1
	B       float64 // BM25 b
}

// Kernel is a single scoring model, evaluated over Inputs already
// filtered to the advertised domain (FDt >= 1, WD >= 1, CF >= 1,
// NDocs >= 1 — the caller guarantees this; kernels do not themselves
// filter zeros).
type Kernel func(Inputs) float64

// Kind names a recognized scorer.
type Kind string

const (
	Bm25Atire     Kind = "bm25_atire"
	Bm25Trec3     Kind = "bm25_trec3"
	Bm25Trec3Kmax Kind = "bm25_trec3_kmax"
	LmDir1000     Kind = "lm_dir_1000"
	LmDir1500     Kind = "lm_dir_1500"
	LmDir2500     Kind = "lm_dir_2500"
	Tfidf         Kind = "tfidf"
	Probability   Kind = "probability"
	Be            Kind = "be"
	Dph           Kind = "dph"
	Dfr           Kind = "dfr"
)

// AllKinds lists every recognized scorer in the column order the feature
// writer emits them (excluding the bigram/TP variants, which are
// produced by internal/docfeat directly).
var AllKinds = []Kind{Bm25Atire, Bm25Trec3, Bm25Trec3Kmax, LmDir2500, LmDir1500, LmDir1000, Tfidf, Probability, Be, Dph, Dfr}

// Bm25Kinds are the three BM25 presets, emitted first per spec.md §4.5's
// fixed column order (immediately after pagerank/stage0_score, before
// the bigram/TP-score columns).
var Bm25Kinds = []Kind{Bm25Atire, Bm25Trec3, Bm25Trec3Kmax}

// RestKinds are every non-BM25 scorer, emitted after the bigram/TP-score
// columns per spec.md §4.5.
var RestKinds = []Kind{LmDir2500, LmDir1500, LmDir1000, Tfidf, Probability, Be, Dph, Dfr}

// epsilon is the strictly-positive floor on the BM25 query weight.
const epsilon = 1e-6

// BM25 returns a kernel for the given (k1, b) preset.
func BM25(k1, b float64) Kernel {
	return func(in Inputs) float64 {
		ratio := (in.NDocs - in.FT + 0.5) / (in.FT + 0.5)
		wqt := math.Log(ratio) * in.FQt
		if wqt < epsilon {
			wqt = epsilon
		}
		kd := k1 * ((1 - b) + b*in.WD/in.AvgDLen)
		wdt := (k1 + 1) * in.FDt / (kd + in.FDt)
		return wdt * wqt
	}
}

// LMDir returns a kernel for Dirichlet-smoothed language-model scoring
// at the given µ.
func LMDir(mu float64) Kernel {
	return func(in Inputs) float64 {
		num := in.FDt + mu*in.CF/in.WC
		den := in.WD + mu
		return math.Log(num / den)
	}
}

// TFIDF scores the length-normalized TF (1 + ln f_dt)/W_d against an
// IDF term ln(1 + ndocs/f_t).
func TFIDF(in Inputs) float64 {
	return (1 / in.WD) * (1 + math.Log(in.FDt)) * math.Log(1+in.NDocs/in.FT)
}

// ProbabilityKernel is the raw relative-frequency model.
func ProbabilityKernel(in Inputs) float64 {
	return in.FDt / in.WD
}

// BE is the Bose-Einstein divergence-from-randomness model.
func BE(in Inputs) float64 {
	l := math.Log(1 + in.CF/in.NDocs)
	r := math.Log(1 + in.NDocs/in.CF)
	p := in.FDt * math.Log(1+in.AvgDLen/in.WD)
	return (l + p*r) / (p + 1)
}

// DPH is the hypergeometric DFR model with no free parameters.
func DPH(in Inputs) float64 {
	f := in.FDt / in.WD
	norm := (1 - f) * (1 - f) / (in.FDt + 1)
	term1 := in.FDt * math.Log2(in.FDt*in.AvgDLen/in.WD*in.NDocs/in.CF)
	term2 := 0.5 * math.Log2(2*math.Pi*in.FDt*(1-f))
	return norm * (term1 + term2)
}

// DFR is the BB2 (Bose-Einstein model 2) DFR variant.
func DFR(in Inputs) float64 {
	ne := in.NDocs * (1 - math.Pow((in.NDocs-1)/in.NDocs, in.CF))
	ir := math.Log2((in.NDocs + 1) / (ne + 0.5))
	p := in.FDt * math.Log2(1+in.AvgDLen/in.WD)
	cIdf := in.FT
	return p * ir * ((in.CF + 1) / (cIdf * (p + 1)))
}

// KernelFor resolves a Kind to its evaluable Kernel, taking the BM25
// (k1, b) preset from bm25 and the LM µ value from mu.
func KernelFor(k Kind, bm25 func(Kind) (float64, float64), mu func(Kind) float64) Kernel {
	switch k {
	case Bm25Atire, Bm25Trec3, Bm25Trec3Kmax:
		k1, b := bm25(k)
		return BM25(k1, b)
	case LmDir1000, LmDir1500, LmDir2500:
		return LMDir(mu(k))
	case Tfidf:
		return TFIDF
	case Probability:
		return ProbabilityKernel
	case Be:
		return BE
	case Dph:
		return DPH
	case Dfr:
		return DFR
	default:
		return nil
	}
}

// IsFinite reports whether v is a valid (non-NaN, non-Inf) score, per
// spec §7's numeric-fault rule.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
