package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25AtireScenario(t *testing.T) {
	k := BM25(0.9, 0.4)
	score := k(Inputs{NDocs: 1000, AvgDLen: 100, FT: 50, FDt: 5, WD: 120, FQt: 1})
	assert.InDelta(t, 4.67246, score, 1e-4)
}

func TestLMDir2500Scenario(t *testing.T) {
	k := LMDir(2500)
	score := k(Inputs{FDt: 3, CF: 10000, WD: 200, WC: 1e9})
	assert.InDelta(t, -6.7954, score, 1e-3)
}

func TestProbabilityScenario(t *testing.T) {
	score := ProbabilityKernel(Inputs{FDt: 4, WD: 50})
	assert.InDelta(t, 0.08, score, 1e-9)
}

func TestProbabilityRoundTrip(t *testing.T) {
	score := ProbabilityKernel(Inputs{FDt: 120, WD: 120})
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestBM25QueryWeightClampedPositive(t *testing.T) {
	k := BM25(1.2, 0.75)
	// f_t very close to ndocs drives the raw log ratio negative.
	score := k(Inputs{NDocs: 100, AvgDLen: 50, FT: 99, FDt: 1, WD: 50, FQt: 1})
	require.True(t, IsFinite(score))
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestDFRFamilyFinite(t *testing.T) {
	in := Inputs{FDt: 3, WD: 100, AvgDLen: 120, NDocs: 5000, FT: 200, CF: 800}
	for _, k := range []Kernel{BE, DPH, DFR} {
		v := k(in)
		assert.True(t, IsFinite(v), "expected finite score, got %v", v)
	}
}

func TestLMDirMonotonicDecreasingSensitivityWithMu(t *testing.T) {
	base := Inputs{CF: 10000, WD: 200, WC: 1e9}
	delta := func(mu float64) float64 {
		lo := LMDir(mu)(Inputs{FDt: 1, CF: base.CF, WD: base.WD, WC: base.WC})
		hi := LMDir(mu)(Inputs{FDt: 50, CF: base.CF, WD: base.WD, WC: base.WC})
		return math.Abs(hi - lo)
	}
	assert.Greater(t, delta(1000), delta(2500))
}

func TestKernelForResolvesPresets(t *testing.T) {
	bm25 := func(k Kind) (float64, float64) {
		switch k {
		case Bm25Atire:
			return 0.9, 0.4
		case Bm25Trec3:
			return 1.2, 0.75
		case Bm25Trec3Kmax:
			return 2.0, 0.75
		}
		return 0, 0
	}
	mu := func(k Kind) float64 {
		switch k {
		case LmDir1000:
			return 1000
		case LmDir1500:
			return 1500
		case LmDir2500:
			return 2500
		}
		return 0
	}
	for _, k := range AllKinds {
		kernel := KernelFor(k, bm25, mu)
		require.NotNil(t, kernel, "kind %s", k)
	}
}
