// Package config holds the tunable scoring and window-scanner parameters,
// loadable from a YAML file, grounded on resorank.ResoRankConfig /
// DefaultConfig's shape.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BM25Params is a (k1, b) preset. BM25 parameters are conventionally
// encoded as hundredths of a unit in the source tools; this type stores
// the decoded floats.
type BM25Params struct {
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`
}

// BM25Presets are the three named parameter sets the feature extractor
// recognizes.
type BM25Presets struct {
	Atire      BM25Params `yaml:"atire"`
	Trec3      BM25Params `yaml:"trec3"`
	Trec3Kmax  BM25Params `yaml:"trec3_kmax"`
}

// LMDirMus are the three Dirichlet smoothing constants recognized.
type LMDirMus struct {
	Mu1000 float64 `yaml:"mu_1000"`
	Mu1500 float64 `yaml:"mu_1500"`
	Mu2500 float64 `yaml:"mu_2500"`
}

// WindowOptions configures the window scanner and bigram/TP features.
// Only BigramSize, TPSize, ProximityK1 and ProximityB are read by
// internal/docfeat; Ordered, Overlap and IndriLike are loaded but not
// read by any feature, which always scans unordered with overlap.
type WindowOptions struct {
	BigramSize     int     `yaml:"bigram_window_size"`
	TPSize         int     `yaml:"tp_window_size"`
	Ordered        bool    `yaml:"ordered"`
	Overlap        bool    `yaml:"overlap"`
	IndriLike      bool    `yaml:"indri_like"`
	ProximityK1    float64 `yaml:"proximity_k1"`
	ProximityB     float64 `yaml:"proximity_b"`
}

// ScoringConfig is the full set of knobs a feature-generation run reads.
type ScoringConfig struct {
	BM25   BM25Presets   `yaml:"bm25"`
	LMDir  LMDirMus      `yaml:"lm_dir"`
	Window WindowOptions `yaml:"window"`
}

// Default returns the literal parameter values named in §4.1/§4.2/§4.4.
func Default() ScoringConfig {
	return ScoringConfig{
		BM25: BM25Presets{
			Atire:     BM25Params{K1: 0.9, B: 0.4},
			Trec3:     BM25Params{K1: 1.2, B: 0.75},
			Trec3Kmax: BM25Params{K1: 2.0, B: 0.75},
		},
		LMDir: LMDirMus{Mu1000: 1000, Mu1500: 1500, Mu2500: 2500},
		Window: WindowOptions{
			BigramSize:  8,
			TPSize:      100,
			Ordered:     false,
			Overlap:     true,
			IndriLike:   false,
			ProximityK1: 0.9,
			ProximityB:  0.4,
		},
	}
}

// Load reads a YAML config file, falling back to Default() for any field
// the file omits.
func Load(path string) (ScoringConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
