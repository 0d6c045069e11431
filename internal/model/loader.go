package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File-loading failures, distinct from each other and from dimension
// errors so the caller can report each cause precisely.
var (
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrArtifactCorrupt  = errors.New("model artifact corrupt")
)

type artifactDocument struct {
	FeatureMeans  []float64 `json:"feature_means"`
	FeatureScales []float64 `json:"feature_scales"`
	Coefficients  []float64 `json:"coefficients"`
	Intercept     *float64  `json:"intercept"`
}

// LoadFile reads a serialized parameter document from disk and builds an
// artifact from it. The production path uses Embedded instead; this exists
// for deployments that ship retrained parameters without a rebuild.
func LoadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	var doc artifactDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if doc.Intercept == nil {
		return nil, fmt.Errorf("%w: missing intercept", ErrArtifactCorrupt)
	}
	if len(doc.Coefficients) == 0 {
		return nil, fmt.Errorf("%w: missing coefficients", ErrArtifactCorrupt)
	}
	return New(doc.FeatureMeans, doc.FeatureScales, doc.Coefficients, *doc.Intercept)
}
