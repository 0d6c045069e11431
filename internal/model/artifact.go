package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for artifact construction and evaluation. Callers match
// with errors.Is; wrapped messages carry the specifics.
var (
	ErrInvalidParameters = errors.New("invalid model parameters")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
)

// Artifact is the pre-trained StandardScaler + Lasso pipeline reduced to
// plain parameters. It is immutable after construction and safe to share
// across concurrent Predict calls.
type Artifact struct {
	means     []float64
	scales    []float64
	coeffs    []float64
	intercept float64
}

// New validates and copies the parameter tables into an Artifact.
func New(means, scales, coeffs []float64, intercept float64) (*Artifact, error) {
	if len(means) != len(scales) || len(scales) != len(coeffs) {
		return nil, fmt.Errorf("%w: means=%d scales=%d coefficients=%d",
			ErrInvalidParameters, len(means), len(scales), len(coeffs))
	}
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: empty parameter tables", ErrInvalidParameters)
	}
	for i, s := range scales {
		if s == 0 {
			return nil, fmt.Errorf("%w: scale[%d] is zero", ErrInvalidParameters, i)
		}
	}
	a := &Artifact{
		means:     append([]float64(nil), means...),
		scales:    append([]float64(nil), scales...),
		coeffs:    append([]float64(nil), coeffs...),
		intercept: intercept,
	}
	return a, nil
}

// FeatureCount returns the number of features the artifact expects.
func (a *Artifact) FeatureCount() int {
	return len(a.coeffs)
}

// Predict standardizes the row and applies the linear combination. The
// accumulation runs in feature-index order so outputs are bit-for-bit
// reproducible against the exported pipeline.
func (a *Artifact) Predict(row []float64) (float64, error) {
	if len(row) != len(a.coeffs) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d",
			ErrDimensionMismatch, len(a.coeffs), len(row))
	}
	prediction := a.intercept
	for i, value := range row {
		z := (value - a.means[i]) / a.scales[i]
		prediction += a.coeffs[i] * z
	}
	return prediction, nil
}

// Intercept returns the constant term of the linear combination.
func (a *Artifact) Intercept() float64 {
	return a.intercept
}
