package predict

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"diabetes-outcome-eval/internal/model"
)

// Request-validation and evaluation failures. Wrapped messages name the
// offending field or counts; callers match with errors.Is.
var (
	ErrMissingField         = errors.New("missing field")
	ErrNotNumeric           = errors.New("field is not numeric")
	ErrFeatureCountMismatch = errors.New("feature count mismatch")
	ErrModelUnavailable     = errors.New("model unavailable")
	ErrPredictionFailure    = errors.New("prediction failure")
)

const unavailableMessage = "The model could not be loaded, so predictions are not available."

// Adapter turns raw form values into feature vectors and runs them through
// the shared artifact. The artifact (or the startup load error) is fixed
// at construction; the adapter itself is stateless per request.
type Adapter struct {
	artifact *model.Artifact
	loadErr  error
}

// NewAdapter wires the adapter to a loaded artifact.
func NewAdapter(artifact *model.Artifact) *Adapter {
	return &Adapter{artifact: artifact}
}

// NewUnavailable builds an adapter that reports every evaluation as
// model-unavailable, remembering the startup failure that caused it.
func NewUnavailable(loadErr error) *Adapter {
	return &Adapter{loadErr: loadErr}
}

// Available reports whether the adapter holds a usable artifact.
func (a *Adapter) Available() bool {
	return a.artifact != nil
}

// FeatureCount returns the artifact's declared feature count, or the
// canonical field count when the artifact is unavailable.
func (a *Adapter) FeatureCount() int {
	if a.artifact == nil {
		return len(Fields)
	}
	return a.artifact.FeatureCount()
}

// ParseFeatures collects the recognized fields in canonical order from the
// lookup function (typically a form's Get). Validation stops at the first
// failing field.
func (a *Adapter) ParseFeatures(value func(name string) string) ([]float64, error) {
	features := make([]float64, 0, len(Fields))
	for _, field := range Fields {
		raw := value(field.Name)
		if raw == "" {
			return nil, fmt.Errorf("%w: %q is required", ErrMissingField, field.Name)
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %q must be numeric", ErrNotNumeric, field.Name)
		}
		features = append(features, parsed)
	}
	if expected := a.FeatureCount(); len(features) != expected {
		return nil, fmt.Errorf("%w: model expects %d features, got %d",
			ErrFeatureCountMismatch, expected, len(features))
	}
	return features, nil
}

// Result is the display-ready outcome of one evaluation. Exactly one of
// Prediction and Message is meaningful, selected by OK. Features holds the
// parsed vector on success so callers can persist it.
type Result struct {
	OK         bool
	Prediction float64
	Features   []float64
	Message    string
	Err        error
}

// Evaluate parses the form values and runs the prediction, mapping every
// failure to a user-facing message. Failures are terminal for the request.
func (a *Adapter) Evaluate(value func(name string) string) Result {
	if a.artifact == nil {
		logrus.WithError(a.loadErr).Warn("prediction requested while model unavailable")
		return Result{Message: unavailableMessage, Err: ErrModelUnavailable}
	}

	features, err := a.ParseFeatures(value)
	if err != nil {
		return Result{Message: err.Error(), Err: err}
	}

	prediction, err := a.artifact.Predict(features)
	if err != nil {
		return Result{Message: err.Error(), Err: err}
	}
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		err := fmt.Errorf("%w: result is not finite", ErrPredictionFailure)
		logrus.WithField("features", features).Error("non-finite prediction")
		return Result{Message: err.Error(), Err: err}
	}
	return Result{OK: true, Prediction: prediction, Features: features}
}
