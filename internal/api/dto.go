package api

import (
	"time"

	"diabetes-outcome-eval/internal/store"
)

// FieldDTO describes one clinical input field for API consumers.
type FieldDTO struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ConfigResponse exposes the model surface to frontends.
type ConfigResponse struct {
	Fields         []FieldDTO `json:"fields"`
	FeatureCount   int        `json:"feature_count"`
	ModelSource    string     `json:"model_source"`
	ModelLoaded    bool       `json:"model_loaded"`
	HistoryEnabled bool       `json:"history_enabled"`
}

// PredictResponse carries a successful prediction.
type PredictResponse struct {
	Prediction float64 `json:"prediction"`
}

// PredictionDTO is the API representation of a stored prediction.
type PredictionDTO struct {
	ID         uint      `json:"id"`
	Features   []float64 `json:"features"`
	Prediction float64   `json:"prediction"`
	CreatedAt  time.Time `json:"created_at"`
}

// PredictionsResponse holds recent history items.
type PredictionsResponse struct {
	Items []PredictionDTO `json:"items"`
}

// PredictionFromModel converts a persisted record to its DTO.
func PredictionFromModel(record store.PredictionRecord) PredictionDTO {
	return PredictionDTO{
		ID:         record.ID,
		Features:   record.Features(),
		Prediction: record.Prediction,
		CreatedAt:  record.CreatedAt,
	}
}
