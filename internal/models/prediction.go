package models

import "time"

// PredictionBasis tags the provenance of a forecast.
type PredictionBasis string

const (
	BasisHistory  PredictionBasis = "history"
	BasisFallback PredictionBasis = "fallback"
)

// MaintenancePrediction is the engine's forecast for one service category.
// It is computed on demand and never persisted.
type MaintenancePrediction struct {
	Type        string          `json:"type"` // canonical category
	NextDate    time.Time       `json:"next_date"`
	NextMileage int             `json:"next_mileage"`
	Confidence  float64         `json:"confidence"` // in [0,1]
	Basis       PredictionBasis `json:"basis"`
	LastDate    time.Time       `json:"last_date"`
	LastMileage int             `json:"last_mileage"`
	IsFallback  bool            `json:"is_fallback"`
}
