package model

import "time"

// Prediction is a harvest-readiness score produced by an external model
// run. This service only reads them.
type Prediction struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FarmID           uint      `json:"farm_id" gorm:"index;not null"`
	TreeID           uint      `json:"tree_id" gorm:"index;not null"`
	PredictionResult string    `json:"prediction_result" gorm:"size:255"`
	Accuracy         float64   `json:"accuracy"`
	CreatedAt        time.Time `json:"created_at"`
}
