package model

import "time"

// Disease is an analytical record produced by an external detection
// pipeline. This service only reads them.
type Disease struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FarmID           uint      `json:"farm_id" gorm:"index;not null"`
	TreeID           uint      `json:"tree_id" gorm:"index;not null"`
	DiseaseName      string    `json:"disease_name" gorm:"size:255"`
	DiseasePhotoPath string    `json:"disease_photo_path" gorm:"size:512"`
	CreatedAt        time.Time `json:"created_at"`
}
