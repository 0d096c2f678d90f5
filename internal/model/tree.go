package model

import "time"

// Tree tracks per-farm harvest counts.
type Tree struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FarmID        uint      `json:"farm_id" gorm:"index;not null"`
	TreeCollected int       `json:"tree_collected"`
	TreeReady     int       `json:"tree_ready"`
	TreeNotReady  int       `json:"tree_notReady" gorm:"column:tree_not_ready"`
	CreatedAt     time.Time `json:"created_at"`

	TreePhotos []TreePhoto `json:"treePhotos,omitempty" gorm:"foreignKey:TreeID"`
}
