package model

// TreePhoto holds the public-relative path of an uploaded tree image.
// The relation permits several rows per tree but read paths only ever
// expose the first one.
type TreePhoto struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	TreeID        uint   `json:"tree_id" gorm:"index;not null"`
	TreePhotoPath string `json:"tree_photo_path" gorm:"size:512;not null"`
}
