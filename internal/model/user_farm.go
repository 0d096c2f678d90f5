package model

// UserFarmTable links users to the farms they own or manage.
type UserFarmTable struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"index;not null"`
	FarmID uint `json:"farm_id" gorm:"index;not null"`

	Farm *Farm `json:"farm,omitempty" gorm:"foreignKey:FarmID"`
}
