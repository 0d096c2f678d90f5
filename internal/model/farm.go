package model

import "time"

// Farm represents a managed durian orchard.
//
// JSON field names are the wire contract consumed by the mobile client,
// including the historical spellings "longtitude" and "duian_amount".
type Farm struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	FarmName            string    `json:"farm_name" gorm:"size:255;not null"`
	FarmLocation        string    `json:"farm_location" gorm:"size:255"`
	FarmProvince        string    `json:"farm_province" gorm:"size:255"`
	FarmDurianSpecies   string    `json:"farm_durian_species" gorm:"size:255"`
	FarmPhoto           *string   `json:"farm_photo" gorm:"size:512"` // nil unless an image was uploaded
	FarmStatus          bool      `json:"farm_status"`
	FarmPollinationDate time.Time `json:"farm_pollination_date"`
	FarmTree            int       `json:"farm_tree"`
	FarmSpace           int       `json:"farm_space"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longtitude" gorm:"column:longtitude"`
	DurianAmount        int       `json:"duian_amount" gorm:"column:duian_amount"`

	UserFarms []UserFarmTable `json:"-" gorm:"foreignKey:FarmID"`
	Trees     []Tree          `json:"-" gorm:"foreignKey:FarmID"`
}
