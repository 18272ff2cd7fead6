package models

import "time"

type Breeding struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DamID      uint      `gorm:"not null;index" json:"dam_id"`
	SireID     *uint     `json:"sire_id,omitempty"`
	MatingDate time.Time `gorm:"type:date;not null" json:"mating_date"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
