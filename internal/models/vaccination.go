package models

import "time"

const DefaultVaccinationIntervalMonths = 12

type Vaccination struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DogID          uint      `gorm:"not null;index" json:"dog_id"`
	Name           string    `gorm:"not null" json:"name"`
	GivenOn        time.Time `gorm:"type:date;not null" json:"given_on"`
	IntervalMonths int       `gorm:"not null;default:12" json:"interval_months"`
	CreatedAt      time.Time `json:"created_at"`
}
