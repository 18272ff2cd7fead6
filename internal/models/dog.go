package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Dog struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Breed                string    `gorm:"not null;default:''" json:"breed"`
	Gender               string    `gorm:"not null" json:"gender"`
	DateOfBirth          time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	HeatIntervalOverride *int      `json:"heat_interval_override,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	HeatHistory []HeatRecord `gorm:"foreignKey:DogID" json:"heat_history,omitempty"`
}

func (dog Dog) IsFemale() bool {
	return dog.Gender == GenderFemale
}

// HeatRecord is one observed start-of-heat event. Records are never edited.
type HeatRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DogID     uint      `gorm:"not null;uniqueIndex:uidx_heat_dog_date" json:"dog_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_heat_dog_date" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func HeatDates(records []HeatRecord) []time.Time {
	dates := make([]time.Time, 0, len(records))
	for _, record := range records {
		dates = append(dates, record.Date)
	}
	return dates
}
