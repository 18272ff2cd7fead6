package models

import "time"

const (
	TestTypeProgesterone = "progesterone"
	TestTypeOther        = "other"
)

// HormoneReading values are stored in ng/ml.
type HormoneReading struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DogID     uint      `gorm:"not null;index" json:"dog_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	TestType  string    `gorm:"not null;default:progesterone" json:"test_type"`
	Value     *float64  `json:"value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
