package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/terraincognita07/kennelbook/internal/models"
)

var (
	ErrInvalidHormoneValue = errors.New("invalid hormone value")
	ErrMissingHormoneValue = errors.New("missing hormone value")
)

type HormoneValidationError struct {
	ReadingID uint
	Value     float64
	Reason    string
}

func (err *HormoneValidationError) Error() string {
	return fmt.Sprintf("hormone reading %d: %s (%v)", err.ReadingID, err.Reason, err.Value)
}

func (err *HormoneValidationError) Unwrap() error {
	return ErrInvalidHormoneValue
}

// ValidateHormoneReading returns the reading's value or the reason it cannot
// take part in an estimate.
func ValidateHormoneReading(reading models.HormoneReading) (float64, error) {
	if reading.Value == nil {
		return 0, ErrMissingHormoneValue
	}
	value := *reading.Value
	switch {
	case math.IsNaN(value):
		return 0, &HormoneValidationError{ReadingID: reading.ID, Value: value, Reason: "not a number"}
	case math.IsInf(value, 0):
		return 0, &HormoneValidationError{ReadingID: reading.ID, Value: value, Reason: "infinite"}
	case value < 0:
		return 0, &HormoneValidationError{ReadingID: reading.ID, Value: value, Reason: "negative"}
	}
	return value, nil
}
