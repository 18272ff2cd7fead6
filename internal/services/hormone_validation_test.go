package services

import (
	"errors"
	"math"
	"testing"

	"github.com/terraincognita07/kennelbook/internal/models"
)

func TestValidateHormoneReading(t *testing.T) {
	valid := 4.2
	value, err := ValidateHormoneReading(models.HormoneReading{Value: &valid})
	if err != nil {
		t.Fatalf("expected valid reading, got %v", err)
	}
	if value != 4.2 {
		t.Fatalf("expected 4.2, got %v", value)
	}

	zero := 0.0
	if _, err := ValidateHormoneReading(models.HormoneReading{Value: &zero}); err != nil {
		t.Fatalf("expected zero to be valid, got %v", err)
	}

	if _, err := ValidateHormoneReading(models.HormoneReading{}); !errors.Is(err, ErrMissingHormoneValue) {
		t.Fatalf("expected ErrMissingHormoneValue, got %v", err)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5} {
		bad := bad
		_, err := ValidateHormoneReading(models.HormoneReading{ID: 9, Value: &bad})
		if !errors.Is(err, ErrInvalidHormoneValue) {
			t.Fatalf("expected ErrInvalidHormoneValue for %v, got %v", bad, err)
		}
		var validationErr *HormoneValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected *HormoneValidationError for %v, got %T", bad, err)
		}
		if validationErr.ReadingID != 9 {
			t.Fatalf("expected reading id 9, got %d", validationErr.ReadingID)
		}
	}
}
