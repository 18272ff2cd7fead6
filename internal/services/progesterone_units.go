package services

import (
	"errors"
	"strings"
)

type ProgesteroneUnit string

const (
	UnitNgPerML  ProgesteroneUnit = "ng/ml"
	UnitNmolPerL ProgesteroneUnit = "nmol/l"
)

const nmolPerNgUnit = 3.18

var ErrUnknownProgesteroneUnit = errors.New("unknown progesterone unit")

// ParseProgesteroneUnit defaults to ng/ml for an empty value.
func ParseProgesteroneUnit(raw string) (ProgesteroneUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "ng/ml", "ngml", "ng":
		return UnitNgPerML, nil
	case "nmol/l", "nmoll", "nmol":
		return UnitNmolPerL, nil
	default:
		return "", ErrUnknownProgesteroneUnit
	}
}

func ConvertProgesterone(value float64, from ProgesteroneUnit, to ProgesteroneUnit) float64 {
	if from == to {
		return value
	}
	if from == UnitNgPerML && to == UnitNmolPerL {
		return value * nmolPerNgUnit
	}
	return value / nmolPerNgUnit
}
