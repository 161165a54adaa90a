package services

import (
	"math"

	"permeability-service/internal/core/domain"
)

// Round rounds v to the given number of decimals, half to even.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

// RoundNumeric rounds every numeric data column of t in place. The index is
// left untouched.
func RoundNumeric(t *domain.Table, places int) {
	for _, c := range t.Columns {
		if !c.Numeric {
			continue
		}
		for i, v := range c.Values {
			c.Values[i] = Round(v, places)
		}
	}
}
