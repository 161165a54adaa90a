package services

import (
	"fmt"
	"strings"

	"permeability-service/internal/core/domain"
)

// SelectFeatures projects t onto the named columns, in order, and returns a
// row-major feature matrix. Every missing column is named in the error.
func SelectFeatures(t *domain.Table, features []string) ([][]float64, error) {
	cols := make([]*domain.Column, 0, len(features))
	var missing []string
	for _, name := range features {
		c := t.Column(name)
		if c == nil {
			missing = append(missing, fmt.Sprintf("%q", name))
			continue
		}
		cols = append(cols, c)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: [%s] not in upload", domain.ErrColumnNotFound, strings.Join(missing, ", "))
	}

	for _, c := range cols {
		if !c.Numeric {
			return nil, fmt.Errorf("%w: %q", domain.ErrNonNumericFeature, c.Name)
		}
	}

	rows := make([][]float64, t.Rows())
	for i := range rows {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.Values[i]
		}
		rows[i] = row
	}
	return rows, nil
}
