package services

import (
	"bytes"
	"path/filepath"
	"strings"

	"permeability-service/internal/core/domain"
	"permeability-service/internal/tabular"
)

// Ingest parses an uploaded CSV and promotes a "Depth" column to the index
// when one exists. Column presence is not validated here.
func Ingest(content []byte) (*domain.Table, error) {
	table, err := tabular.Read(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	tabular.SetIndex(table, domain.DepthColumn)
	return table, nil
}

// ValidateUploadName enforces the .csv extension accepted by the file picker.
func ValidateUploadName(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return domain.ErrInvalidUploadType
	}
	return nil
}
