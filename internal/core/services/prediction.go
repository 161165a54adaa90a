package services

import (
	"context"
	"fmt"

	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/ports/output"
)

// PredictionService runs the full pipeline for one uploaded file:
// ingest, reference merge, feature selection, inference and rounding.
type PredictionService struct {
	model  ports.Regressor
	merger *MergeService
}

func NewPredictionService(model ports.Regressor, merger *MergeService) *PredictionService {
	return &PredictionService{model: model, merger: merger}
}

func (s *PredictionService) Run(ctx context.Context, fileName string, content []byte) (*domain.Report, error) {
	table, err := Ingest(content)
	if err != nil {
		return nil, err
	}

	if err := s.merger.Merge(ctx, table); err != nil {
		return nil, err
	}

	features, err := SelectFeatures(table, s.model.Features())
	if err != nil {
		return nil, err
	}

	predictions, err := s.Predict(features)
	if err != nil {
		return nil, err
	}

	if err := table.SetColumn(domain.NewNumericColumn(domain.PredictedPermeabilityColumn, predictions)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}

	RoundNumeric(table, domain.RoundingPlaces)

	return &domain.Report{
		FileName:      fileName,
		MergeStrategy: s.merger.Strategy(),
		Table:         table,
	}, nil
}

// Predict calls the model once over the whole batch and rounds each value.
func (s *PredictionService) Predict(features [][]float64) ([]float64, error) {
	out, err := s.model.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}
	if len(out) != len(features) {
		return nil, fmt.Errorf("%w: model returned %d values for %d rows", domain.ErrInferenceFailed, len(out), len(features))
	}
	for i, v := range out {
		out[i] = Round(v, domain.RoundingPlaces)
	}
	return out, nil
}
