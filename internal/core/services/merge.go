package services

import (
	"context"
	"fmt"
	"math"

	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/ports/output"
)

type MergeService struct {
	reference ports.ReferenceSource
	strategy  domain.MergeStrategy
}

func NewMergeService(reference ports.ReferenceSource, strategy domain.MergeStrategy) *MergeService {
	if strategy == "" {
		strategy = domain.MergePositional
	}
	return &MergeService{reference: reference, strategy: strategy}
}

func (s *MergeService) Strategy() domain.MergeStrategy {
	return s.strategy
}

// Merge loads the reference table and adds its "Actual Permeability" column
// to t. The reference is read on every call.
func (s *MergeService) Merge(ctx context.Context, t *domain.Table) error {
	ref, err := s.reference.Load(ctx)
	if err != nil {
		return err
	}

	actual := ref.Column(domain.ActualPermeabilityColumn)
	if actual == nil {
		return fmt.Errorf("%w: reference has no %q column", domain.ErrColumnNotFound, domain.ActualPermeabilityColumn)
	}

	var col *domain.Column
	switch s.strategy {
	case domain.MergePositional:
		col, err = alignByPosition(t, actual)
	case domain.MergeByDepth:
		col, err = alignByDepth(t, ref, actual)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnknownMergeStrategy, s.strategy)
	}
	if err != nil {
		return err
	}

	return t.SetColumn(col)
}

func alignByPosition(t *domain.Table, actual *domain.Column) (*domain.Column, error) {
	if actual.Len() != t.Rows() {
		return nil, fmt.Errorf("%w: reference has %d rows, upload has %d",
			domain.ErrReferenceLengthMismatch, actual.Len(), t.Rows())
	}
	return &domain.Column{
		Name:    domain.ActualPermeabilityColumn,
		Numeric: actual.Numeric,
		Raw:     append([]string(nil), actual.Raw...),
		Values:  append([]float64(nil), actual.Values...),
	}, nil
}

func alignByDepth(t *domain.Table, ref *domain.Table, actual *domain.Column) (*domain.Column, error) {
	if t.IndexName() != domain.DepthColumn || !t.Index.Numeric {
		return nil, fmt.Errorf("%w: upload has no numeric %q column to join on", domain.ErrColumnNotFound, domain.DepthColumn)
	}
	refDepth := ref.Column(domain.DepthColumn)
	if refDepth == nil || !refDepth.Numeric {
		return nil, fmt.Errorf("%w: reference has no numeric %q column to join on", domain.ErrColumnNotFound, domain.DepthColumn)
	}
	if !actual.Numeric {
		return nil, fmt.Errorf("%w: reference %q is not numeric", domain.ErrNonNumericFeature, domain.ActualPermeabilityColumn)
	}

	byDepth := make(map[float64]float64, refDepth.Len())
	for i, d := range refDepth.Values {
		if math.IsNaN(d) {
			continue
		}
		key := Round(d, domain.RoundingPlaces)
		if _, dup := byDepth[key]; !dup {
			byDepth[key] = actual.Values[i]
		}
	}

	values := make([]float64, t.Rows())
	for i, d := range t.Index.Values {
		v, ok := byDepth[Round(d, domain.RoundingPlaces)]
		if !ok {
			v = math.NaN()
		}
		values[i] = v
	}
	return domain.NewNumericColumn(domain.ActualPermeabilityColumn, values), nil
}
