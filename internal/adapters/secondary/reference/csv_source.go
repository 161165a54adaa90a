package reference

import (
	"context"
	"fmt"
	"os"

	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/ports/output"
	"permeability-service/internal/tabular"
)

type csvSource struct {
	path string
}

// NewCSVSource returns a reference source that re-reads the CSV at path on
// every Load.
func NewCSVSource(path string) ports.ReferenceSource {
	return &csvSource{path: path}
}

func (s *csvSource) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReferenceUnavailable, err)
	}
	defer f.Close()

	t, err := tabular.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrReferenceUnavailable, s.path, err)
	}
	return t, nil
}
