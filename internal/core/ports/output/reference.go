package ports

import (
	"context"

	"permeability-service/internal/core/domain"
)

// ReferenceSource supplies the ground-truth table merged into every upload.
// Load is called once per upload and must not cache.
type ReferenceSource interface {
	Load(ctx context.Context) (*domain.Table, error)
}
