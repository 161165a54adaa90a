package ports

import (
	"context"

	"github.com/google/uuid"

	"permeability-service/internal/core/domain"
)

type UploadSessionRepository interface {
	// Save overwrites the last upload of the session.
	Save(ctx context.Context, session *domain.UploadSession) error
	// Get returns domain.ErrNoUpload when the session has no upload.
	Get(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
