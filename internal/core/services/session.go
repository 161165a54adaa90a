package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/ports/output"
)

// SessionService keeps the last upload of each browser session so a page
// reload re-renders it instead of clearing the view.
type SessionService struct {
	repo        ports.UploadSessionRepository
	predictions *PredictionService
}

func NewSessionService(repo ports.UploadSessionRepository, predictions *PredictionService) *SessionService {
	return &SessionService{repo: repo, predictions: predictions}
}

// Upload replaces the session's last upload and renders it. The upload is
// kept even when the render fails.
func (s *SessionService) Upload(ctx context.Context, id uuid.UUID, fileName string, content []byte) (*domain.Report, error) {
	if err := ValidateUploadName(fileName); err != nil {
		return nil, err
	}

	session := &domain.UploadSession{
		ID:         id,
		FileName:   fileName,
		Content:    content,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return s.predictions.Run(ctx, fileName, content)
}

// Current renders the session's last upload, or returns domain.ErrNoUpload.
// The stored session is returned with a render error so callers can name the
// file that failed.
func (s *SessionService) Current(ctx context.Context, id uuid.UUID) (*domain.UploadSession, *domain.Report, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.predictions.Run(ctx, session.FileName, session.Content)
	if err != nil {
		return session, nil, err
	}
	return session, report, nil
}

func (s *SessionService) Last(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	return s.repo.Get(ctx, id)
}

func (s *SessionService) Clear(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
