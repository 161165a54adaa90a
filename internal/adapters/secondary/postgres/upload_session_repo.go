package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"permeability-service/internal/core/domain"
	"permeability-service/internal/core/ports/output"
)

const uploadSessionSchema = `
	CREATE TABLE IF NOT EXISTS upload_session (
		id          UUID PRIMARY KEY,
		file_name   TEXT NOT NULL,
		content     BYTEA NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL
	)
`

type uploadSessionRepo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewUploadSessionRepository stores the last upload per session in the
// upload_session table. Rows older than ttl are treated as absent; a zero ttl
// disables expiry.
func NewUploadSessionRepository(pool *pgxpool.Pool, ttl time.Duration) ports.UploadSessionRepository {
	return &uploadSessionRepo{pool: pool, ttl: ttl}
}

// Migrate creates the upload_session table when it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, uploadSessionSchema); err != nil {
		return fmt.Errorf("migrate upload_session: %w", err)
	}
	return nil
}

func (r *uploadSessionRepo) Save(ctx context.Context, session *domain.UploadSession) error {
	query := `
		INSERT INTO upload_session (id, file_name, content, uploaded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET file_name = EXCLUDED.file_name,
			content = EXCLUDED.content,
			uploaded_at = EXCLUDED.uploaded_at
	`
	_, err := r.pool.Exec(ctx, query, session.ID, session.FileName, session.Content, session.UploadedAt)
	if err != nil {
		return fmt.Errorf("save upload session: %w", err)
	}
	return nil
}

func (r *uploadSessionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `
		SELECT id, file_name, content, uploaded_at
		FROM upload_session
		WHERE id = $1
	`
	var s domain.UploadSession
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.FileName, &s.Content, &s.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoUpload
		}
		return nil, fmt.Errorf("get upload session: %w", err)
	}
	if r.ttl > 0 && time.Since(s.UploadedAt) > r.ttl {
		return nil, domain.ErrNoUpload
	}
	return &s, nil
}

func (r *uploadSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM upload_session WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete upload session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions older than ttl.
func PurgeExpired(ctx context.Context, pool *pgxpool.Pool, ttl time.Duration) (int64, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM upload_session WHERE uploaded_at < $1`, time.Now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("purge upload sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
