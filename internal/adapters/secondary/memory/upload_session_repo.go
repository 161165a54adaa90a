package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"permeability-service/internal/core/domain"
)

// UploadSessionRepository keeps sessions in process memory and evicts those
// whose last upload is older than ttl.
type UploadSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.UploadSession
	ttl      time.Duration
	now      func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewUploadSessionRepository starts a sweeper that runs every interval. A
// zero ttl disables expiry. Close stops the sweeper.
func NewUploadSessionRepository(ttl, interval time.Duration) *UploadSessionRepository {
	r := &UploadSessionRepository{
		sessions: make(map[uuid.UUID]*domain.UploadSession),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if ttl > 0 && interval > 0 {
		go r.sweepLoop(interval)
	} else {
		close(r.done)
	}
	return r
}

func (r *UploadSessionRepository) Save(_ context.Context, session *domain.UploadSession) error {
	cp := *session
	cp.Content = append([]byte(nil), session.Content...)

	r.mu.Lock()
	r.sessions[session.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *UploadSessionRepository) Get(_ context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || r.expired(s) {
		return nil, domain.ErrNoUpload
	}
	cp := *s
	return &cp, nil
}

func (r *UploadSessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *UploadSessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *UploadSessionRepository) Close() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

func (r *UploadSessionRepository) expired(s *domain.UploadSession) bool {
	return r.ttl > 0 && r.now().Sub(s.UploadedAt) > r.ttl
}

func (r *UploadSessionRepository) sweepLoop(interval time.Duration) {
	defer close(r.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.WithField("evicted", n).Debug("expired upload sessions swept")
			}
		}
	}
}
