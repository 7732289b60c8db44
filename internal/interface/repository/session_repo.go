package repository

import (
	"context"
	"sync"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"
)

// MemorySessionRepository keeps sessions in process memory; they do not survive a restart
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository creates a new in-memory session repository
func NewMemorySessionRepository() repository.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// FindByID finds a session by ID
func (r *MemorySessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// Save stores a copy of session
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

// Delete removes a session
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
