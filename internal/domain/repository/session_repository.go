package repository

import (
	"context"

	"chatspace-exporter/internal/domain/entity"
)

// SessionRepository stores browser sessions
type SessionRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}
