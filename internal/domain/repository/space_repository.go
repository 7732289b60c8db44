package repository

import (
	"context"

	"chatspace-exporter/internal/domain/entity"
)

// SpaceRepository lists the Chat spaces visible to one identity
type SpaceRepository interface {
	ListSpaces(ctx context.Context) ([]*entity.Space, error)
}
