package repository

import (
	"context"

	"chatspace-exporter/internal/domain/entity"
)

// ExportRunRepository defines the interface for export history storage
type ExportRunRepository interface {
	Save(ctx context.Context, run *entity.ExportRun) error
	FindRecent(ctx context.Context, limit int) ([]*entity.ExportRun, error)
}
