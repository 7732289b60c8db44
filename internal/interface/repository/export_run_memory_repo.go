package repository

import (
	"context"
	"sync"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"
)

// MemoryExportRunRepository keeps the last export runs in memory
type MemoryExportRunRepository struct {
	mu       sync.Mutex
	runs     []*entity.ExportRun
	capacity int
}

// NewMemoryExportRunRepository creates an in-memory history holding at most capacity runs
func NewMemoryExportRunRepository(capacity int) repository.ExportRunRepository {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryExportRunRepository{capacity: capacity}
}

// Save appends a run, dropping the oldest when full
func (r *MemoryExportRunRepository) Save(ctx context.Context, run *entity.ExportRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *run
	r.runs = append(r.runs, &copied)
	if len(r.runs) > r.capacity {
		r.runs = r.runs[len(r.runs)-r.capacity:]
	}
	return nil
}

// FindRecent returns up to limit runs, newest first
func (r *MemoryExportRunRepository) FindRecent(ctx context.Context, limit int) ([]*entity.ExportRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.runs) {
		limit = len(r.runs)
	}

	runs := make([]*entity.ExportRun, 0, limit)
	for i := len(r.runs) - 1; i >= 0 && len(runs) < limit; i-- {
		copied := *r.runs[i]
		runs = append(runs, &copied)
	}
	return runs, nil
}
