package repository

import (
	"context"
	"fmt"
	"time"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExportRunRepository implements the ExportRunRepository interface
type GormExportRunRepository struct {
	db *gorm.DB
}

// NewGormExportRunRepository creates a new GORM export run repository and migrates its table
func NewGormExportRunRepository(db *gorm.DB) (repository.ExportRunRepository, error) {
	if err := db.AutoMigrate(&ExportRuns{}); err != nil {
		return nil, fmt.Errorf("failed to migrate export runs: %w", err)
	}

	return &GormExportRunRepository{
		db: db,
	}, nil
}

// ExportRuns GORM model for database mapping
type ExportRuns struct {
	ID             string    `gorm:"primaryKey;size:36"`
	Actor          string    `gorm:"column:actor;index"`
	SpreadsheetID  string    `gorm:"column:spreadsheet_id"`
	Worksheet      string    `gorm:"column:worksheet"`
	Layout         string    `gorm:"column:layout"`
	SpacesTotal    int       `gorm:"column:spaces_total"`
	SpacesExported int       `gorm:"column:spaces_exported"`
	SheetCreated   bool      `gorm:"column:sheet_created"`
	Status         string    `gorm:"column:status"`
	ErrorDetail    string    `gorm:"column:error_detail"`
	StartedAt      time.Time `gorm:"column:started_at;index"`
	FinishedAt     time.Time `gorm:"column:finished_at"`
}

// TableName overrides the default table name
func (ExportRuns) TableName() string {
	return "export_runs"
}

// Save inserts or updates an export run
func (r *GormExportRunRepository) Save(ctx context.Context, run *entity.ExportRun) error {
	model := toExportRunModel(run)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save export run: %w", result.Error)
	}
	return nil
}

// FindRecent finds the latest export runs
func (r *GormExportRunRepository) FindRecent(ctx context.Context, limit int) ([]*entity.ExportRun, error) {
	var models []ExportRuns
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	runs := make([]*entity.ExportRun, 0, len(models))
	for _, m := range models {
		runs = append(runs, toExportRunEntity(m))
	}
	return runs, nil
}

func toExportRunModel(run *entity.ExportRun) ExportRuns {
	return ExportRuns{
		ID:             run.ID,
		Actor:          run.Actor,
		SpreadsheetID:  run.SpreadsheetID,
		Worksheet:      run.Worksheet,
		Layout:         run.Layout,
		SpacesTotal:    run.SpacesTotal,
		SpacesExported: run.SpacesExported,
		SheetCreated:   run.SheetCreated,
		Status:         run.Status,
		ErrorDetail:    run.ErrorDetail,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
	}
}

// Convert GORM model to domain entity
func toExportRunEntity(m ExportRuns) *entity.ExportRun {
	return &entity.ExportRun{
		ID:             m.ID,
		Actor:          m.Actor,
		SpreadsheetID:  m.SpreadsheetID,
		Worksheet:      m.Worksheet,
		Layout:         m.Layout,
		SpacesTotal:    m.SpacesTotal,
		SpacesExported: m.SpacesExported,
		SheetCreated:   m.SheetCreated,
		Status:         m.Status,
		ErrorDetail:    m.ErrorDetail,
		StartedAt:      m.StartedAt,
		FinishedAt:     m.FinishedAt,
	}
}
