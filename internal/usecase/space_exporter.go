package usecase

import (
	"context"
	"fmt"
	"time"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"
	"chatspace-exporter/pkg/logger"
	"chatspace-exporter/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// ClientFactory builds API clients bound to one identity's token
type ClientFactory interface {
	NewSpaceRepository(ctx context.Context, tokenSource oauth2.TokenSource) (repository.SpaceRepository, error)
	NewWorksheetRepository(ctx context.Context, tokenSource oauth2.TokenSource) (repository.WorksheetRepository, error)
}

// SpaceExporter lists the caller's Chat rooms and writes them to the worksheet
type SpaceExporter struct {
	factory       ClientFactory
	runRepo       repository.ExportRunRepository
	metrics       *metrics.Metrics
	logger        logger.Logger
	spreadsheetID string
	worksheet     string
	now           func() time.Time
}

// NewSpaceExporter creates a new space exporter
func NewSpaceExporter(
	factory ClientFactory,
	runRepo repository.ExportRunRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	spreadsheetID string,
	worksheet string,
) *SpaceExporter {
	return &SpaceExporter{
		factory:       factory,
		runRepo:       runRepo,
		metrics:       metrics,
		logger:        logger,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		now:           time.Now,
	}
}

// WithClock replaces the clock used for the Last Updated cell
func (e *SpaceExporter) WithClock(now func() time.Time) *SpaceExporter {
	e.now = now
	return e
}

// SpreadsheetID returns the target spreadsheet
func (e *SpaceExporter) SpreadsheetID() string {
	return e.spreadsheetID
}

// Worksheet returns the target worksheet title
func (e *SpaceExporter) Worksheet() string {
	return e.worksheet
}

// Export runs one full export for actor. Any failing step aborts the run.
func (e *SpaceExporter) Export(ctx context.Context, tokenSource oauth2.TokenSource, actor string) (*entity.ExportResult, error) {
	run := &entity.ExportRun{
		ID:            uuid.NewString(),
		Actor:         actor,
		SpreadsheetID: e.spreadsheetID,
		Worksheet:     e.worksheet,
		StartedAt:     e.now(),
	}

	log := e.logger.With("runID", run.ID, "actor", actor)
	log.Info("Starting space export", "spreadsheetID", e.spreadsheetID, "worksheet", e.worksheet)

	result, err := e.export(ctx, tokenSource, run, log)

	run.FinishedAt = e.now()
	e.metrics.ExportDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())

	if err != nil {
		run.Status = entity.RunStatusFailed
		run.ErrorDetail = err.Error()
		e.metrics.ExportsTotal.WithLabelValues("failed").Inc()
		log.Error("Space export failed", "error", err)
	} else {
		run.Status = entity.RunStatusCompleted
		e.metrics.ExportsTotal.WithLabelValues("completed").Inc()
		e.metrics.SpacesExported.Add(float64(run.SpacesExported))
		log.Info("Space export completed",
			"spacesTotal", run.SpacesTotal,
			"spacesExported", run.SpacesExported,
			"layout", run.Layout,
			"sheetCreated", run.SheetCreated)
	}

	if saveErr := e.runRepo.Save(ctx, run); saveErr != nil {
		e.metrics.ErrorsCount.WithLabelValues("save_run").Inc()
		log.Error("Failed to save export run", "error", saveErr)
	}

	if err != nil {
		return nil, err
	}
	result.Run = run
	return result, nil
}

func (e *SpaceExporter) export(ctx context.Context, tokenSource oauth2.TokenSource, run *entity.ExportRun, log logger.Logger) (*entity.ExportResult, error) {
	spaceRepo, err := e.factory.NewSpaceRepository(ctx, tokenSource)
	if err != nil {
		return nil, e.fail("chat_client", "create chat client", err)
	}

	spaces, err := spaceRepo.ListSpaces(ctx)
	if err != nil {
		return nil, e.fail("list_spaces", "list spaces", err)
	}

	rooms := FilterRooms(spaces)
	rows := BuildRows(rooms, run.StartedAt)
	run.SpacesTotal = len(spaces)
	log.Info("Spaces filtered", "total", len(spaces), "rooms", len(rooms))

	sheetRepo, err := e.factory.NewWorksheetRepository(ctx, tokenSource)
	if err != nil {
		return nil, e.fail("sheets_client", "create sheets client", err)
	}

	created, err := sheetRepo.EnsureWorksheet(ctx, e.spreadsheetID, e.worksheet, entity.WorksheetHeader)
	if err != nil {
		return nil, e.fail("ensure_worksheet", "ensure worksheet", err)
	}
	run.SheetCreated = created

	layout := entity.LayoutCurrent
	if !created {
		header, err := sheetRepo.ReadHeader(ctx, e.spreadsheetID, e.worksheet)
		if err != nil {
			return nil, e.fail("read_header", "read worksheet header", err)
		}
		layout = DetectLayout(header)
	}
	run.Layout = layout.String()
	if layout == entity.LayoutLegacy {
		log.Warn("Worksheet uses the legacy layout, leaving the webhook column empty")
	}

	if len(rows) == 0 {
		log.Warn("No rooms found to export")
		return &entity.ExportResult{Rows: rows, Layout: layout, SheetCreated: created}, nil
	}

	if err := sheetRepo.WriteRows(ctx, e.spreadsheetID, layout.DataRange(e.worksheet, len(rows)), RenderRows(layout, rows)); err != nil {
		return nil, e.fail("write_rows", "write rows", err)
	}
	run.SpacesExported = len(rows)

	if !created {
		if err := sheetRepo.ClearRange(ctx, e.spreadsheetID, layout.TailRange(e.worksheet, len(rows))); err != nil {
			return nil, e.fail("clear_rows", "clear stale rows", err)
		}
	}

	for i, row := range rows {
		if i == 10 {
			log.Debug("More rooms exported", "remaining", len(rows)-10)
			break
		}
		log.Debug("Exported room", "position", i+1, "name", row.DisplayName, "spaceID", row.SpaceID)
	}

	return &entity.ExportResult{Rows: rows, Layout: layout, SheetCreated: created}, nil
}

// RecentRuns returns the latest export runs, newest first
func (e *SpaceExporter) RecentRuns(ctx context.Context, limit int) ([]*entity.ExportRun, error) {
	runs, err := e.runRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load export history: %w", err)
	}
	return runs, nil
}

func (e *SpaceExporter) fail(operation, step string, err error) error {
	e.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	return fmt.Errorf("%s: %w", step, err)
}
