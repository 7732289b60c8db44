package sheets

import (
	"context"
	"fmt"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"
	"chatspace-exporter/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

// SheetsService handles interaction with the Google Sheets API
type SheetsService struct {
	sheetsService *sheets.Service
	logger        logger.Logger
}

var _ repository.WorksheetRepository = (*SheetsService)(nil)

// NewSheetsService creates a new Sheets service authenticated with tokenSource
func NewSheetsService(ctx context.Context, tokenSource oauth2.TokenSource, logger logger.Logger, opts ...option.ClientOption) (*SheetsService, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(tokenSource)}, opts...)

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsService{
		sheetsService: service,
		logger:        logger,
	}, nil
}

// EnsureWorksheet looks up title and, when missing, adds it and writes header to row 1
func (s *SheetsService) EnsureWorksheet(ctx context.Context, spreadsheetID, title string, header []string) (bool, error) {
	found, err := s.hasWorksheet(ctx, spreadsheetID, title)
	if err != nil {
		return false, err
	}
	if found {
		s.logger.Info("Worksheet found", "worksheet", title)
		return false, nil
	}

	s.logger.Warn("Worksheet does not exist, creating it", "worksheet", title)

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: title,
						GridProperties: &sheets.GridProperties{
							RowCount:    entity.WorksheetDefaultRows,
							ColumnCount: entity.WorksheetDefaultCols,
						},
					},
				},
			},
		},
	}
	if _, err := s.sheetsService.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("failed to add worksheet %s: %w", title, err)
	}

	cells := make([]interface{}, len(header))
	for i, label := range header {
		cells[i] = label
	}
	headerRange := fmt.Sprintf("%s!A1:%s1", entity.QuoteSheetName(title), columnLetter(len(header)))
	if err := s.WriteRows(ctx, spreadsheetID, headerRange, [][]interface{}{cells}); err != nil {
		return false, fmt.Errorf("failed to write header: %w", err)
	}

	s.logger.Info("Worksheet created", "worksheet", title)
	return true, nil
}

// ReadHeader returns the first row of the worksheet, or ErrWorksheetNotFound when the
// spreadsheet has no worksheet called title
func (s *SheetsService) ReadHeader(ctx context.Context, spreadsheetID, title string) ([]string, error) {
	found, err := s.hasWorksheet(ctx, spreadsheetID, title)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", entity.ErrWorksheetNotFound, title)
	}

	rows, err := s.ReadRows(ctx, spreadsheetID, entity.QuoteSheetName(title)+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ReadRows returns the formatted values in rangeA1
func (s *SheetsService) ReadRows(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error) {
	resp, err := s.sheetsService.Spreadsheets.Values.Get(spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rangeA1, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows overwrites rangeA1 with rows
func (s *SheetsService) WriteRows(ctx context.Context, spreadsheetID, rangeA1 string, rows [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Range:  rangeA1,
		Values: rows,
	}

	_, err := s.sheetsService.Spreadsheets.Values.Update(spreadsheetID, rangeA1, valueRange).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write range %s: %w", rangeA1, err)
	}

	s.logger.Debug("Range written", "range", rangeA1, "rows", len(rows))
	return nil
}

// ClearRange clears the values in rangeA1, keeping formatting
func (s *SheetsService) ClearRange(ctx context.Context, spreadsheetID, rangeA1 string) error {
	_, err := s.sheetsService.Spreadsheets.Values.Clear(spreadsheetID, rangeA1, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s: %w", rangeA1, err)
	}
	return nil
}

func (s *SheetsService) hasWorksheet(ctx context.Context, spreadsheetID, title string) (bool, error) {
	spreadsheet, err := s.sheetsService.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// columnLetter maps 1..26 to A..Z
func columnLetter(n int) string {
	if n < 1 {
		n = 1
	}
	if n > 26 {
		n = 26
	}
	return string(rune('A' + n - 1))
}
