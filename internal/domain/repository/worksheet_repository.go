package repository

import (
	"context"
)

// WorksheetRepository defines the spreadsheet operations used by the exporter
type WorksheetRepository interface {
	// EnsureWorksheet creates the worksheet with the given header when it is missing
	EnsureWorksheet(ctx context.Context, spreadsheetID, title string, header []string) (created bool, err error)
	ReadHeader(ctx context.Context, spreadsheetID, title string) ([]string, error)
	ReadRows(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error)
	WriteRows(ctx context.Context, spreadsheetID, rangeA1 string, rows [][]interface{}) error
	ClearRange(ctx context.Context, spreadsheetID, rangeA1 string) error
}
