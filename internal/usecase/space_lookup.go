package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/pkg/logger"

	"golang.org/x/oauth2"
)

// LookupMatch is a worksheet row matched by space name
type LookupMatch struct {
	DisplayName string `json:"displayName"`
	SpaceID     string `json:"spaceId"`
	Exact       bool   `json:"exact"`
}

// SpaceLookup resolves space IDs from the exported worksheet
type SpaceLookup struct {
	factory       ClientFactory
	logger        logger.Logger
	spreadsheetID string
	worksheet     string
}

// NewSpaceLookup creates a new space lookup
func NewSpaceLookup(factory ClientFactory, logger logger.Logger, spreadsheetID, worksheet string) *SpaceLookup {
	return &SpaceLookup{
		factory:       factory,
		logger:        logger,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}
}

// FindSpaceID looks name up in the worksheet, exact match first
func (l *SpaceLookup) FindSpaceID(ctx context.Context, tokenSource oauth2.TokenSource, name string) (*LookupMatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("space name is required")
	}

	sheetRepo, err := l.factory.NewWorksheetRepository(ctx, tokenSource)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	header, err := sheetRepo.ReadHeader(ctx, l.spreadsheetID, l.worksheet)
	if err != nil {
		return nil, fmt.Errorf("read worksheet header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrWorksheetNotFound, l.worksheet)
	}
	layout := DetectLayout(header)

	rangeA1 := fmt.Sprintf("%s!A2:%s", entity.QuoteSheetName(l.worksheet), layout.LastColumn())
	rows, err := sheetRepo.ReadRows(ctx, l.spreadsheetID, rangeA1)
	if err != nil {
		return nil, fmt.Errorf("read worksheet rows: %w", err)
	}

	match, ok := MatchSpace(rows, layout, name)
	if !ok {
		l.logger.Warn("No space ID found", "name", name)
		return nil, fmt.Errorf("%w: %s", entity.ErrSpaceNotFound, name)
	}

	l.logger.Info("Space ID found", "name", name, "spaceID", match.SpaceID, "exact", match.Exact)
	return match, nil
}

// MatchSpace finds name in worksheet rows. An exact name wins; otherwise the first row whose
// name contains, or is contained in, name (case-insensitive) is returned.
func MatchSpace(rows [][]string, layout entity.SheetLayout, name string) (*LookupMatch, bool) {
	idCol := layout.SpaceIDColumn()

	toMatch := func(row []string, exact bool) *LookupMatch {
		return &LookupMatch{DisplayName: row[0], SpaceID: row[idCol], Exact: exact}
	}

	for _, row := range rows {
		if len(row) > idCol && row[0] == name {
			return toMatch(row, true), true
		}
	}

	search := strings.ToLower(name)
	for _, row := range rows {
		if len(row) <= idCol || row[0] == "" {
			continue
		}
		rowName := strings.ToLower(row[0])
		if strings.Contains(rowName, search) || strings.Contains(search, rowName) {
			return toMatch(row, false), true
		}
	}

	return nil, false
}
