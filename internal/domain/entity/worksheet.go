package entity

import (
	"fmt"
	"strings"
)

// SheetLayout identifies which header shape a worksheet uses
type SheetLayout int

const (
	// LayoutCurrent is the five-column layout written by this service
	LayoutCurrent SheetLayout = iota
	// LayoutLegacy is the older six-column layout with a webhook URL in column B
	LayoutLegacy
)

// Header labels for the current layout, in column order
var WorksheetHeader = []string{
	"Space Name",
	"Space ID",
	"Created",
	"Members",
	"Last Updated",
}

const (
	// WorksheetDefaultRows and WorksheetDefaultCols size a newly created worksheet
	WorksheetDefaultRows = 1000
	WorksheetDefaultCols = 5

	// TimestampLayout formats the Last Updated cell
	TimestampLayout = "2006-01-02 15:04:05"
)

func (l SheetLayout) String() string {
	switch l {
	case LayoutLegacy:
		return "legacy"
	default:
		return "current"
	}
}

// Width returns the number of columns a data row occupies
func (l SheetLayout) Width() int {
	if l == LayoutLegacy {
		return 6
	}
	return 5
}

// LastColumn returns the A1 letter of the last data column
func (l SheetLayout) LastColumn() string {
	return string(rune('A' + l.Width() - 1))
}

// SpaceIDColumn returns the zero-based column holding the space ID
func (l SheetLayout) SpaceIDColumn() int {
	if l == LayoutLegacy {
		return 2
	}
	return 1
}

// Cells renders a row in this layout's column order
func (l SheetLayout) Cells(row SpaceRow) []interface{} {
	updated := row.UpdatedAt.Format(TimestampLayout)
	if l == LayoutLegacy {
		// column B held the webhook URL and stays empty
		return []interface{}{row.DisplayName, "", row.SpaceID, row.CreateTime, row.MemberCount, updated}
	}
	return []interface{}{row.DisplayName, row.SpaceID, row.CreateTime, row.MemberCount, updated}
}

// DataRange returns the A1 range covering n data rows below the header
func (l SheetLayout) DataRange(sheet string, n int) string {
	return fmt.Sprintf("%s!A2:%s%d", QuoteSheetName(sheet), l.LastColumn(), n+1)
}

// TailRange returns the A1 range below the first n data rows
func (l SheetLayout) TailRange(sheet string, n int) string {
	return fmt.Sprintf("%s!A%d:%s", QuoteSheetName(sheet), n+2, l.LastColumn())
}

// QuoteSheetName quotes a worksheet title for use in A1 notation
func QuoteSheetName(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
