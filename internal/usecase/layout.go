package usecase

import (
	"sort"
	"strings"
	"time"

	"chatspace-exporter/internal/domain/entity"
)

// DetectLayout inspects a worksheet header and reports which layout it uses.
// Only the six-column shape with a webhook URL column in B counts as legacy.
func DetectLayout(header []string) entity.SheetLayout {
	if nonEmptyCells(header) != entity.LayoutLegacy.Width() {
		return entity.LayoutCurrent
	}
	if strings.Contains(strings.ToLower(header[1]), "webhook") {
		return entity.LayoutLegacy
	}
	return entity.LayoutCurrent
}

func nonEmptyCells(row []string) int {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return n
}

// FilterRooms keeps named multi-user rooms, dropping direct messages and unnamed spaces
func FilterRooms(spaces []*entity.Space) []*entity.Space {
	rooms := make([]*entity.Space, 0, len(spaces))
	for _, sp := range spaces {
		if sp != nil && sp.IsRoom() {
			rooms = append(rooms, sp)
		}
	}
	return rooms
}

// BuildRows converts rooms into worksheet rows sorted by display name
func BuildRows(rooms []*entity.Space, updatedAt time.Time) []entity.SpaceRow {
	rows := make([]entity.SpaceRow, 0, len(rooms))
	for _, sp := range rooms {
		rows = append(rows, entity.SpaceRow{
			DisplayName: sp.DisplayName,
			SpaceID:     sp.Name,
			CreateTime:  sp.CreateTime,
			MemberCount: sp.MemberCount,
			UpdatedAt:   updatedAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DisplayName < rows[j].DisplayName
	})
	return rows
}

// RenderRows lays rows out for the given worksheet layout
func RenderRows(layout entity.SheetLayout, rows []entity.SpaceRow) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = layout.Cells(row)
	}
	return values
}
