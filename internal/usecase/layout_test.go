package usecase

import (
	"testing"
	"time"

	"chatspace-exporter/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   entity.SheetLayout
	}{
		{"empty", nil, entity.LayoutCurrent},
		{"current", entity.WorksheetHeader, entity.LayoutCurrent},
		{
			"legacy",
			[]string{"Nombre Espacio", "Webhook URL", "Space ID", "Fecha Creación", "Miembros", "Última Actualización"},
			entity.LayoutLegacy,
		},
		{
			"legacy lowercase with trailing blanks",
			[]string{"Name", "webhook_url", "Space ID", "Created", "Members", "Updated", "", " "},
			entity.LayoutLegacy,
		},
		{
			"six columns without webhook",
			[]string{"Name", "Description", "Space ID", "Created", "Members", "Updated"},
			entity.LayoutCurrent,
		},
		{
			"webhook in five columns",
			[]string{"Name", "Webhook URL", "Space ID", "Created", "Members"},
			entity.LayoutCurrent,
		},
		{
			"seven columns",
			[]string{"Name", "Webhook URL", "Space ID", "Created", "Members", "Updated", "Notes"},
			entity.LayoutCurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLayout(tt.header))
		})
	}
}

func TestFilterRooms(t *testing.T) {
	spaces := []*entity.Space{
		{Name: "spaces/A", DisplayName: "Alpha", Type: entity.SpaceTypeRoom},
		{Name: "spaces/DM", Type: entity.SpaceTypeDirectMessage},
		{Name: "spaces/DM2", DisplayName: "Someone", Type: entity.SpaceTypeDirectMessage},
		{Name: "spaces/U", Type: entity.SpaceTypeRoom},
		{Name: "spaces/S", DisplayName: "Space", SpaceType: entity.SpaceTypeSpace},
		{Name: "spaces/G", DisplayName: "Group", SpaceType: entity.SpaceTypeGroupChat},
		nil,
	}

	rooms := FilterRooms(spaces)

	var names []string
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"spaces/A", "spaces/S"}, names)
}

func TestBuildRowsSortedByName(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)
	rooms := []*entity.Space{
		{Name: "spaces/C", DisplayName: "Charlie", CreateTime: "2023-03-01T00:00:00Z", MemberCount: 3},
		{Name: "spaces/A", DisplayName: "Alpha", CreateTime: "2023-01-01T00:00:00Z", MemberCount: 1},
		{Name: "spaces/B", DisplayName: "Bravo", CreateTime: "2023-02-01T00:00:00Z", MemberCount: 2},
	}

	rows := BuildRows(rooms, now)
	require.Len(t, rows, 3)

	assert.Equal(t, "Alpha", rows[0].DisplayName)
	assert.Equal(t, "Bravo", rows[1].DisplayName)
	assert.Equal(t, "Charlie", rows[2].DisplayName)
	assert.Equal(t, entity.SpaceRow{
		DisplayName: "Alpha",
		SpaceID:     "spaces/A",
		CreateTime:  "2023-01-01T00:00:00Z",
		MemberCount: 1,
		UpdatedAt:   now,
	}, rows[0])
}

func TestRenderRows(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)
	rows := []entity.SpaceRow{{DisplayName: "Alpha", SpaceID: "spaces/A", CreateTime: "2023-01-01T00:00:00Z", MemberCount: 7, UpdatedAt: now}}

	t.Run("current layout keeps five columns", func(t *testing.T) {
		values := RenderRows(entity.LayoutCurrent, rows)
		assert.Equal(t, [][]interface{}{{"Alpha", "spaces/A", "2023-01-01T00:00:00Z", int64(7), "2026-10-17 09:30:00"}}, values)
	})

	t.Run("legacy layout leaves column B empty", func(t *testing.T) {
		values := RenderRows(entity.LayoutLegacy, rows)
		assert.Equal(t, [][]interface{}{{"Alpha", "", "spaces/A", "2023-01-01T00:00:00Z", int64(7), "2026-10-17 09:30:00"}}, values)
	})
}
