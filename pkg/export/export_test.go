package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Room", "Seat", "Roll"},
		Rows: []map[string]string{
			{"Room": "Room 1", "Seat": "1", "Roll": "101"},
			{"Room": "Room 1", "Seat": "2", "Roll": "102"},
		},
	}
	payload, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Room,Seat,Roll", lines[0])
	assert.Equal(t, "Room 1,2,102", lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestChartExporterRender(t *testing.T) {
	doc := ChartDocument{
		Title:    "Board Exam 2026",
		Subtitle: "Total students: 12",
		Rooms: []ChartRoom{
			{
				Title: "Room 1 (Bu Ani)",
				Cells: []SeatCell{
					{Label: "Seat 1", Occupant: "101"},
					{Label: "Seat 2", Occupant: "102"},
					{Label: "Seat 3", Occupant: "103"},
					{Label: "Seat 4", Occupant: "104"},
					{Label: "Seat 5", Occupant: "105"},
					{Label: "Seat 6", Occupant: "106"},
				},
			},
		},
	}
	payload, err := NewChartExporter().Render(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestChartExporterRequiresRooms(t *testing.T) {
	_, err := NewChartExporter().Render(ChartDocument{Title: "Empty"})
	require.Error(t, err)
}

func TestStickerExporterRender(t *testing.T) {
	stickers := []Sticker{
		{Lines: []string{"Roll 101", "Adi", "Room 1 / Seat 1"}},
		{Lines: []string{"Roll 102", "Budi", "Room 1 / Seat 2"}},
		{Lines: []string{"Roll 103", "Cici", "Room 1 / Seat 3"}},
		{Lines: []string{"Roll 104", "Dewi", "Room 1 / Seat 4"}},
	}
	payload, err := NewStickerExporter().Render("Board Exam 2026", stickers)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestStickerExporterRequiresStickers(t *testing.T) {
	_, err := NewStickerExporter().Render("Empty", nil)
	require.Error(t, err)
}
