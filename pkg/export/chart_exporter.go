package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const chartCellsPerRow = 5

// SeatCell is one printed seat: a label line and an occupant line.
type SeatCell struct {
	Label    string
	Occupant string
}

// ChartRoom groups the seat cells of one room under a heading.
type ChartRoom struct {
	Title string
	Note  string
	Cells []SeatCell
}

// ChartDocument is the printable seating chart of a whole plan.
type ChartDocument struct {
	Title    string
	Subtitle string
	Rooms    []ChartRoom
}

// ChartExporter renders seating charts into a paginated PDF.
type ChartExporter struct{}

// NewChartExporter constructs a chart exporter.
func NewChartExporter() *ChartExporter {
	return &ChartExporter{}
}

// Render lays each room out as a grid of seat cells, five per row.
func (e *ChartExporter) Render(doc ChartDocument) ([]byte, error) {
	if len(doc.Rooms) == 0 {
		return nil, fmt.Errorf("chart requires at least one room")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(doc.Title), "", 1, "C", false, 0, "")
	}
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, doc.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	cellWidth := 190.0 / float64(chartCellsPerRow)
	for _, room := range doc.Rooms {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, room.Title, "", 1, "L", false, 0, "")
		if room.Note != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 5, room.Note, "", 1, "L", false, 0, "")
		}

		for start := 0; start < len(room.Cells); start += chartCellsPerRow {
			end := start + chartCellsPerRow
			if end > len(room.Cells) {
				end = len(room.Cells)
			}
			row := room.Cells[start:end]

			if pdf.GetY() > 265 {
				pdf.AddPage()
			}

			pdf.SetFont("Arial", "B", 8)
			for _, cell := range row {
				pdf.CellFormat(cellWidth, 6, cell.Label, "LTR", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Arial", "", 8)
			for _, cell := range row {
				pdf.CellFormat(cellWidth, 6, cell.Occupant, "LBR", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render seating chart: %w", err)
	}
	return buf.Bytes(), nil
}
