package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const stickerColumns = 3

// Sticker is one printable desk sticker. The first line is emphasised.
type Sticker struct {
	Lines []string
}

// StickerExporter renders desk stickers in a three-column grid, meant to be
// cut out and taped onto the benches before the exam.
type StickerExporter struct{}

// NewStickerExporter constructs a sticker exporter.
func NewStickerExporter() *StickerExporter {
	return &StickerExporter{}
}

// Render produces the sticker sheet PDF.
func (e *StickerExporter) Render(title string, stickers []Sticker) ([]byte, error) {
	if len(stickers) == 0 {
		return nil, fmt.Errorf("sticker sheet requires at least one sticker")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	stickerWidth := 190.0 / float64(stickerColumns)
	const lineHeight = 6.0
	const stickerLines = 3

	for start := 0; start < len(stickers); start += stickerColumns {
		end := start + stickerColumns
		if end > len(stickers) {
			end = len(stickers)
		}
		row := stickers[start:end]

		if pdf.GetY() > 260 {
			pdf.AddPage()
		}

		for line := 0; line < stickerLines; line++ {
			if line == 0 {
				pdf.SetFont("Arial", "B", 11)
			} else {
				pdf.SetFont("Arial", "", 8)
			}
			for _, sticker := range row {
				text := ""
				if line < len(sticker.Lines) {
					text = sticker.Lines[line]
				}
				border := "LR"
				if line == 0 {
					border = "LTR"
				}
				if line == stickerLines-1 {
					border = "LBR"
				}
				pdf.CellFormat(stickerWidth, lineHeight, text, border, 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render sticker sheet: %w", err)
	}
	return buf.Bytes(), nil
}
