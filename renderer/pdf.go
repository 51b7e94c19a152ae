package renderer

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	mmPerInch = 25.4
	pdfMargin = 12.0 // mm
	rowHeight = 6.0  // mm
)

type rgb struct{ r, g, b int }

var (
	black      = rgb{0, 0, 0}
	grey       = rgb{128, 128, 128}
	whitesmoke = rgb{245, 245, 245}
	lightBlue  = rgb{173, 216, 230}
	lightGrey  = rgb{211, 211, 211}
	white      = rgb{255, 255, 255}
	red        = rgb{255, 0, 0}
	green      = rgb{0, 128, 0}
)

func (f Fill) color() rgb {
	switch f {
	case LightBlue:
		return lightBlue
	case HeaderFill:
		return grey
	case TotalFill:
		return lightGrey
	default:
		return white
	}
}

func (t Tone) color() rgb {
	switch t {
	case Gain:
		return green
	case Loss:
		return red
	default:
		return black
	}
}

// PDF writes the document as an A4 portrait PDF.
//
// The table header is repeated at the top of every page the table spans.
func PDF(doc *Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(doc.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252, has £ and €

	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()
	width := pageWidth - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(width, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(width, 6, tr(doc.Generated), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	widths := make([]float64, len(doc.Columns))
	for i, c := range doc.Columns {
		widths[i] = c.Width * mmPerInch
	}
	aligns := make([]string, len(doc.Columns))
	centered := make([]string, len(doc.Columns))
	for i, c := range doc.Columns {
		aligns[i], centered[i] = "L", "C"
		if c.Right {
			aligns[i] = "R"
		}
	}

	pdf.SetDrawColor(black.r, black.g, black.b)
	pdf.SetLineWidth(0.3)

	drawRow := func(row Row, size float64, text rgb, align []string) {
		style := ""
		if row.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		fill := row.Fill.color()
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		for i, c := range row.Cells {
			col := text
			if c.Tone != Neutral {
				col = c.Tone.color()
			}
			pdf.SetTextColor(col.r, col.g, col.b)
			pdf.CellFormat(widths[i], rowHeight, tr(c.Text), "1", 0, align[i], true, 0, "")
		}
		pdf.Ln(-1)
	}
	header := func() { drawRow(doc.Header, 10, whitesmoke, centered) }
	// breakPage starts a new page, with the table header, when the next row does not fit.
	breakPage := func() {
		if pdf.GetY()+rowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			header()
		}
	}

	header()
	for _, row := range doc.Rows {
		breakPage()
		drawRow(row, 8, black, aligns)
	}
	breakPage()
	drawRow(doc.Total, 9, black, aligns)

	pdf.Ln(8)
	pdf.SetTextColor(black.r, black.g, black.b)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 7, "Portfolio Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range doc.Summary.Lines() {
		pdf.MultiCell(width, 6, tr(line), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("cannot write PDF report: %w", err)
	}
	return nil
}
