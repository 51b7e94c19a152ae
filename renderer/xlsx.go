package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single sheet of an XLSX report.
const SheetName = "Report"

// firstTableRow is the spreadsheet row of the table header.
const firstTableRow = 4

// XLSX writes the document as a spreadsheet, amounts are kept as numbers.
func XLSX(doc *Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	x := &xlsxWriter{f: f, styles: make(map[xlsxStyle]int)}
	x.write(doc)
	if x.err != nil {
		return fmt.Errorf("cannot build XLSX report: %w", x.err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write XLSX report: %w", err)
	}
	return nil
}

// xlsxStyle identifies a cell style, the writer creates each one once.
type xlsxStyle struct {
	fill    Fill
	bold    bool
	size    float64
	tone    Tone
	decimal int
	percent bool
	numeric bool
	center  bool
	table   bool
}

// xlsxWriter records the first error and ignores every call after it.
type xlsxWriter struct {
	f      *excelize.File
	styles map[xlsxStyle]int
	err    error
}

func (x *xlsxWriter) write(doc *Document) {
	if x.err = x.f.SetSheetName("Sheet1", SheetName); x.err != nil {
		return
	}
	x.set(1, 1, doc.Title, xlsxStyle{bold: true, size: 18})
	x.set(1, 2, doc.Generated, xlsxStyle{size: 10})

	for i, c := range doc.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			x.err = err
			return
		}
		if x.err = x.f.SetColWidth(SheetName, name, name, c.Width*14); x.err != nil {
			return
		}
	}

	row := firstTableRow
	x.row(row, doc.Header, 10, true)
	for _, r := range doc.Rows {
		row++
		x.row(row, r, 8, false)
	}
	row++
	x.row(row, doc.Total, 9, false)

	row += 2
	x.set(1, row, "Portfolio Summary", xlsxStyle{bold: true, size: 12})
	for _, line := range doc.Summary.Lines() {
		row++
		x.set(1, row, line, xlsxStyle{size: 12})
	}
}

func (x *xlsxWriter) row(row int, r Row, size float64, header bool) {
	for i, c := range r.Cells {
		s := xlsxStyle{fill: r.Fill, bold: r.Bold, size: size, tone: c.Tone, center: header, table: true}
		var value any = c.Text
		if c.Number.Valid {
			value = c.Number.Decimal.InexactFloat64()
			s.numeric, s.decimal, s.percent = true, c.Decimal, c.Percent
		}
		x.set(i+1, row, value, s)
	}
}

func (x *xlsxWriter) set(col, row int, value any, s xlsxStyle) {
	if x.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		x.err = err
		return
	}
	if x.err = x.f.SetCellValue(SheetName, cell, value); x.err != nil {
		return
	}
	id, err := x.style(s)
	if err != nil {
		x.err = err
		return
	}
	x.err = x.f.SetCellStyle(SheetName, cell, cell, id)
}

func (x *xlsxWriter) style(s xlsxStyle) (int, error) {
	if id, ok := x.styles[s]; ok {
		return id, nil
	}
	text := black
	switch {
	case s.fill == HeaderFill:
		text = whitesmoke
	case s.tone != Neutral:
		text = s.tone.color()
	}
	style := &excelize.Style{
		Font: &excelize.Font{Family: "Helvetica", Bold: s.bold, Size: s.size, Color: hex(text)},
	}
	if s.table {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex(s.fill.color())}}
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	if s.center {
		style.Alignment = &excelize.Alignment{Horizontal: "center"}
	}
	if s.numeric {
		frac := ""
		if s.decimal > 0 {
			frac = "." + strings.Repeat("0", s.decimal)
		}
		format := "#,##0" + frac
		if s.percent {
			format = "0" + frac + `"%"`
		}
		style.CustomNumFmt = &format
	}
	id, err := x.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	x.styles[s] = id
	return id, nil
}

func hex(c rgb) string { return fmt.Sprintf("%02X%02X%02X", c.r, c.g, c.b) }

