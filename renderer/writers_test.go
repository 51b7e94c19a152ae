package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/findash/holdings"
	"github.com/findash/holdings/date"
	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func sampleDoc() *Document {
	return newDoc(date.New(2025, time.August, 1),
		pos("Legal & General UK Index Class C - Accumulation (GBP)", "1234.56", "2500", "3087.63"),
		pos("Fundsmith | Equity", "500", "4000", "3561.7"),
		pos("Scottish Mortgage", "100", "0", "850"),
	)
}

// markdownTable parses 'md' and returns the text of every cell of its first table.
func markdownTable(t *testing.T, md string) (headings []string, rows [][]string) {
	t.Helper()
	source := []byte(md)
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	doc := parser.Parse(text.NewReader(source))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			headings = append(headings, string(n.Text(source)))
		case east.KindTableHeader, east.KindTableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, string(c.Text(source)))
			}
			rows = append(rows, row)
		}
		return ast.WalkContinue, nil
	})
	return headings, rows
}

func TestMarkdown(t *testing.T) {
	doc := sampleDoc()
	md := Markdown(doc)

	headings, rows := markdownTable(t, md)
	wantHeadings := []string{"Investment Portfolio Report as of 2025-08-01", "Portfolio Summary"}
	if strings.Join(headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("headings = %q, want %q", headings, wantHeadings)
	}

	// header + 3 holdings + total
	if len(rows) != 5 {
		t.Fatalf("table has %d rows, want 5:\n%s", len(rows), md)
	}
	if got := strings.Join(rows[0], "|"); got != "Stock|Units|Cost (£)|Value (£)|Profit (£)|% Return" {
		t.Errorf("table header = %q", got)
	}
	if got := rows[1][0]; got != "Legal & General UK Index Class C - ..." {
		t.Errorf("first holding = %q, want the truncated name", got)
	}
	if got := rows[2]; len(got) != 6 || !strings.HasPrefix(got[0], "Fundsmith") {
		t.Errorf("row with a pipe in its name = %q, want 6 cells", got)
	}
	if got := rows[4][0]; got != "TOTAL" {
		t.Errorf("last row = %q, want TOTAL", got)
	}
	if !strings.Contains(md, "**TOTAL**") {
		t.Errorf("TOTAL row is not bold:\n%s", md)
	}

	for _, line := range doc.Summary.Lines() {
		if !strings.Contains(md, "- "+line+"\n") {
			t.Errorf("summary line %q missing:\n%s", line, md)
		}
	}
	if !strings.Contains(md, "Generated: 2025-08-02 09:30:05") {
		t.Errorf("generation time missing:\n%s", md)
	}
}

func TestMarkdown_EscapesNames(t *testing.T) {
	name := "Baillie *Gifford* _Shin_ `Nippon`"
	md := Markdown(newDoc(date.New(2025, time.August, 1), pos(name, "10", "100", "120")))

	source := []byte(md)
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	ast.Walk(parser.Parse(text.NewReader(source)), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case ast.KindCodeSpan, ast.KindLink:
			t.Errorf("holding name rendered as %s:\n%s", n.Kind(), md)
		case ast.KindEmphasis:
			if s := string(n.Text(source)); strings.ContainsAny(s, "GSN") {
				t.Errorf("holding name rendered with emphasis %q:\n%s", s, md)
			}
		}
		return ast.WalkContinue, nil
	})

	_, rows := markdownTable(t, md)
	if len(rows) != 3 || len(rows[1]) != 6 {
		t.Fatalf("table rows = %q, want header, holding and total", rows)
	}
	for _, word := range []string{"Baillie", "Gifford", "Shin", "Nippon"} {
		if !strings.Contains(rows[1][0], word) {
			t.Errorf("holding cell %q lost %q", rows[1][0], word)
		}
	}
}

func TestMarkdownCell(t *testing.T) {
	tests := []struct {
		in   string
		bold bool
		want string
	}{
		{"Legal & General (GBP) - Acc.", false, "Legal & General (GBP) - Acc."},
		{"a|b", false, `a\|b`},
		{"*x* _y_ `z`", false, "\\*x\\* \\_y\\_ \\`z\\`"},
		{`[a]<b>~c\`, false, `\[a\]\<b\>\~c\\`},
		{"TOTAL", true, "**TOTAL**"},
		{"", true, ""},
	}
	for _, tt := range tests {
		if got := markdownCell(Cell{Text: tt.in}, tt.bold); got != tt.want {
			t.Errorf("markdownCell(%q, %v) = %q, want %q", tt.in, tt.bold, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(sampleDoc(), 120)
	if err != nil {
		t.Fatalf("Terminal() error = %v", err)
	}
	for _, want := range []string{"Investment Portfolio Report", "TOTAL", "Portfolio Summary"} {
		if !strings.Contains(out, want) {
			t.Errorf("Terminal() output does not contain %q:\n%s", want, out)
		}
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(sampleDoc(), &buf); err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("PDF() output does not start with a PDF header")
	}
	if got := pages(buf.String()); got != 1 {
		t.Errorf("PDF() has %d pages, want 1", got)
	}
}

func TestPDF_Paginates(t *testing.T) {
	var positions []holdings.Position
	for i := range 120 {
		positions = append(positions, pos(fmt.Sprintf("Holding %03d", i), "1", "100", "110"))
	}
	doc := newDoc(date.Date{}, positions...)

	var buf bytes.Buffer
	if err := PDF(doc, &buf); err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if got := pages(buf.String()); got < 2 {
		t.Errorf("PDF() has %d pages, want several", got)
	}
}

// pages counts the page objects of a PDF file.
func pages(pdf string) int {
	return strings.Count(pdf, "/Type /Page") - strings.Count(pdf, "/Type /Pages")
}

func TestXLSX(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	if err := XLSX(doc, &buf); err != nil {
		t.Fatalf("XLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("cannot read back XLSX: %v", err)
	}
	defer f.Close()

	raw := excelize.Options{RawCellValue: true}
	cell := func(axis string) string {
		t.Helper()
		v, err := f.GetCellValue(SheetName, axis, raw)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", axis, err)
		}
		return v
	}

	tests := []struct {
		axis, want string
	}{
		{"A1", "Investment Portfolio Report as of 2025-08-01"},
		{"A2", "Generated: 2025-08-02 09:30:05"},
		{"A4", "Stock"},
		{"F4", "% Return"},
		{"A5", "Legal & General UK Index Class C - ..."},
		{"B5", "1234.56"},
		{"C6", "4000"},
		{"D7", "850"},
		{"A8", "TOTAL"},
		{"B8", ""},
		{"C8", "6500"},
		{"A10", "Portfolio Summary"},
		{"A11", "Total Stocks: 3"},
	}
	for _, tt := range tests {
		if got := cell(tt.axis); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.axis, got, tt.want)
		}
	}
}
