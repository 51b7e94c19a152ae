// Package renderer turns an aggregation into a report.
//
// The report is first built as a Document: every cell already formatted and styled. Writers
// then lay the same Document out as Markdown, terminal text, PDF or XLSX.
package renderer

import (
	"fmt"
	"time"

	"github.com/findash/holdings"
	"github.com/findash/holdings/date"
	"github.com/shopspring/decimal"
)

// Title is the title of an all-time report.
const Title = "Investment Portfolio Report"

// MaxNameLength is the longest holding name printed as is, longer names are truncated.
const MaxNameLength = 35

// Tone is the text colour of a cell.
type Tone int

const (
	Neutral Tone = iota
	Gain         // green
	Loss         // red
)

// Fill is the background of a row.
type Fill int

const (
	White Fill = iota
	LightBlue
	HeaderFill // grey, with whitesmoke text
	TotalFill  // light grey
)

// Column describes a column of the table.
type Column struct {
	Title string
	Width float64 // in inches
	Right bool    // right aligned
}

// Cell is a formatted value.
type Cell struct {
	Text string
	// Number is the value of numeric cells, for writers that keep numbers as numbers.
	Number  decimal.NullDecimal
	Decimal int // number of decimal places used in Text
	Percent bool
	Tone    Tone
}

// Row is a table row.
type Row struct {
	Cells []Cell
	Fill  Fill
	Bold  bool
}

// Summary is the narrative below the table.
type Summary struct {
	Total      int
	Profitable int // profit > 0
	LossMaking int // profit < 0
	BreakEven  int // profit == 0
	Return     holdings.Percent
	Profit     holdings.Money
}

// Document is a report ready to be written in any format.
type Document struct {
	Title     string
	Generated string
	Date      date.Date // zero for an all-time report
	Currency  string
	Columns   []Column
	Header    Row
	Rows      []Row
	Total     Row
	Summary   Summary
}

// NewDocument builds the report of 'positions', in the order received, and their 'totals'.
//
// 'on' must be the date used to aggregate the positions, zero for all dates.
func NewDocument(positions []holdings.Position, totals holdings.Totals, on date.Date, generated time.Time, currency string) *Document {
	if currency == "" {
		currency = holdings.DefaultCurrency
	}
	symbol := holdings.M(decimal.Zero, currency).Grapheme()

	doc := &Document{
		Title:     Title,
		Generated: "Generated: " + generated.Format(time.DateTime),
		Date:      on,
		Currency:  currency,
		Columns: []Column{
			{Title: "Stock", Width: 2.8},
			{Title: "Units", Width: 0.7, Right: true},
			{Title: fmt.Sprintf("Cost (%s)", symbol), Width: 1, Right: true},
			{Title: fmt.Sprintf("Value (%s)", symbol), Width: 1, Right: true},
			{Title: fmt.Sprintf("Profit (%s)", symbol), Width: 1, Right: true},
			{Title: "% Return", Width: 0.8, Right: true},
		},
		Rows: make([]Row, 0, len(positions)),
	}
	if !on.IsZero() {
		doc.Title = fmt.Sprintf("%s as of %s", Title, on)
	}

	doc.Header = Row{Fill: HeaderFill, Bold: true}
	for _, c := range doc.Columns {
		doc.Header.Cells = append(doc.Header.Cells, Cell{Text: c.Title})
	}

	for i, p := range positions {
		tone := toneOf(p.Profit())
		fill := White
		if i%2 == 1 {
			fill = LightBlue
		}
		doc.Rows = append(doc.Rows, Row{
			Fill: fill,
			Cells: []Cell{
				{Text: Truncate(p.Holding)},
				number(p.Units, 1),
				number(p.Cost, 2),
				number(p.Value, 2),
				withTone(number(p.Profit(), 2), tone),
				withTone(percent(p.Return()), tone),
			},
		})
		doc.Summary.add(p.Profit())
	}

	doc.Total = Row{
		Fill: TotalFill,
		Bold: true,
		Cells: []Cell{
			{Text: "TOTAL"},
			{},
			number(totals.Cost, 2),
			number(totals.Value, 2),
			number(totals.Profit(), 2),
			percent(totals.Return()),
		},
	}
	doc.Summary.Return = totals.Return()
	doc.Summary.Profit = holdings.M(totals.Profit(), currency)
	return doc
}

func (s *Summary) add(profit decimal.Decimal) {
	s.Total++
	switch profit.Sign() {
	case 1:
		s.Profitable++
	case -1:
		s.LossMaking++
	default:
		s.BreakEven++
	}
}

// Lines returns the summary as text lines.
//
// The break-even count is printed only when there is one.
func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Total Stocks: %d", s.Total),
		fmt.Sprintf("Profitable: %d", s.Profitable),
		fmt.Sprintf("Loss-making: %d", s.LossMaking),
	}
	if s.BreakEven > 0 {
		lines = append(lines, fmt.Sprintf("Break-even: %d", s.BreakEven))
	}
	return append(lines,
		fmt.Sprintf("Overall Portfolio Return: %s", s.Return),
		fmt.Sprintf("Total Profit/Loss: %s", s.Profit),
	)
}

// Truncate shortens names longer than MaxNameLength runes to their first MaxNameLength
// runes followed by "...".
func Truncate(name string) string {
	r := []rune(name)
	if len(r) <= MaxNameLength {
		return name
	}
	return string(r[:MaxNameLength]) + "..."
}

// toneOf colours profits: a zero profit is a gain.
func toneOf(profit decimal.Decimal) Tone {
	if profit.IsNegative() {
		return Loss
	}
	return Gain
}

func number(d decimal.Decimal, places int) Cell {
	return Cell{
		Text:    holdings.FormatNumber(d, places),
		Number:  decimal.NewNullDecimal(d),
		Decimal: places,
	}
}

func percent(p holdings.Percent) Cell {
	return Cell{
		Text:    p.Fixed(1),
		Number:  decimal.NewNullDecimal(p.Decimal()),
		Decimal: 1,
		Percent: true,
	}
}

func withTone(c Cell, t Tone) Cell {
	c.Tone = t
	return c
}
