// Package hl reads the portfolio valuation exports downloaded from the broker web site.
//
// An export is a CSV file made of a fixed preamble (account name, report date, disclaimers)
// followed by a regular table with one row per holding and a trailing "Totals" row.
//
//	Stock,Code,Units held,Price (pence),Value (£),Cost (£),Gain/loss (£),Gain/loss (%)
//	Legal & General UK Index Class C - Accumulation (GBP),LGUKC,"1,234.56",...
//	Totals,,,,"12,345.67","10,000.00",...
package hl

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/findash/holdings"
	"github.com/findash/holdings/date"
)

// PreambleLines is the number of lines before the table header in an export.
const PreambleLines = 10

// Column names read from the table header.
const (
	ColumnStock = "Stock"
	ColumnCode  = "Code"
	ColumnUnits = "Units held"
	ColumnCost  = "Cost (£)"
	ColumnValue = "Value (£)"
)

// TotalsRow is the holding name of the footer row the broker appends to the table.
const TotalsRow = holdings.TotalsHolding

var requiredColumns = []string{ColumnStock, ColumnCode, ColumnUnits, ColumnCost, ColumnValue}

// ParseFile opens the export at 'path' and parses it, see Parse.
//
// A path that does not exist is an error wrapping holdings.ErrFileNotFound.
func ParseFile(path, portfolio string, on date.Date) ([]holdings.ValuationRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", holdings.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open export %q: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f, portfolio, on)
	if err != nil {
		return nil, fmt.Errorf("cannot parse export %q: %w", path, err)
	}
	return records, nil
}

// Parse reads one export and returns a record per holding.
//
// The first PreambleLines lines are skipped, whatever they contain. Rows without a holding
// name or without an instrument code, and the "Totals" row, are not holdings and are
// silently dropped. Names and codes are compared as read, untrimmed.
//
// Every record gets 'portfolio' and 'on' as its portfolio and valuation date, the file
// itself is not trusted for those.
//
// A missing column or an amount that is not a number rejects the whole file with an error
// wrapping holdings.ErrMalformedInput, no record is returned.
func Parse(r io.Reader, portfolio string, on date.Date) ([]holdings.ValuationRecord, error) {
	br := bufio.NewReader(r)
	for i := range PreambleLines {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("%w: export ends in its preamble at line %d", holdings.ErrMalformedInput, i+1)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // the preamble and footer rows are not as wide as the table
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing table header after line %d", holdings.ErrMalformedInput, PreambleLines)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read table header: %v", holdings.ErrMalformedInput, err)
	}
	cols, err := columns(header)
	if err != nil {
		return nil, err
	}

	records := make([]holdings.ValuationRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", holdings.ErrMalformedInput, err)
		}
		line, _ := reader.FieldPos(0)
		line += PreambleLines

		cell := func(name string) string {
			if i := cols[name]; i < len(row) {
				return row[i]
			}
			return ""
		}

		stock, code := cell(ColumnStock), cell(ColumnCode)
		if stock == "" || code == "" || stock == TotalsRow {
			continue
		}

		rec := holdings.ValuationRecord{
			Portfolio: portfolio,
			Holding:   stock,
			TrackerID: code,
			Date:      on,
		}
		if rec.Units, err = holdings.ParseAmount(cell(ColumnUnits)); err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, ColumnUnits, err)
		}
		if rec.Cost, err = holdings.ParseAmount(cell(ColumnCost)); err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, ColumnCost, err)
		}
		if rec.Value, err = holdings.ParseAmount(cell(ColumnValue)); err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, ColumnValue, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// columns maps every required column to its index in the header.
func columns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: column %q not found in header %q", holdings.ErrMalformedInput, name, header)
		}
	}
	return index, nil
}


// File is an export file found in the exports directory.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Files lists the CSV files in 'dir', sorted by name.
//
// A directory that does not exist contains no files.
func Files(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list exports in %q: %w", dir, err)
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, File{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
	}
	return files, nil
}
