package holdings

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file contains functions to handle the records import/export format.
// It should remain human readable, single file and be easy to merge into a database.

// EncodeRecords writes records to 'w' in the import/export format.
//
// The format is a JSONL file, where each line is a JSON object representing one valuation
// record. Null amounts are written as null, never as 0.
func EncodeRecords(w io.Writer, records []ValuationRecord) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("cannot marshal record %q: %w", r.Holding, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write records: %w", err)
		}
	}
	return nil
}

// DecodeRecords reads records written by EncodeRecords. Blank lines are ignored.
//
// The whole input is rejected if any record fails ValuationRecord.Check.
func DecodeRecords(r io.Reader) ([]ValuationRecord, error) {
	var records []ValuationRecord
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var rec ValuationRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: cannot parse record line %d %q: %v", ErrMalformedInput, n, string(line), err)
		}
		if err := rec.Check(); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read records: %w", err)
	}
	return records, nil
}

// EncodeAggregation writes the aggregation as a single indented JSON document.
func EncodeAggregation(w io.Writer, a *Aggregation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("cannot write aggregation: %w", err)
	}
	return nil
}
