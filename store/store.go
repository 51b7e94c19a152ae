package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/findash/holdings"
	"github.com/findash/holdings/date"
	"github.com/google/uuid"
)

// Batch is the content of one imported export file.
type Batch struct {
	File      string
	Portfolio string
	Date      date.Date
	Records   []holdings.ValuationRecord
}

// Import describes a batch already stored.
type Import struct {
	ID         uuid.UUID `json:"id"`
	File       string    `json:"file"`
	Portfolio  string    `json:"portfolio"`
	Date       date.Date `json:"date"`
	Records    int       `json:"records"`
	ImportedAt time.Time `json:"importedAt"`
}

const recordColumns = `portfolio, investment, tracker_id, units, cost, value, date_of_valuation`

// Insert stores every record of 'b' and returns the id of the new import batch.
//
// It is all or nothing: if any record cannot be written, nothing is.
func (s *Store) Insert(ctx context.Context, b Batch) (uuid.UUID, error) {
	ids, err := s.InsertAll(ctx, []Batch{b})
	if err != nil {
		return uuid.Nil, err
	}
	return ids[0], nil
}

// InsertAll stores the batches in a single transaction and returns their ids, in order.
//
// If any record of any batch cannot be written, no batch is stored.
func (s *Store) InsertAll(ctx context.Context, batches []Batch) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(batches))
	err := WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		for _, b := range batches {
			id, err := s.insert(ctx, tx, b)
			if err != nil {
				return fmt.Errorf("%w: cannot insert %d records from %q: %w", holdings.ErrPersistence, len(b.Records), b.File, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, holdings.ErrPersistence) {
			err = fmt.Errorf("%w: %w", holdings.ErrPersistence, err)
		}
		return nil, err
	}
	for i, b := range batches {
		s.log.Debug().Stringer("import", ids[i]).Int("records", len(b.Records)).Msg("batch stored")
	}
	return ids, nil
}

// insert writes the import row of 'b' and its records.
func (s *Store) insert(ctx context.Context, tx *sql.Tx, b Batch) (uuid.UUID, error) {
	id := uuid.New()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, file_name, portfolio, date_of_valuation, record_count, imported_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, b.File, b.Portfolio, b.Date, len(b.Records), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return uuid.Nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO investments (import_id, `+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()

	for i, r := range b.Records {
		if _, err := stmt.ExecContext(ctx, id, r.Portfolio, r.Holding, r.TrackerID, r.Units, r.Cost, r.Value, r.Date); err != nil {
			return uuid.Nil, fmt.Errorf("record %d (%s): %w", i+1, r.Holding, err)
		}
	}
	return id, nil
}

// Records returns the records valued 'on' that date, or all of them if 'on' is zero, in
// insertion order.
func (s *Store) Records(ctx context.Context, on date.Date) ([]holdings.ValuationRecord, error) {
	if on.IsZero() {
		return s.query(ctx, `SELECT `+recordColumns+` FROM investments ORDER BY id`)
	}
	return s.query(ctx, `SELECT `+recordColumns+` FROM investments WHERE date_of_valuation = ? ORDER BY id`, on)
}

// HoldingRecords returns the records of a single holding, oldest first.
func (s *Store) HoldingRecords(ctx context.Context, holding string) ([]holdings.ValuationRecord, error) {
	return s.query(ctx, `SELECT `+recordColumns+` FROM investments WHERE investment = ? ORDER BY date_of_valuation, id`, holding)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]holdings.ValuationRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot query records: %w", holdings.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]holdings.ValuationRecord, 0)
	for rows.Next() {
		var r holdings.ValuationRecord
		if err := rows.Scan(&r.Portfolio, &r.Holding, &r.TrackerID, &r.Units, &r.Cost, &r.Value, &r.Date); err != nil {
			return nil, fmt.Errorf("%w: cannot read record: %w", holdings.ErrPersistence, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: cannot read records: %w", holdings.ErrPersistence, err)
	}
	return records, nil
}

// Dates returns the distinct valuation dates, most recent first.
func (s *Store) Dates(ctx context.Context) ([]date.Date, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT date_of_valuation FROM investments ORDER BY date_of_valuation DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot query dates: %w", holdings.ErrPersistence, err)
	}
	defer rows.Close()

	dates := make([]date.Date, 0)
	for rows.Next() {
		var d date.Date
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: cannot read date: %w", holdings.ErrPersistence, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: cannot read dates: %w", holdings.ErrPersistence, err)
	}
	return dates, nil
}

// Holdings returns the distinct holding names, sorted.
func (s *Store) Holdings(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT investment FROM investments WHERE investment <> '' ORDER BY investment`)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot query holdings: %w", holdings.ErrPersistence, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: cannot read holding: %w", holdings.ErrPersistence, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: cannot read holdings: %w", holdings.ErrPersistence, err)
	}
	return names, nil
}

// Imports lists the import batches, most recent first.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, file_name, portfolio, date_of_valuation, record_count, imported_at FROM imports ORDER BY imported_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot query imports: %w", holdings.ErrPersistence, err)
	}
	defer rows.Close()

	imports := make([]Import, 0)
	for rows.Next() {
		var (
			i  Import
			at string
		)
		if err := rows.Scan(&i.ID, &i.File, &i.Portfolio, &i.Date, &i.Records, &at); err != nil {
			return nil, fmt.Errorf("%w: cannot read import: %w", holdings.ErrPersistence, err)
		}
		if i.ImportedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("%w: invalid import time %q: %w", holdings.ErrPersistence, at, err)
		}
		imports = append(imports, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: cannot read imports: %w", holdings.ErrPersistence, err)
	}
	return imports, nil
}
