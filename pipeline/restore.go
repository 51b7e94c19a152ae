package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/findash/holdings"
	"github.com/findash/holdings/date"
	"github.com/findash/holdings/store"
)

// Restore stores the records of a file written by holdings.EncodeRecords.
//
// Records are stored in one batch per portfolio and valuation date, in order of first
// appearance, and there is one result per batch. The file is restored completely or not at
// all: if any batch fails, every result is a failure. A file that cannot be read gives a
// single failed result.
func (p *Pipeline) Restore(ctx context.Context, path string) []ImportResult {
	name := filepath.Base(path)
	failed := func(err error) []ImportResult {
		r := ImportResult{File: name}
		r.fail(err)
		p.log.Error().Err(err).Str("file", name).Msg("cannot restore records")
		return []ImportResult{r}
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(fmt.Errorf("%w: %s", holdings.ErrFileNotFound, path))
	}
	if err != nil {
		return failed(fmt.Errorf("cannot open %q: %w", path, err))
	}
	defer f.Close()

	records, err := holdings.DecodeRecords(f)
	if err != nil {
		return failed(fmt.Errorf("cannot decode %q: %w", path, err))
	}

	type key struct {
		portfolio string
		on        date.Date
	}
	var batches []store.Batch
	index := make(map[key]int)
	for _, r := range records {
		if r.Portfolio == "" {
			r.Portfolio = DefaultPortfolio
		}
		k := key{r.Portfolio, r.Date}
		i, ok := index[k]
		if !ok {
			i = len(batches)
			index[k] = i
			batches = append(batches, store.Batch{File: name, Portfolio: r.Portfolio, Date: r.Date})
		}
		batches[i].Records = append(batches[i].Records, r)
	}

	return p.insertAll(ctx, batches)
}

// insertAll stores the batches of one file in a single transaction, a panicking store is a
// failure of every batch.
func (p *Pipeline) insertAll(ctx context.Context, batches []store.Batch) (results []ImportResult) {
	if len(batches) == 0 {
		return nil
	}
	results = make([]ImportResult, len(batches))
	for i, b := range batches {
		results[i] = ImportResult{File: b.File, Portfolio: b.Portfolio, Date: b.Date}
	}
	failAll := func(err error) {
		for i := range results {
			results[i].fail(err)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			failAll(fmt.Errorf("restore aborted: %v", r))
			p.log.Error().Err(results[0].err).Msg("restore failed")
		}
	}()

	ids, err := p.store.InsertAll(ctx, batches)
	if err != nil {
		failAll(err)
		p.log.Error().Err(err).Int("batches", len(batches)).Msg("cannot store records")
		return results
	}
	for i, b := range batches {
		results[i].Success, results[i].Imported, results[i].ImportID = true, len(b.Records), ids[i]
		p.log.Info().Str("file", b.File).Str("portfolio", b.Portfolio).Stringer("date", b.Date).
			Int("records", len(b.Records)).Stringer("import", ids[i]).Msg("records stored")
	}
	return results
}

// insert stores one batch and reports it, a panicking store is a failure.
func (p *Pipeline) insert(ctx context.Context, b store.Batch) (result ImportResult) {
	result = ImportResult{File: b.File, Portfolio: b.Portfolio, Date: b.Date}
	log := p.log.With().Str("file", b.File).Str("portfolio", b.Portfolio).Stringer("date", b.Date).Logger()
	defer func() {
		if r := recover(); r != nil {
			result.fail(fmt.Errorf("import of %q aborted: %v", b.File, r))
			log.Error().Err(result.err).Msg("import failed")
		}
	}()

	id, err := p.store.Insert(ctx, b)
	if err != nil {
		result.fail(err)
		log.Error().Err(err).Msg("cannot store records")
		return result
	}
	result.Success, result.Imported, result.ImportID = true, len(b.Records), id
	log.Info().Int("records", len(b.Records)).Stringer("import", id).Msg("records stored")
	return result
}
