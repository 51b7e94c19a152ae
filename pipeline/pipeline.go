// Package pipeline runs the holdings workflow: import an export file into the store, then
// aggregate the stored records and build reports from them.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/findash/holdings"
	"github.com/findash/holdings/date"
	"github.com/findash/holdings/hl"
	"github.com/findash/holdings/renderer"
	"github.com/findash/holdings/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var _ Store = (*store.Store)(nil)

// DefaultPortfolio is the portfolio label used when none is given.
const DefaultPortfolio = "Shares"

// Store persists valuation records.
type Store interface {
	// Insert stores a batch, all or nothing.
	Insert(ctx context.Context, b store.Batch) (uuid.UUID, error)
	// InsertAll stores several batches, all or nothing, and returns their ids in order.
	InsertAll(ctx context.Context, batches []store.Batch) ([]uuid.UUID, error)
	// Records returns the records valued on a date, or all records for the zero date.
	Records(ctx context.Context, on date.Date) ([]holdings.ValuationRecord, error)
}

// Stores can answer some queries directly, the pipeline computes them from Records otherwise.
type (
	dateLister interface {
		Dates(ctx context.Context) ([]date.Date, error)
	}
	holdingLister interface {
		Holdings(ctx context.Context) ([]string, error)
	}
	holdingReader interface {
		HoldingRecords(ctx context.Context, holding string) ([]holdings.ValuationRecord, error)
	}
)

// Pipeline holds the collaborators of the workflow.
type Pipeline struct {
	store    Store
	log      zerolog.Logger
	currency string
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCurrency sets the currency of the reports, GBP by default.
func WithCurrency(currency string) Option { return func(p *Pipeline) { p.currency = currency } }

// WithClock sets the clock used to timestamp reports.
func WithClock(now func() time.Time) Option { return func(p *Pipeline) { p.now = now } }

// New returns a pipeline over 's'.
func New(s Store, log zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{store: s, log: log, currency: holdings.DefaultCurrency, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ImportResult is the outcome of importing one file.
type ImportResult struct {
	Success   bool      `json:"success"`
	Imported  int       `json:"imported"`
	File      string    `json:"file"`
	Portfolio string    `json:"portfolio"`
	Date      date.Date `json:"date"`
	ImportID  uuid.UUID `json:"importId"`
	Error     string    `json:"error,omitempty"`
	err       error
}

// Err returns the failure as an error, nil on success.
func (r ImportResult) Err() error { return r.err }

func (r *ImportResult) fail(err error) {
	r.Success, r.Imported, r.ImportID = false, 0, uuid.Nil
	r.err = err
	r.Error = err.Error()
}

// Import parses the export at 'path' and stores its records under 'portfolio' and 'on'.
//
// An empty portfolio is DefaultPortfolio and a zero date is today. Failures are reported in
// the result, a file is either imported completely or not at all.
func (p *Pipeline) Import(ctx context.Context, path, portfolio string, on date.Date) (result ImportResult) {
	if portfolio == "" {
		portfolio = DefaultPortfolio
	}
	if on.IsZero() {
		on = date.Of(p.now())
	}
	result = ImportResult{File: filepath.Base(path), Portfolio: portfolio, Date: on}
	log := p.log.With().Str("file", result.File).Str("portfolio", portfolio).Stringer("date", on).Logger()

	defer func() {
		if r := recover(); r != nil {
			result.fail(fmt.Errorf("import of %q aborted: %v", path, r))
			log.Error().Err(result.err).Msg("import failed")
		}
	}()

	records, err := hl.ParseFile(path, portfolio, on)
	if err != nil {
		result.fail(err)
		log.Error().Err(err).Msg("cannot parse export")
		return result
	}
	return p.insert(ctx, store.Batch{File: result.File, Portfolio: portfolio, Date: on, Records: records})
}

// Aggregate returns the positions valued 'on' that date, or over all dates if 'on' is zero.
func (p *Pipeline) Aggregate(ctx context.Context, on date.Date) (*holdings.Aggregation, error) {
	records, err := p.store.Records(ctx, on)
	if err != nil {
		return nil, fmt.Errorf("cannot read records: %w", err)
	}
	a := holdings.Aggregate(records, on)
	for _, pos := range a.Positions {
		if !pos.HasCostBasis() {
			p.log.Info().Str("holding", pos.Holding).Msg("no cost basis, return reported as 0%")
		}
	}
	p.log.Debug().Int("records", len(records)).Int("positions", len(a.Positions)).Msg("records aggregated")
	return a, nil
}

// Report builds the report document of the positions valued 'on' that date, or over all
// dates if 'on' is zero.
func (p *Pipeline) Report(ctx context.Context, on date.Date) (*renderer.Document, error) {
	a, err := p.Aggregate(ctx, on)
	if err != nil {
		return nil, err
	}
	return renderer.NewDocument(a.Positions, a.Totals, on, p.now(), p.currency), nil
}

// Dates returns the valuation dates, most recent first.
func (p *Pipeline) Dates(ctx context.Context) ([]date.Date, error) {
	if l, ok := p.store.(dateLister); ok {
		return l.Dates(ctx)
	}
	records, err := p.store.Records(ctx, date.Date{})
	if err != nil {
		return nil, fmt.Errorf("cannot read records: %w", err)
	}
	return holdings.ValuationDates(records), nil
}

// Holdings returns the holding names, sorted.
func (p *Pipeline) Holdings(ctx context.Context) ([]string, error) {
	if l, ok := p.store.(holdingLister); ok {
		return l.Holdings(ctx)
	}
	records, err := p.store.Records(ctx, date.Date{})
	if err != nil {
		return nil, fmt.Errorf("cannot read records: %w", err)
	}
	return holdings.HoldingNames(records), nil
}

// History returns the value of 'holding' at each valuation date, summed over portfolios.
func (p *Pipeline) History(ctx context.Context, holding string) (*date.History[decimal.Decimal], error) {
	var (
		records []holdings.ValuationRecord
		err     error
	)
	if r, ok := p.store.(holdingReader); ok {
		records, err = r.HoldingRecords(ctx, holding)
	} else {
		records, err = p.store.Records(ctx, date.Date{})
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read records of %q: %w", holding, err)
	}
	return holdings.HoldingHistory(records, holding), nil
}
