// Package store persists valuation records in a SQLite database.
//
// Each imported export is written as one import batch: a row in the imports table and one row
// per holding in the investments table, inside a single transaction. Amounts are stored as
// decimal text so that nothing is lost to floating point.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Memory is the path of a private in-memory database, mostly useful in tests.
const Memory = ":memory:"

// Store is the SQLite implementation of the valuation repository.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// Open opens (or creates) the database at 'path' and applies pending migrations.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	if path != Memory {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve database path %q: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return nil, fmt.Errorf("cannot create database directory: %w", err)
		}
		path = abs
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", path, err)
	}
	// A single connection serialises writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot ping database %q: %w", path, err)
	}

	if err := migrateUp(db, log); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("database ready")
	return &Store{db: db, log: log, now: time.Now}, nil
}

func dsn(path string) string {
	s := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != Memory {
		s += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	return s
}

// migrateUp applies the embedded migrations.
func migrateUp(db *sql.DB, log zerolog.Logger) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("cannot create migration driver: %w", err)
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("cannot read migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("cannot create migrations: %w", err)
	}
	// m.Close would close db as well.

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug().Msg("no database migration to apply")
	case err != nil:
		return fmt.Errorf("cannot apply migrations: %w", err)
	default:
		version, _, _ := m.Version()
		log.Info().Uint("version", version).Msg("database migrated")
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// WithTransaction runs fn inside a transaction.
//
// The transaction is committed if fn returns nil, and rolled back if it returns an error or
// panics. A panic is returned as an error.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("panic in transaction: %v", p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("transaction failed: %w (rollback also failed: %v)", err, rbErr)
			} else {
				err = fmt.Errorf("transaction failed: %w", err)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("cannot commit transaction: %w", cErr)
		}
	}()

	err = fn(tx)
	return err
}
