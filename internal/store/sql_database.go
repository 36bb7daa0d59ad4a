package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
)

// DB wraps a *sql.DB with the dialect-specific pieces the repositories need.
type DB struct {
	*sql.DB
	dialect            string
	queries            queryBuilder
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the backend selected by the DSN scheme:
// postgres:// and postgresql:// select PostgreSQL, sqlite:// and file:
// select SQLite.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case hasAnyPrefix(cfg.DSN, "postgres://", "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case hasAnyPrefix(cfg.DSN, sqliteScheme, "file:"):
		return NewConnectSQLite(ctx, cfg, log)
	}

	// the dsn may carry credentials, never log it
	log.Error().Str("func", "NewDB").Msg("unsupported database dsn scheme")
	return nil, ErrUnsupportedDSN
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		queries:            newQueryBuilder(dialect),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the database/sql driver name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// wrapError wraps err with sentinel and, when the failure is temporary,
// with [ErrTransient] as well.
func (db *DB) wrapError(sentinel, err error) error {
	if db.isTransient(err) {
		return fmt.Errorf("%w: %w: %w", sentinel, ErrTransient, err)
	}
	return wrap(sentinel, err)
}

func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}

func (db *DB) isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
