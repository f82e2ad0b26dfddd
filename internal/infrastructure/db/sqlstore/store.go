// Package sqlstore implements the repositories on top of GORM, backed by
// PostgreSQL (pgx) in production and SQLite for local runs and tests.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/healthwhisperer/wellness/internal/infrastructure/db/sqlstore/migrations"
)

// Dialect identifies the SQL backend behind a Store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ErrUnsupportedURL is returned for database URLs that are neither
// PostgreSQL nor SQLite.
var ErrUnsupportedURL = errors.New("sqlstore: unsupported database url")

// Config captures the connection and pool settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store owns the GORM handle and the underlying *sql.DB.
type Store struct {
	db      *gorm.DB
	sqlDB   *sql.DB
	dialect Dialect
}

// ParseURL works out the dialect and the driver DSN for a database URL.
// Accepted forms: postgres://, postgresql://, key=value DSNs with host=,
// sqlite:///path, file: URIs and :memory:.
func ParseURL(raw string) (Dialect, string, error) {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return DialectPostgres, u, nil
	case strings.Contains(u, "host="):
		return DialectPostgres, u, nil
	case u == "sqlite://":
		return DialectSQLite, ":memory:", nil
	case strings.HasPrefix(u, "sqlite:///"):
		return DialectSQLite, strings.TrimPrefix(u, "sqlite:///"), nil
	case strings.HasPrefix(u, "file:"), u == ":memory:", strings.HasSuffix(u, ".db"):
		return DialectSQLite, u, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(u))
}

// Open connects to the database named by cfg.URL, applies pool limits and
// verifies connectivity with a ping.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	dialect, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	var db *gorm.DB
	switch dialect {
	case DialectPostgres:
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("gorm postgres: %w", err)
		}
	case DialectSQLite:
		db, err = gorm.Open(sqlite.Open(sqliteDSN(dsn)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("gorm sqlite: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite gets one long-lived connection; :memory: databases die with it.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	s := &Store{db: db, sqlDB: sqlDB, dialect: dialect}
	if err := s.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return s, nil
}

// sqliteDSN turns on foreign keys so interaction rows cascade with users.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if dsn == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// redact hides the password part of a URL for error messages.
func redact(u string) string {
	at := strings.LastIndex(u, "@")
	scheme := strings.Index(u, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return u
	}
	return u[:scheme+3] + "***" + u[at:]
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate brings the schema up to date: goose with the embedded SQL files on
// PostgreSQL, GORM auto-migration on SQLite.
func (s *Store) Migrate(ctx context.Context) error {
	if s.dialect == DialectSQLite {
		if err := s.db.WithContext(ctx).AutoMigrate(&userRecord{}, &interactionRecord{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, s.sqlDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// Dialect reports which backend the store talks to.
func (s *Store) Dialect() Dialect { return s.dialect }

// Users returns the user repository bound to this store.
func (s *Store) Users() *UserRepository { return &UserRepository{db: s.db} }

// Interactions returns the interaction repository bound to this store.
func (s *Store) Interactions() *InteractionRepository { return &InteractionRepository{db: s.db} }
