package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/pressly/goose/v3"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// builder renders every query in the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// Store owns the SQLite database and provides access to repositories.
type Store struct {
	db     *sql.DB
	drv    *entsql.Driver
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for migration and decode diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open connects to the SQLite database at dsn, applies pragmas and
// brings the schema up to date.
func Open(dsn string, opts ...Option) (*Store, error) {
	s := &Store{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "open database", Err: err}
	}

	// One connection keeps per-connection pragmas (foreign_keys) in force
	// for every statement.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &Error{Kind: KindIO, Op: "apply pragmas", Err: err}
	}

	if err := migrate(context.Background(), db, s.logger); err != nil {
		db.Close()
		return nil, &Error{Kind: KindIO, Op: "migrate", Err: err}
	}

	s.db = db
	s.drv = entsql.OpenDB(dialect.SQLite, db)
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// SetRepo returns a SetRepo backed by this store.
func (s *Store) SetRepo() SetRepo {
	return &setRepo{s: s}
}

// SessionRepo returns a SessionRepo backed by this store.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{s: s}
}

// SettingsRepo returns a SettingsRepo backed by this store.
func (s *Store) SettingsRepo() SettingsRepo {
	return &settingsRepo{s: s}
}

// withTx runs fn inside a transaction. The transaction is rolled back when
// fn returns an error and committed otherwise.
func (s *Store) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate applies the embedded goose migrations. Every table is created
// with IF NOT EXISTS so databases written before versioning open unchanged.
func migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		logger.Debug("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration)
	}
	return nil
}

// DefaultDBPath resolves the database file path:
// 1. $XDG_DATA_HOME/drill/drill.db
// 2. ~/.local/share/drill/drill.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "drill", "drill.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
