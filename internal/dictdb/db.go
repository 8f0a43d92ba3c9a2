// internal/dictdb/db.go
//
// SQLite-backed dictionary for the round engine.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Seeding words and answering round.Dictionary lookups.

package dictdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrBadLocale is returned for locales that cannot be parsed.
var ErrBadLocale = errors.New("dictdb: bad locale")

// DB is a dictionary stored in SQLite.
type DB struct {
	sql *sql.DB
}

// Open opens (and creates if missing) the dictionary at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error { return d.sql.Close() }

// openDB opens the SQLite file at dsn, creating its directory if needed.
// Connections use WAL, a 5s busy timeout and enforced foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	return db, nil
}

// migrate runs each embedded migration not yet listed in _migrations, in
// file name order, one transaction per file.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		applied, err := isApplied(ctx, db, f)
		if err != nil {
			return err
		}
		if applied {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err := applyMigration(ctx, db, f); err != nil {
			return err
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("query _migrations: %w", err)
	}
	return true, nil
}

// applyMigration runs one migration file and records it in the same transaction.
func applyMigration(ctx context.Context, db *sql.DB, name string) error {
	body, err := migrationsFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

// localeKey reduces a locale to the base language words are stored under.
func localeKey(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadLocale, locale)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// Seed inserts words for locale in one transaction and records the batch
// under origin. Existing words are left alone. Returns how many were new.
func (d *DB) Seed(ctx context.Context, locale, origin string, list []string) (int, error) {
	key, err := localeKey(locale)
	if err != nil {
		return 0, err
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (locale, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, w := range list {
		w = foldWord(w)
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, key, w)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", w, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (locale, origin, inserted) VALUES (?, ?, ?)`, key, origin, inserted,
	); err != nil {
		return 0, fmt.Errorf("record source: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

// foldWord maps a word to its stored form: trimmed, lowercase, NFC.
func foldWord(w string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(w)))
}

// Count returns the number of words stored for locale.
func (d *DB) Count(ctx context.Context, locale string) (int, error) {
	key, err := localeKey(locale)
	if err != nil {
		return 0, err
	}
	var n int
	if err := d.sql.QueryRowContext(ctx, `SELECT COUNT(1) FROM words WHERE locale=?`, key).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// IsValidWord reports whether word is stored for locale's base language.
func (d *DB) IsValidWord(ctx context.Context, word, locale string) (bool, error) {
	key, err := localeKey(locale)
	if err != nil {
		return false, err
	}
	var one int
	err = d.sql.QueryRowContext(ctx,
		`SELECT 1 FROM words WHERE locale=? AND word=?`, key, foldWord(word),
	).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
