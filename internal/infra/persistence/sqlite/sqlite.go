// Package sqlite is the embedded store used for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dropradar/internal/domain/lifecycle"
	"dropradar/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// Open opens a SQLite database at the given path and runs migrations.
// The pool is limited to one connection so ":memory:" databases survive between calls.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	dsn := "file::memory:?_pragma=busy_timeout(5000)"
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create db directory")
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()

		return nil, errors.Wrap(err, "ping sqlite")
	}

	if err := migrations.Up(ctx, db, migrations.DialectSQLite, logger); err != nil {
		db.Close()

		return nil, errors.Wrap(err, "migrate sqlite")
	}

	return db, nil
}

func toUnixNano(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func toNullUnixNano(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: toUnixNano(*t), Valid: true}
}

func fromNullUnixNano(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromUnixNano(n.Int64)

	return &t
}
