// Package migrations embeds the schema of every supported store and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Up applies every pending migration of the dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	gooseDialect, dir, err := resolve(dialect)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return errors.Wrapf(err, "open %s migrations", dialect)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return errors.Wrap(err, "create goose provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "goose up")
	}

	if logger != nil {
		for _, result := range results {
			logger.Info("Migration applied",
				slog.String("dialect", dialect),
				slog.String("source", result.Source.Path),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	return nil
}

func resolve(dialect string) (goose.Dialect, string, error) {
	switch dialect {
	case DialectPostgres:
		return goose.DialectPostgres, "postgres", nil
	case DialectSQLite:
		return goose.DialectSQLite3, "sqlite", nil
	default:
		return "", "", errors.Errorf("unsupported migration dialect: %s", dialect)
	}
}
