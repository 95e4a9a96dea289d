// Package persistence selects the configured store and exposes its repositories.
package persistence

import (
	"context"
	"log/slog"

	"dropradar/config"
	"dropradar/internal/domain/repository"
	"dropradar/internal/infra/persistence/postgres"
	"dropradar/internal/infra/persistence/sqlite"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required to build the store
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Repositories are the store-backed repositories handed to the usecases
type Repositories struct {
	fx.Out

	Drops     repository.DropRepository
	Locations repository.UserLocationRepository
}

// New builds the repositories of the configured persistence driver.
func New(params Params) (Repositories, error) {
	driver := config.DriverPostgres
	if params.Config.Persistence != nil {
		driver = params.Config.Persistence.Driver
	}

	params.Logger.Info("Initializing persistence", slog.String("driver", driver))

	switch driver {
	case config.DriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Drops:     postgres.NewDropRepository(db),
			Locations: postgres.NewUserLocationRepository(db),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(params.Ctx, params.Config.Persistence.SQLitePath, params.Logger)
		if err != nil {
			return Repositories{}, err
		}

		params.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return db.Close()
			},
		})

		return Repositories{
			Drops:     sqlite.NewDropRepository(db),
			Locations: sqlite.NewUserLocationRepository(db),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown persistence driver: %s", driver)
	}
}
