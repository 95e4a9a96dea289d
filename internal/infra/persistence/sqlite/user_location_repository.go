package sqlite

import (
	"context"
	"database/sql"
	"time"

	"dropradar/internal/domain/entity"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userLocationRepository struct {
	db *sql.DB
}

// NewUserLocationRepository returns a UserLocationRepository backed by db.
func NewUserLocationRepository(db *sql.DB) repository.UserLocationRepository {
	return &userLocationRepository{db: db}
}

func (repo *userLocationRepository) UpsertUserLocation(ctx context.Context, location *entity.UserLocation) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO user_locations (user_id, latitude, longitude, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET latitude = excluded.latitude, longitude = excluded.longitude, updated_at = excluded.updated_at;`,
		location.UserID.String(),
		location.Latitude,
		location.Longitude,
		toUnixNano(location.UpdatedAt),
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert user location")
	}

	return nil
}

func (repo *userLocationRepository) FindUserLocation(ctx context.Context, userID uuid.UUID) (*entity.UserLocation, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT user_id, latitude, longitude, updated_at FROM user_locations WHERE user_id = ?;`, userID.String())

	location, err := scanUserLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserLocationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user location")
	}

	return location, nil
}

func (repo *userLocationRepository) ListActiveUserLocations(ctx context.Context, since time.Time) ([]*entity.UserLocation, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT user_id, latitude, longitude, updated_at FROM user_locations WHERE updated_at >= ? ORDER BY updated_at DESC;`,
		toUnixNano(since))
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list active user locations")
	}
	defer rows.Close()

	locations := make([]*entity.UserLocation, 0)
	for rows.Next() {
		location, err := scanUserLocation(rows)
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to scan user location")
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to iterate user locations")
	}

	return locations, nil
}

func scanUserLocation(row rowScanner) (*entity.UserLocation, error) {
	var (
		userID    string
		updatedAt int64
		location  entity.UserLocation
	)

	if err := row.Scan(&userID, &location.Latitude, &location.Longitude, &updatedAt); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id")
	}
	location.UserID = parsedID
	location.UpdatedAt = fromUnixNano(updatedAt)

	return &location, nil
}
