package postgres

import (
	"context"
	"time"

	"dropradar/internal/domain/entity"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/repository"
	"dropradar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// userLocationRepository implements the repository.UserLocationRepository interface.
type userLocationRepository struct {
	db *gorm.DB
}

// NewUserLocationRepository is the constructor for userLocationRepository.
func NewUserLocationRepository(db *gorm.DB) repository.UserLocationRepository {
	return &userLocationRepository{db: db}
}

// UpsertUserLocation inserts the location or overwrites the user's previous one.
func (repo *userLocationRepository) UpsertUserLocation(ctx context.Context, location *entity.UserLocation) error {
	locationM := &model.UserLocationModel{
		UserID:    location.UserID,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		UpdatedAt: location.UpdatedAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(
			dbresolver.Write,
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
			},
		).
		Create(locationM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert user location")
	}

	return nil
}

// FindUserLocation retrieves the stored location of a user.
func (repo *userLocationRepository) FindUserLocation(ctx context.Context, userID uuid.UUID) (*entity.UserLocation, error) {
	var locationM model.UserLocationModel
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&locationM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserLocationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user location")
	}

	return toUserLocationDomain(&locationM), nil
}

// ListActiveUserLocations returns every location updated at or after since.
func (repo *userLocationRepository) ListActiveUserLocations(ctx context.Context, since time.Time) ([]*entity.UserLocation, error) {
	var models []*model.UserLocationModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("updated_at >= ?", since).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list active user locations")
	}

	locations := make([]*entity.UserLocation, 0, len(models))
	for _, locationM := range models {
		locations = append(locations, toUserLocationDomain(locationM))
	}

	return locations, nil
}

func toUserLocationDomain(locationM *model.UserLocationModel) *entity.UserLocation {
	return &entity.UserLocation{
		UserID:    locationM.UserID,
		Latitude:  locationM.Latitude,
		Longitude: locationM.Longitude,
		UpdatedAt: locationM.UpdatedAt,
	}
}
