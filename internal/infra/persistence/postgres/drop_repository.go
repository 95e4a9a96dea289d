// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"dropradar/internal/domain/entity"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/repository"
	"dropradar/internal/geo"
	"dropradar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const dropInsertBatchSize = 100

// dropRepository implements the repository.DropRepository interface.
type dropRepository struct {
	db *gorm.DB
}

// NewDropRepository is the constructor for dropRepository.
func NewDropRepository(db *gorm.DB) repository.DropRepository {
	return &dropRepository{db: db}
}

// CreateDrops inserts the batch in one transaction and falls back to per-item
// inserts when the batch is rejected, so one bad row cannot sink the others.
func (repo *dropRepository) CreateDrops(ctx context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
	result := &repository.CreateDropsResult{}
	if len(drops) == 0 {
		return result, nil
	}

	models := make([]*model.DropModel, 0, len(drops))
	for _, drop := range drops {
		models = append(models, fromDropDomain(drop))
	}

	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, dropInsertBatchSize).Error
	})
	if err == nil {
		result.Created = len(models)

		return result, nil
	}

	for _, dropM := range models {
		if itemErr := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Create(dropM).Error; itemErr != nil {
			result.Failed = append(result.Failed, repository.DropFailure{
				DropID: dropM.ID,
				Err:    translateDropError(itemErr),
			})

			continue
		}
		result.Created++
	}

	if len(result.Failed) > 0 {
		return result, errors.Wrapf(repository.ErrPartialBatch, "%d of %d drops failed", len(result.Failed), len(drops))
	}

	return result, nil
}

// FindDropsInBoundingBox reads live drops inside the box from a replica when one is configured.
func (repo *dropRepository) FindDropsInBoundingBox(ctx context.Context, box geo.Box, liveAt time.Time) ([]*entity.Drop, error) {
	if len(box.Longitudes) == 0 {
		return []*entity.Drop{}, nil
	}

	lonGroup := repo.db.Where("longitude BETWEEN ? AND ?", box.Longitudes[0].Min, box.Longitudes[0].Max)
	for _, lon := range box.Longitudes[1:] {
		lonGroup = lonGroup.Or("longitude BETWEEN ? AND ?", lon.Min, lon.Max)
	}

	var models []*model.DropModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("is_active = ?", true).
		Where("expires_at > ?", liveAt).
		Where("latitude BETWEEN ? AND ?", box.Latitude.Min, box.Latitude.Max).
		Where(lonGroup).
		Find(&models).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find drops in bounding box")
	}

	drops := make([]*entity.Drop, 0, len(models))
	for _, dropM := range models {
		drops = append(drops, toDropDomain(dropM))
	}

	return drops, nil
}

// DeleteExpiredDrops removes expired drops. With retainClaimed, expired claimed drops are
// kept, deactivated and stamped with retained_at; each is counted once, on its first sweep.
func (repo *dropRepository) DeleteExpiredDrops(ctx context.Context, now time.Time, retainClaimed bool) (*repository.SweepResult, error) {
	result := &repository.SweepResult{}

	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(func(tx *gorm.DB) error {
		deleteScope := tx.Where("expires_at <= ?", now)

		if retainClaimed {
			retained := tx.Model(&model.DropModel{}).
				Where("expires_at <= ? AND claimed_at IS NOT NULL AND retained_at IS NULL", now).
				Updates(map[string]any{"is_active": false, "retained_at": now})
			if retained.Error != nil {
				return retained.Error
			}
			result.Retained = retained.RowsAffected

			deleteScope = deleteScope.Where("claimed_at IS NULL")
		}

		deleted := deleteScope.Delete(&model.DropModel{})
		if deleted.Error != nil {
			return deleted.Error
		}
		result.Deleted = deleted.RowsAffected

		return nil
	})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to sweep expired drops")
	}

	return result, nil
}

// FindDropByID retrieves a drop by its unique ID.
func (repo *dropRepository) FindDropByID(ctx context.Context, id uuid.UUID) (*entity.Drop, error) {
	var dropM model.DropModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Read).Where("id = ?", id).First(&dropM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDropNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find drop by ID")
	}

	return toDropDomain(&dropM), nil
}

func translateDropError(err error) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, "drop already exists")
	case isCheckConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, "drop violates coordinate or expiry constraints")
	default:
		return domainerrors.NewDatabaseExecuteError(err, "failed to create drop")
	}
}

func fromDropDomain(drop *entity.Drop) *model.DropModel {
	return &model.DropModel{
		ID:        drop.ID,
		Latitude:  drop.Latitude,
		Longitude: drop.Longitude,
		Type:      drop.Type.String(),
		Rewards:   datatypes.NewJSONSlice(drop.Rewards),
		CreatedAt: drop.CreatedAt,
		ExpiresAt: drop.ExpiresAt,
		IsActive:  drop.IsActive,
		ClaimedAt: drop.ClaimedAt,
	}
}

func toDropDomain(dropM *model.DropModel) *entity.Drop {
	return &entity.Drop{
		ID:        dropM.ID,
		Latitude:  dropM.Latitude,
		Longitude: dropM.Longitude,
		Type:      entity.DropType(dropM.Type),
		Rewards:   []entity.RewardRef(dropM.Rewards),
		CreatedAt: dropM.CreatedAt,
		ExpiresAt: dropM.ExpiresAt,
		IsActive:  dropM.IsActive,
		ClaimedAt: dropM.ClaimedAt,
	}
}
