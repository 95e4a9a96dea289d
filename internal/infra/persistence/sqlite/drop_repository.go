package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"dropradar/internal/domain/entity"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/repository"
	"dropradar/internal/geo"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

const (
	insertDropSQL = `INSERT INTO drops (id, latitude, longitude, type, rewards, created_at, expires_at, is_active, claimed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	selectDropColumns = `SELECT id, latitude, longitude, type, rewards, created_at, expires_at, is_active, claimed_at FROM drops`
)

type dropRepository struct {
	db *sql.DB
}

// NewDropRepository returns a DropRepository backed by db.
func NewDropRepository(db *sql.DB) repository.DropRepository {
	return &dropRepository{db: db}
}

func (repo *dropRepository) CreateDrops(ctx context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
	result := &repository.CreateDropsResult{}
	if len(drops) == 0 {
		return result, nil
	}

	if err := repo.insertAll(ctx, drops); err == nil {
		result.Created = len(drops)

		return result, nil
	}

	for _, drop := range drops {
		if _, err := repo.db.ExecContext(ctx, insertDropSQL, dropArgs(drop)...); err != nil {
			result.Failed = append(result.Failed, repository.DropFailure{
				DropID: drop.ID,
				Err:    domainerrors.NewDatabaseExecuteError(err, "failed to create drop"),
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

func (repo *dropRepository) insertAll(ctx context.Context, drops []*entity.Drop) (err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin drop batch")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertDropSQL)
	if err != nil {
		return errors.Wrap(err, "prepare drop insert")
	}
	defer stmt.Close()

	for _, drop := range drops {
		if _, err = stmt.ExecContext(ctx, dropArgs(drop)...); err != nil {
			return errors.Wrap(err, "insert drop")
		}
	}

	return errors.Wrap(tx.Commit(), "commit drop batch")
}

func (repo *dropRepository) FindDropsInBoundingBox(ctx context.Context, box geo.Box, liveAt time.Time) ([]*entity.Drop, error) {
	if len(box.Longitudes) == 0 {
		return []*entity.Drop{}, nil
	}

	lonClauses := make([]string, 0, len(box.Longitudes))
	args := []any{toUnixNano(liveAt), box.Latitude.Min, box.Latitude.Max}
	for _, lon := range box.Longitudes {
		lonClauses = append(lonClauses, "longitude BETWEEN ? AND ?")
		args = append(args, lon.Min, lon.Max)
	}

	query := selectDropColumns +
		` WHERE is_active = 1 AND expires_at > ? AND latitude BETWEEN ? AND ? AND (` +
		strings.Join(lonClauses, " OR ") + `);`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find drops in bounding box")
	}
	defer rows.Close()

	drops := make([]*entity.Drop, 0)
	for rows.Next() {
		drop, err := scanDrop(rows)
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to scan drop")
		}
		drops = append(drops, drop)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to iterate drops")
	}

	return drops, nil
}

func (repo *dropRepository) DeleteExpiredDrops(ctx context.Context, now time.Time, retainClaimed bool) (result *repository.SweepResult, err error) {
	result = &repository.SweepResult{}
	cutoff := toUnixNano(now)

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to begin sweep")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deleteSQL := `DELETE FROM drops WHERE expires_at <= ?;`
	if retainClaimed {
		retained, execErr := tx.ExecContext(ctx,
			`UPDATE drops SET is_active = 0, retained_at = ? WHERE expires_at <= ? AND claimed_at IS NOT NULL AND retained_at IS NULL;`,
			cutoff, cutoff)
		if execErr != nil {
			return nil, domainerrors.NewDatabaseExecuteError(execErr, "failed to deactivate claimed drops")
		}
		if result.Retained, err = retained.RowsAffected(); err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count deactivated drops")
		}

		deleteSQL = `DELETE FROM drops WHERE expires_at <= ? AND claimed_at IS NULL;`
	}

	deleted, err := tx.ExecContext(ctx, deleteSQL, cutoff)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete expired drops")
	}
	if result.Deleted, err = deleted.RowsAffected(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count deleted drops")
	}

	if err = tx.Commit(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to commit sweep")
	}

	return result, nil
}

func (repo *dropRepository) FindDropByID(ctx context.Context, id uuid.UUID) (*entity.Drop, error) {
	row := repo.db.QueryRowContext(ctx, selectDropColumns+` WHERE id = ?;`, id.String())

	drop, err := scanDrop(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrDropNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find drop by ID")
	}

	return drop, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrop(row rowScanner) (*entity.Drop, error) {
	var (
		id        string
		dropType  string
		rewards   datatypes.JSONSlice[entity.RewardRef]
		createdAt int64
		expiresAt int64
		isActive  bool
		claimedAt sql.NullInt64
		drop      entity.Drop
	)

	if err := row.Scan(&id, &drop.Latitude, &drop.Longitude, &dropType, &rewards,
		&createdAt, &expiresAt, &isActive, &claimedAt); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Wrap(err, "invalid drop id")
	}

	drop.ID = parsedID
	drop.Type = entity.DropType(dropType)
	drop.Rewards = []entity.RewardRef(rewards)
	drop.CreatedAt = fromUnixNano(createdAt)
	drop.ExpiresAt = fromUnixNano(expiresAt)
	drop.IsActive = isActive
	drop.ClaimedAt = fromNullUnixNano(claimedAt)

	return &drop, nil
}

func dropArgs(drop *entity.Drop) []any {
	return []any{
		drop.ID.String(),
		drop.Latitude,
		drop.Longitude,
		drop.Type.String(),
		datatypes.NewJSONSlice(drop.Rewards),
		toUnixNano(drop.CreatedAt),
		toUnixNano(drop.ExpiresAt),
		drop.IsActive,
		toNullUnixNano(drop.ClaimedAt),
	}
}
