package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/repository"
)

// ActivityRepository implements the activity repository for PostgreSQL.
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var act domain.Activity
	err := row.Scan(
		&act.PlayerID, &act.ActionType, &act.ResourceID, &act.LocationID,
		&act.StartedAt, &act.EndsAt, &act.UnitSeconds, &act.UnitsClaimed,
		&act.BaitInstanceID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}
	return &act, nil
}

// GetActivity returns the player's live activity without locking it.
func (r *ActivityRepository) GetActivity(ctx context.Context, playerID string) (*domain.Activity, error) {
	return scanActivity(r.db.QueryRow(ctx, sqlSelectActivity, playerID))
}

// ListRunning returns activities that still have units to settle.
func (r *ActivityRepository) ListRunning(ctx context.Context, now time.Time) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, sqlSelectRunningActivities, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list running activities: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var act domain.Activity
		err := rows.Scan(
			&act.PlayerID, &act.ActionType, &act.ResourceID, &act.LocationID,
			&act.StartedAt, &act.EndsAt, &act.UnitSeconds, &act.UnitsClaimed,
			&act.BaitInstanceID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		out = append(out, act)
	}
	return out, rows.Err()
}

// BeginTx opens the transaction the claim path runs inside.
func (r *ActivityRepository) BeginTx(ctx context.Context) (repository.ActivityTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &activityTx{tx: tx}, nil
}

type activityTx struct {
	tx pgx.Tx
}

func (t *activityTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *activityTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetActivityForUpdate loads the activity row with a FOR UPDATE lock so
// concurrent claims for the same player serialize.
func (t *activityTx) GetActivityForUpdate(ctx context.Context, playerID string) (*domain.Activity, error) {
	return scanActivity(t.tx.QueryRow(ctx, sqlSelectActivityForUpdate, playerID))
}

func (t *activityTx) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	_, err := t.tx.Exec(ctx, sqlInsertActivity,
		activity.PlayerID, activity.ActionType, activity.ResourceID, activity.LocationID,
		activity.StartedAt, activity.EndsAt, activity.UnitSeconds, activity.UnitsClaimed,
		activity.BaitInstanceID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (t *activityTx) UpdateUnitsClaimed(ctx context.Context, playerID string, unitsClaimed int) error {
	tag, err := t.tx.Exec(ctx, sqlUpdateUnitsClaimed, playerID, unitsClaimed)
	if err != nil {
		return fmt.Errorf("failed to update claimed units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (t *activityTx) DeleteActivity(ctx context.Context, playerID string) error {
	if _, err := t.tx.Exec(ctx, sqlDeleteActivity, playerID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// GetInventory loads and locks the player's inventory row. A missing row is
// an empty inventory, materialized on the next UpdateInventory.
func (t *activityTx) GetInventory(ctx context.Context, playerID string) (*domain.Inventory, error) {
	var raw []byte
	err := t.tx.QueryRow(ctx, sqlSelectInventoryForUpdate, playerID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Inventory{}, nil
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	var inv domain.Inventory
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	return &inv, nil
}

func (t *activityTx) UpdateInventory(ctx context.Context, playerID string, inventory domain.Inventory) error {
	inventory.LastUpdate = time.Now().Unix()

	raw, err := json.Marshal(inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	if _, err := t.tx.Exec(ctx, sqlUpsertInventory, playerID, raw); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	return nil
}
