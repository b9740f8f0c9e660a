package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// SkillRepository persists XP ledgers in PostgreSQL.
type SkillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: db}
}

// GetTrackXP returns the accumulated XP for a skill track, zero when the
// player has never earned any.
func (r *SkillRepository) GetTrackXP(ctx context.Context, playerID, trackKey string) (int64, error) {
	var xp int64
	err := r.db.QueryRow(ctx, sqlSelectTrackXP, playerID, trackKey).Scan(&xp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get track xp: %w", err)
	}
	return xp, nil
}

// AddTrackXP atomically adds XP to a track and returns the new total.
func (r *SkillRepository) AddTrackXP(ctx context.Context, playerID, trackKey string, amount int64) (int64, error) {
	var xp int64
	if err := r.db.QueryRow(ctx, sqlUpsertTrackXP, playerID, trackKey, amount).Scan(&xp); err != nil {
		return 0, fmt.Errorf("failed to add track xp: %w", err)
	}
	return xp, nil
}

// AddPlayerXP adds to the player's overall level XP.
func (r *SkillRepository) AddPlayerXP(ctx context.Context, playerID string, amount int64) error {
	tag, err := r.db.Exec(ctx, sqlAddPlayerXP, playerID, amount)
	if err != nil {
		return fmt.Errorf("failed to add player xp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
