package repository

import (
	"context"
)

// Skill persists the XP ledgers: per-skill tracks plus the player's overall
// level XP. XP awards are not part of the claim transaction.
type Skill interface {
	// GetTrackXP returns the accumulated XP for a skill track (0 when absent).
	GetTrackXP(ctx context.Context, playerID, trackKey string) (int64, error)

	// AddTrackXP atomically adds XP to a track and returns the new total.
	AddTrackXP(ctx context.Context, playerID, trackKey string, amount int64) (int64, error)

	// AddPlayerXP adds to the player's overall level XP.
	AddPlayerXP(ctx context.Context, playerID string, amount int64) error
}
