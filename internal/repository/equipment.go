package repository

import (
	"context"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// Equipment looks up a player's equipped gear. Owned by the equipment system;
// the engine only reads the tool relevant to an action type.
type Equipment interface {
	// GetEquippedTool returns the equipped tool for the action type,
	// or nil when nothing relevant is equipped.
	GetEquippedTool(ctx context.Context, playerID string, action domain.ActionType) (*domain.EquippedTool, error)
}
