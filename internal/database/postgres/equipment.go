package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// EquipmentRepository reads equipped gear from PostgreSQL.
type EquipmentRepository struct {
	db *pgxpool.Pool
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// GetEquippedTool returns the tool equipped for the action type, or nil when
// the slot is empty.
func (r *EquipmentRepository) GetEquippedTool(ctx context.Context, playerID string, action domain.ActionType) (*domain.EquippedTool, error) {
	var tool domain.EquippedTool
	err := r.db.QueryRow(ctx, sqlSelectEquippedTool, playerID, action).Scan(&tool.ItemID, &tool.EfficiencyPct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get equipped tool: %w", err)
	}
	return &tool, nil
}
