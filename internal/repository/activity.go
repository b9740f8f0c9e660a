package repository

import (
	"context"
	"time"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// Activity handles vocational activity persistence. At most one row per player.
type Activity interface {
	// GetActivity returns the player's live activity.
	// Returns domain.ErrActivityNotFound when the player has none.
	GetActivity(ctx context.Context, playerID string) (*domain.Activity, error)

	// ListRunning returns activities with settling left to do: still running,
	// or ended with units not yet claimed. Used by the tick daemon sweep.
	ListRunning(ctx context.Context, now time.Time) ([]domain.Activity, error)

	// BeginTx starts the transaction the claim path runs inside.
	BeginTx(ctx context.Context) (ActivityTx, error)
}

// ActivityTx is the serialization boundary for claim mutations. The activity
// row is locked for the duration of the transaction so concurrent claimers
// cannot both observe the same claimable units.
type ActivityTx interface {
	Tx

	// GetActivityForUpdate loads the activity row with a FOR UPDATE lock.
	// Returns domain.ErrActivityNotFound when the player has none.
	GetActivityForUpdate(ctx context.Context, playerID string) (*domain.Activity, error)

	CreateActivity(ctx context.Context, activity *domain.Activity) error
	UpdateUnitsClaimed(ctx context.Context, playerID string, unitsClaimed int) error
	DeleteActivity(ctx context.Context, playerID string) error

	// Inventory operations within the same transaction as activity mutation.
	GetInventory(ctx context.Context, playerID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, playerID string, inventory domain.Inventory) error
}
