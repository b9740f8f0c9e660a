package realtime

import (
	"time"

	"github.com/google/uuid"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// Event is the envelope pushed over the websocket. Every outbound message
// names the player it concerns and the moment it was emitted.
type Event struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	PlayerID string      `json:"playerId"`
	At       int64       `json:"at"`
	Payload  interface{} `json:"payload,omitempty"`
}

// NewEvent wraps a payload in an envelope with a fresh ID and emission time.
func NewEvent(eventType, playerID string, payload interface{}) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		PlayerID: playerID,
		At:       time.Now().Unix(),
		Payload:  payload,
	}
}

// TickPayload reports a daemon-settled unit.
type TickPayload struct {
	ActionType              domain.ActionType `json:"action_type"`
	ResourceID              int               `json:"resource_id"`
	ClaimedUnits            int               `json:"claimed_units"`
	GrantedQuantity         int               `json:"granted_quantity"`
	XPAwarded               int               `json:"xp_awarded"`
	RemainingClaimableUnits int               `json:"remaining_claimable_units"`
	Stopped                 bool              `json:"stopped"`
}

// InventoryChangedPayload tells clients to refetch their inventory view.
type InventoryChangedPayload struct {
	Quantity int `json:"quantity"`
}

// ActivityCompletePayload carries the end-of-session summary.
type ActivityCompletePayload struct {
	Summary *domain.ClaimSummary `json:"summary"`
}
