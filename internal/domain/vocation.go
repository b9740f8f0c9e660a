package domain

import "time"

// ActionType identifies a vocational discipline.
type ActionType string

const (
	ActionWoodcutting ActionType = "WOODCUTTING"
	ActionMining      ActionType = "MINING"
	ActionFishing     ActionType = "FISHING"
	ActionGathering   ActionType = "GATHERING"
	ActionAlchemy     ActionType = "ALCHEMY"
	ActionSmelting    ActionType = "SMELTING"
	ActionCooking     ActionType = "COOKING"
	ActionForge       ActionType = "FORGE"
)

// TrackKey returns the skill-track key for this action type.
func (a ActionType) TrackKey() string {
	return string(a)
}

// VocationalRequirement is a per-unit material cost declared on a resource.
type VocationalRequirement struct {
	ItemID          int `json:"item_id"`
	QuantityPerUnit int `json:"quantity_per_unit"`
}

// VocationalResource is a designer-owned production template. Immutable at runtime.
type VocationalResource struct {
	ID                 int                     `json:"id"`
	ActionType         ActionType              `json:"action_type"`
	OutputItemID       int                     `json:"output_item_id"`
	YieldPerUnit       int                     `json:"yield_per_unit"`
	XPPerUnit          int                     `json:"xp_per_unit"`
	BaseUnitSeconds    int                     `json:"base_unit_seconds"`
	MinLevel           int                     `json:"min_level"`
	Rarity             Rarity                  `json:"rarity"`
	RequiredBaitItemID *int                    `json:"required_bait_item_id,omitempty"`
	Requirements       []VocationalRequirement `json:"requirements,omitempty"`
}

// Activity is the single live vocational session for a player.
// Mutated only by the claim transaction; deleted on stop, replacement,
// completion or input exhaustion.
type Activity struct {
	PlayerID       string     `json:"player_id"`
	ActionType     ActionType `json:"action_type"`
	ResourceID     int        `json:"resource_id"`
	LocationID     *int       `json:"location_id,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	EndsAt         time.Time  `json:"ends_at"`
	UnitSeconds    int        `json:"unit_seconds"`
	UnitsClaimed   int        `json:"units_claimed"`
	BaitInstanceID *string    `json:"bait_instance_id,omitempty"`
}

// Progress is the derived view of an activity at a point in time. Not persisted.
type Progress struct {
	UnitSeconds      int     `json:"unit_seconds"`
	ElapsedSeconds   int64   `json:"elapsed_seconds"`
	RemainingSeconds int64   `json:"remaining_seconds"`
	UnitsTotal       int     `json:"units_total"`
	UnitsClaimable   int     `json:"units_claimable"`
	UnitProgress     float64 `json:"unit_progress"`
	IsComplete       bool    `json:"is_complete"`
}

// ClaimSummary describes what a completed claim produced, for UX surfacing.
type ClaimSummary struct {
	ActionType      ActionType `json:"action_type"`
	ResourceID      int        `json:"resource_id"`
	OutputItemName  string     `json:"output_item_name"`
	GrantedQuantity int        `json:"granted_quantity"`
	XPGained        int        `json:"xp_gained"`
}

// ClaimResult reports the outcome of a single claim transaction.
// Summary is set only when this claim fully completed the activity.
type ClaimResult struct {
	ClaimedUnits            int           `json:"claimed_units"`
	GrantedQuantity         int           `json:"granted_quantity"`
	RemainingClaimableUnits int           `json:"remaining_claimable_units"`
	XPAwarded               int           `json:"xp_awarded"`
	Stopped                 bool          `json:"stopped"`
	Summary                 *ClaimSummary `json:"summary,omitempty"`
}

// ActivityStatus is the lifecycle controller's status view.
// Completed carries the one-shot summary when the status query's opportunistic
// claim just finished the activity.
type ActivityStatus struct {
	Active    bool          `json:"active"`
	Activity  *Activity     `json:"activity,omitempty"`
	Progress  *Progress     `json:"progress,omitempty"`
	Completed *ClaimSummary `json:"completed,omitempty"`
}

// EquippedTool is the equipped item relevant to an action type.
type EquippedTool struct {
	ItemID        int `json:"item_id"`
	EfficiencyPct int `json:"efficiency_pct"`
}
