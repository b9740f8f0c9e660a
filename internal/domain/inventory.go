package domain

// InventorySlot holds one item-instance stack. InstanceID is stable for the
// life of the stack and is what bait selection references.
type InventorySlot struct {
	InstanceID string `json:"instance_id"`
	ItemID     int    `json:"item_id"`
	Quantity   int    `json:"quantity"`
	Rarity     Rarity `json:"rarity,omitempty"`
}

// Inventory is the slot list stored in the JSONB column.
type Inventory struct {
	Slots      []InventorySlot `json:"slots"`
	LastUpdate int64           `json:"last_update,omitempty"`
}
