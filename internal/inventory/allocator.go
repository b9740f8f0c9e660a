package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// Slot allocator for JSONB inventories. Grants merge into existing stacks of
// the same item+rarity first, then open new slots while space remains, so a
// grant can legitimately place less than requested.
const (
	// MaxSlots is the number of slots an inventory can hold.
	MaxSlots = 40

	// MaxStackSize is the per-slot quantity cap.
	MaxStackSize = 999
)

// Available returns the total quantity of an item across all slots,
// regardless of rarity.
func Available(inv *domain.Inventory, itemID int) int {
	total := 0
	for _, slot := range inv.Slots {
		if slot.ItemID == itemID {
			total += slot.Quantity
		}
	}
	return total
}

// Capacity returns how much of an item at the given rarity could currently be
// granted: headroom in matching stacks plus full stacks in free slots.
func Capacity(inv *domain.Inventory, itemID int, rarity domain.Rarity) int {
	capacity := 0
	for _, slot := range inv.Slots {
		if slot.ItemID == itemID && slot.Rarity == rarity {
			capacity += MaxStackSize - slot.Quantity
		}
	}
	freeSlots := MaxSlots - len(inv.Slots)
	if freeSlots > 0 {
		capacity += freeSlots * MaxStackSize
	}
	return capacity
}

// Grant places up to quantity of an item into the inventory and returns the
// quantity actually placed. Callers must trust the returned amount, not the
// requested one.
func Grant(inv *domain.Inventory, itemID int, rarity domain.Rarity, quantity int) int {
	if quantity <= 0 {
		return 0
	}

	granted := 0

	// Top up existing stacks first.
	for i := range inv.Slots {
		if granted >= quantity {
			break
		}
		slot := &inv.Slots[i]
		if slot.ItemID != itemID || slot.Rarity != rarity {
			continue
		}
		room := MaxStackSize - slot.Quantity
		if room <= 0 {
			continue
		}
		add := min(room, quantity-granted)
		slot.Quantity += add
		granted += add
	}

	// Open new slots for the remainder.
	for granted < quantity && len(inv.Slots) < MaxSlots {
		add := min(MaxStackSize, quantity-granted)
		inv.Slots = append(inv.Slots, domain.InventorySlot{
			InstanceID: uuid.NewString(),
			ItemID:     itemID,
			Quantity:   add,
			Rarity:     rarity,
		})
		granted += add
	}

	return granted
}

// Consume removes quantity of an item across stacks in slot order, deleting
// stacks that reach zero. Returns domain.ErrInsufficientQuantity (and leaves
// the inventory untouched) when the stock does not cover the request.
func Consume(inv *domain.Inventory, itemID int, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	if Available(inv, itemID) < quantity {
		return fmt.Errorf("%w: item %d", domain.ErrInsufficientQuantity, itemID)
	}

	remaining := quantity
	kept := inv.Slots[:0]
	for _, slot := range inv.Slots {
		if remaining > 0 && slot.ItemID == itemID {
			take := min(slot.Quantity, remaining)
			slot.Quantity -= take
			remaining -= take
			if slot.Quantity == 0 {
				continue
			}
		}
		kept = append(kept, slot)
	}
	inv.Slots = kept
	return nil
}

// FindInstance returns the slot holding the given instance ID.
func FindInstance(inv *domain.Inventory, instanceID string) (*domain.InventorySlot, bool) {
	for i := range inv.Slots {
		if inv.Slots[i].InstanceID == instanceID {
			return &inv.Slots[i], true
		}
	}
	return nil, false
}

// ConsumeInstance decrements a specific stack, deleting it when it reaches
// zero. Returns domain.ErrInsufficientQuantity when the stack is too small,
// domain.ErrItemNotFound when the instance is gone.
func ConsumeInstance(inv *domain.Inventory, instanceID string, quantity int) error {
	for i := range inv.Slots {
		if inv.Slots[i].InstanceID != instanceID {
			continue
		}
		if inv.Slots[i].Quantity < quantity {
			return fmt.Errorf("%w: instance %s", domain.ErrInsufficientQuantity, instanceID)
		}
		inv.Slots[i].Quantity -= quantity
		if inv.Slots[i].Quantity == 0 {
			inv.Slots = append(inv.Slots[:i], inv.Slots[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("%w: instance %s", domain.ErrItemNotFound, instanceID)
}

// Clone returns a deep copy of the inventory for speculative mutation.
func Clone(inv *domain.Inventory) *domain.Inventory {
	out := &domain.Inventory{
		Slots:      make([]domain.InventorySlot, len(inv.Slots)),
		LastUpdate: inv.LastUpdate,
	}
	copy(out.Slots, inv.Slots)
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
