package vocation

import (
	"context"
	"fmt"
	"math"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/inventory"
)

// inputState tags the outcome of resolving consumable inputs so the claim
// path is a flat dispatch instead of nested conditionals.
type inputState int

const (
	// inputsOK: at least one unit's worth of every input is present.
	inputsOK inputState = iota

	// inputsExhausted: inputs are depleted; the activity must auto-stop.
	inputsExhausted

	// inputsFatal: the input state is invalid outright (bait vanished,
	// re-typed, or mismatched); the activity must be deleted.
	inputsFatal
)

type inputCheck struct {
	state    inputState
	maxUnits int
}

// checkInputs computes how many further units the player's inventory can fund.
// For fishing the selected bait instance is re-validated on every claim.
func (s *service) checkInputs(ctx context.Context, res *domain.VocationalResource, act *domain.Activity, inv *domain.Inventory) (inputCheck, error) {
	if act.ActionType == domain.ActionFishing {
		return s.checkBait(ctx, res, act, inv)
	}

	if len(res.Requirements) == 0 {
		return inputCheck{state: inputsOK, maxUnits: math.MaxInt32}, nil
	}

	maxUnits := math.MaxInt32
	for _, req := range res.Requirements {
		if req.QuantityPerUnit < 1 {
			continue
		}
		units := inventory.Available(inv, req.ItemID) / req.QuantityPerUnit
		if units < maxUnits {
			maxUnits = units
		}
	}

	if maxUnits <= 0 {
		return inputCheck{state: inputsExhausted}, nil
	}
	return inputCheck{state: inputsOK, maxUnits: maxUnits}, nil
}

func (s *service) checkBait(ctx context.Context, res *domain.VocationalResource, act *domain.Activity, inv *domain.Inventory) (inputCheck, error) {
	if act.BaitInstanceID == nil {
		return inputCheck{state: inputsFatal}, nil
	}

	slot, ok := inventory.FindInstance(inv, *act.BaitInstanceID)
	if !ok {
		return inputCheck{state: inputsFatal}, nil
	}

	item, err := s.catalog.GetItemByID(ctx, slot.ItemID)
	if err != nil {
		return inputCheck{}, fmt.Errorf("failed to look up bait item: %w", err)
	}
	if !item.HasType(domain.ItemTypeBait) {
		return inputCheck{state: inputsFatal}, nil
	}
	if res.RequiredBaitItemID != nil && slot.ItemID != *res.RequiredBaitItemID {
		return inputCheck{state: inputsFatal}, nil
	}

	units := slot.Quantity / baitPerUnit
	if units <= 0 {
		return inputCheck{state: inputsExhausted}, nil
	}
	return inputCheck{state: inputsOK, maxUnits: units}, nil
}

// consumeInputs removes the materials (or bait) backing the given number of
// units, mutating the inventory in place.
func consumeInputs(res *domain.VocationalResource, act *domain.Activity, inv *domain.Inventory, units int) error {
	if units <= 0 {
		return nil
	}

	if act.ActionType == domain.ActionFishing {
		if act.BaitInstanceID == nil {
			return fmt.Errorf("%w: no bait selected", domain.ErrBaitInvalid)
		}
		return inventory.ConsumeInstance(inv, *act.BaitInstanceID, units*baitPerUnit)
	}

	for _, req := range res.Requirements {
		if req.QuantityPerUnit < 1 {
			continue
		}
		if err := inventory.Consume(inv, req.ItemID, units*req.QuantityPerUnit); err != nil {
			return err
		}
	}
	return nil
}
