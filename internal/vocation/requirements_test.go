package vocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/inventory"
)

func TestCheckInputsNoRequirements(t *testing.T) {
	env := newTestEnv(t)

	res := env.catalog.resources[1]
	act := &domain.Activity{ActionType: domain.ActionWoodcutting}

	check, err := env.svc.checkInputs(context.Background(), res, act, &domain.Inventory{})
	require.NoError(t, err)
	assert.Equal(t, inputsOK, check.state)
	assert.Greater(t, check.maxUnits, 1_000_000)
}

func TestCheckInputsMaterialBound(t *testing.T) {
	env := newTestEnv(t)

	res := env.catalog.resources[2] // two ore per unit
	act := &domain.Activity{ActionType: domain.ActionSmelting}

	tests := []struct {
		name      string
		oreOnHand int
		wantState inputState
		wantUnits int
	}{
		{"no ore", 0, inputsExhausted, 0},
		{"one ore funds nothing", 1, inputsExhausted, 0},
		{"two ore funds one unit", 2, inputsOK, 1},
		{"seven ore funds three units", 7, inputsOK, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &domain.Inventory{}
			if tt.oreOnHand > 0 {
				inventory.Grant(inv, itemIronOre, domain.RarityCommon, tt.oreOnHand)
			}

			check, err := env.svc.checkInputs(context.Background(), res, act, inv)
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, check.state)
			if tt.wantState == inputsOK {
				assert.Equal(t, tt.wantUnits, check.maxUnits)
			}
		})
	}
}

func TestCheckBaitStates(t *testing.T) {
	env := newTestEnv(t)
	res := env.catalog.resources[3]

	worm := "worm-1"
	wormInv := func(qty int) *domain.Inventory {
		return &domain.Inventory{Slots: []domain.InventorySlot{
			{InstanceID: worm, ItemID: itemWorm, Quantity: qty, Rarity: domain.RarityCommon},
		}}
	}

	t.Run("bait present", func(t *testing.T) {
		act := &domain.Activity{ActionType: domain.ActionFishing, BaitInstanceID: &worm}
		check, err := env.svc.checkInputs(context.Background(), res, act, wormInv(4))
		require.NoError(t, err)
		assert.Equal(t, inputsOK, check.state)
		assert.Equal(t, 4, check.maxUnits)
	})

	t.Run("no bait recorded is fatal", func(t *testing.T) {
		act := &domain.Activity{ActionType: domain.ActionFishing}
		check, err := env.svc.checkInputs(context.Background(), res, act, wormInv(4))
		require.NoError(t, err)
		assert.Equal(t, inputsFatal, check.state)
	})

	t.Run("bait instance gone is fatal", func(t *testing.T) {
		act := &domain.Activity{ActionType: domain.ActionFishing, BaitInstanceID: &worm}
		check, err := env.svc.checkInputs(context.Background(), res, act, &domain.Inventory{})
		require.NoError(t, err)
		assert.Equal(t, inputsFatal, check.state)
	})

	t.Run("instance no longer bait is fatal", func(t *testing.T) {
		act := &domain.Activity{ActionType: domain.ActionFishing, BaitInstanceID: &worm}
		inv := &domain.Inventory{Slots: []domain.InventorySlot{
			{InstanceID: worm, ItemID: itemOakLog, Quantity: 1, Rarity: domain.RarityCommon},
		}}
		check, err := env.svc.checkInputs(context.Background(), res, act, inv)
		require.NoError(t, err)
		assert.Equal(t, inputsFatal, check.state)
	})

	t.Run("wrong bait for resource is fatal", func(t *testing.T) {
		other := 777
		strict := *res
		strict.RequiredBaitItemID = &other
		act := &domain.Activity{ActionType: domain.ActionFishing, BaitInstanceID: &worm}
		check, err := env.svc.checkInputs(context.Background(), &strict, act, wormInv(4))
		require.NoError(t, err)
		assert.Equal(t, inputsFatal, check.state)
	})
}

func TestConsumeInputs(t *testing.T) {
	env := newTestEnv(t)

	t.Run("materials consumed per unit", func(t *testing.T) {
		res := env.catalog.resources[2]
		act := &domain.Activity{ActionType: domain.ActionSmelting}
		inv := &domain.Inventory{}
		inventory.Grant(inv, itemIronOre, domain.RarityCommon, 10)

		require.NoError(t, consumeInputs(res, act, inv, 3))
		assert.Equal(t, 4, inventory.Available(inv, itemIronOre))
	})

	t.Run("bait consumed from selected stack", func(t *testing.T) {
		res := env.catalog.resources[3]
		worm := "worm-1"
		act := &domain.Activity{ActionType: domain.ActionFishing, BaitInstanceID: &worm}
		inv := &domain.Inventory{Slots: []domain.InventorySlot{
			{InstanceID: worm, ItemID: itemWorm, Quantity: 3, Rarity: domain.RarityCommon},
		}}

		require.NoError(t, consumeInputs(res, act, inv, 3))
		assert.Equal(t, 0, inventory.Available(inv, itemWorm))
		assert.Empty(t, inv.Slots)
	})

	t.Run("zero units is a no-op", func(t *testing.T) {
		res := env.catalog.resources[2]
		act := &domain.Activity{ActionType: domain.ActionSmelting}
		inv := &domain.Inventory{}
		inventory.Grant(inv, itemIronOre, domain.RarityCommon, 2)

		require.NoError(t, consumeInputs(res, act, inv, 0))
		assert.Equal(t, 2, inventory.Available(inv, itemIronOre))
	})
}
