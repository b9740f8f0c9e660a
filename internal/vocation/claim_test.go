package vocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/inventory"
)

func TestClaimDoesNotDoubleGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 60})
	require.NoError(t, err)
	env.advance(25 * time.Second)

	first, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, first.ClaimedUnits)

	// Same instant again: everything due is already settled.
	second, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ClaimedUnits)
	assert.Equal(t, 0, second.GrantedQuantity)

	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 2, inventory.Available(inv, itemOakLog))
}

func TestClaimHonorsMaxUnits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 600})
	require.NoError(t, err)
	env.advance(55 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ClaimedUnits)
	assert.Equal(t, 4, result.RemainingClaimableUnits)
	assert.False(t, result.Stopped)

	act := env.store.activitySnapshot(testPlayer)
	require.NotNil(t, act)
	assert.Equal(t, 1, act.UnitsClaimed)
}

func TestClaimWithoutActivity(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Claim(context.Background(), testPlayer, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ClaimedUnits)
	assert.False(t, result.Stopped)
}

func TestClaimInputExhaustionStopsActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Three ore funds one smelting unit at two ore each. Three units are due,
	// so the single claim grants the one fundable unit and ends the session.
	env.store.setInventory(testPlayer, &domain.Inventory{Slots: []domain.InventorySlot{
		{InstanceID: "ore-1", ItemID: itemIronOre, Quantity: 3, Rarity: domain.RarityCommon},
	}})

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 2, DurationSeconds: 600})
	require.NoError(t, err)
	env.advance(35 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ClaimedUnits)
	assert.Equal(t, 1, result.GrantedQuantity)
	assert.True(t, result.Stopped)
	assert.Nil(t, result.Summary)

	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 1, inventory.Available(inv, itemIronOre))
	assert.Equal(t, 1, inventory.Available(inv, itemIronBar))

	_, err = env.store.GetActivity(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)

	// A follow-up claim finds nothing.
	result, err = env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ClaimedUnits)
	assert.False(t, result.Stopped)
}

func TestClaimSpaceLimitedGrantAdvancesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Yield of five per unit against an inventory with room for only two:
	// no whole unit fits, so nothing is consumed, granted, or advanced.
	env.catalog.resources[1].YieldPerUnit = 5

	inv := &domain.Inventory{}
	for i := 0; i < inventory.MaxSlots-1; i++ {
		inventory.Grant(inv, 500+i, domain.RarityCommon, 1)
	}
	inventory.Grant(inv, itemOakLog, domain.RarityCommon, inventory.MaxStackSize-2)
	env.store.setInventory(testPlayer, inv)

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 600})
	require.NoError(t, err)
	env.advance(10 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ClaimedUnits)
	assert.Equal(t, 0, result.GrantedQuantity)
	assert.Equal(t, 1, result.RemainingClaimableUnits)
	assert.False(t, result.Stopped)

	act := env.store.activitySnapshot(testPlayer)
	require.NotNil(t, act)
	assert.Equal(t, 0, act.UnitsClaimed)

	// Clearing space lets the banked unit settle later.
	after := env.store.inventorySnapshot(testPlayer)
	require.NoError(t, inventory.Consume(after, itemOakLog, inventory.MaxStackSize-2))
	env.store.setInventory(testPlayer, after)

	result, err = env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ClaimedUnits)
	assert.Equal(t, 5, result.GrantedQuantity)
}

func TestClaimFishingConsumesBait(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.setInventory(testPlayer, &domain.Inventory{Slots: []domain.InventorySlot{
		{InstanceID: "worm-1", ItemID: itemWorm, Quantity: 5, Rarity: domain.RarityCommon},
	}})

	worm := "worm-1"
	_, err := env.svc.Start(ctx, StartParams{
		PlayerID: testPlayer, ResourceID: 3, DurationSeconds: 600, BaitInstanceID: &worm,
	})
	require.NoError(t, err)
	env.advance(25 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ClaimedUnits)
	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 3, inventory.Available(inv, itemWorm))
	assert.Equal(t, 2, inventory.Available(inv, itemTrout))
}

func TestClaimFishingStopsWhenBaitRunsOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.setInventory(testPlayer, &domain.Inventory{Slots: []domain.InventorySlot{
		{InstanceID: "worm-1", ItemID: itemWorm, Quantity: 2, Rarity: domain.RarityCommon},
	}})

	worm := "worm-1"
	_, err := env.svc.Start(ctx, StartParams{
		PlayerID: testPlayer, ResourceID: 3, DurationSeconds: 600, BaitInstanceID: &worm,
	})
	require.NoError(t, err)

	// Three units due but only two baits: the claim settles two, consumes the
	// stack, and stops because nothing can fund the next unit.
	env.advance(35 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ClaimedUnits)
	assert.True(t, result.Stopped)

	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 0, inventory.Available(inv, itemWorm))
	assert.Equal(t, 2, inventory.Available(inv, itemTrout))

	_, err = env.store.GetActivity(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestClaimFishingBaitVanishedDeletesActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.setInventory(testPlayer, &domain.Inventory{Slots: []domain.InventorySlot{
		{InstanceID: "worm-1", ItemID: itemWorm, Quantity: 5, Rarity: domain.RarityCommon},
	}})

	worm := "worm-1"
	_, err := env.svc.Start(ctx, StartParams{
		PlayerID: testPlayer, ResourceID: 3, DurationSeconds: 600, BaitInstanceID: &worm,
	})
	require.NoError(t, err)

	// The bait stack disappears out from under the session.
	env.store.setInventory(testPlayer, &domain.Inventory{})
	env.advance(15 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	assert.Equal(t, 0, result.ClaimedUnits)
	_, err = env.store.GetActivity(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestClaimCompletionProducesSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 30})
	require.NoError(t, err)
	env.advance(30 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	require.NotNil(t, result.Summary)
	assert.Equal(t, domain.ActionWoodcutting, result.Summary.ActionType)
	assert.Equal(t, 3, result.Summary.GrantedQuantity)
	assert.Equal(t, 30, result.Summary.XPGained)
	assert.Equal(t, "Oak Log", result.Summary.OutputItemName)
}

func TestClaimXPFailureDoesNotRollBackGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.skills.failAdds = true

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 60})
	require.NoError(t, err)
	env.advance(25 * time.Second)

	result, err := env.svc.Claim(ctx, testPlayer, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ClaimedUnits)
	assert.Equal(t, 0, result.XPAwarded)

	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 2, inventory.Available(inv, itemOakLog))
}
