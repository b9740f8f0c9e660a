package vocation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormvale/vocation-engine/internal/inventory"
)

// Concurrent claims for the same player must serialize on the activity row:
// the total granted across all claimers equals the units due, never more.
func TestConcurrentClaimsNeverDoubleGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 600})
	require.NoError(t, err)
	env.advance(45 * time.Second) // 4 units due

	const claimers = 8
	results := make([]int, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			result, err := env.svc.Claim(ctx, testPlayer, 0)
			if err != nil {
				t.Errorf("claim %d failed: %v", idx, err)
				return
			}
			results[idx] = result.ClaimedUnits
		}(i)
	}
	wg.Wait()

	total := 0
	for _, n := range results {
		total += n
	}
	assert.Equal(t, 4, total, "claims across goroutines must sum to exactly the units due")

	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 4, inventory.Available(inv, itemOakLog))

	act := env.store.activitySnapshot(testPlayer)
	require.NotNil(t, act)
	assert.Equal(t, 4, act.UnitsClaimed)
}

// Stop racing a claim must not grant more than was earned even when both
// paths settle units.
func TestConcurrentStopAndClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, StartParams{PlayerID: testPlayer, ResourceID: 1, DurationSeconds: 600})
	require.NoError(t, err)
	env.advance(35 * time.Second) // 3 units due

	var wg sync.WaitGroup
	claimed := make([]int, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := env.svc.Claim(ctx, testPlayer, 0)
		if err == nil {
			claimed[0] = result.ClaimedUnits
		}
	}()
	go func() {
		defer wg.Done()
		result, err := env.svc.Stop(ctx, testPlayer)
		if err == nil {
			claimed[1] = result.ClaimedUnits
		}
	}()
	wg.Wait()

	assert.Equal(t, 3, claimed[0]+claimed[1])

	inv := env.store.inventorySnapshot(testPlayer)
	assert.Equal(t, 3, inventory.Available(inv, itemOakLog))
}
