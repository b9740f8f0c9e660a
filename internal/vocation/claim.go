package vocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/inventory"
	"github.com/stormvale/vocation-engine/internal/logger"
	"github.com/stormvale/vocation-engine/internal/metrics"
	"github.com/stormvale/vocation-engine/internal/repository"
)

// Claim settles due units inside a single transaction. The activity row is
// locked FOR UPDATE first, so two concurrent claims for the same player
// serialize and the second one sees zero claimable units.
//
// Units actually credited are floor(grantedQuantity / yieldPerUnit): a
// space-limited grant leaves the truncated remainder unclaimed and the
// activity row only advances by what the inventory really absorbed.
func (s *service) Claim(ctx context.Context, playerID string, maxUnits int) (*domain.ClaimResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	activity, err := tx.GetActivityForUpdate(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return &domain.ClaimResult{}, nil
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	now := s.now()
	progress := Progress(activity, now)

	claimable := progress.UnitsClaimable
	if maxUnits > 0 && claimable > maxUnits {
		claimable = maxUnits
	}
	if claimable == 0 && !progress.IsComplete {
		return &domain.ClaimResult{RemainingClaimableUnits: 0}, nil
	}

	resource, err := s.getResource(ctx, activity.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resource %d: %w", activity.ResourceID, err)
	}

	inv, err := tx.GetInventory(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	check, err := s.checkInputs(ctx, resource, activity, inv)
	if err != nil {
		return nil, err
	}

	switch check.state {
	case inputsFatal:
		log.Warn("Activity inputs invalid, deleting", "playerID", playerID, "resourceID", resource.ID)
		return s.stopInTx(ctx, tx, playerID, activity.ActionType)
	case inputsExhausted:
		if claimable > 0 {
			// Units are due but nothing funds them; the session is over.
			log.Info("Activity inputs exhausted, stopping", "playerID", playerID, "resourceID", resource.ID)
			return s.stopInTx(ctx, tx, playerID, activity.ActionType)
		}
	}

	if claimable == 0 {
		// Complete with everything already claimed: just remove the row.
		return s.stopInTx(ctx, tx, playerID, activity.ActionType)
	}

	units := claimable
	if check.state == inputsOK && check.maxUnits < units {
		units = check.maxUnits
	}

	// Bound by inventory space before consuming inputs, measured against the
	// pre-consumption inventory so a full inventory never burns materials.
	yield := resource.YieldPerUnit
	if yield < 1 {
		yield = 1
	}
	spaceUnits := inventory.Capacity(inv, resource.OutputItemID, resource.Rarity) / yield
	if spaceUnits < units {
		units = spaceUnits
	}
	if units <= 0 {
		// Inventory full. Units stay banked; the player can clear space
		// and claim later.
		return &domain.ClaimResult{RemainingClaimableUnits: progress.UnitsClaimable}, nil
	}

	if err := consumeInputs(resource, activity, inv, units); err != nil {
		return nil, fmt.Errorf("failed to consume inputs: %w", err)
	}

	granted := inventory.Grant(inv, resource.OutputItemID, resource.Rarity, units*yield)
	claimed := granted / yield

	activity.UnitsClaimed += claimed

	// Re-check inputs against the post-consumption inventory: if the next
	// unit can no longer be funded, this claim is the session's last.
	stop := false
	if activity.ActionType == domain.ActionFishing && activity.BaitInstanceID != nil {
		if _, ok := inventory.FindInstance(inv, *activity.BaitInstanceID); !ok {
			// Last bait consumed.
			stop = true
		}
	} else {
		for _, req := range resource.Requirements {
			if req.QuantityPerUnit < 1 {
				continue
			}
			if inventory.Available(inv, req.ItemID) < req.QuantityPerUnit {
				stop = true
				break
			}
		}
	}

	final := Progress(activity, now)
	if final.IsComplete && final.UnitsClaimable == 0 {
		stop = true
	}

	if err := tx.UpdateInventory(ctx, playerID, *inv); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	if stop {
		if err := tx.DeleteActivity(ctx, playerID); err != nil {
			return nil, fmt.Errorf("failed to delete activity: %w", err)
		}
	} else if err := tx.UpdateUnitsClaimed(ctx, playerID, activity.UnitsClaimed); err != nil {
		return nil, fmt.Errorf("failed to update claimed units: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.RecordClaim(string(activity.ActionType), claimed, granted)
	if stop {
		metrics.ActivitiesStopped.WithLabelValues(string(activity.ActionType)).Inc()
	}

	// XP is awarded outside the claim transaction: a ledger failure must not
	// roll back the grant the player already received.
	xp := claimed * resource.XPPerUnit
	if xp > 0 {
		if _, err := s.skillSvc.AwardTrackXP(ctx, playerID, activity.ActionType.TrackKey(), xp); err != nil {
			log.Error("Failed to award track XP", "playerID", playerID, "track", activity.ActionType.TrackKey(), "error", err)
			xp = 0
		} else if err := s.skillSvc.AwardPlayerXP(ctx, playerID, xp, XPReasonClaim); err != nil {
			log.Error("Failed to award player XP", "playerID", playerID, "error", err)
		}
		if xp > 0 {
			metrics.XPAwarded.WithLabelValues(string(activity.ActionType)).Add(float64(xp))
		}
	}

	result := &domain.ClaimResult{
		ClaimedUnits:            claimed,
		GrantedQuantity:         granted,
		RemainingClaimableUnits: final.UnitsClaimable,
		XPAwarded:               xp,
		Stopped:                 stop,
	}
	if stop && final.IsComplete {
		result.Summary = s.buildSummary(ctx, resource, granted, xp)
	}

	log.Info("Claim settled",
		"playerID", playerID, "action", activity.ActionType,
		"claimedUnits", claimed, "granted", granted, "stopped", stop)
	return result, nil
}

// stopInTx deletes the activity within the already-open transaction and
// commits. Used for the auto-stop paths where nothing is grantable.
func (s *service) stopInTx(ctx context.Context, tx repository.ActivityTx, playerID string, action domain.ActionType) (*domain.ClaimResult, error) {
	if err := tx.DeleteActivity(ctx, playerID); err != nil {
		return nil, fmt.Errorf("failed to delete activity: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	metrics.ActivitiesStopped.WithLabelValues(string(action)).Inc()
	return &domain.ClaimResult{Stopped: true}, nil
}

func (s *service) buildSummary(ctx context.Context, resource *domain.VocationalResource, granted, xp int) *domain.ClaimSummary {
	summary := &domain.ClaimSummary{
		ActionType:      resource.ActionType,
		ResourceID:      resource.ID,
		GrantedQuantity: granted,
		XPGained:        xp,
	}
	if item, err := s.catalog.GetItemByID(ctx, resource.OutputItemID); err == nil {
		summary.OutputItemName = item.DisplayName
	}
	return summary
}
