package vocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/inventory"
	"github.com/stormvale/vocation-engine/internal/logger"
	"github.com/stormvale/vocation-engine/internal/metrics"
	"github.com/stormvale/vocation-engine/internal/repository"
	"github.com/stormvale/vocation-engine/internal/skill"
)

// Service defines the vocational activity engine business logic.
type Service interface {
	// Start begins a new activity after validating preconditions. With
	// Replace set, an existing activity is stopped (and claimed) first.
	Start(ctx context.Context, params StartParams) (*domain.ActivityStatus, error)

	// Stop claims whatever was earned, then deletes the activity
	// unconditionally. Never fails on "nothing to claim".
	Stop(ctx context.Context, playerID string) (*domain.ClaimResult, error)

	// Status reports the current activity, opportunistically claiming any
	// due units first so visiting is enough to collect rewards.
	Status(ctx context.Context, playerID string) (*domain.ActivityStatus, error)

	// Claim grants due units. maxUnits <= 0 means "everything due".
	Claim(ctx context.Context, playerID string, maxUnits int) (*domain.ClaimResult, error)

	// ListRunning returns activities with settling left to do: still running,
	// or ended with units not yet claimed. Used by the tick daemon.
	ListRunning(ctx context.Context, now time.Time) ([]domain.Activity, error)

	// ListResources exposes the resource catalog.
	ListResources(ctx context.Context) ([]domain.VocationalResource, error)
}

// StartParams carries the Start operation inputs.
type StartParams struct {
	PlayerID        string
	ResourceID      int
	LocationID      *int
	DurationSeconds int
	Replace         bool
	BaitInstanceID  *string
}

type service struct {
	activityRepo repository.Activity
	catalog      repository.Catalog
	equipment    repository.Equipment
	skillSvc     skill.Service

	// resource templates are immutable at runtime, so cache hits never go stale
	resources *lru.Cache[int, *domain.VocationalResource]

	now func() time.Time // injected for tests
}

// NewService creates a new vocation service
func NewService(activityRepo repository.Activity, catalog repository.Catalog, equipment repository.Equipment, skillSvc skill.Service) Service {
	cache, _ := lru.New[int, *domain.VocationalResource](resourceCacheSize)
	return &service{
		activityRepo: activityRepo,
		catalog:      catalog,
		equipment:    equipment,
		skillSvc:     skillSvc,
		resources:    cache,
		now:          time.Now,
	}
}

func (s *service) getResource(ctx context.Context, resourceID int) (*domain.VocationalResource, error) {
	if res, ok := s.resources.Get(resourceID); ok {
		return res, nil
	}
	res, err := s.catalog.GetResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	s.resources.Add(resourceID, res)
	return res, nil
}

// Start begins a new activity for the player.
func (s *service) Start(ctx context.Context, params StartParams) (*domain.ActivityStatus, error) {
	log := logger.FromContext(ctx)
	log.Info("Start called", "playerID", params.PlayerID, "resourceID", params.ResourceID, "replace", params.Replace)

	existing, err := s.activityRepo.GetActivity(ctx, params.PlayerID)
	if err != nil && !errors.Is(err, domain.ErrActivityNotFound) {
		return nil, fmt.Errorf("failed to check existing activity: %w", err)
	}
	if existing != nil {
		if !params.Replace {
			return nil, domain.ErrActivityActive
		}
		// Replace implies stop-and-claim of the old session first.
		if _, err := s.Stop(ctx, params.PlayerID); err != nil {
			return nil, fmt.Errorf("failed to stop existing activity: %w", err)
		}
	}

	resource, err := s.getResource(ctx, params.ResourceID)
	if err != nil {
		return nil, err
	}

	tool, err := s.equipment.GetEquippedTool(ctx, params.PlayerID, resource.ActionType)
	if err != nil {
		return nil, fmt.Errorf("failed to look up equipped tool: %w", err)
	}
	if tool == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrToolRequired, resource.ActionType)
	}

	level, err := s.skillSvc.GetTrackLevel(ctx, params.PlayerID, resource.ActionType.TrackKey())
	if err != nil {
		return nil, fmt.Errorf("failed to get skill level: %w", err)
	}
	if level < resource.MinLevel {
		return nil, fmt.Errorf("%w: requires level %d, have %d", domain.ErrInsufficientLevel, resource.MinLevel, level)
	}

	if params.LocationID != nil {
		available, err := s.catalog.ResourceAvailableAt(ctx, resource.ID, *params.LocationID)
		if err != nil {
			return nil, fmt.Errorf("failed to check location availability: %w", err)
		}
		if !available {
			return nil, fmt.Errorf("%w: location %d", domain.ErrResourceUnavailable, *params.LocationID)
		}
	}

	unitSeconds := EffectiveUnitSeconds(resource.BaseUnitSeconds, tool.EfficiencyPct)

	duration := time.Duration(params.DurationSeconds) * time.Second
	if duration <= 0 || duration > MaxActivityDuration {
		duration = MaxActivityDuration
	}

	now := s.now()
	activity := &domain.Activity{
		PlayerID:     params.PlayerID,
		ActionType:   resource.ActionType,
		ResourceID:   resource.ID,
		LocationID:   params.LocationID,
		StartedAt:    now,
		EndsAt:       now.Add(duration),
		UnitSeconds:  unitSeconds,
		UnitsClaimed: 0,
	}

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventory(ctx, params.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	if resource.ActionType == domain.ActionFishing {
		if err := s.validateBaitSelection(ctx, resource, params.BaitInstanceID, inv); err != nil {
			return nil, err
		}
		activity.BaitInstanceID = params.BaitInstanceID
	} else {
		for _, req := range resource.Requirements {
			if inventory.Available(inv, req.ItemID) < req.QuantityPerUnit {
				return nil, fmt.Errorf("%w: item %d", domain.ErrInsufficientMaterials, req.ItemID)
			}
		}
	}

	if err := tx.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ActivitiesStarted.WithLabelValues(string(resource.ActionType)).Inc()
	log.Info("Activity started",
		"playerID", params.PlayerID, "action", resource.ActionType,
		"unitSeconds", unitSeconds, "endsAt", activity.EndsAt)

	progress := Progress(activity, now)
	return &domain.ActivityStatus{Active: true, Activity: activity, Progress: &progress}, nil
}

// validateBaitSelection enforces the fishing start preconditions: a bait
// instance is selected, present, of the BAIT type, and matches any
// resource-declared bait template.
func (s *service) validateBaitSelection(ctx context.Context, resource *domain.VocationalResource, baitInstanceID *string, inv *domain.Inventory) error {
	if baitInstanceID == nil || *baitInstanceID == "" {
		return domain.ErrBaitRequired
	}

	slot, ok := inventory.FindInstance(inv, *baitInstanceID)
	if !ok {
		return fmt.Errorf("%w: not in inventory", domain.ErrBaitInvalid)
	}

	item, err := s.catalog.GetItemByID(ctx, slot.ItemID)
	if err != nil {
		return fmt.Errorf("failed to look up bait item: %w", err)
	}
	if !item.HasType(domain.ItemTypeBait) {
		return fmt.Errorf("%w: %s is not bait", domain.ErrBaitInvalid, item.InternalName)
	}
	if resource.RequiredBaitItemID != nil && slot.ItemID != *resource.RequiredBaitItemID {
		return fmt.Errorf("%w: resource requires a specific bait", domain.ErrBaitInvalid)
	}
	return nil
}

// Stop claims whatever was earned, then removes the activity.
func (s *service) Stop(ctx context.Context, playerID string) (*domain.ClaimResult, error) {
	result, err := s.Claim(ctx, playerID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to claim before stop: %w", err)
	}

	if result.Stopped {
		// The claim already deleted the row.
		return result, nil
	}

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetActivityForUpdate(ctx, playerID); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if err := tx.DeleteActivity(ctx, playerID); err != nil {
		return nil, fmt.Errorf("failed to delete activity: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Stopped = true
	logger.FromContext(ctx).Info("Activity stopped", "playerID", playerID, "claimedUnits", result.ClaimedUnits)
	return result, nil
}

// Status reports the player's activity, collecting due units on the way.
func (s *service) Status(ctx context.Context, playerID string) (*domain.ActivityStatus, error) {
	activity, err := s.activityRepo.GetActivity(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return &domain.ActivityStatus{Active: false}, nil
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	now := s.now()
	progress := Progress(activity, now)
	if progress.UnitsClaimable == 0 && !progress.IsComplete {
		return &domain.ActivityStatus{Active: true, Activity: activity, Progress: &progress}, nil
	}

	// Visiting is collecting: claim everything due, then re-read.
	result, err := s.Claim(ctx, playerID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to claim on status: %w", err)
	}

	activity, err = s.activityRepo.GetActivity(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return &domain.ActivityStatus{Active: false, Completed: result.Summary}, nil
		}
		return nil, fmt.Errorf("failed to refresh activity: %w", err)
	}

	progress = Progress(activity, s.now())
	return &domain.ActivityStatus{Active: true, Activity: activity, Progress: &progress, Completed: result.Summary}, nil
}

func (s *service) ListRunning(ctx context.Context, now time.Time) ([]domain.Activity, error) {
	return s.activityRepo.ListRunning(ctx, now)
}

func (s *service) ListResources(ctx context.Context) ([]domain.VocationalResource, error) {
	return s.catalog.ListResources(ctx)
}
