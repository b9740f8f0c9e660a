package vocation

import (
	"time"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// Progress computes the derived view of an activity at a point in time.
// Pure and deterministic; no I/O.
//
// Unit boundaries use integer nanosecond division, so a query at exactly
// startedAt + N*unitSeconds reports N whole units (boundaries grant, never
// withhold).
func Progress(act *domain.Activity, now time.Time) domain.Progress {
	unitSeconds := act.UnitSeconds
	if unitSeconds < 1 {
		unitSeconds = 1
	}
	unit := time.Duration(unitSeconds) * time.Second

	duration := act.EndsAt.Sub(act.StartedAt)
	if duration < 0 {
		duration = 0
	}

	elapsed := now.Sub(act.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > duration {
		elapsed = duration
	}

	unitsTotal := int(elapsed / unit)
	unitsClaimable := unitsTotal - act.UnitsClaimed
	if unitsClaimable < 0 {
		unitsClaimable = 0
	}

	return domain.Progress{
		UnitSeconds:      unitSeconds,
		ElapsedSeconds:   int64(elapsed / time.Second),
		RemainingSeconds: int64((duration - elapsed) / time.Second),
		UnitsTotal:       unitsTotal,
		UnitsClaimable:   unitsClaimable,
		UnitProgress:     float64(elapsed%unit) / float64(unit),
		IsComplete:       duration == 0 || elapsed >= duration,
	}
}

// NextUnitBoundary returns when the activity's next unclaimed unit becomes due.
func NextUnitBoundary(act *domain.Activity) time.Time {
	unitSeconds := act.UnitSeconds
	if unitSeconds < 1 {
		unitSeconds = 1
	}
	return act.StartedAt.Add(time.Duration(act.UnitsClaimed+1) * time.Duration(unitSeconds) * time.Second)
}
