package vocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stormvale/vocation-engine/internal/domain"
)

func TestProgress(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		unitSeconds     int
		duration        time.Duration
		unitsClaimed    int
		at              time.Duration
		wantTotal       int
		wantClaimable   int
		wantComplete    bool
		wantUnitFrac    float64
		wantElapsedSecs int64
	}{
		{
			name:        "just before first boundary",
			unitSeconds: 5, duration: time.Minute,
			at:        5*time.Second - time.Millisecond,
			wantTotal: 0, wantClaimable: 0,
			wantUnitFrac:    0.9998,
			wantElapsedSecs: 4,
		},
		{
			name:        "exactly on first boundary",
			unitSeconds: 5, duration: time.Minute,
			at:        5 * time.Second,
			wantTotal: 1, wantClaimable: 1,
			wantUnitFrac:    0,
			wantElapsedSecs: 5,
		},
		{
			name:        "mid second unit",
			unitSeconds: 10, duration: time.Minute,
			at:        15 * time.Second,
			wantTotal: 1, wantClaimable: 1,
			wantUnitFrac:    0.5,
			wantElapsedSecs: 15,
		},
		{
			name:        "already claimed units subtract",
			unitSeconds: 5, duration: time.Minute,
			unitsClaimed: 3,
			at:           20 * time.Second,
			wantTotal:    4, wantClaimable: 1,
			wantElapsedSecs: 20,
		},
		{
			name:        "claimed ahead of total clamps to zero",
			unitSeconds: 5, duration: time.Minute,
			unitsClaimed: 10,
			at:           20 * time.Second,
			wantTotal:    4, wantClaimable: 0,
			wantElapsedSecs: 20,
		},
		{
			name:        "clock before start",
			unitSeconds: 5, duration: time.Minute,
			at:        -10 * time.Second,
			wantTotal: 0, wantClaimable: 0,
			wantElapsedSecs: 0,
		},
		{
			name:        "past the end clamps to duration",
			unitSeconds: 7, duration: time.Minute,
			at:        2 * time.Hour,
			wantTotal: 8, wantClaimable: 8,
			wantComplete:    true,
			wantUnitFrac:    float64(60%7) / 7,
			wantElapsedSecs: 60,
		},
		{
			name:        "exactly at the end",
			unitSeconds: 30, duration: time.Minute,
			at:        time.Minute,
			wantTotal: 2, wantClaimable: 2,
			wantComplete:    true,
			wantElapsedSecs: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := &domain.Activity{
				PlayerID:     "player-1",
				StartedAt:    start,
				EndsAt:       start.Add(tt.duration),
				UnitSeconds:  tt.unitSeconds,
				UnitsClaimed: tt.unitsClaimed,
			}

			p := Progress(act, start.Add(tt.at))

			assert.Equal(t, tt.wantTotal, p.UnitsTotal)
			assert.Equal(t, tt.wantClaimable, p.UnitsClaimable)
			assert.Equal(t, tt.wantComplete, p.IsComplete)
			assert.Equal(t, tt.wantElapsedSecs, p.ElapsedSeconds)
			assert.InDelta(t, tt.wantUnitFrac, p.UnitProgress, 1e-9)
		})
	}
}

func TestProgressDegenerateUnitSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	act := &domain.Activity{
		StartedAt:   start,
		EndsAt:      start.Add(10 * time.Second),
		UnitSeconds: 0,
	}

	p := Progress(act, start.Add(3*time.Second))

	// Zero unit length is treated as one second per unit rather than dividing
	// by zero.
	assert.Equal(t, 1, p.UnitSeconds)
	assert.Equal(t, 3, p.UnitsTotal)
}

func TestProgressZeroDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	act := &domain.Activity{
		StartedAt:   start,
		EndsAt:      start,
		UnitSeconds: 5,
	}

	p := Progress(act, start.Add(time.Hour))

	assert.True(t, p.IsComplete)
	assert.Equal(t, 0, p.UnitsTotal)
	assert.Equal(t, int64(0), p.RemainingSeconds)
}

func TestNextUnitBoundary(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	act := &domain.Activity{
		StartedAt:    start,
		EndsAt:       start.Add(time.Hour),
		UnitSeconds:  5,
		UnitsClaimed: 2,
	}

	assert.Equal(t, start.Add(15*time.Second), NextUnitBoundary(act))
}
