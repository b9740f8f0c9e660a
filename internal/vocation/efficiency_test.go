package vocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveUnitSeconds(t *testing.T) {
	tests := []struct {
		name          string
		baseSeconds   int
		efficiencyPct int
		want          int
	}{
		{"no efficiency", 10, 0, 10},
		{"fifty percent faster", 30, 50, 20},
		{"double speed halves the unit", 10, 100, 5},
		{"rounds to nearest", 10, 33, 8},
		{"never below one second", 2, 500, 1},
		{"negative efficiency ignored", 10, -50, 10},
		{"degenerate base clamps to one", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveUnitSeconds(tt.baseSeconds, tt.efficiencyPct))
		})
	}
}

func TestEffectiveUnitSecondsMonotonic(t *testing.T) {
	prev := EffectiveUnitSeconds(60, 0)
	for pct := 5; pct <= 300; pct += 5 {
		cur := EffectiveUnitSeconds(60, pct)
		assert.LessOrEqual(t, cur, prev, "efficiency %d should not slow the unit", pct)
		prev = cur
	}
}
