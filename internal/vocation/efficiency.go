package vocation

import (
	"math"
)

// EffectiveUnitSeconds applies an additive efficiency percentage to a base
// seconds-per-unit rate. The result is at least 1 and monotonically
// non-increasing in efficiency. Frozen into the activity row at start time;
// mid-session gear swaps do not retroactively change an in-progress session.
func EffectiveUnitSeconds(baseSeconds, efficiencyPct int) int {
	if baseSeconds < 1 {
		baseSeconds = 1
	}
	if efficiencyPct < 0 {
		efficiencyPct = 0
	}

	adjusted := int(math.Round(float64(baseSeconds) / (1 + float64(efficiencyPct)/100)))
	if adjusted < 1 {
		return 1
	}
	return adjusted
}
