package vocation

import "time"

const (
	// MaxActivityDuration is the hard ceiling on a session; ends_at is clamped
	// to started_at + this on start.
	MaxActivityDuration = 12 * time.Hour

	// baitPerUnit is the bait consumed per fishing unit.
	baitPerUnit = 1

	// resourceCacheSize bounds the LRU of immutable resource templates.
	resourceCacheSize = 256

	// XPReasonClaim tags overall player XP awarded by claims.
	XPReasonClaim = "vocation_claim"
)
