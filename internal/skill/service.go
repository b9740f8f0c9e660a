package skill

import (
	"context"
	"fmt"

	"github.com/stormvale/vocation-engine/internal/logger"
	"github.com/stormvale/vocation-engine/internal/repository"
)

// Service defines the XP ledger business logic: per-skill tracks plus the
// player's overall level XP.
type Service interface {
	// GetTrackLevel returns the current level of a skill track.
	GetTrackLevel(ctx context.Context, playerID, trackKey string) (int, error)

	// AwardTrackXP adds XP to a skill track.
	AwardTrackXP(ctx context.Context, playerID, trackKey string, amount int) (*XPAwardResult, error)

	// AwardPlayerXP adds to the player's overall level XP.
	AwardPlayerXP(ctx context.Context, playerID string, amount int, reason string) error

	// Level curve helpers
	CalculateLevel(totalXP int64) int
	GetXPForLevel(level int) int64
}

// XPAwardResult reports the outcome of a track XP award.
type XPAwardResult struct {
	TrackKey  string `json:"track_key"`
	XPGained  int    `json:"xp_gained"`
	NewXP     int64  `json:"new_xp"`
	NewLevel  int    `json:"new_level"`
	LeveledUp bool   `json:"leveled_up"`
}

type service struct {
	repo repository.Skill
}

// NewService creates a new skill ledger service
func NewService(repo repository.Skill) Service {
	return &service{repo: repo}
}

func (s *service) GetTrackLevel(ctx context.Context, playerID, trackKey string) (int, error) {
	xp, err := s.repo.GetTrackXP(ctx, playerID, trackKey)
	if err != nil {
		return 0, fmt.Errorf("failed to get track xp: %w", err)
	}
	return s.CalculateLevel(xp), nil
}

func (s *service) AwardTrackXP(ctx context.Context, playerID, trackKey string, amount int) (*XPAwardResult, error) {
	if amount <= 0 {
		xp, err := s.repo.GetTrackXP(ctx, playerID, trackKey)
		if err != nil {
			return nil, fmt.Errorf("failed to get track xp: %w", err)
		}
		return &XPAwardResult{TrackKey: trackKey, NewXP: xp, NewLevel: s.CalculateLevel(xp)}, nil
	}

	before, err := s.repo.GetTrackXP(ctx, playerID, trackKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get track xp: %w", err)
	}

	newXP, err := s.repo.AddTrackXP(ctx, playerID, trackKey, int64(amount))
	if err != nil {
		return nil, fmt.Errorf("failed to add track xp: %w", err)
	}

	oldLevel := s.CalculateLevel(before)
	newLevel := s.CalculateLevel(newXP)
	if newLevel > oldLevel {
		logger.FromContext(ctx).Info("Skill track leveled up",
			"playerID", playerID, "track", trackKey, "oldLevel", oldLevel, "newLevel", newLevel)
	}

	return &XPAwardResult{
		TrackKey:  trackKey,
		XPGained:  amount,
		NewXP:     newXP,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}, nil
}

func (s *service) AwardPlayerXP(ctx context.Context, playerID string, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	if err := s.repo.AddPlayerXP(ctx, playerID, int64(amount)); err != nil {
		return fmt.Errorf("failed to add player xp: %w", err)
	}
	logger.FromContext(ctx).Debug("Player XP awarded", "playerID", playerID, "amount", amount, "reason", reason)
	return nil
}
