package skill

import (
	"math"
)

const (
	// BaseXP is the XP cost of level 1; level N costs BaseXP * N^LevelExponent.
	BaseXP = 100

	// LevelExponent controls curve steepness.
	LevelExponent = 1.5

	// MaxIterationLevel bounds the level computation loop.
	MaxIterationLevel = 200
)

// CalculateLevel determines the level from total XP using the formula:
// XP for level N = BaseXP * (N ^ LevelExponent)
func (s *service) CalculateLevel(totalXP int64) int {
	if totalXP <= 0 {
		return 0
	}

	level := 0
	cumulative := int64(0)

	for level < MaxIterationLevel {
		nextLevel := level + 1
		xpForNextLevel := int64(BaseXP * math.Pow(float64(nextLevel), LevelExponent))

		if cumulative+xpForNextLevel > totalXP {
			break
		}
		cumulative += xpForNextLevel
		level = nextLevel
	}

	return level
}

// GetXPForLevel returns the cumulative XP required to reach a level from level 0
func (s *service) GetXPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}

	cumulative := int64(0)
	for i := 1; i <= level; i++ {
		cumulative += int64(BaseXP * math.Pow(float64(i), LevelExponent))
	}

	return cumulative
}
