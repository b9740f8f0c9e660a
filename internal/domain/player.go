package domain

// Player is the minimal player record the engine touches. Overall XP lives
// here; per-skill XP lives in skill tracks.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	LevelXP  int64  `json:"level_xp"`
}
