package model

// Allowed ranges for numeric settings
const (
	MinHandSize   = 1
	MaxHandSize   = 15
	MinAIDelayMs  = 0
	MaxAIDelayMs  = 5000
	MinScoreLimit = 50
	MaxScoreLimit = 5000
)

// Settings holds the per-game configuration. Changes to HandSize only take
// effect on the next deal.
type Settings struct {
	HandSize  int  `json:"hand_size"`
	AIEnabled bool `json:"ai_enabled"`
	// AIDelayMs is a hint for clients pacing the display of automated turns.
	AIDelayMs                int  `json:"ai_delay_ms"`
	AutoPlayIfDrawnPlayable  bool `json:"auto_play_if_drawn_playable"`
	AllowIllegalWildDrawFour bool `json:"allow_illegal_wild_draw_four"`
	ScoreLimit               int  `json:"score_limit"`
}

// DefaultSettings returns the default game settings
func DefaultSettings() Settings {
	return Settings{
		HandSize:                 7,
		AIEnabled:                true,
		AIDelayMs:                250,
		AutoPlayIfDrawnPlayable:  true,
		AllowIllegalWildDrawFour: false,
		ScoreLimit:               500,
	}
}

// SettingsPatch is a partial update. Nil fields are left alone.
type SettingsPatch struct {
	HandSize                 *int
	AIEnabled                *bool
	AIDelayMs                *int
	AutoPlayIfDrawnPlayable  *bool
	AllowIllegalWildDrawFour *bool
	ScoreLimit               *int
}

// Apply copies every present, in-range field onto s. Out-of-range values are
// ignored rather than rejected.
func (p SettingsPatch) Apply(s *Settings) {
	if p.HandSize != nil && inRange(*p.HandSize, MinHandSize, MaxHandSize) {
		s.HandSize = *p.HandSize
	}
	if p.AIEnabled != nil {
		s.AIEnabled = *p.AIEnabled
	}
	if p.AIDelayMs != nil && inRange(*p.AIDelayMs, MinAIDelayMs, MaxAIDelayMs) {
		s.AIDelayMs = *p.AIDelayMs
	}
	if p.AutoPlayIfDrawnPlayable != nil {
		s.AutoPlayIfDrawnPlayable = *p.AutoPlayIfDrawnPlayable
	}
	if p.AllowIllegalWildDrawFour != nil {
		s.AllowIllegalWildDrawFour = *p.AllowIllegalWildDrawFour
	}
	if p.ScoreLimit != nil && inRange(*p.ScoreLimit, MinScoreLimit, MaxScoreLimit) {
		s.ScoreLimit = *p.ScoreLimit
	}
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
