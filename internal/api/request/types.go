package request

import (
	"fmt"

	"github.com/mcoot/unogame/internal/model"
)

// CreateGameRequest is the request body for creating a game.
// An empty mode means singleplayer.
type CreateGameRequest struct {
	Mode string `json:"mode"`
}

// GameMode returns the requested mode, applying the default
func (r CreateGameRequest) GameMode() model.GameMode {
	if r.Mode == "" {
		return model.ModeSingleplayer
	}
	return model.GameMode(r.Mode)
}

// JoinGameRequest is the request body for joining a game
type JoinGameRequest struct {
	PlayerName string `json:"playerName"`
}

// ActionRequest identifies who is acting. An empty playerId means p1.
type ActionRequest struct {
	PlayerID string `json:"playerId"`
}

// Player returns the acting player, applying the default
func (r ActionRequest) Player() model.PlayerID {
	if r.PlayerID == "" {
		return model.PrimaryPlayerID
	}
	return model.PlayerID(r.PlayerID)
}

// PlayCardRequest is the request body for playing a card
type PlayCardRequest struct {
	ActionRequest
	CardID      string `json:"cardId"`
	ChosenColor string `json:"chosenColor,omitempty"`
}

// Validate checks the fields that can be checked without the game
func (r PlayCardRequest) Validate() error {
	if r.CardID == "" {
		return fmt.Errorf("cardId is required")
	}
	if r.ChosenColor != "" && !model.Color(r.ChosenColor).IsBase() {
		return fmt.Errorf("chosenColor must be one of red, yellow, green, blue")
	}
	return nil
}

// SettingsPatchRequest is a partial settings update. Absent fields are
// left unchanged.
type SettingsPatchRequest struct {
	HandSize                 *int  `json:"handSize,omitempty"`
	AIEnabled                *bool `json:"aiEnabled,omitempty"`
	AIDelayMs                *int  `json:"aiDelayMs,omitempty"`
	AutoPlayIfDrawnPlayable  *bool `json:"autoPlayIfDrawnPlayable,omitempty"`
	AllowIllegalWildDrawFour *bool `json:"allowIllegalWildDrawFour,omitempty"`
	ScoreLimit               *int  `json:"scoreLimit,omitempty"`
}

// Validate rejects values outside the allowed ranges
func (r SettingsPatchRequest) Validate() error {
	check := func(name string, v *int, lo, hi int) error {
		if v != nil && (*v < lo || *v > hi) {
			return fmt.Errorf("%s must be between %d and %d", name, lo, hi)
		}
		return nil
	}
	if err := check("handSize", r.HandSize, model.MinHandSize, model.MaxHandSize); err != nil {
		return err
	}
	if err := check("aiDelayMs", r.AIDelayMs, model.MinAIDelayMs, model.MaxAIDelayMs); err != nil {
		return err
	}
	return check("scoreLimit", r.ScoreLimit, model.MinScoreLimit, model.MaxScoreLimit)
}

// Patch converts the request to a model.SettingsPatch
func (r SettingsPatchRequest) Patch() model.SettingsPatch {
	return model.SettingsPatch{
		HandSize:                 r.HandSize,
		AIEnabled:                r.AIEnabled,
		AIDelayMs:                r.AIDelayMs,
		AutoPlayIfDrawnPlayable:  r.AutoPlayIfDrawnPlayable,
		AllowIllegalWildDrawFour: r.AllowIllegalWildDrawFour,
		ScoreLimit:               r.ScoreLimit,
	}
}
