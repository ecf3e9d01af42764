package view

import (
	"time"

	"github.com/mcoot/unogame/internal/model"
)

// Card is a card as clients see it
type Card struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Value string `json:"value"`
}

// CardFromModel converts a model.Card
func CardFromModel(c model.Card) Card {
	return Card{
		ID:    string(c.ID),
		Color: string(c.Color),
		Value: c.Value.String(),
	}
}

// Player is the public part of a player. Hands are reduced to a count.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsAI      bool   `json:"isAI"`
	Score     int    `json:"score"`
	HandCount int    `json:"handCount"`
	IsYou     bool   `json:"isYou"`
}

// You holds the requesting player's own hand
type You struct {
	PlayerID string `json:"playerId"`
	Hand     []Card `json:"hand"`
}

// Settings mirrors model.Settings
type Settings struct {
	HandSize                 int  `json:"handSize"`
	AIEnabled                bool `json:"aiEnabled"`
	AIDelayMs                int  `json:"aiDelayMs"`
	AutoPlayIfDrawnPlayable  bool `json:"autoPlayIfDrawnPlayable"`
	AllowIllegalWildDrawFour bool `json:"allowIllegalWildDrawFour"`
	ScoreLimit               int  `json:"scoreLimit"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		HandSize:                 s.HandSize,
		AIEnabled:                s.AIEnabled,
		AIDelayMs:                s.AIDelayMs,
		AutoPlayIfDrawnPlayable:  s.AutoPlayIfDrawnPlayable,
		AllowIllegalWildDrawFour: s.AllowIllegalWildDrawFour,
		ScoreLimit:               s.ScoreLimit,
	}
}

// PublicView is a game as seen by one player. Only that player's hand is included.
type PublicView struct {
	GameID             string    `json:"gameId"`
	Status             string    `json:"status"`
	Message            string    `json:"message"`
	Round              int       `json:"round"`
	CurrentPlayerIndex int       `json:"currentPlayerIndex"`
	Direction          int       `json:"direction"`
	Players            []Player  `json:"players"`
	You                You       `json:"you"`
	DiscardTop         *Card     `json:"discardTop"`
	CurrentColor       *string   `json:"currentColor"`
	DrawPileCount      int       `json:"drawPileCount"`
	PendingDraw        int       `json:"pendingDraw"`
	MustPlayOrPass     bool      `json:"mustPlayOrPass"`
	LastDrawnCardID    *string   `json:"lastDrawnCardId"`
	WinnerPlayerID     *string   `json:"winnerPlayerId"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Settings           Settings  `json:"settings"`
}

// Project renders game for asPlayerID. An unknown player still gets a view,
// with the first seat's hand in the You block and no seat marked as theirs.
func Project(game *model.Game, asPlayerID model.PlayerID) PublicView {
	v := PublicView{
		GameID:             string(game.ID),
		Status:             string(game.Status),
		Message:            game.Message,
		Round:              game.Round,
		CurrentPlayerIndex: game.CurrentPlayerIndex,
		Direction:          game.Direction,
		Players:            make([]Player, 0, len(game.Players)),
		DrawPileCount:      len(game.DrawPile),
		PendingDraw:        game.PendingDraw,
		MustPlayOrPass:     game.MustPlayOrPass,
		UpdatedAt:          game.UpdatedAt,
		Settings:           SettingsFromModel(game.Settings),
	}

	for _, p := range game.Players {
		v.Players = append(v.Players, Player{
			ID:        string(p.ID),
			Name:      p.Name,
			IsAI:      p.IsAutomated,
			Score:     p.Score,
			HandCount: len(p.Hand),
			IsYou:     p.ID == asPlayerID,
		})
	}

	you := game.GetPlayer(asPlayerID)
	if you == nil && len(game.Players) > 0 {
		you = game.Players[0]
	}
	v.You.Hand = []Card{}
	if you != nil {
		v.You.PlayerID = string(you.ID)
		for _, c := range you.Hand {
			v.You.Hand = append(v.You.Hand, CardFromModel(c))
		}
	}

	if top, ok := game.TopDiscard(); ok {
		c := CardFromModel(top)
		v.DiscardTop = &c
	}
	if id := lastDrawnVisibleTo(game, you); id != "" {
		drawn := string(id)
		v.LastDrawnCardID = &drawn
	}
	if game.CurrentColor != "" {
		color := string(game.CurrentColor)
		v.CurrentColor = &color
	}
	if game.WinnerPlayerID != "" {
		winner := string(game.WinnerPlayerID)
		v.WinnerPlayerID = &winner
	}

	return v
}

// lastDrawnVisibleTo returns the last drawn card's id if viewer holds it or
// it is the face-up discard. Ids follow deck build order, so an id in an
// opponent's hand would give away its value.
func lastDrawnVisibleTo(game *model.Game, viewer *model.Player) model.CardID {
	id := game.LastDrawnCardID
	if id == "" {
		return ""
	}
	if top, ok := game.TopDiscard(); ok && top.ID == id {
		return id
	}
	if viewer != nil && viewer.FindCard(id) >= 0 {
		return id
	}
	return ""
}
