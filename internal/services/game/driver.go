package game

import (
	"log/slog"

	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
)

// MaxAutomatedTurns is a safety limit for the automated player loop
const MaxAutomatedTurns = 1000

// AutomatedActionType represents the kind of turn an automated player took
type AutomatedActionType string

const (
	ActionAbsorbPenalty AutomatedActionType = "absorb_penalty"
	ActionPlay          AutomatedActionType = "play"
	ActionDraw          AutomatedActionType = "draw"
	ActionDrawAndPlay   AutomatedActionType = "draw_and_play"
)

// AutomatedAction records a single turn taken by an automated player
type AutomatedAction struct {
	Type     AutomatedActionType
	PlayerID model.PlayerID
	// Card is the card played or drawn; unset for ActionAbsorbPenalty
	Card  model.Card
	Color model.Color
	// Count is the number of cards drawn for ActionAbsorbPenalty
	Count int
}

// driveAutomated takes turns for automated players until a human must act
// or the game leaves playing. Every turn either ends the round or moves the
// pointer, so the cap is only a backstop.
func (e *Engine) driveAutomated(game *model.Game, rng random.Random) []AutomatedAction {
	var actions []AutomatedAction

	for range MaxAutomatedTurns {
		if !game.IsPlaying() {
			return actions
		}
		player := game.CurrentPlayer()
		if player == nil || !player.IsAutomated {
			return actions
		}

		action := e.takeAutomatedTurn(game, rng, player)
		e.logger.Debug("automated turn",
			slog.String("game_id", string(game.ID)),
			slog.String("player_id", string(player.ID)),
			slog.String("action", string(action.Type)),
			slog.String("card", action.Card.String()),
		)
		actions = append(actions, action)
	}

	e.logger.Warn("automated turn limit reached",
		slog.String("game_id", string(game.ID)),
		slog.Int("turns", len(actions)),
	)
	return actions
}

func (e *Engine) takeAutomatedTurn(game *model.Game, rng random.Random, player *model.Player) AutomatedAction {
	if game.PendingDraw > 0 {
		count := game.PendingDraw
		e.absorbPenalty(game, rng, player)
		return AutomatedAction{Type: ActionAbsorbPenalty, PlayerID: player.ID, Count: count}
	}

	if card, ok := e.strategy.ChooseCard(game, player); ok {
		color := e.colorFor(player, card)
		player.RemoveCard(card.ID)
		e.discard(game, card, color)
		return AutomatedAction{Type: ActionPlay, PlayerID: player.ID, Card: card, Color: color}
	}

	drawn := e.drawOne(game, rng)
	player.Hand = append(player.Hand, drawn)
	if e.autoPlayable(game, drawn) {
		color := e.colorFor(player, drawn)
		player.RemoveCard(drawn.ID)
		e.discard(game, drawn, color)
		return AutomatedAction{Type: ActionDrawAndPlay, PlayerID: player.ID, Card: drawn, Color: color}
	}

	advance(game, 1)
	game.UpdatedAt = e.clock.Now()
	return AutomatedAction{Type: ActionDraw, PlayerID: player.ID, Card: drawn}
}

func (e *Engine) colorFor(player *model.Player, card model.Card) model.Color {
	if card.Value.IsWild() {
		return e.strategy.ChooseColor(player)
	}
	return card.Color
}
