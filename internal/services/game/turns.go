package game

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/deck"
	"github.com/mcoot/unogame/internal/services/rules"
)

// Play plays a card from the current player's hand. Wilds need a base
// colour in chosen. Nothing is modified if an error is returned.
func (e *Engine) Play(game *model.Game, rng random.Random, playerID model.PlayerID, cardID model.CardID, chosen model.Color) (Result, error) {
	player, err := requireTurn(game, playerID)
	if err != nil {
		return Result{}, err
	}

	if game.PendingDraw > 0 {
		return Result{}, model.NewRuleError(model.ErrPendingDrawUnresolved, "You must draw the pending penalty before playing.")
	}

	top, ok := game.TopDiscard()
	if !ok {
		return Result{}, model.NewRuleError(model.ErrEmptyDiscard, "No discard pile to play on.")
	}

	idx := player.FindCard(cardID)
	if idx < 0 {
		return Result{}, model.NewRuleError(model.ErrCardNotInHand, "Card not in your hand.")
	}
	card := player.Hand[idx]

	if !rules.CanPlayOn(card, top, game.CurrentColor) {
		return Result{}, model.NewRuleError(model.ErrIllegalPlay, "Card is not playable on the current discard.")
	}

	color := card.Color
	if card.Value.IsWild() {
		if !chosen.IsBase() {
			return Result{}, model.NewRuleError(model.ErrMissingColorChoice, "chosenColor is required for wild cards.")
		}
		if !rules.WildDrawFourAllowed(game, player.Hand, card) {
			return Result{}, model.NewRuleError(model.ErrWildDrawFourRestricted, "Wild Draw Four not allowed when you have a matching color.")
		}
		color = chosen
	}

	player.RemoveCard(card.ID)
	e.logger.Debug("card played",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("card", card.String()),
		slog.String("color", string(color)),
	)
	if e.discard(game, card, color) {
		return Result{}, nil
	}
	game.Message = fmt.Sprintf("%s played %s.", player.Name, card.Value)

	return Result{Automated: e.driveAutomated(game, rng)}, nil
}

// Draw takes cards for the current player. An outstanding penalty is drawn
// in full and ends the turn; otherwise one card is drawn and, if the game
// allows it and the card is legal, played straight away.
func (e *Engine) Draw(game *model.Game, rng random.Random, playerID model.PlayerID) (Result, error) {
	player, err := requireTurn(game, playerID)
	if err != nil {
		return Result{}, err
	}

	if game.PendingDraw > 0 {
		count := game.PendingDraw
		e.absorbPenalty(game, rng, player)
		game.Message = fmt.Sprintf("%s drew %d cards.", player.Name, count)

		last := player.Hand[len(player.Hand)-1]
		return Result{Drawn: &last, Automated: e.driveAutomated(game, rng)}, nil
	}

	drawn := e.drawOne(game, rng)
	player.Hand = append(player.Hand, drawn)
	res := Result{Drawn: &drawn}

	if e.autoPlayable(game, drawn) {
		color := drawn.Color
		if drawn.Value.IsWild() {
			// Humans get no chance to pick when a wild is auto-played
			color = model.ColorRed
			if player.IsAutomated {
				color = e.strategy.ChooseColor(player)
			}
		}
		player.RemoveCard(drawn.ID)
		over := e.discard(game, drawn, color)
		game.LastDrawnCardID = drawn.ID
		if over {
			return res, nil
		}
		game.Message = fmt.Sprintf("%s drew and played %s.", player.Name, drawn.Value)
	} else {
		game.LastDrawnCardID = drawn.ID
		advance(game, 1)
		game.UpdatedAt = e.clock.Now()
		game.Message = fmt.Sprintf("%s drew a card.", player.Name)
	}

	e.logger.Debug("card drawn",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("card", drawn.String()),
	)

	res.Automated = e.driveAutomated(game, rng)
	return res, nil
}

// Pass ends the current player's turn. It is refused while a penalty is outstanding.
func (e *Engine) Pass(game *model.Game, rng random.Random, playerID model.PlayerID) (Result, error) {
	player, err := requireTurn(game, playerID)
	if err != nil {
		return Result{}, err
	}
	if game.PendingDraw > 0 {
		return Result{}, model.NewRuleError(model.ErrPendingDrawUnresolved, "Cannot pass while a pending draw penalty exists. Draw first.")
	}

	game.MustPlayOrPass = false
	game.LastDrawnCardID = ""
	advance(game, 1)
	game.UpdatedAt = e.clock.Now()
	game.Message = "Turn passed."

	e.logger.Debug("turn passed",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
	)

	return Result{Automated: e.driveAutomated(game, rng)}, nil
}

func requireTurn(game *model.Game, playerID model.PlayerID) (*model.Player, error) {
	if !game.IsPlaying() {
		return nil, model.NewRuleError(model.ErrGameNotPlaying, "Game is not in playing state (status=%s).", game.Status)
	}
	player := game.GetPlayer(playerID)
	if player == nil {
		return nil, model.NewRuleError(model.ErrUnknownPlayer, "Unknown player.")
	}
	if game.CurrentPlayer().ID != playerID {
		return nil, model.NewRuleError(model.ErrNotYourTurn, "Not your turn.")
	}
	return player, nil
}

// discard puts an already-removed card on the discard pile and applies its
// effect. It reports whether the play ended the round, in which case the
// turn pointer is left where it was.
func (e *Engine) discard(game *model.Game, card model.Card, color model.Color) bool {
	game.DiscardPile = append(game.DiscardPile, card)
	game.CurrentColor = color
	game.MustPlayOrPass = false
	game.LastDrawnCardID = ""

	effect := rules.ResolveEffect(game, card)
	if effect.FlipDirection {
		game.Direction = -game.Direction
	}
	game.UpdatedAt = e.clock.Now()

	if e.resolveRound(game) {
		return true
	}
	advance(game, effect.Steps)
	return false
}

func (e *Engine) absorbPenalty(game *model.Game, rng random.Random, player *model.Player) {
	for range game.PendingDraw {
		player.Hand = append(player.Hand, e.drawOne(game, rng))
	}
	e.logger.Debug("penalty drawn",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
		slog.Int("count", game.PendingDraw),
	)
	game.PendingDraw = 0
	game.MustPlayOrPass = false
	game.LastDrawnCardID = ""
	advance(game, 1)
	game.UpdatedAt = e.clock.Now()
}

func (e *Engine) autoPlayable(game *model.Game, card model.Card) bool {
	if !game.Settings.AutoPlayIfDrawnPlayable {
		return false
	}
	top, ok := game.TopDiscard()
	return ok && rules.CanPlayOn(card, top, game.CurrentColor)
}

// resolveRound ends the round if someone has emptied their hand, scoring
// every other hand to the winner
func (e *Engine) resolveRound(game *model.Game) bool {
	var winner *model.Player
	for _, p := range game.Players {
		if len(p.Hand) == 0 {
			winner = p
			break
		}
	}
	if winner == nil {
		return false
	}

	points := 0
	for _, p := range game.Players {
		if p != winner {
			points += deck.ScoreHand(p.Hand)
		}
	}
	winner.Score += points
	game.WinnerPlayerID = winner.ID

	if winner.Score >= game.Settings.ScoreLimit {
		game.Status = model.GameStatusMatchOver
		game.Message = fmt.Sprintf("%s wins the match (+%d).", winner.Name, points)
	} else {
		game.Status = model.GameStatusRoundOver
		game.Message = fmt.Sprintf("%s wins the round (+%d).", winner.Name, points)
	}

	e.logger.Info("round won",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(winner.ID)),
		slog.Int("points", points),
		slog.Int("score", winner.Score),
		slog.String("status", string(game.Status)),
	)
	return true
}

// drawOne pops the top of the draw pile, reshuffling the discard pile into
// it first if it is empty
func (e *Engine) drawOne(game *model.Game, rng random.Random) model.Card {
	if len(game.DrawPile) == 0 {
		reshuffle(game, rng)
	}
	if len(game.DrawPile) == 0 {
		// Every card is in a hand. Synthesising a deck breaks conservation
		// but keeps the game moving.
		e.logger.Warn("no cards left to draw, building a fresh deck",
			slog.String("game_id", string(game.ID)),
			slog.Int("card_count", game.CardCount()),
		)
		game.DrawPile = deck.Build(rng)
	}

	last := len(game.DrawPile) - 1
	card := game.DrawPile[last]
	game.DrawPile = game.DrawPile[:last]
	return card
}

// reshuffle turns everything under the top discard into a new draw pile
func reshuffle(game *model.Game, rng random.Random) {
	if len(game.DiscardPile) <= 1 {
		return
	}
	last := len(game.DiscardPile) - 1
	top := game.DiscardPile[last]

	rest := make([]model.Card, last)
	copy(rest, game.DiscardPile[:last])
	deck.Shuffle(rng, rest)

	game.DrawPile = rest
	game.DiscardPile = []model.Card{top}
}

func advance(game *model.Game, steps int) {
	game.CurrentPlayerIndex = rules.NextIndex(game.CurrentPlayerIndex, game.Direction, steps, len(game.Players))
}
