package rules

import "github.com/mcoot/unogame/internal/model"

// Effect is how far the turn pointer moves after a card is played, and
// whether play direction reverses first
type Effect struct {
	Steps         int
	FlipDirection bool
}

// CanPlayOn reports whether card may be played on top. A non-empty
// activeColor overrides the top card's printed colour, since a wild may have
// remapped it.
func CanPlayOn(card, top model.Card, activeColor model.Color) bool {
	if card.Value.IsWild() {
		return true
	}
	colorToMatch := activeColor
	if colorToMatch == "" {
		colorToMatch = top.Color
	}
	if card.Color == colorToMatch {
		return true
	}
	return card.Value == top.Value
}

// ResolveEffect applies a played card's action to the game (penalty
// accumulation) and returns the resulting turn movement
func ResolveEffect(game *model.Game, card model.Card) Effect {
	switch card.Value.Kind {
	case model.KindSkip:
		return Effect{Steps: 2}
	case model.KindReverse:
		// With two players a reverse hands the turn straight back
		if len(game.Players) == 2 {
			return Effect{Steps: 2, FlipDirection: true}
		}
		return Effect{Steps: 1, FlipDirection: true}
	case model.KindDrawTwo:
		game.PendingDraw += 2
		return Effect{Steps: 2}
	case model.KindWildDrawFour:
		game.PendingDraw += 4
		return Effect{Steps: 2}
	default:
		return Effect{Steps: 1}
	}
}

// NextIndex moves steps seats from current in direction, wrapping around
func NextIndex(current, direction, steps, playerCount int) int {
	if playerCount <= 0 {
		return 0
	}
	idx := (current + direction*steps) % playerCount
	if idx < 0 {
		idx += playerCount
	}
	return idx
}

// HasColor reports whether any card in hand other than except has the given colour
func HasColor(hand []model.Card, color model.Color, except model.CardID) bool {
	for _, c := range hand {
		if c.ID != except && c.Color == color {
			return true
		}
	}
	return false
}

// PlayableCards returns the cards in hand that can be played on top
func PlayableCards(hand []model.Card, top model.Card, activeColor model.Color) []model.Card {
	var playable []model.Card
	for _, c := range hand {
		if CanPlayOn(c, top, activeColor) {
			playable = append(playable, c)
		}
	}
	return playable
}

// ActiveColor returns the colour non-wild plays must match: the mapped colour
// if one is set, otherwise the top card's own colour when it is a base colour
func ActiveColor(game *model.Game) model.Color {
	if game.CurrentColor != "" {
		return game.CurrentColor
	}
	if top, ok := game.TopDiscard(); ok && top.Color.IsBase() {
		return top.Color
	}
	return ""
}

// WildDrawFourAllowed reports whether a WildDrawFour may be played from hand.
// Unless the game allows it unconditionally, the player must hold no other
// card of the active colour.
func WildDrawFourAllowed(game *model.Game, hand []model.Card, card model.Card) bool {
	if card.Value.Kind != model.KindWildDrawFour || game.Settings.AllowIllegalWildDrawFour {
		return true
	}
	color := ActiveColor(game)
	if color == "" {
		return true
	}
	return !HasColor(hand, color, card.ID)
}
