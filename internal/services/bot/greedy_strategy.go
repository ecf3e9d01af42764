package bot

import (
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/rules"
)

// GreedyStrategy plays action cards first, then wilds, then numbers, and
// maps wilds to the colour it holds most of
type GreedyStrategy struct{}

var _ Strategy = (*GreedyStrategy)(nil)

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

// ChooseCard returns the highest-priority legal card, earliest in hand on ties
func (s *GreedyStrategy) ChooseCard(game *model.Game, player *model.Player) (model.Card, bool) {
	top, ok := game.TopDiscard()
	if !ok {
		return model.Card{}, false
	}

	var best model.Card
	bestPriority := -1
	for _, c := range rules.PlayableCards(player.Hand, top, game.CurrentColor) {
		if !rules.WildDrawFourAllowed(game, player.Hand, c) {
			continue
		}
		p := priority(c)
		if bestPriority < 0 || p < bestPriority {
			best = c
			bestPriority = p
		}
	}
	return best, bestPriority >= 0
}

// ChooseColor returns the most common base colour in hand, red if none
func (s *GreedyStrategy) ChooseColor(player *model.Player) model.Color {
	counts := make(map[model.Color]int, len(model.BaseColors))
	for _, c := range player.Hand {
		if c.Color.IsBase() {
			counts[c.Color]++
		}
	}

	best := model.ColorRed
	for _, color := range model.BaseColors {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}

// priority ranks cards, lower plays first
func priority(c model.Card) int {
	switch {
	case c.Value.IsAction():
		return 0
	case c.Value.Kind == model.KindWild:
		return 1
	default:
		return 2
	}
}
