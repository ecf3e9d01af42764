package bot

import "github.com/mcoot/unogame/internal/model"

// Strategy decides what an automated player does on its turn
type Strategy interface {
	// ChooseCard selects a legal card to play, or returns false to draw instead
	ChooseCard(game *model.Game, player *model.Player) (model.Card, bool)
	// ChooseColor selects the colour a wild is mapped to
	ChooseColor(player *model.Player) model.Color
}
