package deck

import (
	"fmt"

	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
)

const (
	// Size is the number of cards in a full deck
	Size = 108

	// cardIDAlphabet is the character set for the random part of card IDs
	cardIDAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	cardIDSuffixLength = 8

	wildCopies = 4
)

var actionValues = []model.CardValue{model.Skip, model.Reverse, model.DrawTwo}

// Build creates a full 108-card deck and shuffles it with rng.
// Per colour: one 0, two each of 1-9 and two each of Skip, Reverse and
// DrawTwo. Then four Wild and four WildDrawFour.
func Build(rng random.Random) []model.Card {
	cards := make([]model.Card, 0, Size)
	add := func(color model.Color, value model.CardValue) {
		id := fmt.Sprintf("c%03d-%s", len(cards), rng.String(cardIDSuffixLength, cardIDAlphabet))
		cards = append(cards, model.Card{ID: model.CardID(id), Color: color, Value: value})
	}

	for _, color := range model.BaseColors {
		add(color, model.Number(0))
		for n := 1; n <= 9; n++ {
			add(color, model.Number(n))
			add(color, model.Number(n))
		}
		for _, v := range actionValues {
			add(color, v)
			add(color, v)
		}
	}

	for i := 0; i < wildCopies; i++ {
		add(model.ColorWild, model.Wild)
		add(model.ColorWild, model.WildDrawFour)
	}

	Shuffle(rng, cards)
	return cards
}

// Shuffle permutes cards in place using rng
func Shuffle(rng random.Random, cards []model.Card) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Score returns the points a card is worth when left in a losing hand
func Score(card model.Card) int {
	switch card.Value.Kind {
	case model.KindNumber:
		return card.Value.Number
	case model.KindSkip, model.KindReverse, model.KindDrawTwo:
		return 20
	case model.KindWild, model.KindWildDrawFour:
		return 50
	default:
		return 0
	}
}

// ScoreHand sums the score of every card in the hand
func ScoreHand(cards []model.Card) int {
	total := 0
	for _, c := range cards {
		total += Score(c)
	}
	return total
}
