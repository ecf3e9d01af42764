package bot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/bot"
)

func card(id string, color model.Color, value model.CardValue) model.Card {
	return model.Card{ID: model.CardID(id), Color: color, Value: value}
}

func gameWithTop(top model.Card, active model.Color) *model.Game {
	return &model.Game{
		Direction:    1,
		DiscardPile:  []model.Card{top},
		CurrentColor: active,
		Settings:     model.DefaultSettings(),
	}
}

func TestChooseCardPrefersActionCards(t *testing.T) {
	g := gameWithTop(card("top", model.ColorRed, model.Number(5)), model.ColorRed)
	p := &model.Player{Hand: []model.Card{
		card("n", model.ColorRed, model.Number(3)),
		card("w", model.ColorWild, model.Wild),
		card("s", model.ColorRed, model.Skip),
	}}

	chosen, ok := bot.NewGreedyStrategy().ChooseCard(g, p)
	require.True(t, ok)
	assert.Equal(t, model.CardID("s"), chosen.ID)
}

func TestChooseCardPrefersWildOverNumber(t *testing.T) {
	g := gameWithTop(card("top", model.ColorRed, model.Number(5)), model.ColorRed)
	p := &model.Player{Hand: []model.Card{
		card("n", model.ColorRed, model.Number(3)),
		card("w", model.ColorWild, model.Wild),
	}}

	chosen, ok := bot.NewGreedyStrategy().ChooseCard(g, p)
	require.True(t, ok)
	assert.Equal(t, model.CardID("w"), chosen.ID)
}

func TestChooseCardKeepsHandOrderOnTies(t *testing.T) {
	g := gameWithTop(card("top", model.ColorRed, model.Number(5)), model.ColorRed)
	p := &model.Player{Hand: []model.Card{
		card("a", model.ColorRed, model.Number(1)),
		card("b", model.ColorBlue, model.Number(5)),
	}}

	chosen, ok := bot.NewGreedyStrategy().ChooseCard(g, p)
	require.True(t, ok)
	assert.Equal(t, model.CardID("a"), chosen.ID)
}

func TestChooseCardNoneLegal(t *testing.T) {
	g := gameWithTop(card("top", model.ColorRed, model.Number(5)), model.ColorRed)
	p := &model.Player{Hand: []model.Card{card("b", model.ColorBlue, model.Number(2))}}

	_, ok := bot.NewGreedyStrategy().ChooseCard(g, p)
	assert.False(t, ok)
}

func TestChooseCardEmptyDiscard(t *testing.T) {
	g := &model.Game{Settings: model.DefaultSettings()}
	p := &model.Player{Hand: []model.Card{card("w", model.ColorWild, model.Wild)}}

	_, ok := bot.NewGreedyStrategy().ChooseCard(g, p)
	assert.False(t, ok)
}

func TestChooseCardSkipsRestrictedWildDrawFour(t *testing.T) {
	g := gameWithTop(card("top", model.ColorRed, model.Number(5)), model.ColorRed)
	p := &model.Player{Hand: []model.Card{
		card("wd4", model.ColorWild, model.WildDrawFour),
		card("r", model.ColorRed, model.Number(1)),
	}}

	chosen, ok := bot.NewGreedyStrategy().ChooseCard(g, p)
	require.True(t, ok)
	assert.Equal(t, model.CardID("r"), chosen.ID)

	g.Settings.AllowIllegalWildDrawFour = true
	chosen, ok = bot.NewGreedyStrategy().ChooseCard(g, p)
	require.True(t, ok)
	assert.Equal(t, model.CardID("wd4"), chosen.ID)
}

func TestChooseColor(t *testing.T) {
	s := bot.NewGreedyStrategy()

	p := &model.Player{Hand: []model.Card{
		card("a", model.ColorGreen, model.Number(1)),
		card("b", model.ColorGreen, model.Number(2)),
		card("c", model.ColorBlue, model.Number(3)),
		card("w", model.ColorWild, model.Wild),
	}}
	assert.Equal(t, model.ColorGreen, s.ChooseColor(p))

	// Ties go to the earlier base colour
	p = &model.Player{Hand: []model.Card{
		card("a", model.ColorBlue, model.Number(1)),
		card("b", model.ColorYellow, model.Number(2)),
	}}
	assert.Equal(t, model.ColorYellow, s.ChooseColor(p))

	assert.Equal(t, model.ColorRed, s.ChooseColor(&model.Player{}))
}
