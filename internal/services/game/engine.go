package game

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/unogame/internal/dependencies/clock"
	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/bot"
	"github.com/mcoot/unogame/internal/services/deck"
	"github.com/mcoot/unogame/internal/services/rules"
)

const (
	// HumanName is the name given to the seat that opens a game
	HumanName = "You"
	// AutomatedName is the name of the automated opponent
	AutomatedName = "CPU"
	// SecondHumanName is the name of the second seat in local games
	SecondHumanName = "Player 2"
)

// Engine owns every transition of a game's state machine. It holds no game
// state itself; callers pass in the game and the session's random source and
// must serialise calls per game.
type Engine struct {
	clock    clock.Clock
	strategy bot.Strategy
	logger   *slog.Logger
}

// NewEngine creates a new Engine
func NewEngine(clk clock.Clock, strategy bot.Strategy, logger *slog.Logger) *Engine {
	return &Engine{
		clock:    clk,
		strategy: strategy,
		logger:   logger.With(slog.String("component", "game-engine")),
	}
}

// Result describes the side effects of an action that the caller may want to report
type Result struct {
	// Drawn is the card handed back by Draw
	Drawn *model.Card
	// Automated lists the turns automated players took before control returned
	Automated []AutomatedAction
}

// NewGame seats players for the mode, deals a round and drives any
// automated player that ends up holding the first turn
func (e *Engine) NewGame(rng random.Random, mode model.GameMode, settings model.Settings) (*model.Game, Result, error) {
	players, err := seatPlayers(mode, settings)
	if err != nil {
		return nil, Result{}, err
	}

	id, err := uuid.NewRandomFromReader(random.NewReader(rng))
	if err != nil {
		return nil, Result{}, fmt.Errorf("generating game id: %w", err)
	}

	now := e.clock.Now()
	game := &model.Game{
		ID:        model.GameID(id.String()),
		Status:    model.GameStatusLobby,
		Players:   players,
		Settings:  settings,
		CreatedAt: now,
	}

	e.startRound(game, rng)
	game.Round = 1
	game.Message = "Game started."

	e.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("mode", string(mode)),
		slog.Int("player_count", len(players)),
		slog.Int("hand_size", settings.HandSize),
	)

	return game, Result{Automated: e.driveAutomated(game, rng)}, nil
}

// RestartRound re-deals while keeping players and scores, whatever the
// status. Restarting after a finished match continues the same tally.
func (e *Engine) RestartRound(game *model.Game, rng random.Random) Result {
	e.startRound(game, rng)
	game.Round++
	game.Message = "Round restarted."

	e.logger.Info("round restarted",
		slog.String("game_id", string(game.ID)),
		slog.Int("round", game.Round),
	)

	return Result{Automated: e.driveAutomated(game, rng)}
}

// UpdateSettings applies a settings patch. Toggling AIEnabled switches every
// seat after the first between automated and human.
func (e *Engine) UpdateSettings(game *model.Game, rng random.Random, patch model.SettingsPatch) Result {
	patch.Apply(&game.Settings)
	if patch.AIEnabled != nil {
		for _, p := range game.Players[1:] {
			p.IsAutomated = *patch.AIEnabled
		}
	}
	game.UpdatedAt = e.clock.Now()
	game.Message = "Settings updated."

	e.logger.Debug("settings updated",
		slog.String("game_id", string(game.ID)),
		slog.Int("hand_size", game.Settings.HandSize),
		slog.Bool("ai_enabled", game.Settings.AIEnabled),
		slog.Int("score_limit", game.Settings.ScoreLimit),
	)

	// A newly automated seat may already hold the turn
	return Result{Automated: e.driveAutomated(game, rng)}
}

// RenamePlayer changes a player's display name
func (e *Engine) RenamePlayer(game *model.Game, playerID model.PlayerID, name string) error {
	player := game.GetPlayer(playerID)
	if player == nil {
		return model.ErrPlayerNotFound
	}
	player.Name = name
	game.UpdatedAt = e.clock.Now()
	return nil
}

func seatPlayers(mode model.GameMode, settings model.Settings) ([]*model.Player, error) {
	players := []*model.Player{{ID: model.PrimaryPlayerID, Name: HumanName}}

	switch mode {
	case model.ModeSingleplayer, model.ModeVsAI:
		if settings.AIEnabled {
			players = append(players, &model.Player{ID: "p2", Name: AutomatedName, IsAutomated: true})
		}
	case model.ModeLocal, model.ModeMultiplayer:
		players = append(players, &model.Player{ID: "p2", Name: SecondHumanName})
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidMode, mode)
	}
	return players, nil
}

// startRound builds a fresh deck, deals, flips the starting discard and
// applies its effect as if player 0 had just played it
func (e *Engine) startRound(game *model.Game, rng random.Random) {
	for _, p := range game.Players {
		p.Hand = nil
	}
	game.DrawPile = deck.Build(rng)
	game.DiscardPile = nil

	for _, p := range game.Players {
		for range game.Settings.HandSize {
			p.Hand = append(p.Hand, e.drawOne(game, rng))
		}
	}

	first := e.drawOne(game, rng)
	game.DiscardPile = append(game.DiscardPile, first)
	if first.Value.IsWild() {
		game.CurrentColor = model.BaseColors[rng.Intn(len(model.BaseColors))]
	} else {
		game.CurrentColor = first.Color
	}

	game.Status = model.GameStatusPlaying
	game.CurrentPlayerIndex = 0
	game.Direction = 1
	game.PendingDraw = 0
	game.MustPlayOrPass = false
	game.LastDrawnCardID = ""
	game.WinnerPlayerID = ""

	if first.Value.IsAction() {
		effect := rules.ResolveEffect(game, first)
		if effect.FlipDirection {
			game.Direction = -game.Direction
		}
		game.CurrentPlayerIndex = rules.NextIndex(0, game.Direction, effect.Steps-1, len(game.Players))
	}

	game.UpdatedAt = e.clock.Now()
}
