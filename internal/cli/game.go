package cli

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/unogame/internal/api/request"
	"github.com/mcoot/unogame/internal/api/response"
)

var errNoGame = errors.New("no current game: run 'uno new' or pass --game")

func gamePath(suffix string) (string, error) {
	if cfg.GameID == "" {
		return "", errNoGame
	}
	return "/api/v1/games/" + url.PathEscape(cfg.GameID) + suffix, nil
}

// runGameCmd posts body to the game endpoint and prints the resulting state
func runGameCmd(cmd *cobra.Command, method, suffix string, body any) error {
	path, err := gamePath(suffix)
	if err != nil {
		return err
	}

	var result response.Game
	if err := client.Do(method, path, body, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}

func newNewCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game and make it the current game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Post("/api/v1/games", request.CreateGameRequest{Mode: mode}, &result); err != nil {
				return err
			}

			if err := cfg.SaveGame(result.GameID); err != nil {
				return fmt.Errorf("saving current game: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "singleplayer", "Game mode: singleplayer, vs_ai, local, multiplayer")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the game as the current player sees it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGameCmd(cmd, http.MethodGet, "?playerId="+url.QueryEscape(cfg.PlayerID), nil)
		},
	}
}

func newPlayCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "play <card-id>",
		Short: "Play a card from your hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.PlayCardRequest{
				ActionRequest: request.ActionRequest{PlayerID: cfg.PlayerID},
				CardID:        args[0],
				ChosenColor:   color,
			}
			if err := req.Validate(); err != nil {
				return err
			}
			return runGameCmd(cmd, http.MethodPost, "/play", req)
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Colour to choose when playing a wild: red, yellow, green, blue")
	return cmd
}

func newDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw",
		Short: "Draw a card, or take the pending penalty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGameCmd(cmd, http.MethodPost, "/draw", request.ActionRequest{PlayerID: cfg.PlayerID})
		},
	}
}

func newPassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass",
		Short: "End your turn without playing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGameCmd(cmd, http.MethodPost, "/pass", request.ActionRequest{PlayerID: cfg.PlayerID})
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <name>",
		Short: "Name the second seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGameCmd(cmd, http.MethodPost, "/join", request.JoinGameRequest{PlayerName: args[0]})
		},
	}
}

func newSettingsCmd() *cobra.Command {
	var (
		handSize, aiDelay, scoreLimit int
		ai, autoPlay, allowWD4        bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Change game settings; only the flags given are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.SettingsPatchRequest
			flags := cmd.Flags()
			if flags.Changed("hand-size") {
				req.HandSize = &handSize
			}
			if flags.Changed("ai") {
				req.AIEnabled = &ai
			}
			if flags.Changed("ai-delay") {
				req.AIDelayMs = &aiDelay
			}
			if flags.Changed("auto-play") {
				req.AutoPlayIfDrawnPlayable = &autoPlay
			}
			if flags.Changed("allow-wild-draw-four") {
				req.AllowIllegalWildDrawFour = &allowWD4
			}
			if flags.Changed("score-limit") {
				req.ScoreLimit = &scoreLimit
			}
			if err := req.Validate(); err != nil {
				return err
			}
			return runGameCmd(cmd, http.MethodPatch, "/settings", req)
		},
	}

	cmd.Flags().IntVar(&handSize, "hand-size", 7, "Cards dealt per player from the next round")
	cmd.Flags().BoolVar(&ai, "ai", true, "Let automated players take their turns")
	cmd.Flags().IntVar(&aiDelay, "ai-delay", 250, "Display delay hint for automated turns, in ms")
	cmd.Flags().BoolVar(&autoPlay, "auto-play", true, "Play a drawn card straight away when it is playable")
	cmd.Flags().BoolVar(&allowWD4, "allow-wild-draw-four", false, "Allow Wild Draw Four while holding the active colour")
	cmd.Flags().IntVar(&scoreLimit, "score-limit", 500, "Score that wins the match")
	return cmd
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Deal a new round, or a new match once the match is over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGameCmd(cmd, http.MethodPost, "/restart", nil)
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := gamePath("")
			if err != nil {
				return err
			}

			var result response.Deleted
			if err := client.Delete(path, &result); err != nil {
				return err
			}
			if err := cfg.ClearGame(result.GameID); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Game " + result.GameID + " deleted")
			return nil
		},
	}
}
