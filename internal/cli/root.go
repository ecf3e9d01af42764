package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "uno",
		Short: "CLI tool for the UNO game API",
		Long: `uno is a CLI tool for playing UNO against the game server's JSON API.

"uno new" starts a game and remembers it, so later commands act on it
without --game. Cards are played by id as shown in "uno show".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadGame(); err != nil {
				return err
			}

			level := log.InfoLevel
			if cfg.Verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Level: level, Prefix: "uno"})

			client = NewClient(cfg.ServerURL, logger)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: UNO_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.GameID, "game", "g", cfg.GameID, "Game id (env: UNO_GAME, default: last created game)")
	rootCmd.PersistentFlags().StringVar(&cfg.GameFile, "game-file", cfg.GameFile, "File remembering the current game (env: UNO_GAME_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.PlayerID, "player", "p", cfg.PlayerID, "Player to act as (env: UNO_PLAYER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log HTTP requests")

	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newDrawCmd())
	rootCmd.AddCommand(newPassCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
