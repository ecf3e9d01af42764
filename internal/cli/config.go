package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	GameID    string
	GameFile  string
	PlayerID  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("UNO_SERVER", "http://localhost:8080"),
		GameID:    os.Getenv("UNO_GAME"),
		GameFile:  getEnvOrDefault("UNO_GAME_FILE", defaultGameFile()),
		PlayerID:  getEnvOrDefault("UNO_PLAYER", "p1"),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadGame loads the current game id from file if not already set
func (c *Config) LoadGame() error {
	if c.GameID != "" {
		return nil
	}

	data, err := os.ReadFile(c.GameFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No game yet is fine
		}
		return err
	}

	c.GameID = strings.TrimSpace(string(data))
	return nil
}

// SaveGame remembers id as the current game
func (c *Config) SaveGame(id string) error {
	c.GameID = id

	dir := filepath.Dir(c.GameFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.GameFile, []byte(id), 0600)
}

// ClearGame forgets id if it is the remembered game
func (c *Config) ClearGame(id string) error {
	data, err := os.ReadFile(c.GameFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(string(data)) != id {
		return nil
	}
	return os.Remove(c.GameFile)
}

func defaultGameFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".uno/game"
	}
	return filepath.Join(home, ".uno", "game")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
