package response

import "github.com/mcoot/unogame/internal/services/view"

// Game is the public game state returned by every game endpoint
type Game = view.PublicView

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

// Deleted is the response after deleting a game
type Deleted struct {
	GameID  string `json:"gameId"`
	Deleted bool   `json:"deleted"`
}
