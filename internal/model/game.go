package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GameStatus is the phase of the state machine
type GameStatus string

const (
	GameStatusLobby     GameStatus = "lobby" // Reserved, games start directly in playing
	GameStatusPlaying   GameStatus = "playing"
	GameStatusRoundOver GameStatus = "round_over"
	GameStatusMatchOver GameStatus = "match_over" // Terminal
)

// GameMode selects how the seats are filled when a game is created
type GameMode string

const (
	ModeSingleplayer GameMode = "singleplayer"
	ModeVsAI         GameMode = "vs_ai"
	ModeLocal        GameMode = "local"
	ModeMultiplayer  GameMode = "multiplayer"
)

// Valid returns true if the mode is one of the known modes
func (m GameMode) Valid() bool {
	switch m {
	case ModeSingleplayer, ModeVsAI, ModeLocal, ModeMultiplayer:
		return true
	}
	return false
}

// Game is the complete state of one match. The draw pile, discard pile and
// all hands together always hold exactly one deck.
type Game struct {
	ID     GameID     `json:"id"`
	Status GameStatus `json:"status"`
	Round  int        `json:"round"`

	// Players in turn order; membership is fixed for the game's lifetime
	Players            []*Player `json:"players"`
	CurrentPlayerIndex int       `json:"current_player_index"`
	Direction          int       `json:"direction"` // +1 or -1

	// Piles; the last element is the top
	DrawPile    []Card `json:"draw_pile"`
	DiscardPile []Card `json:"discard_pile"`

	// CurrentColor is what non-wild plays must match; empty before the first flip
	CurrentColor Color `json:"current_color,omitempty"`
	PendingDraw  int   `json:"pending_draw"`

	// Turn hints for clients
	MustPlayOrPass  bool   `json:"must_play_or_pass"`
	LastDrawnCardID CardID `json:"last_drawn_card_id,omitempty"`

	WinnerPlayerID PlayerID `json:"winner_player_id,omitempty"`
	Message        string   `json:"message,omitempty"`

	Settings Settings `json:"settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentPlayerIndex]
}

// GetPlayer returns the player with the given ID, or nil if not found
func (g *Game) GetPlayer(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TopDiscard returns the top of the discard pile
func (g *Game) TopDiscard() (Card, bool) {
	if len(g.DiscardPile) == 0 {
		return Card{}, false
	}
	return g.DiscardPile[len(g.DiscardPile)-1], true
}

// CardCount returns the number of cards across both piles and every hand
func (g *Game) CardCount() int {
	total := len(g.DrawPile) + len(g.DiscardPile)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}

// IsPlaying returns true while turns can be taken
func (g *Game) IsPlaying() bool {
	return g.Status == GameStatusPlaying
}

// Session pairs a game with the random source that drives all of its
// shuffles and draws. The source is never shared between sessions.
type Session struct {
	Game *Game `json:"game"`
	// RandomState is the serialised state of the session's random source
	RandomState  []byte    `json:"random_state"`
	LastAccessAt time.Time `json:"last_access_at"`
}
