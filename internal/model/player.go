package model

// PlayerID identifies a player within a single game
type PlayerID string

// PrimaryPlayerID is the seat created for the human that opened the game
const PrimaryPlayerID PlayerID = "p1"

// Player is a participant in a game. Score accumulates across rounds of a match.
type Player struct {
	ID          PlayerID `json:"id"`
	Name        string   `json:"name"`
	IsAutomated bool     `json:"is_automated"`
	Score       int      `json:"score"`
	Hand        []Card   `json:"hand"`
}

// FindCard returns the index of the card with the given ID in the hand, or -1
func (p *Player) FindCard(id CardID) int {
	for i := range p.Hand {
		if p.Hand[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveCard removes and returns the card with the given ID
func (p *Player) RemoveCard(id CardID) (Card, bool) {
	idx := p.FindCard(id)
	if idx < 0 {
		return Card{}, false
	}
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return card, true
}
