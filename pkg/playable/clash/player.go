package clash

import "colorclash-server/pkg/deck"

// Player is a seat at the table
type Player struct {
	ID   string
	Name string

	hand   []*deck.Card
	isSafe bool
	wins   int
}

func newPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		hand: make([]*deck.Card, 0, HandSize),
	}
}

// Wins is the number of rounds the player finished safely
func (p *Player) Wins() int {
	return p.wins
}

// IsSafe returns true if the player emptied their hand this round
func (p *Player) IsSafe() bool {
	return p.isSafe
}

func (p *Player) newRound() {
	p.hand = make([]*deck.Card, 0, HandSize)
	p.isSafe = false
}

func (p *Player) addCard(card *deck.Card) {
	p.hand = append(p.hand, card)
}

// removeCard removes the card at index i, keeping the order of the rest
func (p *Player) removeCard(i int) *deck.Card {
	card := p.hand[i]
	p.hand = append(p.hand[:i:i], p.hand[i+1:]...)
	return card
}

func (p *Player) ref() *PlayerRef {
	return &PlayerRef{ID: p.ID, Name: p.Name}
}

// PlayerRef identifies a player in results and views
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
