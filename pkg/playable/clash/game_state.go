package clash

import (
	"colorclash-server/pkg/deck"
	"colorclash-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see, it never includes a hand
type GameState struct {
	RoomCode        string         `json:"roomCode"`
	Name            string         `json:"name"`
	Round           int            `json:"round"`
	HasStarted      bool           `json:"hasStarted"`
	IsGameOver      bool           `json:"isGameOver"`
	Loser           *PlayerRef     `json:"loser"`
	CurrentPlayerID string         `json:"currentPlayerId"`
	CurrentColor    deck.Color     `json:"currentColor"`
	CurrentSide     deck.Side      `json:"currentSide"`
	Direction       int            `json:"direction"`
	TopCard         *deck.Face     `json:"topCard"`
	DeckSize        int            `json:"deckSize"`
	DiscardSize     int            `json:"discardSize"`
	DrawStackCount  int            `json:"drawStackCount"`
	DrawStackType   string         `json:"drawStackType,omitempty"`
	Players         []*PlayerState `json:"players"`
	SafePlayers     []*PlayerRef   `json:"safePlayers"`
	Settings        Options        `json:"settings"`
}

// PlayerState is the public state of a player
type PlayerState struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CardCount      int    `json:"cardCount"`
	IsSafe         bool   `json:"isSafe"`
	HasCalledClash bool   `json:"hasCalledClash"`
	Wins           int    `json:"wins"`
}

// Response is the per-player state sent to a client
type Response struct {
	GameState *GameState  `json:"gameState"`
	Hand      []deck.Face `json:"hand"`
	IsTurn    bool        `json:"isTurn"`
	// PendingDrawIndex is set when the player must play the card they drew or pass
	PendingDrawIndex *int `json:"pendingDrawIndex,omitempty"`
	IsVulnerable     bool `json:"isVulnerable"`
}

// GetGameState returns the public snapshot of the table
func (g *Game) GetGameState() *GameState {
	state := &GameState{
		RoomCode:     g.roomCode,
		Name:         g.Name(),
		Round:        g.round,
		HasStarted:   g.hasStarted,
		IsGameOver:   g.isGameOver,
		CurrentColor: g.currentColor,
		CurrentSide:  g.currentSide,
		Direction:    g.direction,
		DeckSize:     g.deck.CardsLeft(),
		DiscardSize:  g.discard.Len(),
		Players:      make([]*PlayerState, len(g.players)),
		SafePlayers:  make([]*PlayerRef, len(g.safePlayers)),
		Settings:     g.options,
	}

	if g.loser != nil {
		state.Loser = g.loser.ref()
	}

	if g.hasStarted {
		if current := g.currentPlayer(); current != nil {
			state.CurrentPlayerID = current.ID
		}
	}

	if top := g.discard.Top(); top != nil {
		face := g.face(top)
		state.TopCard = &face
	}

	if g.stackActive() {
		state.DrawStackCount = g.drawStack.Count
		state.DrawStackType = g.drawStack.Value.String()
	}

	for i, p := range g.players {
		state.Players[i] = &PlayerState{
			ID:             p.ID,
			Name:           p.Name,
			CardCount:      len(p.hand),
			IsSafe:         p.isSafe,
			HasCalledClash: g.called[p.ID],
			Wins:           p.wins,
		}
	}

	for i, p := range g.safePlayers {
		state.SafePlayers[i] = p.ref()
	}

	return state
}

// GetPlayerHand returns the active faces of the player's hand
// Unknown players get an empty hand
func (g *Game) GetPlayerHand(playerID string) []deck.Face {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return []deck.Face{}
	}

	hand := make([]deck.Face, len(p.hand))
	for i, card := range p.hand {
		hand[i] = g.face(card)
	}

	return hand
}

// GetPlayerState returns the state of the game for the player
// Viewers who are not seated get the public state and an empty hand
func (g *Game) GetPlayerState(playerID string) (*playable.Response, error) {
	state := g.GetGameState()
	response := &Response{
		GameState:    state,
		Hand:         g.GetPlayerHand(playerID),
		IsTurn:       state.HasStarted && !state.IsGameOver && state.CurrentPlayerID == playerID,
		IsVulnerable: g.vulnerable[playerID],
	}

	if g.pendingDraw != nil && g.pendingDraw.playerID == playerID {
		index := g.pendingDraw.cardIndex
		response.PendingDrawIndex = &index
	}

	return &playable.Response{
		Key:   "game",
		Value: "clash",
		Data:  response,
	}, nil
}
