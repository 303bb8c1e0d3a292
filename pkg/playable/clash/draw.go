package clash

import (
	"colorclash-server/pkg/deck"
	"colorclash-server/pkg/playable"
)

// DrawResult is the result of a voluntary draw
type DrawResult struct {
	PlayerID string `json:"playerId"`
	// DrawnCard is only shown to the player who drew it
	DrawnCard        *deck.Face `json:"drawnCard,omitempty"`
	DrawnCardIndex   int        `json:"drawnCardIndex"`
	DrawnCount       int        `json:"drawnCount"`
	CanPlayDrawnCard bool       `json:"canPlayDrawnCard"`
	TurnContinues    bool       `json:"turnContinues"`
	Reason           string     `json:"reason,omitempty"`
}

// public strips the drawn card so the result can be broadcast
func (d *DrawResult) public() *DrawResult {
	res := *d
	res.DrawnCard = nil
	return &res
}

// DrawCard draws for the current player
// With a draw stack waiting, drawing takes the whole penalty and ends the turn.
// Otherwise one card is drawn. If it can be played the turn continues, and the
// player must play that card or pass.
func (g *Game) DrawCard(playerID string) (*DrawResult, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, err
	}

	p := g.idToPlayer[playerID]
	if p == nil || p != g.currentPlayer() {
		return nil, ErrNotYourTurn
	}

	if g.pendingDraw != nil && g.pendingDraw.playerID == playerID {
		return nil, illegal("you already drew a card, play it or pass")
	}

	if g.stackActive() && g.drawStack.Count > 0 {
		count := g.drawStack.Count
		value := g.drawStack.Value
		drawn := g.forceDraw(p, count, "stack-penalty")
		g.drawStack = nil
		g.pendingDraw = nil
		g.advance(1)
		g.checkGameStatus()

		g.logger.WithField("playerID", playerID).WithField("count", drawn.Count).Debug("took the stack penalty")
		g.sendLogMessages(newLogMessage(playerID, "{} took the %s penalty and drew %d", value, drawn.Count))
		return &DrawResult{
			PlayerID:       playerID,
			DrawnCardIndex: -1,
			DrawnCount:     drawn.Count,
			Reason:         "stack-penalty",
		}, nil
	}

	if g.options.GameMode == ModeClassic && g.hasPlayableCard(p) {
		return nil, illegal("you have a playable card, you cannot draw")
	}

	card, err := g.drawOne()
	if err != nil {
		return nil, err
	}

	g.drawStack = nil
	p.addCard(card)
	g.handChanged(p, false)

	face := g.face(card)
	index := len(p.hand) - 1
	result := &DrawResult{
		PlayerID:       playerID,
		DrawnCard:      &face,
		DrawnCardIndex: index,
		DrawnCount:     1,
	}

	if g.canPlay(card) {
		g.pendingDraw = &pendingDraw{playerID: playerID, cardIndex: index}
		result.CanPlayDrawnCard = true
		result.TurnContinues = true
	} else {
		g.pendingDraw = nil
		g.advance(1)
	}

	g.logger.WithField("playerID", playerID).WithField("turnContinues", result.TurnContinues).Debug("drew a card")
	g.sendLogMessages(newLogMessage(playerID, "{} drew a card"))
	return result, nil
}

// PassTurnAfterDraw keeps the drawn card and ends the turn
func (g *Game) PassTurnAfterDraw(playerID string) error {
	if err := g.checkInProgress(); err != nil {
		return err
	}

	p := g.idToPlayer[playerID]
	if p == nil || p != g.currentPlayer() {
		return ErrNotYourTurn
	}

	if g.pendingDraw == nil || g.pendingDraw.playerID != playerID {
		return illegal("nothing to pass, draw a card first")
	}

	g.pendingDraw = nil
	g.advance(1)

	g.logger.WithField("playerID", playerID).Debug("passed")
	g.sendLogMessages(newLogMessage(playerID, "{} passed"))
	return nil
}

// drawOne pops a card, reshuffling the discard pile into the draw pile if needed
func (g *Game) drawOne() (*deck.Card, error) {
	if g.deck.CardsLeft() == 0 {
		g.reshuffleDiscardPile()
	}

	card, err := g.deck.Draw()
	if err != nil {
		return nil, ErrNoCardsToDraw
	}

	return card, nil
}

// forceDraw makes the player draw up to count cards
// Fewer cards are drawn if both piles run out
func (g *Game) forceDraw(p *Player, count int, reason string) *DrawnEffect {
	if p == nil {
		return nil
	}

	drawn := 0
	for i := 0; i < count; i++ {
		card, err := g.drawOne()
		if err != nil {
			break
		}

		p.addCard(card)
		drawn++
	}

	g.handChanged(p, false)
	return &DrawnEffect{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Count:      drawn,
		Reason:     reason,
	}
}

// drawUntilColor makes the player draw until a card of the color shows up (inclusive)
func (g *Game) drawUntilColor(p *Player, color deck.Color) *DrawnEffect {
	if p == nil {
		return nil
	}

	drawn := 0
	for {
		card, err := g.drawOne()
		if err != nil {
			break
		}

		p.addCard(card)
		drawn++

		if g.face(card).Color == color {
			break
		}
	}

	g.handChanged(p, false)
	return &DrawnEffect{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Count:      drawn,
		Reason:     deck.WildDrawColor.String(),
	}
}

// reshuffleDiscardPile shuffles everything but the top discard back into the draw pile
func (g *Game) reshuffleDiscardPile() {
	cards := g.discard.TakeAllButTop()
	if len(cards) == 0 {
		return
	}

	for _, card := range cards {
		card.RememberColor("")
	}

	g.deck.ShuffleDiscards(append(cards, g.deck.Cards...))
	g.logger.WithField("deck", g.deck.HashCode()).Debug("shuffled the discard pile into the deck")
	g.sendLogMessages(playable.SimpleLogMessage("", "the discard pile was shuffled into the deck"))
}

// autoResolveDrawStack makes the current player take the stack penalty when they cannot stack
func (g *Game) autoResolveDrawStack() *DrawnEffect {
	if !g.stackActive() || len(g.activePlayers()) < 2 {
		return nil
	}

	current := g.currentPlayer()
	if current == nil || g.canRespondToStack(current) {
		return nil
	}

	count := g.drawStack.Count
	value := g.drawStack.Value
	g.drawStack = nil
	if count <= 0 {
		return nil
	}

	drawn := g.forceDraw(current, count, value.String())
	g.pendingDraw = nil
	g.advance(1)

	g.sendLogMessages(newLogMessage(current.ID, "{} could not stack and drew %d", drawn.Count))
	return drawn
}
