package clash

import (
	"colorclash-server/pkg/deck"
	"fmt"
)

// stackActive returns true if a +2/+4 penalty is waiting to be answered
func (g *Game) stackActive() bool {
	return g.options.StackPlusTwoFour && g.drawStack != nil
}

// canPlay returns true if the card may go on top of the discard pile
func (g *Game) canPlay(card *deck.Card) bool {
	top := g.discard.Top()
	if top == nil {
		return false
	}

	face := g.face(card)
	if g.stackActive() {
		return face.Value == g.drawStack.Value
	}

	if face.IsWild() {
		return true
	}

	if face.Color == g.currentColor {
		return true
	}

	return face.SameValue(g.face(top))
}

// canRespondToStack returns true if the player holds a card that continues the stack
func (g *Game) canRespondToStack(p *Player) bool {
	if p == nil || !g.stackActive() {
		return false
	}

	for _, card := range p.hand {
		if g.face(card).Value == g.drawStack.Value {
			return true
		}
	}

	return false
}

// hasPlayableCard returns true if any card in the hand is legal
func (g *Game) hasPlayableCard(p *Player) bool {
	for _, card := range p.hand {
		if g.canPlay(card) {
			return true
		}
	}

	return false
}

// validatePlay checks every rule for playing the card at cardIndex
// Nothing is mutated
func (g *Game) validatePlay(p *Player, cardIndex int, chosenColor deck.Color) error {
	if p == nil || p != g.currentPlayer() {
		return ErrNotYourTurn
	}

	if cardIndex < 0 || cardIndex >= len(p.hand) {
		return ErrInvalidCardIndex
	}

	if g.pendingDraw != nil && g.pendingDraw.playerID == p.ID && g.pendingDraw.cardIndex != cardIndex {
		return illegal("after drawing, you may only play the drawn card or pass")
	}

	card := p.hand[cardIndex]
	face := g.face(card)

	if g.stackActive() && face.Value != g.drawStack.Value {
		return illegal("you must stack %s or draw the penalty", g.drawStack.Value)
	}

	if !g.canPlay(card) {
		return illegal("cannot play %s on %s", face, g.face(g.discard.Top()))
	}

	switch face.Value {
	case deck.WildDrawFour:
		// answering a +4 stack exempts the +4 from the no-other-option rule
		if g.stackActive() && g.drawStack.Value == deck.WildDrawFour {
			break
		}

		for i, other := range p.hand {
			if i != cardIndex && g.face(other).Value != deck.WildDrawFour && g.canPlay(other) {
				return illegal("cannot play wild +4 when you have a valid card")
			}
		}
	case deck.WildDrawTwo, deck.WildDrawColor:
		for i, other := range p.hand {
			if i != cardIndex && g.face(other).Color == g.currentColor {
				return illegal("cannot play %s when you have a %s card", face.Label(), g.currentColor)
			}
		}
	}

	if face.IsWild() {
		if chosenColor == "" {
			return ErrMissingColorChoice
		}

		if !chosenColor.IsOn(g.currentSide) {
			return fmt.Errorf("%w: %s is not a %s side color", ErrMissingColorChoice, chosenColor, g.currentSide)
		}
	}

	return nil
}
