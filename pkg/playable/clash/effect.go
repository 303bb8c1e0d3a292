package clash

import (
	"colorclash-server/pkg/deck"
	"encoding/json"
)

// effectKind is what playing a face does to the table
type effectKind int

const (
	effectNone effectKind = iota
	effectSkip
	effectReverse
	effectDrawTwo
	effectWildDrawFour
	effectStackDrawTwo
	effectStackWildDrawFour
	effectDrawOne
	effectDrawFive
	effectSkipEveryone
	effectWildDrawTwo
	effectWildDrawColor
	effectFlip
	effectSevenSwap
	effectZeroRotate
)

// DrawnEffect describes cards a player was forced to draw
type DrawnEffect struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Count      int    `json:"count"`
	Reason     string `json:"reason"`
}

// SwapEffect describes two players trading hands
type SwapEffect struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Effect is the visible result of a played card
type Effect struct {
	Drawn     *DrawnEffect `json:"drawn,omitempty"`
	DrawStack *DrawStack   `json:"drawStack,omitempty"`
	Flipped   deck.Side    `json:"flipped,omitempty"`
	Swap      *SwapEffect  `json:"swap,omitempty"`
	Rotate    bool         `json:"rotate,omitempty"`
	AutoDrawn *DrawnEffect `json:"autoDrawn,omitempty"`
}

func (e *Effect) isEmpty() bool {
	return *e == Effect{}
}

// classify maps a face to its effect under the table's options
func (g *Game) classify(face deck.Face) effectKind {
	switch face.Value {
	case deck.Number:
		if g.options.SevenZeroRule && g.options.GameMode == ModeClassic {
			switch face.Number {
			case 7:
				return effectSevenSwap
			case 0:
				return effectZeroRotate
			}
		}

		return effectNone
	case deck.Wild:
		return effectNone
	case deck.Skip:
		return effectSkip
	case deck.Reverse:
		return effectReverse
	case deck.DrawTwo:
		if g.options.StackPlusTwoFour {
			return effectStackDrawTwo
		}

		return effectDrawTwo
	case deck.WildDrawFour:
		if g.options.StackPlusTwoFour {
			return effectStackWildDrawFour
		}

		return effectWildDrawFour
	case deck.DrawOne:
		return effectDrawOne
	case deck.DrawFive:
		return effectDrawFive
	case deck.SkipEveryone:
		return effectSkipEveryone
	case deck.WildDrawTwo:
		return effectWildDrawTwo
	case deck.WildDrawColor:
		return effectWildDrawColor
	case deck.Flip:
		if g.options.GameMode == ModeSwitch {
			return effectFlip
		}

		return effectNone
	}

	panic("unhandled card value: " + face.Value.String())
}

// resolveEffect applies the face's effect as if actor played it
// It returns the visible effect and how many seats the turn advances
func (g *Game) resolveEffect(face deck.Face, actor *Player) (*Effect, int) {
	effect := &Effect{}
	next := g.nextPlayer()
	advanceBy := 1

	switch g.classify(face) {
	case effectNone:
	case effectSkip:
		advanceBy = 2
	case effectReverse:
		if len(g.activePlayers()) == 2 {
			advanceBy = 2
		} else {
			g.direction *= -1
		}
	case effectDrawTwo:
		effect.Drawn = g.forceDraw(next, 2, face.Label())
		advanceBy = 2
	case effectWildDrawFour:
		effect.Drawn = g.forceDraw(next, 4, face.Label())
		advanceBy = 2
	case effectStackDrawTwo:
		effect.DrawStack = g.addToStack(deck.DrawTwo, 2)
	case effectStackWildDrawFour:
		effect.DrawStack = g.addToStack(deck.WildDrawFour, 4)
	case effectDrawOne:
		effect.Drawn = g.forceDraw(next, 1, face.Label())
		advanceBy = 2
	case effectDrawFive:
		effect.Drawn = g.forceDraw(next, 5, face.Label())
		advanceBy = 2
	case effectSkipEveryone:
		advanceBy = 0
	case effectWildDrawTwo:
		effect.Drawn = g.forceDraw(next, 2, face.Label())
		advanceBy = 2
	case effectWildDrawColor:
		effect.Drawn = g.drawUntilColor(next, g.currentColor)
		advanceBy = 2
	case effectFlip:
		g.flipAll()
		effect.Flipped = g.currentSide
	case effectSevenSwap:
		if actor != nil && next != nil && next != actor && len(actor.hand) > 0 {
			actor.hand, next.hand = next.hand, actor.hand
			g.handChanged(next, false)
			effect.Swap = &SwapEffect{A: actor.ID, B: next.ID}
		}
	case effectZeroRotate:
		if actor != nil && len(actor.hand) > 0 {
			effect.Rotate = g.rotateHands()
		}
	}

	if effect.isEmpty() {
		return nil, advanceBy
	}

	return effect, advanceBy
}

// addToStack grows the draw stack, starting over if the value changes
func (g *Game) addToStack(value deck.Value, count int) *DrawStack {
	prev := 0
	if g.drawStack != nil && g.drawStack.Value == value {
		prev = g.drawStack.Count
	}

	g.drawStack = &DrawStack{Count: prev + count, Value: value}
	return &DrawStack{Count: g.drawStack.Count, Value: value}
}

// MarshalJSON encodes the stack as {count, value}
func (d DrawStack) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count int    `json:"count"`
		Value string `json:"value"`
	}{
		Count: d.Count,
		Value: d.Value.String(),
	})
}

// rotateHands passes every active hand one seat in the current direction
func (g *Game) rotateHands() bool {
	active := g.activePlayers()
	if len(active) < 2 {
		return false
	}

	n := len(active)
	hands := make([][]*deck.Card, n)
	for i, p := range active {
		hands[i] = p.hand
	}

	for i := range active {
		to := ((i+g.direction)%n + n) % n
		active[to].hand = hands[i]
	}

	for _, p := range active {
		g.handChanged(p, false)
	}

	return true
}

// flipAll turns the table over
// Both piles are reversed so their bottom cards become the top cards
func (g *Game) flipAll() {
	g.currentSide = g.currentSide.Flip()
	g.deck.Reverse()
	g.discard.Reverse()

	top := g.discard.Top()
	if top == nil {
		return
	}

	face := g.face(top)
	if !face.IsWild() {
		g.currentColor = face.Color
		return
	}

	color := g.currentColor
	if remembered, ok := top.RememberedColor(); ok {
		color = remembered
	}

	if !color.IsOn(g.currentSide) {
		color = color.Counterpart()
	}

	g.currentColor = color
}
