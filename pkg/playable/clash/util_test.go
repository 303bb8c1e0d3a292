package clash

import (
	"colorclash-server/internal/rng"
	"colorclash-server/pkg/deck"
	"colorclash-server/pkg/playable"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// noShuffle makes Fisher-Yates leave the deck in order
type noShuffle struct{}

func (noShuffle) Intn(n int) int {
	return n - 1
}

// newTestGame returns a started game with fixed hands
// Players are "1", "2", ... and player "1" is up. The discard pile is listed bottom to top,
// the draw pile is listed bottom to top (the last card is drawn first).
func newTestGame(opts Options, discard, drawPile string, hands ...string) *Game {
	g := NewGame(logrus.StandardLogger(), "TEST", opts)
	g.SetGenerator(rng.Seeded(1))

	for i := range hands {
		id := strconv.Itoa(i + 1)
		if err := g.AddPlayer(id, "p"+id); err != nil {
			panic(err)
		}
	}

	g.resetRound()
	for i, hand := range hands {
		g.players[i].hand = deck.CardsFromString(hand)
	}

	g.deck.Cards = deck.CardsFromString(drawPile)
	g.discard = deck.Pile(deck.CardsFromString(discard))
	g.currentColor = g.face(g.discard.Top()).Color
	g.hasStarted = true
	g.round = 1

	return g
}

// lastLogMessage drains the log channel and returns the newest message
func lastLogMessage(g *Game) *playable.LogMessage {
	var last *playable.LogMessage
	for {
		select {
		case msgs := <-g.logChan:
			if len(msgs) > 0 {
				last = msgs[len(msgs)-1]
			}
		default:
			return last
		}
	}
}

func handString(g *Game, id string) string {
	return deck.CardsToString(g.idToPlayer[id].hand)
}

func totalCards(g *Game) int {
	total := g.deck.CardsLeft() + g.discard.Len()
	for _, p := range g.players {
		total += len(p.hand)
	}

	return total
}

func currentID(g *Game) string {
	if p := g.currentPlayer(); p != nil {
		return p.ID
	}

	return ""
}

func assertTurnInvariant(t *testing.T, g *Game) {
	t.Helper()

	if g.isGameOver {
		return
	}

	if assert.True(t, g.currentPlayerIndex >= 0 && g.currentPlayerIndex < len(g.players)) {
		assert.False(t, g.players[g.currentPlayerIndex].isSafe, "current player must not be safe")
	}
}
