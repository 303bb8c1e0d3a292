package clash

import (
	"colorclash-server/internal/rng"
	"colorclash-server/pkg/deck"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", Options{GameMode: ModeSwitch, StackPlusTwoFour: true, SevenZeroRule: true})
	a.Equal("Color Clash (Switch)", g.Name())
	a.False(g.Options().StackPlusTwoFour)
	a.False(g.Options().SevenZeroRule)
	a.Equal(deck.SwitchSize, g.deck.CardsLeft())
	a.NotNil(g.LogChan())

	g = NewGame(nil, "ABCDEF", DefaultOptions())
	a.Equal("Color Clash", g.Name())
	a.Equal(deck.ClassicSize, g.deck.CardsLeft())

	details, over := g.GetEndOfGameDetails()
	a.Nil(details)
	a.False(over)
}

func TestGame_AddPlayer(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", DefaultOptions())
	a.NoError(g.AddPlayer("1", "Alice"))
	a.Equal(ErrDuplicatePlayer, g.AddPlayer("1", "Alice"))

	for i := 2; i <= MaxPlayers; i++ {
		a.NoError(g.AddPlayer(strconv.Itoa(i), "player"))
	}

	a.EqualError(g.AddPlayer("11", "Eleven"), "expected 2–10 players, got 11")

	a.NoError(g.StartGame())
	a.Equal(ErrAlreadyStarted, g.AddPlayer("12", "Late"))
}

func TestGame_StartGame(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", DefaultOptions())
	g.SetGenerator(rng.Seeded(42))

	a.NoError(g.AddPlayer("1", "Alice"))
	a.Equal(ErrNotEnoughPlayers, g.StartGame())

	a.NoError(g.AddPlayer("2", "Bob"))
	a.NoError(g.AddPlayer("3", "Carol"))
	a.NoError(g.StartGame())
	a.Equal(ErrAlreadyStarted, g.StartGame())

	a.True(g.hasStarted)
	a.False(g.isGameOver)
	a.Equal(1, g.round)
	a.Equal(1, g.discard.Len())
	a.False(g.face(g.discard.Top()).IsWild())
	a.True(g.currentColor.IsOn(deck.Light))
	a.Equal(deck.ClassicSize, totalCards(g))

	for _, p := range g.players {
		a.True(len(p.hand) >= HandSize)
	}

	assertTurnInvariant(t, g)
}

func TestGame_StartGame_switch(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", Options{GameMode: ModeSwitch})
	g.SetGenerator(rng.Seeded(7))
	a.NoError(g.AddPlayer("1", "Alice"))
	a.NoError(g.AddPlayer("2", "Bob"))
	a.NoError(g.StartGame())

	a.Equal(deck.SwitchSize, totalCards(g))
	a.Equal(1, g.discard.Len())
	a.True(g.currentColor.IsOn(g.currentSide))
}

func TestGame_deal_skipsWilds(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", DefaultOptions())
	a.NoError(g.AddPlayer("1", "Alice"))
	a.NoError(g.AddPlayer("2", "Bob"))
	g.SetGenerator(noShuffle{})
	g.resetRound()
	g.deck.Cards = deck.CardsFromString("b1,r5,w,w+4,g1,g2,g3,g4,g5,g6,g7,y1,y2,y3,y4,y5,y6,y7")

	a.NoError(g.deal())
	a.Equal("y7,y6,y5,y4,y3,y2,y1", handString(g, "1"))
	a.Equal("g7,g6,g5,g4,g3,g2,g1", handString(g, "2"))
	a.Equal("r5", deck.CardToString(g.discard.Top()))
	a.Equal("w,w+4,b1", deck.CardsToString(g.deck.Cards))
	a.Equal(deck.Red, g.currentColor)
	a.Equal("2", currentID(g))
}

func TestGame_deal_firstCardEffect(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", DefaultOptions())
	a.NoError(g.AddPlayer("1", "Alice"))
	a.NoError(g.AddPlayer("2", "Bob"))
	a.NoError(g.AddPlayer("3", "Carol"))
	g.SetGenerator(noShuffle{})
	g.resetRound()
	g.deck.Cards = deck.CardsFromString("b8,b9,bs," +
		"g1,g2,g3,g4,g5,g6,g7," +
		"y1,y2,y3,y4,y5,y6,y7," +
		"r1,r2,r3,r4,r5,r6,r7")

	// the starting skip is resolved as if the first player played it
	a.NoError(g.deal())
	a.Equal("bs", deck.CardToString(g.discard.Top()))
	a.Equal(deck.Blue, g.currentColor)
	a.Equal("3", currentID(g))
	a.Equal("b8,b9", deck.CardsToString(g.deck.Cards))
}

func TestGame_RestartRound(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(DefaultOptions(), "r5", "", "r1", "b2,b3")
	_, err := g.PlayCard("1", 0, "")
	a.NoError(err)
	a.True(g.isGameOver)
	a.Equal(1, g.idToPlayer["1"].wins)

	a.NoError(g.RestartRound())
	a.True(g.hasStarted)
	a.False(g.isGameOver)
	a.Nil(g.loser)
	a.Empty(g.safePlayers)
	a.Equal(2, g.round)
	a.Equal(1, g.idToPlayer["1"].wins)
	a.Equal(0, g.idToPlayer["2"].wins)
	a.Equal(deck.ClassicSize, totalCards(g))

	solo := NewGame(logrus.StandardLogger(), "ABCDEF", DefaultOptions())
	a.NoError(solo.AddPlayer("1", "Alice"))
	a.Equal(ErrNotEnoughPlayers, solo.RestartRound())
}

func TestGame_RemovePlayer(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(DefaultOptions(), "r5", "y1", "r1,r2", "b1,b2", "g1,g2", "y3,y4")
	a.Equal(ErrPlayerNotFound, g.RemovePlayer("9"))

	total := totalCards(g)
	g.currentPlayerIndex = 1 // player 2 is up

	// removing a seat before the current player keeps the turn
	a.NoError(g.RemovePlayer("1"))
	a.Equal("2", currentID(g))
	a.Equal(total, totalCards(g))
	a.Equal("r2,r1,y1", deck.CardsToString(g.deck.Cards))

	// removing the current player passes the turn along
	a.NoError(g.RemovePlayer("2"))
	a.Equal("3", currentID(g))
	a.False(g.isGameOver)

	// in reverse, the turn passes to the previous seat
	g.direction = -1
	a.NoError(g.RemovePlayer("3"))
	a.Equal("4", currentID(g))

	// a single player left loses the round
	a.True(g.isGameOver)
	a.Equal("4", g.loser.ID)
	a.Equal(total, totalCards(g))
}

func TestGame_RemovePlayer_reverseWrap(t *testing.T) {
	g := newTestGame(DefaultOptions(), "r5", "", "r1,r2", "b1,b2", "g1,g2")
	g.direction = -1

	assert.NoError(t, g.RemovePlayer("1"))
	assert.Equal(t, "3", currentID(g))
	assertTurnInvariant(t, g)
}

func TestGame_RemovePlayer_safePlayer(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(DefaultOptions(), "r5", "", "r1", "b1,b2", "g1,g2")
	_, err := g.PlayCard("1", 0, "")
	a.NoError(err)
	a.Len(g.safePlayers, 1)
	a.Equal("2", currentID(g))

	a.NoError(g.RemovePlayer("1"))
	a.Empty(g.safePlayers)
	a.Equal("2", currentID(g))
	a.False(g.isGameOver)
}

func TestGame_RemovePlayer_beforeStart(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), "ABCDEF", DefaultOptions())
	a.NoError(g.AddPlayer("1", "Alice"))
	a.NoError(g.AddPlayer("2", "Bob"))
	a.NoError(g.RemovePlayer("1"))
	a.Len(g.players, 1)
	a.False(g.isGameOver)
	a.Equal(ErrNotEnoughPlayers, g.StartGame())
}
