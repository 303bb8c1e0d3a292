package clash

import (
	"colorclash-server/internal/rng"
	"colorclash-server/pkg/deck"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// playRandomRound plays legal moves until the round ends, checking the table after every action
func playRandomRound(t *testing.T, g *Game, r *rand.Rand, total int) {
	t.Helper()

	for steps := 0; steps < 3000 && !g.isGameOver; steps++ {
		cur := g.currentPlayer()
		if !assert.NotNil(t, cur) {
			return
		}

		color := g.currentSide.Colors()[r.Intn(4)]

		if g.pendingDraw != nil {
			if _, err := g.PlayCard(cur.ID, g.pendingDraw.cardIndex, color); err != nil {
				assert.NoError(t, g.PassTurnAfterDraw(cur.ID))
			}
		} else {
			played := false
			for _, i := range r.Perm(len(cur.hand)) {
				if len(cur.hand) == 2 && r.Intn(2) == 0 {
					assert.NoError(t, g.CallClash(cur.ID))
				}

				if _, err := g.PlayCard(cur.ID, i, color); err == nil {
					played = true
					break
				} else if !errors.Is(err, ErrIllegalPlay) {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if !played {
				if _, err := g.DrawCard(cur.ID); err != nil {
					assert.Equal(t, ErrNoCardsToDraw, err)
					return
				}
			}
		}

		for _, p := range g.players {
			if len(p.hand) == 1 && r.Intn(3) == 0 {
				_, err := g.ChallengeCall(p.ID)
				if g.isGameOver {
					assert.Equal(t, ErrGameIsOver, err)
				} else {
					assert.NoError(t, err)
				}
			}
		}

		if !assert.Equal(t, total, totalCards(g), "cards must be conserved") {
			return
		}

		assertTurnInvariant(t, g)
	}
}

func simulate(t *testing.T, opts Options, total int) {
	for seed := int64(1); seed <= 25; seed++ {
		g := NewGame(logrus.StandardLogger(), "SIM", opts)
		g.SetGenerator(rng.Seeded(seed))

		players := 2 + int(seed%5)
		for i := 0; i < players; i++ {
			assert.NoError(t, g.AddPlayer(strconv.Itoa(i), "player"))
		}

		assert.NoError(t, g.StartGame())
		assert.Equal(t, total, totalCards(g))

		r := rand.New(rand.NewSource(seed))
		for round := 0; round < 2; round++ {
			if round > 0 {
				assert.NoError(t, g.RestartRound())
			}

			playRandomRound(t, g, r, total)

			if g.isGameOver {
				wins := 0
				for _, p := range g.players {
					wins += p.Wins()
				}

				assert.True(t, wins >= len(g.safePlayers))
				assert.Equal(t, len(g.players)-1, len(g.safePlayers))
			}
		}
	}
}

func TestSimulation_classic(t *testing.T) {
	simulate(t, DefaultOptions(), deck.ClassicSize)
}

func TestSimulation_houseRules(t *testing.T) {
	simulate(t, Options{StackPlusTwoFour: true, SevenZeroRule: true}, deck.ClassicSize)
}

func TestSimulation_switch(t *testing.T) {
	simulate(t, Options{GameMode: ModeSwitch}, deck.SwitchSize)
}
