package clash

import (
	"colorclash-server/pkg/deck"
	"colorclash-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

// PlayResult is the result of a successful play
type PlayResult struct {
	PlayerID    string       `json:"playerId"`
	PlayerName  string       `json:"playerName"`
	CardPlayed  deck.Face    `json:"cardPlayed"`
	ChosenColor deck.Color   `json:"chosenColor,omitempty"`
	Effect      *Effect      `json:"effect,omitempty"`
	PlayerSafe  bool         `json:"playerSafe"`
	GameOver    bool         `json:"gameOver"`
	Loser       *PlayerRef   `json:"loser,omitempty"`
	SafePlayers []*PlayerRef `json:"safePlayers,omitempty"`
}

// PlayCard plays the card at cardIndex from the player's hand
// chosenColor is required for wilds and ignored otherwise
// A rejected play leaves the game untouched
func (g *Game) PlayCard(playerID string, cardIndex int, chosenColor deck.Color) (*PlayResult, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, err
	}

	p := g.idToPlayer[playerID]
	if err := g.validatePlay(p, cardIndex, chosenColor); err != nil {
		g.logger.WithFields(logrus.Fields{
			"playerID":  playerID,
			"cardIndex": cardIndex,
		}).WithError(err).Debug("play rejected")
		return nil, err
	}

	g.pendingDraw = nil

	card := p.removeCard(cardIndex)
	face := g.face(card)
	g.discard.Push(card)

	result := &PlayResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		CardPlayed: face,
	}

	if face.IsWild() {
		g.currentColor = chosenColor
		card.RememberColor(chosenColor)
		result.ChosenColor = chosenColor
	} else {
		g.currentColor = face.Color
	}

	effect, advanceBy := g.resolveEffect(face, p)
	g.handChanged(p, true)

	if len(p.hand) == 0 {
		g.markSafe(p)
		result.PlayerSafe = true
	}

	g.advance(advanceBy)

	if autoDrawn := g.autoResolveDrawStack(); autoDrawn != nil {
		if effect == nil {
			effect = &Effect{}
		}

		effect.AutoDrawn = autoDrawn
	}

	result.Effect = effect
	if g.checkGameStatus() {
		over := g.gameOverResult()
		result.GameOver = true
		result.Loser = over.Loser
		result.SafePlayers = over.SafePlayers
	}

	g.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"card":     face.String(),
	}).Debug("played a card")

	var msg *playable.LogMessage
	if face.IsWild() {
		msg = newLogMessage(playerID, "{} played %s and chose %s", face.Label(), chosenColor)
	} else {
		msg = newLogMessage(playerID, "{} played %s", face)
	}

	msg.Faces = []deck.Face{face}
	g.sendLogMessages(msg)

	return result, nil
}

// markSafe takes the player out of the rotation
func (g *Game) markSafe(p *Player) {
	if p.isSafe {
		return
	}

	p.isSafe = true
	g.safePlayers = append(g.safePlayers, p)
	g.handChanged(p, false)

	g.sendLogMessages(newLogMessage(p.ID, "{} is safe"))
}
