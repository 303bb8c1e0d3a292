package clash

import (
	"colorclash-server/pkg/deck"
	"colorclash-server/pkg/playable"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// PlayerEvent is the payload of events about a single player
type PlayerEvent struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// ChallengeEvent is the payload of a challenge
type ChallengeEvent struct {
	ChallengerID   string `json:"challengerId"`
	ChallengerName string `json:"challengerName"`
	TargetID       string `json:"targetId"`
	Success        bool   `json:"success"`
}

// Action performs an action for the player
// Part of the playable.Playable interface
func (g *Game) Action(playerID string, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return nil, false, ErrPlayerNotFound
	}

	g.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"action":   message.Action,
	}).Debug("action")

	switch message.Action {
	case "startGame":
		if err := g.StartGame(); err != nil {
			return nil, false, err
		}

		return playable.Event("gameStarted", g.GetGameState()), true, nil
	case "restartRound":
		if err := g.RestartRound(); err != nil {
			return nil, false, err
		}

		return playable.Event("gameStarted", g.GetGameState()), true, nil
	case "playCard":
		cardIndex, ok := message.AdditionalData.GetInt("cardIndex")
		if !ok {
			return nil, false, errors.New("missing 'cardIndex' parameter")
		}

		chosenColor, _ := message.AdditionalData.GetString("chosenColor")
		result, err := g.PlayCard(playerID, cardIndex, deck.Color(chosenColor))
		if err != nil {
			return nil, false, err
		}

		res := playable.Event("cardPlayed", result)
		if result.PlayerSafe {
			res.Followups = append(res.Followups, playable.Event("playerSafe", &PlayerEvent{
				PlayerID:   p.ID,
				PlayerName: p.Name,
			}))
		}

		return res, true, nil
	case "drawCard":
		result, err := g.DrawCard(playerID)
		if err != nil {
			return nil, false, err
		}

		return playable.Event("cardDrawn", result.public()), true, nil
	case "passTurn":
		if err := g.PassTurnAfterDraw(playerID); err != nil {
			return nil, false, err
		}

		return playable.OK(message.Context), true, nil
	case "callClash":
		if err := g.CallClash(playerID); err != nil {
			return nil, false, err
		}

		return playable.Event("clashCalled", &PlayerEvent{
			PlayerID:   p.ID,
			PlayerName: p.Name,
		}), true, nil
	case "challengeCall":
		if message.Subject == "" {
			return nil, false, errors.New("missing challenge target")
		}

		success, err := g.ChallengeCall(message.Subject)
		if err != nil {
			return nil, false, err
		}

		event := &ChallengeEvent{
			ChallengerID:   p.ID,
			ChallengerName: p.Name,
			TargetID:       message.Subject,
			Success:        success,
		}

		if !success {
			return &playable.Response{Key: "callChallenged", Data: event, Context: message.Context}, false, nil
		}

		return playable.Event("callChallenged", event), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}
