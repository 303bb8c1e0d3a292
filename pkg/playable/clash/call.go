package clash

// handChanged recomputes the call state after the player's hand size changes
// played is true when the change came from the player playing a card
func (g *Game) handChanged(p *Player, played bool) {
	if p == nil {
		return
	}

	if len(p.hand) != 1 {
		delete(g.called, p.ID)
		delete(g.vulnerable, p.ID)
		return
	}

	if g.called[p.ID] {
		delete(g.vulnerable, p.ID)
		return
	}

	if played {
		g.vulnerable[p.ID] = true
	}
}

// CallClash announces that the player is about to hold a single card
// At two cards the call must be made on the player's own turn.
// At one card the call clears any vulnerability. Calling twice is a no-op.
func (g *Game) CallClash(playerID string) error {
	if err := g.checkInProgress(); err != nil {
		return err
	}

	p, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	switch len(p.hand) {
	case 2:
		if p != g.currentPlayer() {
			return ErrNotYourTurn
		}
	case 1:
		if g.called[playerID] {
			return nil
		}
	default:
		return ErrInvalidCallState
	}

	g.called[playerID] = true
	delete(g.vulnerable, playerID)

	g.logger.WithField("playerID", playerID).Debug("called clash")
	g.sendLogMessages(newLogMessage(playerID, "{} called CLASH!"))
	return nil
}

// ChallengeCall challenges a player who may have failed to call
// If the target holds one card and is vulnerable, they draw the penalty and true is returned.
// A failed challenge changes nothing.
func (g *Game) ChallengeCall(targetID string) (bool, error) {
	if err := g.checkInProgress(); err != nil {
		return false, err
	}

	target, ok := g.idToPlayer[targetID]
	if !ok {
		return false, nil
	}

	if len(target.hand) != 1 || !g.vulnerable[targetID] || g.called[targetID] {
		return false, nil
	}

	drawn := g.forceDraw(target, ChallengePenalty, "challenge")

	g.logger.WithField("playerID", targetID).Debug("challenge succeeded")
	g.sendLogMessages(newLogMessage(targetID, "{} was caught without calling and drew %d", drawn.Count))
	return true, nil
}
