package clash

// GameOverResult summarizes a finished round
type GameOverResult struct {
	Round       int          `json:"round"`
	Loser       *PlayerRef   `json:"loser"`
	SafePlayers []*PlayerRef `json:"safePlayers"`
}

// checkInProgress rejects round actions outside of a live round
func (g *Game) checkInProgress() error {
	if !g.hasStarted {
		return ErrGameNotStarted
	}

	if g.isGameOver {
		return ErrGameIsOver
	}

	return nil
}

// checkGameStatus ends the round once one active player (or none) remains
// Safe players are awarded a win the first time the round is seen as over
func (g *Game) checkGameStatus() bool {
	if !g.hasStarted {
		return false
	}

	if g.isGameOver {
		return true
	}

	active := g.activePlayers()
	if len(active) > 1 {
		return false
	}

	g.isGameOver = true
	g.pendingDraw = nil
	g.drawStack = nil
	if len(active) == 1 {
		g.loser = active[0]
	}

	for _, p := range g.safePlayers {
		p.wins++
	}

	if g.loser != nil {
		g.logger.WithField("loser", g.loser.ID).Debug("round over")
		g.sendLogMessages(newLogMessage(g.loser.ID, "round %d is over, {} is the last one holding cards", g.round))
	} else {
		g.logger.Debug("round over")
		g.sendLogMessages(newLogMessage("", "round %d is over", g.round))
	}

	return true
}

func (g *Game) gameOverResult() *GameOverResult {
	result := &GameOverResult{
		Round:       g.round,
		SafePlayers: make([]*PlayerRef, len(g.safePlayers)),
	}

	if g.loser != nil {
		result.Loser = g.loser.ref()
	}

	for i, p := range g.safePlayers {
		result.SafePlayers[i] = p.ref()
	}

	return result
}
