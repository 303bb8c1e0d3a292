package clash

// activePlayers returns the players who are not safe, in seat order
func (g *Game) activePlayers() []*Player {
	active := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.isSafe {
			active = append(active, p)
		}
	}

	return active
}

// step returns the seat index one position away in the current direction
func (g *Game) step(i int) int {
	n := len(g.players)
	return ((i+g.direction)%n + n) % n
}

// nextActiveIndex walks from seat i in the current direction to the next player who is not safe
// If nobody else is active, i is returned
func (g *Game) nextActiveIndex(i int) int {
	n := len(g.players)
	if n == 0 {
		return 0
	}

	next := g.step(i)
	for tries := 0; g.players[next].isSafe && tries < n; tries++ {
		next = g.step(next)
	}

	if g.players[next].isSafe {
		return i
	}

	return next
}

// currentPlayer returns the player whose turn it is, or nil if nobody is active
func (g *Game) currentPlayer() *Player {
	n := len(g.players)
	if n == 0 || len(g.activePlayers()) == 0 {
		return nil
	}

	i := g.currentPlayerIndex
	if i < 0 || i >= n {
		i = 0
	}

	if g.players[i].isSafe {
		i = g.nextActiveIndex(i)
	}

	return g.players[i]
}

// nextPlayer returns the active player after the current player
func (g *Game) nextPlayer() *Player {
	if g.currentPlayer() == nil {
		return nil
	}

	return g.players[g.nextActiveIndex(g.currentPlayerIndex)]
}

// advance moves the turn the given number of active seats
func (g *Game) advance(steps int) {
	if len(g.activePlayers()) == 0 {
		return
	}

	for i := 0; i < steps; i++ {
		g.currentPlayerIndex = g.nextActiveIndex(g.currentPlayerIndex)
	}

	g.normalizeTurn()
}

// normalizeTurn makes sure the current index points at an active player
func (g *Game) normalizeTurn() {
	n := len(g.players)
	if n == 0 {
		g.currentPlayerIndex = 0
		return
	}

	if g.currentPlayerIndex < 0 || g.currentPlayerIndex >= n {
		g.currentPlayerIndex = 0
	}

	if g.players[g.currentPlayerIndex].isSafe {
		g.currentPlayerIndex = g.nextActiveIndex(g.currentPlayerIndex)
	}
}

// adjustIndexAfterRemoval keeps the turn with the right player after a seat is removed
// If the current player left, the turn passes to whoever is next in the current direction
func (g *Game) adjustIndexAfterRemoval(removedIndex int) {
	n := len(g.players)
	if n == 0 {
		g.currentPlayerIndex = 0
		return
	}

	switch {
	case removedIndex < g.currentPlayerIndex:
		g.currentPlayerIndex--
	case removedIndex == g.currentPlayerIndex && g.direction < 0:
		g.currentPlayerIndex = ((removedIndex-1)%n + n) % n
	}

	if g.currentPlayerIndex >= n {
		g.currentPlayerIndex = 0
	}

	g.normalizeTurn()
}
