package clash

import (
	"colorclash-server/internal/rng"
	"colorclash-server/pkg/deck"
	"colorclash-server/pkg/playable"
	"fmt"

	"github.com/sirupsen/logrus"
)

// HandSize is the number of cards dealt to each player
const HandSize = 7

// MaxPlayers is the most players a single table can seat
const MaxPlayers = 10

// ChallengePenalty is the number of cards drawn by a player caught without calling
const ChallengePenalty = 4

// DrawStack is the accumulated +2/+4 penalty
type DrawStack struct {
	Count int        `json:"count"`
	Value deck.Value `json:"-"`
}

// pendingDraw restricts the player to the card they just drew
type pendingDraw struct {
	playerID  string
	cardIndex int
}

// Game is a room's game of Color Clash
// A Game is not safe for concurrent use, callers must serialize access
type Game struct {
	roomCode string
	options  Options
	logger   logrus.FieldLogger
	logChan  chan []*playable.LogMessage
	gen      rng.Generator

	players     []*Player
	idToPlayer  map[string]*Player
	safePlayers []*Player

	deck    *deck.Deck
	discard deck.Pile

	currentPlayerIndex int
	direction          int
	currentColor       deck.Color
	currentSide        deck.Side

	hasStarted bool
	isGameOver bool
	loser      *Player
	round      int

	drawStack   *DrawStack
	pendingDraw *pendingDraw

	called     map[string]bool
	vulnerable map[string]bool
}

// NewGame returns a new game for the room
// Options are normalized so switch mode never carries the classic house rules
func NewGame(logger logrus.FieldLogger, roomCode string, opts Options) *Game {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	g := &Game{
		roomCode:   roomCode,
		options:    opts.normalize(),
		logger:     logger.WithField("room", roomCode),
		logChan:    make(chan []*playable.LogMessage, 256),
		gen:        rng.Crypto{},
		players:    make([]*Player, 0, MaxPlayers),
		idToPlayer: make(map[string]*Player),
	}

	g.resetRound()
	return g
}

// SetGenerator replaces the generator used to shuffle the deck
func (g *Game) SetGenerator(gen rng.Generator) {
	g.gen = gen
}

// Options returns the normalized options of the game
func (g *Game) Options() Options {
	return g.options
}

// AddPlayer seats a player
// Players can only join before the first round starts
func (g *Game) AddPlayer(id, name string) error {
	if g.hasStarted {
		return ErrAlreadyStarted
	}

	if _, ok := g.idToPlayer[id]; ok {
		return ErrDuplicatePlayer
	}

	if len(g.players) >= MaxPlayers {
		return PlayerCountError(len(g.players) + 1)
	}

	p := newPlayer(id, name)
	g.players = append(g.players, p)
	g.idToPlayer[id] = p

	g.logger.WithField("playerID", id).Debug("player joined")
	g.sendLogMessages(newLogMessage(id, "{} joined the table"))
	return nil
}

// RemovePlayer removes a player, i.e., on disconnect
// Cards in the player's hand go to the bottom of the draw pile
func (g *Game) RemovePlayer(id string) error {
	p, ok := g.idToPlayer[id]
	if !ok {
		return ErrPlayerNotFound
	}

	removedIndex := g.indexOf(p)
	g.players = append(g.players[:removedIndex:removedIndex], g.players[removedIndex+1:]...)
	delete(g.idToPlayer, id)
	delete(g.called, id)
	delete(g.vulnerable, id)

	safePlayers := make([]*Player, 0, len(g.safePlayers))
	for _, safe := range g.safePlayers {
		if safe != p {
			safePlayers = append(safePlayers, safe)
		}
	}
	g.safePlayers = safePlayers

	if g.pendingDraw != nil && g.pendingDraw.playerID == id {
		g.pendingDraw = nil
	}

	for _, card := range p.hand {
		g.deck.PutBottom(card)
	}
	p.hand = nil

	g.adjustIndexAfterRemoval(removedIndex)

	g.logger.WithField("playerID", id).Debug("player left")
	g.sendLogMessages(playable.SimpleLogMessage("", "%s left the table", p.Name))

	if g.hasStarted && !g.isGameOver {
		g.checkGameStatus()
	}

	return nil
}

// StartGame deals the first round
func (g *Game) StartGame() error {
	if g.hasStarted {
		return ErrAlreadyStarted
	}

	if len(g.players) < 2 {
		return ErrNotEnoughPlayers
	}

	g.resetRound()
	if err := g.deal(); err != nil {
		return err
	}

	g.hasStarted = true
	g.round++

	g.logger.WithField("round", g.round).Debug("round started")
	g.sendLogMessages(playable.SimpleLogMessage("", "round %d started, %s is up first", g.round, g.currentPlayer().Name))
	return nil
}

// RestartRound starts a new round with the same players
// Wins carry over between rounds
func (g *Game) RestartRound() error {
	if len(g.players) < 2 {
		return ErrNotEnoughPlayers
	}

	g.hasStarted = false
	return g.StartGame()
}

func (g *Game) resetRound() {
	g.safePlayers = make([]*Player, 0, len(g.players))
	g.discard = deck.Pile{}
	g.currentPlayerIndex = 0
	g.direction = 1
	g.currentColor = ""
	g.currentSide = deck.Light
	g.isGameOver = false
	g.loser = nil
	g.drawStack = nil
	g.pendingDraw = nil
	g.called = make(map[string]bool)
	g.vulnerable = make(map[string]bool)

	if g.options.GameMode == ModeSwitch {
		g.deck = deck.NewSwitch()
	} else {
		g.deck = deck.NewClassic()
	}
	g.deck.SetGenerator(g.gen)

	for _, p := range g.players {
		p.newRound()
	}
}

// deal hands out seven cards each, then turns over the first discard
// The first discard is resolved as if the first player had played it
func (g *Game) deal() error {
	g.deck.Shuffle()
	g.logger.WithField("deck", g.deck.HashCode()).Debug("shuffled the deck")

	for _, p := range g.players {
		for i := 0; i < HandSize; i++ {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.addCard(card)
		}
	}

	var skipped []*deck.Card
	var first *deck.Card
	for first == nil {
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}

		if g.face(card).IsWild() {
			skipped = append(skipped, card)
			continue
		}

		first = card
	}

	for _, card := range skipped {
		g.deck.PutBottom(card)
	}

	g.discard.Push(first)
	face := g.face(first)
	g.currentColor = face.Color
	if g.currentColor == deck.Colorless {
		g.currentColor = deck.Red
	}

	_, advanceBy := g.resolveEffect(face, g.currentPlayer())
	g.advance(advanceBy)
	return nil
}

// face returns the active face of the card
func (g *Game) face(card *deck.Card) deck.Face {
	return card.Face(g.currentSide)
}

func (g *Game) indexOf(p *Player) int {
	for i, player := range g.players {
		if player == p {
			return i
		}
	}

	return -1
}

// -- Methods for the playable.Playable interface --

// Name returns the name of the game
func (g *Game) Name() string {
	if g.options.GameMode == ModeSwitch {
		return "Color Clash (Switch)"
	}

	return "Color Clash"
}

// LogChan returns a channel where log messages will be sent
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// GetEndOfGameDetails returns the stats adjustments once the round is over
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.isGameOver {
		return nil, false
	}

	adjustments := make(map[string]playable.StatsDelta, len(g.players))
	for _, p := range g.players {
		delta := playable.StatsDelta{Matches: 1}
		if p.isSafe {
			delta.Wins = 1
		}

		adjustments[p.ID] = delta
	}

	return &playable.GameOverDetails{
		Round:       g.round,
		Adjustments: adjustments,
		Log:         g.gameOverResult(),
	}, true
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan == nil {
		return
	}

	select {
	case g.logChan <- msg:
	default:
		g.logger.Warn("log channel is full, dropping message")
	}
}

// newLogMessage returns a log message about the player
// Clients replace {} with the player's name
func newLogMessage(playerID string, format string, a ...interface{}) *playable.LogMessage {
	return playable.SimpleLogMessage(playerID, format, a...)
}

func (g *Game) String() string {
	return fmt.Sprintf("%s[%s]", g.Name(), g.roomCode)
}
