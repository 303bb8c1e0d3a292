package room

import (
	"colorclash-server/pkg/playable"
	"colorclash-server/pkg/playable/clash"
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const statsTimeout = time.Second * 5

// Game is what a dealer runs
type Game interface {
	playable.Playable
	AddPlayer(id, name string) error
	RemovePlayer(id string) error
	GetGameState() *clash.GameState
}

// Dealer runs a single room
// Every intent is applied to the game from the run loop, one at a time
type Dealer struct {
	pitBoss *PitBoss
	code    string
	game    Game
	logger  logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex
	nextSeq int

	// pending counts seats queued by the pit boss that have not run yet
	pending atomic.Int32

	logMessages   []*playable.LogMessage
	recordedRound int

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, code string, opts clash.Options) *Dealer {
	logger := pitBoss.logger.WithField("room", code)

	return &Dealer{
		pitBoss:       pitBoss,
		code:          code,
		game:          clash.NewGame(logger, code, opts),
		logger:        logger,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Code returns the room code
func (d *Dealer) Code() string {
	return d.code
}

// Clients will return a slice of connected (at the time) clients in the order they joined
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].seq < clients[j].seq
	})

	return clients
}

// GameState returns the public state of the room's game
func (d *Dealer) GameState() *clash.GameState {
	done := make(chan *clash.GameState, 1)
	d.execInRunLoop <- func() {
		done <- d.game.GetGameState()
	}

	select {
	case gs := <-done:
		return gs
	case <-d.close:
		return nil
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case messages := <-d.game.LogChan():
			d.addLogMessages(messages)
			d.broadcast(&playable.Response{Key: "log", Data: messages})
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient seats a client at the table
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.pending.Add(1)
	d.execInRunLoop <- func() {
		err := d.seat(client)
		d.pending.Add(-1)

		if errors.Is(err, errClientDeparted) {
			d.logger.WithField("client", client.String()).Debug("client left before it was seated")
			d.checkEmpty()
			return
		}

		if err != nil {
			d.logger.WithError(err).WithField("client", client.String()).Info("could not seat client")
			client.Send(newErrorResponse("", err))
			client.CloseWith(err.Error())
			d.checkEmpty()
			return
		}

		client.Send(&playable.Response{Key: "log", Data: d.logMessages})
		d.sendClientState()
		d.sendGameData()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) seat(client *Client) error {
	if client.departed.Load() {
		return errClientDeparted
	}

	d.lock.RLock()
	seated := len(d.clients)
	d.lock.RUnlock()

	if seated >= d.pitBoss.settings.MaxPlayers {
		return ErrRoomFull
	}

	if err := d.game.AddPlayer(client.PlayerID, client.Name); err != nil {
		return err
	}

	d.lock.Lock()
	client.seq = d.nextSeq
	d.nextSeq++
	d.clients[client] = true
	d.lock.Unlock()
	client.dealer.Store(d)

	return nil
}

// RemoveClient removes a client
// The removal runs on the run loop after any seat already queued for the client.
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	client.departed.Store(true)
	d.execInRunLoop <- func() {
		d.lock.Lock()
		_, seated := d.clients[client]
		delete(d.clients, client)
		nClients := len(d.clients)
		d.lock.Unlock()

		if !seated {
			return
		}

		d.unseat(client)
		if nClients == 0 {
			d.checkEmpty()
		}
	}
}

// isEmpty returns true if no client is seated or waiting for a seat
// pending is read first; it only grows from the pit boss run loop
func (d *Dealer) isEmpty() bool {
	if d.pending.Load() > 0 {
		return false
	}

	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.clients) == 0
}

// NOTE: must only be called from the run loop
func (d *Dealer) checkEmpty() {
	if d.isEmpty() {
		d.pitBoss.roomEmptied(d)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) unseat(client *Client) {
	if err := d.game.RemovePlayer(client.PlayerID); err != nil {
		d.logger.WithError(err).WithField("client", client.String()).Warn("could not remove player")
	}

	d.broadcast(playable.Event("playerLeft", &clash.PlayerEvent{
		PlayerID:   client.PlayerID,
		PlayerName: client.Name,
	}))

	d.sendClientState()
	d.sendGameData()
	d.checkGameOver()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		d.lock.RLock()
		_, seated := d.clients[c]
		d.lock.RUnlock()

		if !seated {
			return
		}

		d.handleMessage(c, msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(c *Client, msg *playable.PayloadIn) {
	response, updateState, err := d.game.Action(c.PlayerID, msg)
	if err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"client": c.String(),
			"action": msg.Action,
		}).Info("rejected action")

		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	if response != nil {
		response.Context = msg.Context
		d.dispatch(c, response)

		for _, followup := range response.Followups {
			d.dispatch(c, followup)
		}
	}

	if updateState {
		d.sendGameData()
	}

	d.checkGameOver()
}

// dispatch sends broadcast responses to the room and everything else to the client
func (d *Dealer) dispatch(c *Client, response *playable.Response) {
	if response.Broadcast {
		d.broadcast(response)
		return
	}

	c.Send(response)
}

// NOTE: must only be called from the run loop
func (d *Dealer) checkGameOver() {
	details, isOver := d.game.GetEndOfGameDetails()
	if !isOver || details.Round == d.recordedRound {
		return
	}

	d.recordedRound = details.Round
	d.broadcast(playable.Event("gameOver", details.Log))
	d.recordStats(details)
}

// recordStats persists the round for every seated player with an account
func (d *Dealer) recordStats(details *playable.GameOverDetails) {
	stats := d.pitBoss.stats
	if stats == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()

	for _, client := range d.Clients() {
		if client.IsGuest() {
			continue
		}

		delta, ok := details.Adjustments[client.PlayerID]
		if !ok {
			continue
		}

		if err := stats.IncrementStats(ctx, client.AccountID, delta.Wins, delta.Matches); err != nil {
			d.logger.WithError(err).WithField("accountID", client.AccountID).Error("could not record stats")
		}
	}
}

func (d *Dealer) broadcast(response *playable.Response) {
	for _, client := range d.Clients() {
		client.Send(response)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.PlayerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	clients := d.Clients()
	players := make([]*clientStatePlayer, len(clients))
	for i, client := range clients {
		players[i] = &clientStatePlayer{
			ID:      client.PlayerID,
			Name:    client.Name,
			IsGuest: client.IsGuest(),
		}
	}

	d.broadcast(&playable.Response{
		Key:  "clientState",
		Data: players,
	})
}
