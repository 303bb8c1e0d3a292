package room

import (
	"colorclash-server/pkg/playable/clash"
	"colorclash-server/pkg/token"
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultMaxPlayers is the number of seats in a room
const DefaultMaxPlayers = 6

// StatsRecorder persists the results of a round for a player with an account
type StatsRecorder interface {
	IncrementStats(ctx context.Context, accountID string, winsDelta, matchesDelta int) error
}

// Settings configures every room the PitBoss creates
type Settings struct {
	MaxPlayers int
}

// PitBoss is responsible for dispatching players to rooms
type PitBoss struct {
	settings Settings
	stats    StatsRecorder
	logger   logrus.FieldLogger

	lock    sync.RWMutex
	dealers map[string]*Dealer

	connect    chan *Client
	disconnect chan *Client
	empty      chan *Dealer
	close      chan bool
}

// NewPitBoss returns a new dispatch object
// stats may be nil, in which case no results are persisted
func NewPitBoss(logger logrus.FieldLogger, stats StatsRecorder, settings Settings) *PitBoss {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if settings.MaxPlayers <= 0 || settings.MaxPlayers > clash.MaxPlayers {
		settings.MaxPlayers = DefaultMaxPlayers
	}

	return &PitBoss{
		settings:   settings,
		stats:      stats,
		logger:     logger,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		empty:      make(chan *Dealer),
		close:      make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and every dealer
func (p *PitBoss) EndShift() {
	close(p.close)

	p.lock.Lock()
	defer p.lock.Unlock()

	for code, dealer := range p.dealers {
		dealer.EndShift()
		delete(p.dealers, code)
	}
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			dealer, err := p.Dealer(client.roomCode)
			if err != nil {
				client.Send(newErrorResponse("", err))
				client.CloseWith(err.Error())
				continue
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			dealer, err := p.Dealer(client.roomCode)
			if err != nil {
				continue
			}

			dealer.RemoveClient(client)
		case dealer := <-p.empty:
			// a client may have been sent to the room since it reported empty
			if dealer.isEmpty() {
				p.closeRoom(dealer)
			}
		case <-p.close:
			return
		}
	}
}

// CreateRoom opens a room with a new code
func (p *PitBoss) CreateRoom(opts clash.Options) (*Dealer, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for attempt := 0; attempt < 10; attempt++ {
		code, err := token.RoomCode()
		if err != nil {
			return nil, fmt.Errorf("could not generate room code: %w", err)
		}

		if _, exists := p.dealers[code]; exists {
			continue
		}

		dealer := NewDealer(p, code, opts)
		dealer.StartShift()
		p.dealers[code] = dealer

		p.logger.WithField("room", code).WithField("mode", opts.GameMode).Info("room created")
		return dealer, nil
	}

	return nil, fmt.Errorf("could not find an unused room code")
}

// Dealer returns the dealer running the room
func (p *PitBoss) Dealer(code string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return dealer, nil
}

// Dealers returns the dealers of every open room
func (p *PitBoss) Dealers() []*Dealer {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		dealers = append(dealers, dealer)
	}

	return dealers
}

// RoomCount returns the number of open rooms
func (p *PitBoss) RoomCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

func (p *PitBoss) closeRoom(dealer *Dealer) {
	p.lock.Lock()
	if p.dealers[dealer.code] == dealer {
		delete(p.dealers, dealer.code)
	}
	p.lock.Unlock()

	dealer.EndShift()
	p.logger.WithField("room", dealer.code).Info("room closed")
}

// roomEmptied asks the run loop to close the room
// It is called from the dealer's run loop, so it must not block it
func (p *PitBoss) roomEmptied(dealer *Dealer) {
	go func() {
		select {
		case p.empty <- dealer:
		case <-p.close:
		}
	}()
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
