package room

import (
	"colorclash-server/pkg/playable"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Identity is who a client plays as
type Identity struct {
	PlayerID string
	Name     string

	// AccountID is empty for guests, whose results are not persisted
	AccountID string
}

// IsGuest returns true if the identity is not backed by an account
func (i Identity) IsGuest() bool {
	return i.AccountID == ""
}

// Client is a client connected to the server via websockets
type Client struct {
	Identity

	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ConnectionID identifies this connection in the logs
	ConnectionID uuid.UUID

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// dealer is set by the dealer's run loop and read by the read loop
	dealer atomic.Pointer[Dealer]

	// departed is set once the connection is gone, a pending seat is refused
	departed atomic.Bool

	roomCode string
	seq      int
}

// NewClient returns a new client for the room
func NewClient(conn *websocket.Conn, identity Identity, roomCode string) *Client {
	return &Client{
		Identity:     identity,
		Conn:         conn,
		ConnectionID: uuid.New(),
		send:         make(chan interface{}, 256),
		Close:        make(chan string, 1),
		roomCode:     roomCode,
	}
}

// RoomCode returns the code of the room the client joined
func (c *Client) RoomCode() string {
	return c.roomCode
}

// Send sends a message to the web client
// Messages are dropped if the client is not keeping up
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send buffer is full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// CloseWith asks the write loop to close the connection
func (c *Client) CloseWith(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.PlayerID, c.roomCode)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	dealer := c.dealer.Load()
	if dealer == nil {
		logrus.WithField("client", c.String()).WithField("action", msg.Action).Warn("received message, but client is not seated")
		return
	}

	dealer.ReceivedMessage(c, msg)
}
