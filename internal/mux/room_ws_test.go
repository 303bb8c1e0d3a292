package mux

import (
	"colorclash-server/pkg/playable"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

type wsMessage struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

type wsGame struct {
	GameState struct {
		HasStarted bool `json:"hasStarted"`
		Players    []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"players"`
	} `json:"gameState"`
	Hand   []json.RawMessage `json:"hand"`
	IsTurn bool              `json:"isTurn"`
}

func (ts *testServer) dial(t *testing.T, code string, query url.Values) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/room/" + code + "/ws"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Cleanup(func() {
			_ = conn.Close()
		})
	}

	return conn, resp, err
}

func (ts *testServer) createRoom(t *testing.T) string {
	t.Helper()

	var resp postRoomResponse
	assertPost(t, ts.Server, "/room", map[string]interface{}{}, &resp, http.StatusCreated)
	return resp.RoomCode
}

// readUntil reads messages until one with the key arrives
func readUntil(t *testing.T, conn *websocket.Conn, key string) *wsMessage {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", key, err)
		}

		if msg.Key == key {
			return &msg
		}
	}
}

func TestMux_getRoomCodeWS_guest(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	code := ts.createRoom(t)

	conn, _, err := ts.dial(t, code, url.Values{"name": {"Alice"}})
	if !a.NoError(err) {
		return
	}

	msg := readUntil(t, conn, "clientState")
	var players []clientState
	a.NoError(json.Unmarshal(msg.Data, &players))
	if a.Len(players, 1) {
		a.Equal("Alice", players[0].Name)
		a.True(players[0].IsGuest)
		a.True(strings.HasPrefix(players[0].ID, "guest-"))
	}

	msg = readUntil(t, conn, "game")
	var game wsGame
	a.NoError(json.Unmarshal(msg.Data, &game))
	a.False(game.GameState.HasStarted)
	if a.Len(game.GameState.Players, 1) {
		a.Equal("Alice", game.GameState.Players[0].Name)
	}
	a.Empty(game.Hand)
}

type clientState struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGuest bool   `json:"isGuest"`
}

func TestMux_getRoomCodeWS_account(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	code := ts.createRoom(t)

	acct, signedJWT := ts.newAccount(t)
	conn, _, err := ts.dial(t, code, url.Values{"access_token": {signedJWT}, "name": {"ignored"}})
	if !a.NoError(err) {
		return
	}

	msg := readUntil(t, conn, "clientState")
	var players []clientState
	a.NoError(json.Unmarshal(msg.Data, &players))
	if a.Len(players, 1) {
		a.Equal(acct.ID, players[0].ID)
		a.Equal(acct.Username, players[0].Name)
		a.False(players[0].IsGuest)
	}
}

func TestMux_getRoomCodeWS_rejected(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	code := ts.createRoom(t)

	_, resp, err := ts.dial(t, code, url.Values{"access_token": {"garbage"}})
	a.Error(err)
	if a.NotNil(resp) {
		a.Equal(http.StatusUnauthorized, resp.StatusCode)
	}

	_, resp, err = ts.dial(t, "ZZZZZZ", nil)
	a.Error(err)
	if a.NotNil(resp) {
		a.Equal(http.StatusNotFound, resp.StatusCode)
	}
}

func TestMux_getRoomCodeWS_startGame(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	code := ts.createRoom(t)

	c1, _, err := ts.dial(t, code, url.Values{"name": {"Alice"}})
	if !a.NoError(err) {
		return
	}
	readUntil(t, c1, "game")

	c2, _, err := ts.dial(t, code, url.Values{"name": {"Bob"}})
	if !a.NoError(err) {
		return
	}
	readUntil(t, c2, "game")

	a.NoError(c1.WriteJSON(playable.PayloadIn{Action: "bogus", Context: "ctx-1"}))
	msg := readUntil(t, c1, "error")
	a.Equal("unknown action: bogus", msg.Value)
	a.Equal("ctx-1", msg.Context)

	a.NoError(c1.WriteJSON(playable.PayloadIn{Action: "startGame"}))
	readUntil(t, c1, "gameStarted")
	readUntil(t, c2, "gameStarted")

	msg = readUntil(t, c2, "game")
	var game wsGame
	a.NoError(json.Unmarshal(msg.Data, &game))
	a.True(game.GameState.HasStarted)
	a.Len(game.GameState.Players, 2)
	a.NotEmpty(game.Hand)
}
