package clash

import (
	"errors"
	"fmt"
)

// ErrNotYourTurn is returned when a player acts out of turn
var ErrNotYourTurn = errors.New("not your turn")

// ErrInvalidCardIndex is returned when the card index is not in the player's hand
var ErrInvalidCardIndex = errors.New("invalid card")

// ErrIllegalPlay is returned when the move breaks a rule
// More specific reasons wrap this error
var ErrIllegalPlay = errors.New("illegal play")

// ErrMissingColorChoice is returned when a wild is played without a valid color
var ErrMissingColorChoice = errors.New("must choose a color for wild card")

// ErrNotEnoughPlayers is returned when a round is started with fewer than two players
var ErrNotEnoughPlayers = errors.New("need at least 2 players")

// ErrAlreadyStarted is returned when the round has already started
var ErrAlreadyStarted = errors.New("game already started")

// ErrNoCardsToDraw is returned when the draw pile and the discard pile are both exhausted
var ErrNoCardsToDraw = errors.New("no cards left to draw")

// ErrInvalidCallState is returned when a player calls with a hand that cannot be called
var ErrInvalidCallState = errors.New("you can only call CLASH when you have 1 or 2 cards")

// ErrGameNotStarted is returned for round actions before the round starts
var ErrGameNotStarted = errors.New("game has not started")

// ErrGameIsOver is returned for round actions after the round ends
var ErrGameIsOver = errors.New("game is over")

// ErrPlayerNotFound is returned when the player is not seated at the table
var ErrPlayerNotFound = errors.New("player not found")

// ErrDuplicatePlayer is returned when the player is already seated
var ErrDuplicatePlayer = errors.New("player is already in the game")

// PlayerCountError is returned when the table cannot seat another player
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected 2–%d players, got %d", MaxPlayers, int(p))
}

func illegal(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIllegalPlay, fmt.Sprintf(format, a...))
}
