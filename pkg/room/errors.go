package room

import "errors"

// ErrRoomFull is returned when a client joins a room that has no open seats
var ErrRoomFull = errors.New("room is full")

// ErrRoomNotFound is returned when no room exists for the code
var ErrRoomNotFound = errors.New("room not found")

// errClientDeparted is returned when a client disconnects before it could be seated
var errClientDeparted = errors.New("client disconnected before it was seated")
