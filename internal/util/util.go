package util

import (
	"github.com/google/uuid"
)

// GuestID returns a player ID for a client without an account
func GuestID() string {
	return "guest-" + uuid.New().String()
}
