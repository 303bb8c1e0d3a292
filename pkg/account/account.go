package account

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted
const MinPasswordLength = 6

var usernameRx = regexp.MustCompile(`^[A-Za-z0-9_-]{3,24}$`)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrInvalidUsernameOrPassword is returned when the credentials do not match an account
var ErrInvalidUsernameOrPassword = UserError("invalid username and/or password")

// ErrDuplicateKey happens if a user tries to register a taken username
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrAccountNotFound is returned when no account matches the ID
var ErrAccountNotFound = errors.New("account not found")

// Account is a record in the `accounts` table
type Account struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	IsSiteAdmin   bool      `json:"isSiteAdmin"`
	Wins          int       `json:"wins"`
	MatchesPlayed int       `json:"matchesPlayed"`
	Created       time.Time `json:"created"`
	Updated       time.Time `json:"updated"`
	passwordHash  string
}

// ValidateUsername returns a UserError if the username cannot be registered
func ValidateUsername(username string) error {
	if !usernameRx.MatchString(username) {
		return UserError("username must be 3-24 letters, numbers, dashes or underscores")
	}

	return nil
}

// ValidatePassword returns a UserError if the password is too weak
func ValidatePassword(password string) error {
	if len(strings.TrimSpace(password)) < MinPasswordLength {
		return UserError("password must be 6 or more characters")
	}

	return nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
