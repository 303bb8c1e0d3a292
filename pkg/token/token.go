package token

import (
	"crypto/rand"
	"strings"
)

// RoomCodeLength is the length of a room code
const RoomCodeLength = 6

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// largest multiple of len(roomCodeAlphabet) that fits in a byte
const maxUnbiased = 256 - 256%len(roomCodeAlphabet)

// RoomCode returns a crypto-secure random room code
// The code is RoomCodeLength characters from A-Z and 0-9
func RoomCode() (string, error) {
	code := make([]byte, 0, RoomCodeLength)
	buf := make([]byte, RoomCodeLength*2)

	for len(code) < RoomCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}

			code = append(code, roomCodeAlphabet[int(b)%len(roomCodeAlphabet)])
			if len(code) == RoomCodeLength {
				break
			}
		}
	}

	return string(code), nil
}

// NormalizeRoomCode upper-cases a user supplied code
// ok is false if the result is not a well-formed room code
func NormalizeRoomCode(s string) (code string, ok bool) {
	code = strings.ToUpper(strings.TrimSpace(s))
	if len(code) != RoomCodeLength {
		return "", false
	}

	for _, r := range code {
		if !strings.ContainsRune(roomCodeAlphabet, r) {
			return "", false
		}
	}

	return code, true
}
