package clash

import (
	"colorclash-server/pkg/playable"
	"fmt"
)

// GameMode selects the deck and the rule set
type GameMode string

// game modes
const (
	ModeClassic GameMode = "classic"
	ModeSwitch  GameMode = "switch"
)

// Options are the table settings for a room
type Options struct {
	GameMode GameMode `json:"gameMode"`
	// StackPlusTwoFour lets players answer a +2 with a +2 (or a +4 with a +4) to pass on a growing penalty
	StackPlusTwoFour bool `json:"stackPlusTwoFour"`
	// SevenZeroRule makes a 7 swap hands with the next player and a 0 rotate every hand
	SevenZeroRule bool `json:"sevenZeroRule"`
	// TurnTimer is surfaced to clients in seconds, 0 means no timer
	TurnTimer int `json:"turnTimer"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		GameMode:         ModeClassic,
		StackPlusTwoFour: false,
		SevenZeroRule:    false,
		TurnTimer:        0,
	}
}

// normalize forces the house rules off in switch mode
func (o Options) normalize() Options {
	if o.GameMode == "" {
		o.GameMode = ModeClassic
	}

	if o.GameMode == ModeSwitch {
		o.StackPlusTwoFour = false
		o.SevenZeroRule = false
	}

	if o.TurnTimer < 0 {
		o.TurnTimer = 0
	}

	return o
}

// ParseGameMode returns the game mode for the name
// "flip" is accepted as an alias of switch
func ParseGameMode(s string) (GameMode, error) {
	switch s {
	case "", "classic":
		return ModeClassic, nil
	case "switch", "flip":
		return ModeSwitch, nil
	}

	return "", fmt.Errorf("unknown game mode: %s", s)
}

// OptionsFromAdditionalData builds options from a client payload
// Missing keys keep the values from defaults
func OptionsFromAdditionalData(defaults Options, data playable.AdditionalData) (Options, error) {
	opts := defaults

	if mode, ok := data.GetString("gameMode"); ok {
		gameMode, err := ParseGameMode(mode)
		if err != nil {
			return Options{}, err
		}

		opts.GameMode = gameMode
	}

	if stack, ok := data.GetBool("stackPlusTwoFour"); ok {
		opts.StackPlusTwoFour = stack
	}

	if sevenZero, ok := data.GetBool("sevenZeroRule"); ok {
		opts.SevenZeroRule = sevenZero
	}

	if timer, ok := data.GetInt("turnTimer"); ok {
		if timer < 0 {
			return Options{}, fmt.Errorf("turnTimer must be zero or greater")
		}

		opts.TurnTimer = timer
	}

	return opts.normalize(), nil
}
