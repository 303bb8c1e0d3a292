package room

import (
	"colorclash-server/pkg/playable"
)

type clientStatePlayer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGuest bool   `json:"isGuest"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
