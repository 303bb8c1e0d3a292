package mux

import (
	"colorclash-server/pkg/playable"
	"colorclash-server/pkg/playable/clash"
	"colorclash-server/pkg/room"
	"colorclash-server/pkg/token"
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type postRoomResponse struct {
	RoomCode string        `json:"roomCode"`
	Settings clash.Options `json:"settings"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playable.AdditionalData
		if !decodeRequest(w, r, &payload) {
			return
		}

		opts, err := clash.OptionsFromAdditionalData(m.config.roomDefaults, payload)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealer, err := m.pitBoss.CreateRoom(opts)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postRoomResponse{
			RoomCode: dealer.Code(),
			Settings: opts,
		})
	}
}

func (m *Mux) getRoomCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		state := dealer.GameState()
		if state == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, ok := token.NormalizeRoomCode(mux.Vars(r)["code"])
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		dealer, err := m.pitBoss.Dealer(code)
		if err != nil {
			if errors.Is(err, room.ErrRoomNotFound) {
				writeJSONError(w, http.StatusNotFound, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
