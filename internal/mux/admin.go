package mux

import (
	"colorclash-server/pkg/playable/clash"
	"net/http"
	"sort"
)

// getAdminRoom lists the public state of every open room, ordered by room code
func (m *Mux) getAdminRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePageOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealers := m.pitBoss.Dealers()
		sort.Slice(dealers, func(i, j int) bool {
			return dealers[i].Code() < dealers[j].Code()
		})

		start, end := page.window(len(dealers))
		states := make([]*clash.GameState, 0, end-start)
		for _, dealer := range dealers[start:end] {
			// rooms closing mid-listing are skipped
			if state := dealer.GameState(); state != nil {
				states = append(states, state)
			}
		}

		writeJSON(w, http.StatusOK, states)
	}
}
