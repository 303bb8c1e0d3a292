package mux

import (
	"colorclash-server/internal/jwt"
	"colorclash-server/pkg/account"
	"errors"
	"net/http"
	"time"
)

type accountPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type accountAuthResponse struct {
	JWT     string           `json:"jwt"`
	Account *account.Account `json:"account"`
}

func (m *Mux) postAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp accountPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if err := m.recaptcha.Verify(pp.Token); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		addr := remoteAddr(r)
		at, err := m.accounts.LastCreatedAt(r.Context(), addr)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if time.Since(at) < m.config.accountCreateDelay {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another account"))
			return
		}

		acct, err := m.accounts.Create(r.Context(), pp.Username, pp.Password, addr)
		if err != nil {
			var ue account.UserError
			switch {
			case errors.As(err, &ue):
				writeJSONError(w, http.StatusBadRequest, err)
			case errors.Is(err, account.ErrDuplicateKey):
				writeJSONError(w, http.StatusBadRequest, errors.New("username is already taken"))
			default:
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		m.writeAuthResponse(w, http.StatusCreated, acct)
	}
}

func (m *Mux) postAccountAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp accountPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		acct, err := m.accounts.GetByUsernameAndPassword(r.Context(), pp.Username, pp.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidUsernameOrPassword) {
				writeJSONError(w, http.StatusUnauthorized, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.writeAuthResponse(w, http.StatusOK, acct)
	}
}

func (m *Mux) writeAuthResponse(w http.ResponseWriter, statusCode int, acct *account.Account) {
	signedToken, err := jwt.Sign(acct.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, statusCode, accountAuthResponse{
		JWT:     signedToken,
		Account: acct,
	})
}

func (m *Mux) getAccountMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct := r.Context().Value(ctxAccountKey).(*account.Account)
		writeJSON(w, http.StatusOK, acct)
	}
}
