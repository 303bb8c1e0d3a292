package mux

import (
	"colorclash-server/internal/jwt"
	"colorclash-server/pkg/account"
	"colorclash-server/pkg/playable/clash"
	"colorclash-server/pkg/room"
	"context"
	"net/http"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxAccountKey ctxKey = iota
	ctxDealerKey
)

// AccountStore is the persistence the HTTP API needs
type AccountStore interface {
	Create(ctx context.Context, username, password, remoteAddr string) (*account.Account, error)
	GetByID(ctx context.Context, id string) (*account.Account, error)
	GetByUsernameAndPassword(ctx context.Context, username, password string) (*account.Account, error)
	LastCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config    config
	version   string
	recaptcha recaptcha
	pitBoss   *room.PitBoss
	accounts  AccountStore

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type config struct {
	// accountCreateDelay is the minimum duration between two registrations from a single remote address
	accountCreateDelay time.Duration

	// roomDefaults are the options of a room when the request leaves them out
	roomDefaults clash.Options
}

// NewMux returns a new HTTP mux
// The PitBoss must already be on shift
func NewMux(version string, accounts AccountStore, pitBoss *room.PitBoss, roomDefaults clash.Options) *Mux {
	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		pitBoss:   pitBoss,
		accounts:  accounts,
		recaptcha: newRecaptcha(),
		config: config{
			accountCreateDelay: time.Minute,
			roomDefaults:       roomDefaults,
		},
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	roomPath := "/room/{code:[A-Za-z0-9]{6}}"

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/account").Handler(this.postAccount())
		r.Methods(http.MethodPost).Path("/account/auth").Handler(this.postAccountAuth())

		// guests can create and join rooms, a bearer token is used when present
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

		rr := r.PathPrefix(roomPath).Subrouter()
		rr.Use(this.roomMiddleware)
		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomCode())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomCodeWS())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/account/me").Handler(this.getAccountMe())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodGet).Path("/admin/room").Handler(this.getAdminRoom())
	}

	return this
}

// bearerToken returns the token from the access_token parameter or the Authorization header
func bearerToken(r *http.Request) string {
	if token := r.FormValue("access_token"); token != "" {
		return token
	}

	authHeader := strings.Split(r.Header.Get("Authorization"), " ")
	if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
		return ""
	}

	return authHeader[1]
}

// accountFromRequest returns the account of the bearer token, or nil for guests
// An invalid token is an error, no token is not
func (m *Mux) accountFromRequest(r *http.Request) (*account.Account, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, nil
	}

	id, err := jwt.ValidAccountID(token)
	if err != nil {
		return nil, err
	}

	return m.accounts.GetByID(r.Context(), id)
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acct, err := m.accountFromRequest(r)
		if err != nil || acct == nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxAccountKey, acct)
		w.Header().Set("ColorClash-AccountID", acct.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acct := r.Context().Value(ctxAccountKey).(*account.Account)
		if !acct.IsSiteAdmin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
