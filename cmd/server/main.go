package main

import (
	"colorclash-server/internal/config"
	"colorclash-server/internal/jwt"
	"colorclash-server/internal/mux"
	"colorclash-server/pkg/account"
	"colorclash-server/pkg/db"
	"colorclash-server/pkg/playable/clash"
	"colorclash-server/pkg/room"
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadSecret()
	roomDefaults := loadRoomDefaults()

	accounts := openAccountStore()
	defer accounts.Close()

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), accounts, room.Settings{
		MaxPlayers: config.Instance().Room.MaxPlayers,
	})
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, accounts, pitBoss, roomDefaults))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logrus.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		pitBoss.EndShift()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server stopped")
	}
}

// openAccountStore uses PostgreSQL when a DSN is configured, otherwise a local SQLite file
func openAccountStore() *account.Store {
	cfg := config.Instance()

	if cfg.PGDSN == "" {
		store, err := account.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			logrus.WithError(err).Fatal("could not open sqlite database")
		}

		logrus.WithField("path", cfg.SQLitePath).Info("using sqlite")
		return store
	}

	dbh, err := db.Open(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return account.NewPostgresStore(dbh)
}

func loadRoomDefaults() clash.Options {
	cfg := config.Instance().Room

	mode, err := clash.ParseGameMode(cfg.DefaultGameMode)
	if err != nil {
		logrus.WithError(err).Fatal("invalid default game mode")
	}

	opts := clash.DefaultOptions()
	opts.GameMode = mode
	if cfg.DefaultTurnTimer > 0 {
		opts.TurnTimer = cfg.DefaultTurnTimer
	}

	return opts
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
