package main

import (
	"colorclash-server/internal/config"
	"colorclash-server/pkg/db"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Instance()
	if cfg.PGDSN == "" {
		logrus.Fatal("no PostgreSQL DSN configured, the sqlite store migrates itself on open")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	dbh, err := db.WaitFor(ctx, cfg.PGDSN, time.Millisecond*500)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}
