package main

import (
	"bufio"
	"colorclash-server/internal/config"
	"colorclash-server/pkg/account"
	"colorclash-server/pkg/db"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var command = flag.String("c", "user", "specifies the command (user)")

func main() {
	flag.Parse()

	switch *command {
	case "user":
		username := getUsername()
		if username == "" {
			os.Exit(1)
		}

		password := getPassword()
		if password == "" {
			os.Exit(1)
		}

		store := openStore()
		defer store.Close()

		acct, err := store.Create(context.Background(), username, password, "127.0.0.1")
		if err != nil {
			logrus.WithError(err).Fatal("could not create account")
		}

		fmt.Printf("Created account %s\n", acct.ID)

		promote, err := getInput("Make admin (Y/n)")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if promote == "" || strings.ToLower(promote)[0] == 'y' {
			if err := store.SetIsSiteAdmin(context.Background(), acct, true); err != nil {
				logrus.WithError(err).Fatal("could not promote account to admin")
			}

			fmt.Printf("Account promoted to admin\n")
		}

	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func openStore() *account.Store {
	cfg := config.Instance()
	if cfg.PGDSN == "" {
		store, err := account.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			logrus.WithError(err).Fatal("could not open sqlite database")
		}

		return store
	}

	dbh, err := db.Open(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	return account.NewPostgresStore(dbh)
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if err := account.ValidatePassword(password); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return password
	}
}

func getUsername() string {
	for {
		str, err := getInput("Username")
		if err != nil {
			logrus.WithError(err).Warn("could not read username")
		}

		if str == "" {
			return ""
		}

		if err := account.ValidateUsername(str); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return str
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
