package account

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"colorclash-server/pkg/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// stores returns the SQLite store, plus a Postgres store when PG_DSN is set
func stores(t *testing.T) map[string]*Store {
	t.Helper()

	all := map[string]*Store{"sqlite": newSQLiteStore(t)}

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		return all
	}

	pg, err := db.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = pg.Close()
	})

	if err := db.Migrate(pg, "../../sql"); err != nil {
		t.Fatal(err)
	}

	all["postgres"] = NewPostgresStore(pg)
	return all
}

func uniqueUsername() string {
	return "user_" + uuid.New().String()[0:8]
}

func TestStore_Create(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()

			username := uniqueUsername()
			acct, err := s.Create(ctx, username, "secret1", "127.0.0.1")
			a.NoError(err)
			a.NotEmpty(acct.ID)
			a.Equal(username, acct.Username)
			a.Equal(0, acct.Wins)
			a.Equal(0, acct.MatchesPlayed)
			a.False(acct.IsSiteAdmin)
			a.WithinDuration(time.Now(), acct.Created, time.Minute)

			_, err = s.Create(ctx, username, "secret2", "127.0.0.1")
			a.Equal(ErrDuplicateKey, err)

			// usernames are unique regardless of case
			upper := []byte(username)
			upper[0] = 'U'
			_, err = s.Create(ctx, string(upper), "secret2", "127.0.0.1")
			a.Equal(ErrDuplicateKey, err)

			found, err := s.GetByID(ctx, acct.ID)
			a.NoError(err)
			a.Equal(acct.ID, found.ID)
			a.Equal(username, found.Username)

			_, err = s.GetByID(ctx, uuid.New().String())
			a.Equal(ErrAccountNotFound, err)
		})
	}
}

func TestStore_Create_validation(t *testing.T) {
	a := assert.New(t)
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "ab", "secret1", "")
	a.EqualError(err, "username must be 3-24 letters, numbers, dashes or underscores")

	_, err = s.Create(ctx, "has space", "secret1", "")
	a.IsType(UserError(""), err)

	_, err = s.Create(ctx, "alice", "short", "")
	a.EqualError(err, "password must be 6 or more characters")
}

func TestStore_GetByUsernameAndPassword(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()

			username := uniqueUsername()
			created, err := s.Create(ctx, username, "secret1", "")
			a.NoError(err)

			acct, err := s.GetByUsernameAndPassword(ctx, username, "secret1")
			a.NoError(err)
			a.Equal(created.ID, acct.ID)

			acct, err = s.GetByUsernameAndPassword(ctx, "  U"+username[1:]+" ", "secret1")
			a.NoError(err)
			a.Equal(created.ID, acct.ID)

			_, err = s.GetByUsernameAndPassword(ctx, username, "wrong-password")
			a.Equal(ErrInvalidUsernameOrPassword, err)

			_, err = s.GetByUsernameAndPassword(ctx, uniqueUsername(), "secret1")
			a.Equal(ErrInvalidUsernameOrPassword, err)
		})
	}
}

func TestStore_IncrementStats(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()

			acct, err := s.Create(ctx, uniqueUsername(), "secret1", "")
			a.NoError(err)

			a.NoError(s.IncrementStats(ctx, acct.ID, 1, 1))
			a.NoError(s.IncrementStats(ctx, acct.ID, 0, 1))

			found, err := s.GetByID(ctx, acct.ID)
			a.NoError(err)
			a.Equal(1, found.Wins)
			a.Equal(2, found.MatchesPlayed)

			a.Equal(ErrAccountNotFound, s.IncrementStats(ctx, uuid.New().String(), 1, 1))
		})
	}
}

func TestStore_LastCreatedAt(t *testing.T) {
	a := assert.New(t)
	s := newSQLiteStore(t)
	ctx := context.Background()

	last, err := s.LastCreatedAt(ctx, "10.0.0.1")
	a.NoError(err)
	a.True(last.IsZero())

	_, err = s.Create(ctx, "alice", "secret1", "10.0.0.1")
	a.NoError(err)

	last, err = s.LastCreatedAt(ctx, "10.0.0.1")
	a.NoError(err)
	a.WithinDuration(time.Now(), last, time.Minute)

	last, err = s.LastCreatedAt(ctx, "10.0.0.2")
	a.NoError(err)
	a.True(last.IsZero())
}

func TestStore_SetIsSiteAdmin(t *testing.T) {
	a := assert.New(t)
	s := newSQLiteStore(t)
	ctx := context.Background()

	acct, err := s.Create(ctx, "alice", "secret1", "")
	a.NoError(err)

	a.NoError(s.SetIsSiteAdmin(ctx, acct, true))
	a.True(acct.IsSiteAdmin)

	found, err := s.GetByID(ctx, acct.ID)
	a.NoError(err)
	a.True(found.IsSiteAdmin)
}

func TestOpenSQLite_reopen(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "accounts.db")

	s, err := OpenSQLite(path)
	a.NoError(err)
	_, err = s.Create(context.Background(), "alice", "secret1", "")
	a.NoError(err)
	a.NoError(s.Close())

	// migrations are not applied twice
	s, err = OpenSQLite(path)
	a.NoError(err)
	defer s.Close()

	_, err = s.GetByUsernameAndPassword(context.Background(), "alice", "secret1")
	a.NoError(err)

	_, err = OpenSQLite("")
	a.Error(err)
}

func TestStore_rebind(t *testing.T) {
	s := &Store{dialect: dialectSQLite}
	assert.Equal(t, "WHERE a = ?1 AND b = ?12", s.rebind("WHERE a = $1 AND b = $12"))

	s = &Store{dialect: dialectPostgres}
	assert.Equal(t, "WHERE a = $1", s.rebind("WHERE a = $1"))
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, 1, migrationVersion("1_accounts.up.sql"))
	assert.Equal(t, 12, migrationVersion("12_more.up.sql"))
}
