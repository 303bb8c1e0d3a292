package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/synacor/argon2id"
)

const accountColumns = `
accounts.id,
accounts.username,
accounts.is_site_admin,
accounts.wins,
accounts.matches_played,
accounts.created,
accounts.updated,
accounts.password_hash`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

var placeholderRx = regexp.MustCompile(`\$(\d+)`)

// Store persists accounts
// Queries are written for Postgres and rebound for SQLite
type Store struct {
	db      *sql.DB
	dialect dialect
}

// NewPostgresStore returns a store backed by an open Postgres handle
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{db: db, dialect: dialectPostgres}
}

// Close closes the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) rebind(query string) string {
	if s.dialect == dialectSQLite {
		return placeholderRx.ReplaceAllString(query, "?$1")
	}

	return query
}

func (s *Store) queryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqDuplicateKeyErrorCode
	}

	return isSQLiteUniqueViolation(err)
}

type scanner interface {
	Scan(...interface{}) error
}

func getAccountByRow(row scanner) (*Account, error) {
	var a Account
	var created, updated int64
	if err := row.Scan(&a.ID, &a.Username, &a.IsSiteAdmin, &a.Wins, &a.MatchesPlayed, &created, &updated, &a.passwordHash); err != nil {
		return nil, err
	}

	a.Created = fromMillis(created)
	a.Updated = fromMillis(updated)
	return &a, nil
}

// Create registers a new account
func (s *Store) Create(ctx context.Context, username, password, remoteAddr string) (*Account, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	now := toMillis(time.Now())
	const query = `
INSERT INTO accounts (id, username, password_hash, remote_addr, created, updated)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + accountColumns

	row := s.queryRow(ctx, query, uuid.New().String(), username, hash, remoteAddr, now)
	a, err := getAccountByRow(row)
	if err != nil {
		if s.isDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return a, nil
}

// GetByID returns the account with the ID
func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

	a, err := getAccountByRow(s.queryRow(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return a, err
}

// GetByUsernameAndPassword returns the account if the credentials are valid
// Usernames are matched case-insensitively
func (s *Store) GetByUsernameAndPassword(ctx context.Context, username, password string) (*Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE lower(username) = lower($1)`

	a, err := getAccountByRow(s.queryRow(ctx, query, strings.TrimSpace(username)))
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidUsernameOrPassword
		}

		return nil, err
	}

	if err := argon2id.Compare(a.passwordHash, password); err != nil {
		return nil, ErrInvalidUsernameOrPassword
	}

	return a, nil
}

// LastCreatedAt returns the last time an account was registered from the remote address
// If none was, this returns a zero time and a nil error
func (s *Store) LastCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM accounts
WHERE remote_addr = $1`

	var created sql.NullInt64
	if err := s.queryRow(ctx, query, remoteAddr).Scan(&created); err != nil {
		return time.Time{}, err
	}

	if !created.Valid {
		return time.Time{}, nil
	}

	return fromMillis(created.Int64), nil
}

// IncrementStats adds a finished round to the account's totals
func (s *Store) IncrementStats(ctx context.Context, accountID string, winsDelta, matchesDelta int) error {
	const query = `
UPDATE accounts
SET wins = wins + $1,
    matches_played = matches_played + $2,
    updated = $3
WHERE id = $4`

	res, err := s.exec(ctx, query, winsDelta, matchesDelta, toMillis(time.Now()), accountID)
	if err != nil {
		return fmt.Errorf("could not increment stats: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// SetIsSiteAdmin sets whether the account can use the admin endpoints
func (s *Store) SetIsSiteAdmin(ctx context.Context, a *Account, isSiteAdmin bool) error {
	if a.IsSiteAdmin == isSiteAdmin {
		return nil
	}

	now := time.Now()
	const query = `
UPDATE accounts
SET is_site_admin = $1, updated = $2
WHERE id = $3`

	if _, err := s.exec(ctx, query, isSiteAdmin, toMillis(now), a.ID); err != nil {
		return err
	}

	a.IsSiteAdmin = isSiteAdmin
	a.Updated = fromMillis(toMillis(now))
	return nil
}
