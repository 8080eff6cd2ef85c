package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users { return &usersRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint translates sqlite unique violations into store.ErrAlreadyExists.
// modernc.org/sqlite surfaces them as plain errors, so we match on the message.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

type userRow struct {
	ID            string
	Username      string
	Nickname      string
	Email         string
	PasswordHash  string
	AvatarURL     string
	Provider      string
	Role          string
	EmailVerified bool
	Locked        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:            row.ID,
		Username:      row.Username,
		Nickname:      row.Nickname,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		AvatarURL:     row.AvatarURL,
		Provider:      domain.Provider(row.Provider),
		Role:          domain.Role(row.Role),
		EmailVerified: row.EmailVerified,
		Locked:        row.Locked,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
