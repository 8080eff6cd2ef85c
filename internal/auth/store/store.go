package store

import (
	"context"
	"errors"

	"github.com/brandu/auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during sign-in and by the session cache lookups.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used by the email challenge flows.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByUsername reports whether a username is already taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SetEmailVerified flips the email_verified flag and bumps updated_at.
	SetEmailVerified(ctx context.Context, userID string, verified bool) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetLocked flips the locked flag and bumps updated_at.
	SetLocked(ctx context.Context, userID string, locked bool) error
}
