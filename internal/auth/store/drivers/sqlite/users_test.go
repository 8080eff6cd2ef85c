package sqlite

import (
	"context"
	"testing"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(username, email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Nickname:     "Tester",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Provider:     domain.ProviderLocal,
		Role:         domain.RoleUser,
	}
}

func TestUsersCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice", "alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, got.Username)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, domain.ProviderLocal, got.Provider)
	require.Equal(t, domain.RoleUser, got.Role)
	require.False(t, got.EmailVerified)
	require.False(t, got.Locked)
	require.False(t, got.CreatedAt.IsZero())

	byName, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestUsersNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Users().SetEmailVerified(ctx, idx.New().String(), true)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersUniqueConstraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	err := s.Users().CreateUser(ctx, newTestUser("alice", "other@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	err = s.Users().CreateUser(ctx, newTestUser("bob", "alice@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersExistsByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.Users().ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Users().CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	ok, err = s.Users().ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUsersUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice", "alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetEmailVerified(ctx, u.ID, true))
	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.EmailVerified)

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	require.NoError(t, s.Users().SetLocked(ctx, u.ID, true))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.Locked)
}
