package service

import (
	"context"
	"errors"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/store"
)

// UserByUsername loads the account behind an authenticated principal.
func (s *AuthService) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
