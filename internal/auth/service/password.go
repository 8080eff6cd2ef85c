package service

import (
	"context"
	"errors"

	"github.com/brandu/auth/internal/auth/cache"
	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/pkg/cryptox"
)

// FindPassword starts password recovery by mailing a challenge code. An
// unknown email is a silent no-op, same as ResendEmail.
func (s *AuthService) FindPassword(ctx context.Context, email string) error {
	return s.ResendEmail(ctx, cache.PurposeFindPassword, email)
}

// ResetPassword consumes a find-password challenge and sets the new password.
// The code is only consumed on success, so a typo'd new password (rejected
// upstream by validation) does not burn the challenge.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	stored, err := s.Cache.GetChallenge(ctx, cache.PurposeFindPassword, email)
	if err != nil {
		if errors.Is(err, cache.ErrChallengeNotFound) {
			return domain.ErrChallengeNotFound
		}
		return err
	}
	if stored != code {
		return domain.ErrInvalidInput.WithMessage("verification code does not match")
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}

	return s.Cache.DeleteChallenge(ctx, cache.PurposeFindPassword, email)
}
