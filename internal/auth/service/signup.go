package service

import (
	"context"
	"errors"

	"github.com/brandu/auth/internal/auth/cache"
	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/pkg/cryptox"
	"github.com/brandu/auth/pkg/idx"
)

type SignUpParams struct {
	Username string
	Password string
	Nickname string
	Email    string
}

// SignUp creates a local account and kicks off email verification. The user
// is persisted unverified; sign-in stays blocked until the emailed code is
// confirmed. Duplicate username or email fails before any email is sent.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (domain.User, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Nickname:     p.Nickname,
		Email:        p.Email,
		PasswordHash: hash,
		Provider:     domain.ProviderLocal,
		Role:         domain.RoleUser,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, err
	}

	code, err := cryptox.GenerateCode()
	if err != nil {
		return domain.User{}, err
	}
	if err := s.sendChallenge(ctx, cache.PurposeSignUp, u.Email, code); err != nil {
		return domain.User{}, err
	}

	return u, nil
}

// Confirm checks a challenge code for (purpose, email). A wrong code returns
// (false, nil) so the caller can retry while the challenge is still
// outstanding. A matching sign-up code marks the account verified and
// consumes the challenge, so replaying the same code fails with
// ErrChallengeNotFound. A matching find-password code is left in place until
// ResetPassword consumes it.
func (s *AuthService) Confirm(ctx context.Context, purpose cache.Purpose, email, code string) (bool, error) {
	stored, err := s.Cache.GetChallenge(ctx, purpose, email)
	if err != nil {
		if errors.Is(err, cache.ErrChallengeNotFound) {
			return false, domain.ErrChallengeNotFound
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}

	if purpose == cache.PurposeSignUp {
		u, err := s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, domain.ErrUserNotFound
			}
			return false, err
		}
		if err := s.Store.Users().SetEmailVerified(ctx, u.ID, true); err != nil {
			return false, err
		}
		if err := s.Cache.DeleteChallenge(ctx, purpose, email); err != nil {
			return false, err
		}
	}

	return true, nil
}

// ResendEmail issues a fresh challenge for an existing account. An unknown
// email is a silent no-op so the endpoint cannot be used to probe for
// accounts. An account that is already verified needs no sign-up challenge.
func (s *AuthService) ResendEmail(ctx context.Context, purpose cache.Purpose, email string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if purpose == cache.PurposeSignUp && u.EmailVerified {
		return nil
	}

	code, err := cryptox.GenerateCode()
	if err != nil {
		return err
	}
	return s.sendChallenge(ctx, purpose, u.Email, code)
}
